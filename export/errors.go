package export

import "errors"

var (
	// ErrInvalidHistoryFile is returned when a history file cannot be decoded.
	ErrInvalidHistoryFile = errors.New("invalid history file")

	// ErrInvalidSnapshotFile is returned when a snapshot file cannot be decoded.
	ErrInvalidSnapshotFile = errors.New("invalid snapshot file")
)
