package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/wikiscope/core"
)

// SnapshotFileName returns the conventional file name of a snapshot
// exported at t.
func SnapshotFileName(t time.Time) string {
	return fmt.Sprintf("wiki-network-analysis-%s.json", t.Format(time.DateOnly))
}

// WriteSnapshotJSON writes the complete snapshot as indented JSON.
func WriteSnapshotJSON(w io.Writer, snapshot *core.AnalysisSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: no snapshot", ErrInvalidSnapshotFile)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}

// ReadSnapshotJSON reads a snapshot written by WriteSnapshotJSON.
func ReadSnapshotJSON(r io.Reader) (*core.AnalysisSnapshot, error) {
	var snapshot core.AnalysisSnapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshotFile, err)
	}
	return &snapshot, nil
}
