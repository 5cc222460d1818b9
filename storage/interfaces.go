package storage

import (
	"context"

	"github.com/poiesic/wikiscope/core"
)

// MaxHistoryEntries is the number of non-favorite history entries kept.
// Favorites do not count against it.
const MaxHistoryEntries = 50

// HistoryRepository provides operations for managing the query history.
// Implementations must be thread-safe and support concurrent access.
type HistoryRepository interface {
	// AddEntry records a query. An existing entry with the same PrimaryURL
	// is replaced, keeping its favorite flag. After the write, the oldest
	// non-favorite entries beyond MaxHistoryEntries are dropped.
	// Returns the stored entry with its ID populated.
	AddEntry(ctx context.Context, entry *core.HistoryEntry) (*core.HistoryEntry, error)

	// ImportEntries merges entries into the history, as AddEntry does, but
	// keeps their favorite flags and timestamps. Returns the number stored.
	ImportEntries(ctx context.Context, entries ...*core.HistoryEntry) (int, error)

	// ListEntries returns all entries, favorites first, then by
	// timestamp descending. Unreadable entries are skipped.
	ListEntries(ctx context.Context) ([]*core.HistoryEntry, error)

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.HistoryEntry, error)

	// ToggleFavorite flips the favorite flag of an entry.
	// Returns ErrNotFound if the entry doesn't exist.
	ToggleFavorite(ctx context.Context, id core.ID) (*core.HistoryEntry, error)

	// RenameEntry sets the display name of an entry. The name is trimmed
	// and must not be empty.
	// Returns ErrNotFound if the entry doesn't exist.
	RenameEntry(ctx context.Context, id core.ID, name string) (*core.HistoryEntry, error)

	// DeleteEntry removes an entry.
	// Returns ErrNotFound if the entry doesn't exist.
	DeleteEntry(ctx context.Context, id core.ID) error

	// ClearEntries removes every entry, favorites included.
	ClearEntries(ctx context.Context) error
}

// SnapshotRepository stores the most recent analysis snapshot.
type SnapshotRepository interface {
	// SaveSnapshot replaces the stored snapshot.
	SaveSnapshot(ctx context.Context, snapshot *core.AnalysisSnapshot) error

	// LoadSnapshot returns the stored snapshot.
	// Returns nil, nil if none exists or the stored one is unreadable.
	LoadSnapshot(ctx context.Context) (*core.AnalysisSnapshot, error)
}
