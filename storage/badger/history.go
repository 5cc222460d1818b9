package badger

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/storage"
)

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
type HistoryRepository struct {
	backend *Backend
	logger  *slog.Logger
	now     func() time.Time

	// writes are serialized so the size bound sees a consistent view
	mu sync.Mutex
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(backend *Backend) *HistoryRepository {
	return &HistoryRepository{
		backend: backend,
		logger:  backend.logger.With("component", "history"),
		now:     time.Now,
	}
}

// AddEntry records a query, replacing any entry with the same URL.
func (r *HistoryRepository) AddEntry(ctx context.Context, entry *core.HistoryEntry) (*core.HistoryEntry, error) {
	if err := core.ValidateHistoryEntry(entry); err != nil {
		return nil, err
	}
	stored := r.prepare(entry)
	if stored.Timestamp.IsZero() {
		stored.Timestamp = r.now().UTC().Truncate(time.Microsecond)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeHistoryKey(stored.ID)
		existing, err := r.readEntry(tx, key)
		if err != nil {
			r.logger.Warn("replacing unreadable history entry", "id", stored.ID, "err", err)
		}
		if existing != nil && existing.Favorite {
			stored.Favorite = true
		}
		if err := tx.Set(key, storage.MarshalHistoryEntry(stored)); err != nil {
			return err
		}
		if err := r.enforceLimit(tx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// ImportEntries merges entries, keeping their favorite flags and
// timestamps. An existing entry is only replaced by a newer one.
func (r *HistoryRepository) ImportEntries(ctx context.Context, entries ...*core.HistoryEntry) (int, error) {
	for _, e := range entries {
		if err := core.ValidateHistoryEntry(e); err != nil {
			return 0, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	written := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, e := range entries {
			stored := r.prepare(e)
			if stored.Timestamp.IsZero() {
				stored.Timestamp = r.now().UTC().Truncate(time.Microsecond)
			}
			key := makeHistoryKey(stored.ID)
			existing, _ := r.readEntry(tx, key)
			if existing != nil && existing.Timestamp.After(stored.Timestamp) {
				continue
			}
			if err := tx.Set(key, storage.MarshalHistoryEntry(stored)); err != nil {
				return err
			}
			written++
		}
		if err := r.enforceLimit(tx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}
	return written, nil
}

// ListEntries returns all readable entries, favorites first, newest first.
func (r *HistoryRepository) ListEntries(ctx context.Context) ([]*core.HistoryEntry, error) {
	var entries []*core.HistoryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		entries, err = r.scan(tx)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

// GetEntry retrieves a single entry by ID.
func (r *HistoryRepository) GetEntry(ctx context.Context, id core.ID) (*core.HistoryEntry, error) {
	var result *core.HistoryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readEntry(tx, makeHistoryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ToggleFavorite flips the favorite flag of an entry.
func (r *HistoryRepository) ToggleFavorite(ctx context.Context, id core.ID) (*core.HistoryEntry, error) {
	return r.update(id, func(e *core.HistoryEntry) error {
		e.Favorite = !e.Favorite
		return nil
	})
}

// RenameEntry sets the display name of an entry.
func (r *HistoryRepository) RenameEntry(ctx context.Context, id core.ID, name string) (*core.HistoryEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidHistoryEntry, core.ErrEmptyName)
	}
	return r.update(id, func(e *core.HistoryEntry) error {
		e.Name = name
		return nil
	})
}

// DeleteEntry removes an entry.
func (r *HistoryRepository) DeleteEntry(ctx context.Context, id core.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeHistoryKey(id)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ClearEntries removes every entry, favorites included.
func (r *HistoryRepository) ClearEntries(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(historyPrefix)
		opts.PrefetchValues = false

		var keys [][]byte
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// update applies fn to a stored entry and writes it back.
func (r *HistoryRepository) update(id core.ID, fn func(e *core.HistoryEntry) error) (*core.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result *core.HistoryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeHistoryKey(id)
		entry, err := r.readEntry(tx, key)
		if err != nil {
			return err
		}
		if entry == nil {
			return storage.ErrNotFound
		}
		if err := fn(entry); err != nil {
			return err
		}
		if err := tx.Set(key, storage.MarshalHistoryEntry(entry)); err != nil {
			return err
		}
		if !entry.Favorite {
			if err := r.enforceLimit(tx); err != nil {
				return err
			}
		}
		result = entry
		return tx.Commit()
	}, true)
	return result, err
}

// prepare copies an entry into its stored form.
func (r *HistoryRepository) prepare(entry *core.HistoryEntry) *core.HistoryEntry {
	stored := *entry
	stored.ID = core.IDFromContent(entry.PrimaryURL)
	stored.Name = strings.TrimSpace(entry.Name)
	stored.Timestamp = entry.Timestamp.UTC().Truncate(time.Microsecond)
	return &stored
}

// readEntry returns nil, nil when the key does not exist.
func (r *HistoryRepository) readEntry(tx *badger.Txn, key []byte) (*core.HistoryEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var entry *core.HistoryEntry
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		entry, unmarshalErr = storage.UnmarshalHistoryEntry(val)
		return unmarshalErr
	})
	return entry, err
}

// scan reads every entry, skipping unreadable ones.
func (r *HistoryRepository) scan(tx *badger.Txn) ([]*core.HistoryEntry, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(historyPrefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var entries []*core.HistoryEntry
	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()
		var entry *core.HistoryEntry
		err := item.Value(func(val []byte) error {
			var unmarshalErr error
			entry, unmarshalErr = storage.UnmarshalHistoryEntry(val)
			return unmarshalErr
		})
		if err != nil {
			if errors.Is(err, storage.ErrSerializationFailed) {
				r.logger.Warn("skipping unreadable history entry", "key", string(item.Key()), "err", err)
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// enforceLimit drops the oldest non-favorite entries beyond the bound.
func (r *HistoryRepository) enforceLimit(tx *badger.Txn) error {
	entries, err := r.scan(tx)
	if err != nil {
		return err
	}
	var regular []*core.HistoryEntry
	for _, e := range entries {
		if !e.Favorite {
			regular = append(regular, e)
		}
	}
	if len(regular) <= storage.MaxHistoryEntries {
		return nil
	}
	sortEntries(regular)
	for _, e := range regular[storage.MaxHistoryEntries:] {
		r.logger.Debug("dropping history entry beyond limit", "id", e.ID, "name", e.Name)
		if err := tx.Delete(makeHistoryKey(e.ID)); err != nil {
			return err
		}
	}
	return nil
}

// sortEntries orders favorites first, then newest first, then by ID.
func sortEntries(entries []*core.HistoryEntry) {
	slices.SortStableFunc(entries, func(a, b *core.HistoryEntry) int {
		if a.Favorite != b.Favorite {
			if a.Favorite {
				return -1
			}
			return 1
		}
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
