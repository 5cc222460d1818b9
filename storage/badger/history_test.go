package badger

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestHistory(t *testing.T) (*HistoryRepository, *Backend) {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return NewHistoryRepository(backend), backend
}

func testEntry(i int) *core.HistoryEntry {
	return &core.HistoryEntry{
		Name:       fmt.Sprintf("query %d", i),
		PrimaryURL: fmt.Sprintf("https://de.wikipedia.org/wiki/Special:Search?search=q%d", i),
		Lang:       "de",
		State:      core.FieldSet{MainQuery: fmt.Sprintf("q%d", i)},
		Timestamp:  baseTime.Add(time.Duration(i) * time.Minute),
	}
}

func TestAddEntry(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	in := testEntry(1)
	in.Name = "  spaced  "
	stored, err := repo.AddEntry(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, core.IDFromContent(in.PrimaryURL), stored.ID)
	assert.Equal(t, "spaced", stored.Name)

	got, err := repo.GetEntry(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestAddEntry_DefaultsTimestamp(t *testing.T) {
	repo, _ := newTestHistory(t)
	repo.now = func() time.Time { return baseTime.Add(123456789 * time.Nanosecond) }

	in := testEntry(1)
	in.Timestamp = time.Time{}
	stored, err := repo.AddEntry(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, baseTime.Add(123456*time.Microsecond), stored.Timestamp)
}

func TestAddEntry_Invalid(t *testing.T) {
	repo, _ := newTestHistory(t)

	_, err := repo.AddEntry(context.Background(), &core.HistoryEntry{Name: "x"})
	assert.ErrorIs(t, err, core.ErrInvalidHistoryEntry)
}

func TestAddEntry_ReplacesSameURL(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	first, err := repo.AddEntry(ctx, testEntry(1))
	require.NoError(t, err)
	_, err = repo.ToggleFavorite(ctx, first.ID)
	require.NoError(t, err)

	again := testEntry(1)
	again.Name = "renamed by re-run"
	again.Timestamp = baseTime.Add(time.Hour)
	second, err := repo.AddEntry(ctx, again)
	require.NoError(t, err)

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "renamed by re-run", entries[0].Name)
	assert.True(t, entries[0].Favorite)
	assert.Equal(t, baseTime.Add(time.Hour), entries[0].Timestamp)
}

func TestAddEntry_EnforcesLimit(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	fav, err := repo.AddEntry(ctx, testEntry(0))
	require.NoError(t, err)
	_, err = repo.ToggleFavorite(ctx, fav.ID)
	require.NoError(t, err)

	for i := 1; i <= storage.MaxHistoryEntries+1; i++ {
		_, err := repo.AddEntry(ctx, testEntry(i))
		require.NoError(t, err)
	}

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, storage.MaxHistoryEntries+1)

	assert.Equal(t, fav.ID, entries[0].ID)
	assert.True(t, entries[0].Favorite)

	// the oldest non-favorite was dropped
	_, err = repo.GetEntry(ctx, core.IDFromContent(testEntry(1).PrimaryURL))
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.GetEntry(ctx, core.IDFromContent(testEntry(2).PrimaryURL))
	assert.NoError(t, err)
}

func TestListEntries_Order(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	var ids []core.ID
	for i := 1; i <= 4; i++ {
		e, err := repo.AddEntry(ctx, testEntry(i))
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}
	_, err := repo.ToggleFavorite(ctx, ids[0])
	require.NoError(t, err)
	_, err = repo.ToggleFavorite(ctx, ids[2])
	require.NoError(t, err)

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)

	var got []core.ID
	for _, e := range entries {
		got = append(got, e.ID)
	}
	assert.Equal(t, []core.ID{ids[2], ids[0], ids[3], ids[1]}, got)
}

func TestListEntries_Empty(t *testing.T) {
	repo, _ := newTestHistory(t)

	entries, err := repo.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListEntries_SkipsCorrupt(t *testing.T) {
	repo, backend := newTestHistory(t)
	ctx := context.Background()

	_, err := repo.AddEntry(ctx, testEntry(1))
	require.NoError(t, err)

	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeHistoryKey(core.ID(42)), []byte{0xff}); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "query 1", entries[0].Name)

	_, err = repo.GetEntry(ctx, core.ID(42))
	assert.ErrorIs(t, err, storage.ErrSerializationFailed)
}

func TestToggleFavorite(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	e, err := repo.AddEntry(ctx, testEntry(1))
	require.NoError(t, err)

	toggled, err := repo.ToggleFavorite(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Favorite)

	toggled, err = repo.ToggleFavorite(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Favorite)

	_, err = repo.ToggleFavorite(ctx, core.ID(7))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRenameEntry(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	e, err := repo.AddEntry(ctx, testEntry(1))
	require.NoError(t, err)

	renamed, err := repo.RenameEntry(ctx, e.ID, "  Physicists  ")
	require.NoError(t, err)
	assert.Equal(t, "Physicists", renamed.Name)

	_, err = repo.RenameEntry(ctx, e.ID, "   ")
	assert.ErrorIs(t, err, core.ErrEmptyName)

	got, err := repo.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Physicists", got.Name)

	_, err = repo.RenameEntry(ctx, core.ID(7), "x")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteEntry(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	e, err := repo.AddEntry(ctx, testEntry(1))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEntry(ctx, e.ID))
	_, err = repo.GetEntry(ctx, e.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteEntry(ctx, e.ID), storage.ErrNotFound)
}

func TestClearEntries(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		e, err := repo.AddEntry(ctx, testEntry(i))
		require.NoError(t, err)
		if i == 2 {
			_, err = repo.ToggleFavorite(ctx, e.ID)
			require.NoError(t, err)
		}
	}

	require.NoError(t, repo.ClearEntries(ctx))

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImportEntries(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	_, err := repo.AddEntry(ctx, testEntry(1))
	require.NoError(t, err)

	older := testEntry(1)
	older.Name = "stale"
	older.Timestamp = baseTime.Add(-time.Hour)

	fav := testEntry(2)
	fav.Favorite = true

	n, err := repo.ImportEntries(ctx, older, fav)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "query 2", entries[0].Name)
	assert.True(t, entries[0].Favorite)
	assert.Equal(t, "query 1", entries[1].Name)
}

func TestImportEntries_RejectsInvalid(t *testing.T) {
	repo, _ := newTestHistory(t)

	_, err := repo.ImportEntries(context.Background(), testEntry(1), &core.HistoryEntry{PrimaryURL: "x"})
	assert.ErrorIs(t, err, core.ErrEmptyName)

	entries, err := repo.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_ConcurrentAdds(t *testing.T) {
	repo, _ := newTestHistory(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.AddEntry(ctx, testEntry(i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, storage.MaxHistoryEntries)
}

func TestHistory_Closed(t *testing.T) {
	repo, backend := newTestHistory(t)
	require.NoError(t, backend.Close())

	_, err := repo.ListEntries(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
