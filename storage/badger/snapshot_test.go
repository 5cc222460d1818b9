package badger

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/wikiscope/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository(t *testing.T) {
	_, snapshots, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	got, err := snapshots.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	first := &core.AnalysisSnapshot{
		Timestamp:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		SourceQuery: "einstein",
		ResultCount: 2,
		Nodes:       []core.ArticleNode{{Title: "A"}, {Title: "B"}},
		Edges:       []core.Edge{{From: "A", To: "B", Strength: 3}},
	}
	require.NoError(t, snapshots.SaveSnapshot(ctx, first))

	second := &core.AnalysisSnapshot{
		Timestamp:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		SourceQuery: "curie",
		ResultCount: 1,
		Nodes:       []core.ArticleNode{{Title: "C"}},
	}
	require.NoError(t, snapshots.SaveSnapshot(ctx, second))

	got, err = snapshots.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "curie", got.SourceQuery)
	assert.Equal(t, second.Timestamp, got.Timestamp)
	assert.Len(t, got.Nodes, 1)
}

func TestSnapshotRepository_Unreadable(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()
	repo := NewSnapshotRepository(backend)

	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(latestSnapshotKey), []byte("{not json")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	got, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}
