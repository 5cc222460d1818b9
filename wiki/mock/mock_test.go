package mock

import (
	"context"
	"testing"

	"github.com/poiesic/wikiscope/wiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderDefaults(t *testing.T) {
	p := NewMockProvider().(*MockProvider)
	ctx := context.Background()

	resp, err := p.Search().Search(ctx, "x", "de", 10)
	require.NoError(t, err)
	assert.Empty(t, resp.Hits)
	assert.Equal(t, []string{"x"}, p.GetMockSearch().Queries())

	_, err = p.Summaries().Summary(ctx, "x", "de")
	assert.ErrorIs(t, err, wiki.ErrNoSummary)

	cats, err := p.Categories().Categories(ctx, []string{"x"}, "de")
	require.NoError(t, err)
	assert.Empty(t, cats)

	require.NoError(t, p.Close())
	assert.True(t, p.Closed())
}

func TestMockSearchLimit(t *testing.T) {
	s := NewMockSearchService("a", "b", "c")
	resp, err := s.Search(context.Background(), "q", "en", 2)
	require.NoError(t, err)
	require.Len(t, resp.Hits, 2)
	assert.Equal(t, 3, resp.TotalHits)
	assert.Len(t, s.Response.Hits, 3)
}

func TestMockCategoriesRecordsBatches(t *testing.T) {
	c := NewMockCategoryService(map[string][]string{"A": {"X"}})
	out, err := c.Categories(context.Background(), []string{"A", "B"}, "de")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"A": {"X"}}, out)
	assert.Equal(t, [][]string{{"A", "B"}}, c.Batches())

	c.Reset()
	assert.Zero(t, c.CallCount())
}
