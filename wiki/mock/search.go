package mock

import (
	"context"
	"sync"

	"github.com/poiesic/wikiscope/wiki"
)

type MockSearchService struct {
	// SearchFunc is called by Search if set.
	// If nil, Response is returned.
	SearchFunc func(ctx context.Context, query, lang string, limit int) (*wiki.SearchResponse, error)

	// Response is the canned answer used when SearchFunc is nil.
	Response *wiki.SearchResponse

	mu      sync.Mutex
	queries []string
}

func NewMockSearchService(titles ...string) *MockSearchService {
	resp := &wiki.SearchResponse{TotalHits: len(titles)}
	for _, t := range titles {
		resp.Hits = append(resp.Hits, wiki.SearchHit{Title: t})
	}
	return &MockSearchService{Response: resp}
}

func (m *MockSearchService) Search(ctx context.Context, query, lang string, limit int) (*wiki.SearchResponse, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, lang, limit)
	}
	if m.Response == nil {
		return &wiki.SearchResponse{}, nil
	}
	resp := *m.Response
	if limit > 0 && len(resp.Hits) > limit {
		resp.Hits = resp.Hits[:limit]
	}
	return &resp, nil
}

func (m *MockSearchService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// Queries returns the queries received so far.
func (m *MockSearchService) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

func (m *MockSearchService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = nil
	m.SearchFunc = nil
}
