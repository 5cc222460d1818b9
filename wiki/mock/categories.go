package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/wikiscope/wiki"
)

type MockCategoryService struct {
	// CategoriesFunc is called by Categories if set.
	// If nil, Fixtures is consulted.
	CategoriesFunc func(ctx context.Context, titles []string, lang string) (map[string][]string, error)

	// Fixtures maps titles to their categories.
	Fixtures map[string][]string

	mu      sync.Mutex
	batches [][]string
}

func NewMockCategoryService(fixtures map[string][]string) *MockCategoryService {
	if fixtures == nil {
		fixtures = make(map[string][]string)
	}
	return &MockCategoryService{Fixtures: fixtures}
}

func (m *MockCategoryService) Categories(ctx context.Context, titles []string, lang string) (map[string][]string, error) {
	m.mu.Lock()
	m.batches = append(m.batches, append([]string(nil), titles...))
	m.mu.Unlock()

	if len(titles) > wiki.MaxCategoryTitles {
		return nil, fmt.Errorf("%w: %d", wiki.ErrTooManyTitles, len(titles))
	}
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx, titles, lang)
	}
	out := make(map[string][]string, len(titles))
	for _, t := range titles {
		if cats, ok := m.Fixtures[t]; ok {
			out[t] = append([]string(nil), cats...)
		}
	}
	return out, nil
}

func (m *MockCategoryService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.batches)
}

// Batches returns the title batches received so far, in call order.
func (m *MockCategoryService) Batches() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.batches))
	copy(out, m.batches)
	return out
}

func (m *MockCategoryService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = nil
	m.CategoriesFunc = nil
}
