package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/wikiscope/wiki"
)

type MockSummaryService struct {
	// SummaryFunc is called by Summary if set.
	// If nil, Summaries is consulted.
	SummaryFunc func(ctx context.Context, title, lang string) (string, error)

	// Summaries maps titles to extracts. Missing titles yield wiki.ErrNoSummary.
	Summaries map[string]string

	mu        sync.Mutex
	callCount int
}

func NewMockSummaryService() *MockSummaryService {
	return &MockSummaryService{Summaries: make(map[string]string)}
}

func (m *MockSummaryService) Summary(ctx context.Context, title, lang string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, title, lang)
	}
	text, ok := m.Summaries[title]
	if !ok {
		return "", fmt.Errorf("%w: %s", wiki.ErrNoSummary, title)
	}
	return text, nil
}

func (m *MockSummaryService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

func (m *MockSummaryService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.SummaryFunc = nil
}
