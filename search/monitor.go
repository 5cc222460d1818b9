package search

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
// SummaryFetched may be called concurrently from pool workers.
type SearchMonitor interface {
	Start(query string)
	AfterSearch(hits, totalHits int)
	SearchFailed(err error)
	SummaryFetched(index int, title string, ok bool)
	Finish(results *Results)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) AfterSearch(_, _ int)                   {}
func (n *noopMonitor) SearchFailed(_ error)                   {}
func (n *noopMonitor) SummaryFetched(_ int, _ string, _ bool) {}
func (n *noopMonitor) Finish(_ *Results)                      {}
