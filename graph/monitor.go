package graph

import (
	"fmt"
	"io"

	"github.com/poiesic/wikiscope/i18n"
)

// Monitor provides hooks to observe an analysis run.
type Monitor interface {
	Start(query string, articles, batches int)
	BatchFetched(batch, batches, fetched, total int)
	Scored(nodes, edges int)
	Abort(err error)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _, _ int)    {}
func (n *noopMonitor) BatchFetched(_, _, _, _ int) {}
func (n *noopMonitor) Scored(_, _ int)             {}
func (n *noopMonitor) Abort(_ error)               {}
func (n *noopMonitor) Finish(_ *Result)            {}

type progressMonitor struct {
	writer  io.Writer
	loc     i18n.Locale
	tracker *ProgressTracker
}

// NewProgressMonitor returns a Monitor that prints batch progress to w.
func NewProgressMonitor(w io.Writer, loc i18n.Locale) Monitor {
	return &progressMonitor{writer: w, loc: loc}
}

func (m *progressMonitor) Start(_ string, articles, _ int) {
	fmt.Fprintln(m.writer, m.loc.T("network-loading", "Analysis running...", nil))
	format := func(current, total int) string {
		return m.loc.T("network-loading-progress", "Loading data... {current}/{total}",
			map[string]any{"current": current, "total": total})
	}
	m.tracker = NewProgressTracker(m.writer, format, articles, 1)
	m.tracker.Start()
}

func (m *progressMonitor) BatchFetched(_, _, fetched, _ int) {
	if m.tracker != nil {
		m.tracker.Update(fetched)
	}
}

func (m *progressMonitor) Scored(_, _ int) {
	if m.tracker != nil {
		m.tracker.Finish()
	}
}

func (m *progressMonitor) Abort(_ error) {
	if m.tracker != nil {
		m.tracker.Abandon()
	}
}

func (m *progressMonitor) Finish(_ *Result) {}
