package graph

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/i18n"
	"github.com/poiesic/wikiscope/wiki"
)

const (
	DefaultBatchSize   = wiki.MaxCategoryTitles
	DefaultMaxArticles = 250
	DefaultVisualSize  = 10
)

// Canvas is the drawing area for the visual subset.
type Canvas struct {
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64
	Radius  float64
}

// DefaultCanvas returns the 800x650 canvas with the layout circle 100
// units inside the nearer edge.
func DefaultCanvas() Canvas {
	return NewCanvas(800, 650)
}

// NewCanvas returns a canvas of the given size, centered, with the
// layout circle 100 units inside the nearer edge.
func NewCanvas(width, height float64) Canvas {
	cx, cy := width/2, height/2
	return Canvas{
		Width:   width,
		Height:  height,
		CenterX: cx,
		CenterY: cy,
		Radius:  math.Max(math.Min(cx, cy)-100, 0),
	}
}

// Result is the outcome of one Build.
type Result struct {
	State State

	// Snapshot holds every node, in input order, and every edge.
	Snapshot *core.AnalysisSnapshot

	// Ranked holds every node ordered by total strength, ties in input order.
	Ranked []core.ArticleNode

	// Visual is the drawn prefix of Ranked, with positions set.
	Visual []core.ArticleNode

	// VisualEdges are the edges with both endpoints in Visual.
	VisualEdges []core.Edge

	Summary     core.GraphSummary
	Explanation []string
	Render      RenderPlan
}

// Builder computes relationship graphs. A Builder is safe for concurrent
// use; runs share no state.
type Builder struct {
	categories  wiki.CategoryService
	batchSize   int
	maxArticles int
	visualSize  int
	canvas      Canvas
	monitor     Monitor
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithBatchSize sets how many titles go into one category request.
// Default and maximum is wiki.MaxCategoryTitles.
func WithBatchSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 || size > wiki.MaxCategoryTitles {
			return fmt.Errorf("batch size must be between 1 and %d: %d", wiki.MaxCategoryTitles, size)
		}
		b.batchSize = size
		return nil
	}
}

// WithMaxArticles sets how many leading results are analyzed.
// Default is 250.
func WithMaxArticles(n int) Option {
	return func(b *Builder) error {
		if n < 1 {
			return fmt.Errorf("max articles must be positive: %d", n)
		}
		b.maxArticles = n
		return nil
	}
}

// WithVisualSize sets how many of the strongest nodes are drawn.
// Default is 10.
func WithVisualSize(n int) Option {
	return func(b *Builder) error {
		if n < 1 {
			return fmt.Errorf("visual size must be positive: %d", n)
		}
		b.visualSize = n
		return nil
	}
}

// WithCanvas sets the drawing area. Default is DefaultCanvas().
func WithCanvas(c Canvas) Option {
	return func(b *Builder) error {
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("canvas must have a positive size: %gx%g", c.Width, c.Height)
		}
		b.canvas = c
		return nil
	}
}

// WithMonitor sets the monitor notified during every Build.
func WithMonitor(m Monitor) Option {
	return func(b *Builder) error {
		if m == nil {
			m = &noopMonitor{}
		}
		b.monitor = m
		return nil
	}
}

// WithClock sets the source of snapshot timestamps.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) error {
		if now == nil {
			now = time.Now
		}
		b.now = now
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a graph builder that looks up categories with the
// given service.
func NewBuilder(categories wiki.CategoryService, opts ...Option) (*Builder, error) {
	if categories == nil {
		return nil, ErrCategoryServiceRequired
	}

	b := &Builder{
		categories:  categories,
		batchSize:   DefaultBatchSize,
		maxArticles: DefaultMaxArticles,
		visualSize:  DefaultVisualSize,
		canvas:      DefaultCanvas(),
		monitor:     &noopMonitor{},
		now:         time.Now,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Build analyzes items, the ranked results of sourceQuery.
//
// Empty input aborts the run without error. A failed category batch
// aborts it with an error wrapping ErrMetadataFetch and no partial result.
func (b *Builder) Build(ctx context.Context, sourceQuery string, items []core.ResultItem, loc i18n.Locale) (*Result, error) {
	titles := b.selectTitles(items)
	if len(titles) == 0 {
		b.logger.Debug("analysis aborted: no articles", "query", sourceQuery)
		return &Result{
			State:       StateAborted,
			Explanation: []string{loc.T("network-empty", "No results to analyze.", nil)},
		}, nil
	}

	batches := (len(titles) + b.batchSize - 1) / b.batchSize
	b.monitor.Start(sourceQuery, len(titles), batches)
	b.logger.Debug("starting analysis", "query", sourceQuery, "articles", len(titles), "batches", batches)

	categories, err := b.fetchCategories(ctx, titles, loc.Lang)
	if err != nil {
		b.logger.Error("analysis aborted", "query", sourceQuery, "err", err)
		b.monitor.Abort(err)
		return nil, err
	}

	nodes := make([]core.ArticleNode, len(titles))
	for i, title := range titles {
		nodes[i] = core.ArticleNode{
			Title:      title,
			Categories: dedupe(categories[title]),
		}
	}

	edges := score(nodes, newKeywordExtractor(loc.Lang))
	b.monitor.Scored(len(nodes), len(edges))

	ranked := rank(nodes)
	visualCount := min(b.visualSize, len(ranked))
	positions := layoutCircle(b.canvas, visualCount)

	visualTitles := make(map[string]*core.Point, visualCount)
	for i := 0; i < visualCount; i++ {
		p := positions[i]
		ranked[i].Position = &p
		visualTitles[ranked[i].Title] = &p
	}
	for i := range nodes {
		if p, ok := visualTitles[nodes[i].Title]; ok {
			pos := *p
			nodes[i].Position = &pos
		}
	}

	summary := summarize(nodes, edges, ranked)
	snapshot := &core.AnalysisSnapshot{
		Timestamp:   b.now().UTC(),
		SourceQuery: sourceQuery,
		ResultCount: len(nodes),
		Nodes:       nodes,
		Edges:       edges,
		Summary:     summary,
	}

	visual := ranked[:visualCount]
	visualEdges := filterEdges(edges, visualTitles)

	result := &Result{
		State:       StateRendered,
		Snapshot:    snapshot,
		Ranked:      ranked,
		Visual:      visual,
		VisualEdges: visualEdges,
		Summary:     summary,
		Explanation: explain(summary, len(nodes), loc),
		Render:      plan(b.canvas, visual, visualEdges, len(nodes)),
	}

	b.logger.Debug("analysis complete", "query", sourceQuery, "nodes", len(nodes), "edges", len(edges))
	b.monitor.Finish(result)
	return result, nil
}

// selectTitles drops blank and repeated titles, keeping the first
// occurrence, then truncates to the article cap.
func (b *Builder) selectTitles(items []core.ResultItem) []string {
	seen := make(map[string]bool, len(items))
	titles := make([]string, 0, min(len(items), b.maxArticles))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
		if len(titles) == b.maxArticles {
			break
		}
	}
	return titles
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
