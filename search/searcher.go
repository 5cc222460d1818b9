package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/i18n"
	"github.com/poiesic/wikiscope/wiki"
)

// SummaryUnavailable replaces summaries that could not be fetched.
const SummaryUnavailable = "Summary not available."

// Results is the outcome of one search.
type Results struct {
	Query     string
	Lang      string
	Items     []core.ResultItem
	TotalHits int

	// Failed is set when the search call itself failed; Items is then empty
	// and Err holds the cause.
	Failed bool
	Err    error
}

// IsEmpty reports whether no items were returned, failed or not.
func (r *Results) IsEmpty() bool {
	return r == nil || len(r.Items) == 0
}

// Titles returns the item titles in rank order.
func (r *Results) Titles() []string {
	if r == nil {
		return nil
	}
	titles := make([]string, len(r.Items))
	for i, item := range r.Items {
		titles[i] = item.Title
	}
	return titles
}

// Searcher runs compiled queries and collects ranked results.
type Searcher struct {
	search    wiki.SearchService
	summaries wiki.SummaryService
	pool      *ants.Pool
	limit     int
	summarize bool
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithPoolSize sets the worker pool size for summary fetches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithSummaries enables or disables summary fetching. Default is enabled.
func WithSummaries(enabled bool) Option {
	return func(s *Searcher) error {
		s.summarize = enabled
		return nil
	}
}

// WithLimit sets the maximum number of hits requested.
// Zero leaves the choice to the search service.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit < 0 {
			return fmt.Errorf("search limit must not be negative: %d", limit)
		}
		s.limit = limit
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the provider's search and
// summary services.
func NewSearcher(provider wiki.Provider, opts ...Option) (*Searcher, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		search:    provider.Search(),
		summaries: provider.Summaries(),
		pool:      pool,
		summarize: true,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Release stops the summary worker pool.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Search runs q and returns its results.
func (s *Searcher) Search(ctx context.Context, q core.CompiledQuery) (*Results, error) {
	return s.SearchWithMonitor(ctx, q, nil)
}

// SearchWithMonitor runs q, reporting progress to monitor.
func (s *Searcher) SearchWithMonitor(ctx context.Context, q core.CompiledQuery, monitor SearchMonitor) (*Results, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	lang := q.Lang
	if lang == "" {
		lang = i18n.DefaultLanguage
	}
	results := &Results{Query: q.APIQuery, Lang: lang, Items: []core.ResultItem{}}
	if q.IsEmpty() {
		monitor.Finish(results)
		return results, nil
	}

	monitor.Start(q.APIQuery)

	resp, err := s.search.Search(ctx, q.APIQuery, lang, s.limit)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("search failed", "query", q.APIQuery, "lang", lang, "err", err)
		results.Failed = true
		results.Err = fmt.Errorf("%w: %w", ErrSearchFailed, err)
		monitor.SearchFailed(results.Err)
		monitor.Finish(results)
		return results, nil
	}

	for _, hit := range resp.Hits {
		results.Items = append(results.Items, core.ResultItem{
			Title:   hit.Title,
			Snippet: hit.Snippet,
			URL:     core.ArticleURL(lang, hit.Title),
		})
	}
	results.TotalHits = max(resp.TotalHits, len(results.Items))
	monitor.AfterSearch(len(results.Items), results.TotalHits)

	if s.summarize && len(results.Items) > 0 {
		s.fetchSummaries(ctx, lang, results.Items, monitor)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	monitor.Finish(results)
	return results, nil
}

// fetchSummaries fills items[i].Summary concurrently. Each worker writes
// only its own index.
func (s *Searcher) fetchSummaries(ctx context.Context, lang string, items []core.ResultItem, monitor SearchMonitor) {
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			items[i].Summary = s.summary(ctx, lang, items[i].Title)
			monitor.SummaryFetched(i, items[i].Title, items[i].Summary != SummaryUnavailable)
		})
		if err != nil {
			s.logger.Warn("failed to submit summary fetch", "title", items[i].Title, "err", err)
			items[i].Summary = SummaryUnavailable
			monitor.SummaryFetched(i, items[i].Title, false)
			wg.Done()
		}
	}
	wg.Wait()
}

func (s *Searcher) summary(ctx context.Context, lang, title string) string {
	if ctx.Err() != nil {
		return SummaryUnavailable
	}
	text, err := s.summaries.Summary(ctx, title, lang)
	if err != nil {
		if !errors.Is(err, wiki.ErrNoSummary) {
			s.logger.Debug("summary fetch failed", "title", title, "err", err)
		}
		return SummaryUnavailable
	}
	if text == "" {
		return SummaryUnavailable
	}
	return text
}
