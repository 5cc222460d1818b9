package wiki

import "context"

// MaxCategoryTitles is the largest number of titles a single category
// lookup accepts.
const MaxCategoryTitles = 50

type SearchService interface {
	// Search runs a full text query against the language edition lang.
	// Results are returned in rank order, at most limit of them.
	Search(ctx context.Context, query, lang string, limit int) (*SearchResponse, error)
}

type SummaryService interface {
	// Summary returns the plain text introduction of an article.
	// Returns ErrNoSummary when the article has no extract.
	Summary(ctx context.Context, title, lang string) (string, error)
}

type CategoryService interface {
	// Categories returns the visible categories of up to MaxCategoryTitles
	// articles, keyed by the titles as given. Titles without categories
	// may be absent from the map.
	Categories(ctx context.Context, titles []string, lang string) (map[string][]string, error)
}

type Provider interface {
	// Search returns the full text search service.
	Search() SearchService

	// Summaries returns the article summary service.
	Summaries() SummaryService

	// Categories returns the category lookup service.
	Categories() CategoryService

	// Close releases resources held by the provider and its services.
	Close() error
}
