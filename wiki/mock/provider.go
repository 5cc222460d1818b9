package mock

import "github.com/poiesic/wikiscope/wiki"

type MockProvider struct {
	search     *MockSearchService
	summaries  *MockSummaryService
	categories *MockCategoryService
	closed     bool
}

func NewMockProvider() wiki.Provider {
	return &MockProvider{
		search:     NewMockSearchService(),
		summaries:  NewMockSummaryService(),
		categories: NewMockCategoryService(nil),
	}
}

func NewMockProviderWithServices(search *MockSearchService, summaries *MockSummaryService, categories *MockCategoryService) wiki.Provider {
	return &MockProvider{
		search:     search,
		summaries:  summaries,
		categories: categories,
	}
}

func (p *MockProvider) Search() wiki.SearchService {
	return p.search
}

func (p *MockProvider) Summaries() wiki.SummaryService {
	return p.summaries
}

func (p *MockProvider) Categories() wiki.CategoryService {
	return p.categories
}

func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

func (p *MockProvider) Closed() bool {
	return p.closed
}

func (p *MockProvider) GetMockSearch() *MockSearchService {
	return p.search
}

func (p *MockProvider) GetMockSummaries() *MockSummaryService {
	return p.summaries
}

func (p *MockProvider) GetMockCategories() *MockCategoryService {
	return p.categories
}
