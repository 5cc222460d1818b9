package wiki

// SearchHit is one ranked search result.
type SearchHit struct {
	Title     string
	Snippet   string
	PageID    int64
	WordCount int
}

// SearchResponse is the result of a full text search.
type SearchResponse struct {
	Hits      []SearchHit
	TotalHits int
}
