package mediawiki

import (
	"context"
	"html"
	"net/url"
	"regexp"
	"strconv"

	"github.com/poiesic/wikiscope/wiki"
	"github.com/tidwall/gjson"
)

// SearchService implements wiki.SearchService with list=search.
type SearchService struct {
	client *client
}

var _ wiki.SearchService = (*SearchService)(nil)

// Search runs a CirrusSearch query.
func (s *SearchService) Search(ctx context.Context, query, lang string, limit int) (*wiki.SearchResponse, error) {
	if limit <= 0 {
		limit = s.client.config.SearchLimit
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("srinfo", "totalhits")
	params.Set("srprop", "snippet|wordcount")

	res, err := s.client.get(ctx, lang, params)
	if err != nil {
		return nil, err
	}

	resp := &wiki.SearchResponse{
		TotalHits: int(res.Get("query.searchinfo.totalhits").Int()),
	}
	res.Get("query.search").ForEach(func(_, hit gjson.Result) bool {
		resp.Hits = append(resp.Hits, wiki.SearchHit{
			Title:     hit.Get("title").String(),
			Snippet:   cleanSnippet(hit.Get("snippet").String()),
			PageID:    hit.Get("pageid").Int(),
			WordCount: int(hit.Get("wordcount").Int()),
		})
		return true
	})
	return resp, nil
}

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// cleanSnippet strips the searchmatch highlighting markup.
func cleanSnippet(s string) string {
	return html.UnescapeString(markupPattern.ReplaceAllString(s, ""))
}
