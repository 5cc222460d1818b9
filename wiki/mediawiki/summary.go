package mediawiki

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/poiesic/wikiscope/wiki"
)

// SummaryService implements wiki.SummaryService with prop=extracts.
type SummaryService struct {
	client *client
}

var _ wiki.SummaryService = (*SummaryService)(nil)

// Summary returns the plain text lead section of title.
func (s *SummaryService) Summary(ctx context.Context, title, lang string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)

	res, err := s.client.get(ctx, lang, params)
	if err != nil {
		return "", err
	}

	page := res.Get("query.pages.0")
	if !page.Exists() || page.Get("missing").Bool() || page.Get("invalid").Bool() {
		return "", fmt.Errorf("%w: %s", wiki.ErrNoSummary, title)
	}
	extract := strings.TrimSpace(page.Get("extract").String())
	if extract == "" {
		return "", fmt.Errorf("%w: %s", wiki.ErrNoSummary, title)
	}
	return extract, nil
}
