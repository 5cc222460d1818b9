package mediawiki

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/poiesic/wikiscope/wiki"
	"github.com/tidwall/gjson"
)

// maxContinuations bounds the continue loop of a single lookup.
const maxContinuations = 100

// CategoryService implements wiki.CategoryService with prop=categories.
type CategoryService struct {
	client *client
}

var _ wiki.CategoryService = (*CategoryService)(nil)

// Categories fetches the non-hidden categories of up to 50 titles. It
// follows API continuation until every page is complete and reports
// results under the titles as requested, even when the API normalized them.
func (s *CategoryService) Categories(ctx context.Context, titles []string, lang string) (map[string][]string, error) {
	if len(titles) > wiki.MaxCategoryTitles {
		return nil, fmt.Errorf("%w: %d > %d", wiki.ErrTooManyTitles, len(titles), wiki.MaxCategoryTitles)
	}
	result := make(map[string][]string, len(titles))
	if len(titles) == 0 {
		return result, nil
	}

	seen := make(map[string]map[string]bool, len(titles))
	cont := map[string]string{}
	for i := 0; i < maxContinuations; i++ {
		params := url.Values{}
		params.Set("action", "query")
		params.Set("prop", "categories")
		params.Set("cllimit", "max")
		params.Set("clshow", "!hidden")
		params.Set("redirects", "1")
		params.Set("titles", strings.Join(titles, "|"))
		for k, v := range cont {
			params.Set(k, v)
		}

		res, err := s.client.get(ctx, lang, params)
		if err != nil {
			return nil, err
		}

		requested := make(map[string]string)
		for _, section := range []string{"query.normalized", "query.redirects"} {
			res.Get(section).ForEach(func(_, n gjson.Result) bool {
				from := n.Get("from").String()
				if orig, ok := requested[from]; ok {
					from = orig
				}
				requested[n.Get("to").String()] = from
				return true
			})
		}

		res.Get("query.pages").ForEach(func(_, page gjson.Result) bool {
			title := page.Get("title").String()
			if orig, ok := requested[title]; ok {
				title = orig
			}
			if seen[title] == nil {
				seen[title] = make(map[string]bool)
			}
			page.Get("categories").ForEach(func(_, cat gjson.Result) bool {
				name := cat.Get("title").String()
				if name != "" && !seen[title][name] {
					seen[title][name] = true
					result[title] = append(result[title], name)
				}
				return true
			})
			return true
		})

		next := res.Get("continue")
		if !next.Exists() {
			return result, nil
		}
		cont = map[string]string{}
		next.ForEach(func(k, v gjson.Result) bool {
			cont[k.String()] = v.String()
			return true
		})
		s.client.logger.Debug("following category continuation", "continue", cont)
	}
	s.client.logger.Warn("category continuation limit reached", "titles", len(titles))
	return result, nil
}
