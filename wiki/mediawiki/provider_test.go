package mediawiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/wikiscope/wiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) wiki.Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := wiki.NewConfig(
		wiki.WithAPIURL(srv.URL+"/%s/w/api.php"),
		wiki.WithRateLimit(1000, 10),
		wiki.WithRetries(3, time.Millisecond),
	)
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestNewProviderValidatesConfig(t *testing.T) {
	_, err := NewProvider(wiki.NewConfig(wiki.WithUserAgent("")))
	require.Error(t, err)

	p, err := NewProvider(nil)
	require.NoError(t, err)
	assert.NotNil(t, p.Search())
	assert.NotNil(t, p.Summaries())
	assert.NotNil(t, p.Categories())
	assert.NoError(t, p.Close())
}

func TestSearch(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/en/w/api.php", r.URL.Path)
		assert.Equal(t, "search", q.Get("list"))
		assert.Equal(t, `"big bang" -film`, q.Get("srsearch"))
		assert.Equal(t, "10", q.Get("srlimit"))
		assert.Equal(t, "totalhits", q.Get("srinfo"))
		assert.Equal(t, "2", q.Get("formatversion"))
		assert.Equal(t, wiki.DefaultUserAgent, r.Header.Get("User-Agent"))

		w.Write([]byte(`{"batchcomplete":true,"query":{"searchinfo":{"totalhits":1234},"search":[
			{"ns":0,"title":"Big Bang","pageid":4116,"wordcount":9000,"snippet":"The <span class=\"searchmatch\">Big</span> Bang &amp; more"},
			{"ns":0,"title":"Big Bang nucleosynthesis","pageid":5,"wordcount":100,"snippet":""}
		]}}`))
	})

	resp, err := p.Search().Search(context.Background(), `"big bang" -film`, "en", 10)
	require.NoError(t, err)
	assert.Equal(t, 1234, resp.TotalHits)
	require.Len(t, resp.Hits, 2)
	assert.Equal(t, "Big Bang", resp.Hits[0].Title)
	assert.Equal(t, "The Big Bang & more", resp.Hits[0].Snippet)
	assert.Equal(t, int64(4116), resp.Hits[0].PageID)
	assert.Equal(t, "Big Bang nucleosynthesis", resp.Hits[1].Title)
}

func TestSearchDefaultLimit(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("srlimit"))
		w.Write([]byte(`{"query":{"searchinfo":{"totalhits":0},"search":[]}}`))
	})

	resp, err := p.Search().Search(context.Background(), "nothing", "de", 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Hits)
	assert.Zero(t, resp.TotalHits)
}

func TestSearchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"query":{"searchinfo":{"totalhits":1},"search":[{"title":"X"}]}}`))
	})

	resp, err := p.Search().Search(context.Background(), "x", "de", 5)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "X", resp.Hits[0].Title)
}

func TestSearchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := p.Search().Search(context.Background(), "x", "de", 5)
	assert.ErrorIs(t, err, wiki.ErrUnexpectedStatus)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchAPIError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":"srsearch-text-disabled","info":"text search is disabled"}}`))
	})

	_, err := p.Search().Search(context.Background(), "x", "de", 5)
	require.ErrorIs(t, err, wiki.ErrAPI)
	assert.Contains(t, err.Error(), "srsearch-text-disabled")
}

func TestSearchMalformedBody(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := p.Search().Search(context.Background(), "x", "de", 5)
	assert.ErrorIs(t, err, wiki.ErrAPI)
}

func TestSummary(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "extracts", q.Get("prop"))
		assert.Equal(t, "1", q.Get("exintro"))
		assert.Equal(t, "1", q.Get("explaintext"))
		switch q.Get("titles") {
		case "Katze":
			w.Write([]byte(`{"query":{"pages":[{"pageid":1,"title":"Hauskatze","extract":"  Die Hauskatze ist ein Haustier.\n"}]}}`))
		case "Leer":
			w.Write([]byte(`{"query":{"pages":[{"pageid":2,"title":"Leer","extract":""}]}}`))
		default:
			w.Write([]byte(`{"query":{"pages":[{"title":"Nope","missing":true}]}}`))
		}
	})

	text, err := p.Summaries().Summary(context.Background(), "Katze", "de")
	require.NoError(t, err)
	assert.Equal(t, "Die Hauskatze ist ein Haustier.", text)

	_, err = p.Summaries().Summary(context.Background(), "Leer", "de")
	assert.ErrorIs(t, err, wiki.ErrNoSummary)

	_, err = p.Summaries().Summary(context.Background(), "Nope", "de")
	assert.ErrorIs(t, err, wiki.ErrNoSummary)
}

func TestCategoriesFollowsContinuation(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "!hidden", q.Get("clshow"))
		assert.Equal(t, "albert einstein|Ulm", q.Get("titles"))
		calls.Add(1)
		if q.Get("clcontinue") == "" {
			w.Write([]byte(`{"continue":{"clcontinue":"736|Physiker","continue":"||"},"query":{
				"normalized":[{"fromencoded":false,"from":"albert einstein","to":"Albert einstein"}],
				"redirects":[{"from":"Albert einstein","to":"Albert Einstein"}],
				"pages":[
					{"pageid":736,"title":"Albert Einstein","categories":[{"ns":14,"title":"Kategorie:Nobelpreisträger"}]},
					{"pageid":9,"title":"Ulm","categories":[{"ns":14,"title":"Kategorie:Ort"}]}
				]}}`))
			return
		}
		assert.Equal(t, "736|Physiker", q.Get("clcontinue"))
		assert.Equal(t, "||", q.Get("continue"))
		w.Write([]byte(`{"batchcomplete":true,"query":{
			"normalized":[{"from":"albert einstein","to":"Albert einstein"}],
			"redirects":[{"from":"Albert einstein","to":"Albert Einstein"}],
			"pages":[
				{"pageid":736,"title":"Albert Einstein","categories":[{"ns":14,"title":"Kategorie:Physiker"},{"ns":14,"title":"Kategorie:Nobelpreisträger"}]},
				{"pageid":9,"title":"Ulm"}
			]}}`))
	})

	cats, err := p.Categories().Categories(context.Background(), []string{"albert einstein", "Ulm"}, "de")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, map[string][]string{
		"albert einstein": {"Kategorie:Nobelpreisträger", "Kategorie:Physiker"},
		"Ulm":             {"Kategorie:Ort"},
	}, cats)
}

func TestCategoriesLimits(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	cats, err := p.Categories().Categories(context.Background(), nil, "de")
	require.NoError(t, err)
	assert.Empty(t, cats)

	titles := strings.Split(strings.Repeat("x,", wiki.MaxCategoryTitles+1), ",")[:wiki.MaxCategoryTitles+1]
	_, err = p.Categories().Categories(context.Background(), titles, "de")
	assert.ErrorIs(t, err, wiki.ErrTooManyTitles)
}

func TestRequestHonoursContext(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Search().Search(ctx, "x", "de", 5)
	assert.ErrorIs(t, err, context.Canceled)
}
