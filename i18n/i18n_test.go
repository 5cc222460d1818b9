package i18n

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		in   string
		subs map[string]any
		want string
	}{
		{name: "no placeholders", in: "plain", subs: map[string]any{"a": 1}, want: "plain"},
		{name: "single", in: "hello {name}", subs: map[string]any{"name": "world"}, want: "hello world"},
		{name: "repeated", in: "{x}+{x}", subs: map[string]any{"x": 2}, want: "2+2"},
		{name: "spaces in braces", in: "{ total } items", subs: map[string]any{"total": 7}, want: "7 items"},
		{name: "unknown kept", in: "{missing}", subs: map[string]any{"x": 1}, want: "{missing}"},
		{name: "nil subs", in: "{x}", subs: nil, want: "{x}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.in, tt.subs))
		})
	}
}

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog()
	c.Set("en", map[string]string{"greet": "Hi {who}"})
	c.Set("en", map[string]string{"bye": "Bye"})

	assert.Equal(t, "Hi Ada", c.Lookup("en", "greet", "x", map[string]any{"who": "Ada"}))
	assert.Equal(t, "Bye", c.Lookup("en", "bye", "", nil))
	assert.Equal(t, "fallback Ada", c.Lookup("en", "nope", "fallback {who}", map[string]any{"who": "Ada"}))
	assert.Equal(t, "fallback", c.Lookup("fr", "greet", "fallback", nil))
}

func TestCatalogConcurrentAccess(t *testing.T) {
	c := NewCatalog()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set("en", map[string]string{"k": "v"})
		}()
		go func() {
			defer wg.Done()
			_ = c.Lookup("en", "k", "d", nil)
		}()
	}
	wg.Wait()
	assert.Equal(t, "v", c.Lookup("en", "k", "d", nil))
}

func TestDefaultCatalogHasBothLanguages(t *testing.T) {
	for key := range enMessages {
		_, ok := deMessages[key]
		assert.True(t, ok, "missing German message for %s", key)
	}
	assert.Len(t, deMessages, len(enMessages))

	de := NewLocale("de")
	en := NewLocale("en")
	assert.Equal(t, "Zentralster Artikel: X", de.T("network-explanation-central", "", map[string]any{"title": "X"}))
	assert.Equal(t, "Most central article: X", en.T("network-explanation-central", "", map[string]any{"title": "X"}))
}

func TestLocaleWithoutTranslator(t *testing.T) {
	l := Locale{Lang: "en"}
	assert.Equal(t, "default 3", l.T("any", "default {n}", map[string]any{"n": 3}))
	assert.Equal(t, "OR", l.OrKeyword())
	assert.Equal(t, "ODER", Locale{}.OrKeyword())
}

func TestMatch(t *testing.T) {
	tests := []struct {
		prefs []string
		want  string
	}{
		{prefs: nil, want: "de"},
		{prefs: []string{""}, want: "de"},
		{prefs: []string{"en"}, want: "en"},
		{prefs: []string{"en-GB"}, want: "en"},
		{prefs: []string{"de-AT"}, want: "de"},
		{prefs: []string{"fr-FR,en;q=0.8"}, want: "en"},
		{prefs: []string{"ja"}, want: "de"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.prefs...), "prefs %v", tt.prefs)
	}
}

type stubTranslator struct {
	calls []string
}

func (s *stubTranslator) Lookup(lang, key, def string, subs map[string]any) string {
	s.calls = append(s.calls, lang+":"+key)
	return key
}

func TestLocaleUsesInjectedTranslator(t *testing.T) {
	stub := &stubTranslator{}
	l := Locale{Lang: "en", Translator: stub}
	assert.Equal(t, "k", l.T("k", "d", nil))
	assert.Equal(t, []string{"en:k"}, stub.calls)

	l = Locale{Translator: stub}
	l.T("k2", "", nil)
	assert.Equal(t, "de:k2", stub.calls[1])
}
