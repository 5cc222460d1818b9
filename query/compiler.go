package query

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/i18n"
)

// Structured parameter keys understood by Special:Search.
const (
	ParamSearch      = "search"
	ParamInTitle     = "intitle"
	ParamInCategory  = "incategory"
	ParamDeepCat     = "deepcat"
	ParamLinksTo     = "linksto"
	ParamPrefix      = "prefix"
	ParamInSource    = "insource"
	ParamHasTemplate = "hastemplate"
	ParamFileType    = "filetype"
	ParamDateAfter   = "dateafter"
	ParamDateBefore  = "datebefore"
)

// FuzzyMarker is appended to the main term of the API query when fuzzy
// matching is requested.
const FuzzyMarker = "~"

// Compiler turns FieldSets into CompiledQuery values. It holds no
// mutable state and is safe for concurrent use.
type Compiler struct {
	logger *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewCompiler creates a new compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile builds the query representations for fs in the given locale.
func (c *Compiler) Compile(fs core.FieldSet, loc i18n.Locale) core.CompiledQuery {
	b := &builder{loc: loc}

	b.mainQuery(strings.TrimSpace(fs.MainQuery), fs.Fuzzy, fs.InTitle)
	b.exactPhrase(strings.TrimSpace(fs.ExactPhrase))
	b.withoutWords(strings.TrimSpace(fs.WithoutWords))
	b.anyWords(strings.TrimSpace(fs.AnyWords))
	b.categories(ParamInCategory, fs.InCategory)
	b.categories(ParamDeepCat, fs.DeepCategory)
	b.scoped(ParamLinksTo, fs.LinksTo)
	b.scoped(ParamPrefix, fs.Prefix)
	b.scoped(ParamInSource, fs.InSource)
	b.scoped(ParamHasTemplate, fs.HasTemplate)
	b.fileTypes(fs.FileTypes)
	b.fileSize(fs.FileSizeMin, fs.FileSizeMax)
	b.dates(fs)
	b.namespaces(fs.SortedNamespaces())

	q := core.CompiledQuery{
		APIQuery:     strings.TrimSpace(strings.Join(b.api, " ")),
		BrowserQuery: strings.TrimSpace(strings.Join(b.browser, " ")),
		Explanation:  b.explanation,
		SearchParams: b.params,
		Lang:         loc.Lang,
	}
	if q.Lang == "" {
		q.Lang = i18n.DefaultLanguage
	}
	c.logger.Debug("compiled query", "api", q.APIQuery, "browser", q.BrowserQuery, "params", q.SearchParams.Len())
	return q
}

type builder struct {
	loc         i18n.Locale
	api         []string
	browser     []string
	explanation []string
	params      core.SearchParams
}

func (b *builder) explain(key string, subs map[string]any) {
	b.explanation = append(b.explanation, b.loc.T(key, defaultExplanations[key], subs))
}

func (b *builder) mainQuery(main string, fuzzy, inTitle bool) {
	if main == "" {
		return
	}
	subs := map[string]any{"mainQuery": main}

	term := main
	if fuzzy {
		term += FuzzyMarker
		b.explain("explanation-fuzzy-applied", subs)
	}
	if !inTitle && needsQuotes(term) && !isQuoted(term) {
		term = `"` + term + `"`
	}

	if inTitle {
		b.params.Set(ParamInTitle, main)
		b.api = append(b.api, "intitle:"+term)
		b.explain("explanation-intitle", subs)
	} else {
		b.params.Set(ParamSearch, main)
		b.api = append(b.api, term)
		b.explain("explanation-main-query", subs)
	}
	b.browser = append(b.browser, main)
}

func (b *builder) exactPhrase(phrase string) {
	if phrase == "" {
		return
	}
	quoted := `"` + phrase + `"`
	b.params.Add(ParamSearch, quoted)
	b.api = append(b.api, quoted)
	b.browser = append(b.browser, quoted)
	b.explain("explanation-exact-phrase", map[string]any{"exactPhrase": phrase})
}

func (b *builder) withoutWords(without string) {
	fields := strings.Fields(without)
	if len(fields) == 0 {
		return
	}
	for i, w := range fields {
		fields[i] = "-" + w
	}
	words := strings.Join(fields, " ")
	b.params.Add(ParamSearch, words)
	b.api = append(b.api, words)
	b.browser = append(b.browser, words)
	b.explain("explanation-without-words", map[string]any{"withoutWords": without})
}

var (
	splitOR   = regexp.MustCompile(`(?i)(?:^|\s)OR(?:\s|$)`)
	splitODER = regexp.MustCompile(`(?i)(?:^|\s)ODER(?:\s|$)`)
)

func (b *builder) anyWords(words string) {
	if words == "" {
		return
	}
	keyword := b.loc.OrKeyword()
	splitter := splitOR
	if keyword == "ODER" {
		splitter = splitODER
	}

	var terms []string
	for _, t := range splitter.Split(words, -1) {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return
	}

	apiTerm := strings.Join(terms, " OR ")
	browserTerm := strings.Join(terms, " "+keyword+" ")
	if len(terms) > 1 {
		apiTerm = "(" + apiTerm + ")"
		browserTerm = "(" + browserTerm + ")"
	}
	b.params.Add(ParamSearch, apiTerm)
	b.api = append(b.api, apiTerm)
	b.browser = append(b.browser, browserTerm)
	b.explain("explanation-any-words", map[string]any{"anyWords": words})
}

// categories emits one scoped term and one parameter per ;-separated entry.
func (b *builder) categories(key, list string) {
	for _, cat := range strings.Split(list, ";") {
		cat = strings.TrimSpace(cat)
		if cat == "" {
			continue
		}
		b.params.Add(key, cat)
		b.api = append(b.api, key+`:"`+cat+`"`)
		b.explain("explanation-"+key, map[string]any{key: cat})
	}
}

func (b *builder) scoped(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	b.params.Set(key, value)
	b.api = append(b.api, key+`:"`+value+`"`)
	b.explain("explanation-"+key, map[string]any{key: value})
}

func (b *builder) fileTypes(types []core.FileType) {
	seen := make(map[core.FileType]bool, len(types))
	var tags []string
	for _, ft := range types {
		if ft == "" || seen[ft] {
			continue
		}
		seen[ft] = true
		tags = append(tags, string(ft))
	}
	if len(tags) == 0 {
		return
	}
	joined := strings.Join(tags, "|")
	b.params.Set(ParamFileType, joined)
	b.api = append(b.api, "filetype:"+joined)
	b.explain("explanation-filetype", map[string]any{"fileType": joined})
}

func (b *builder) fileSize(minSize, maxSize int64) {
	if minSize > 0 {
		term := "filesize:>=" + strconv.FormatInt(minSize, 10)
		b.params.Add(ParamSearch, term)
		b.api = append(b.api, term)
		b.explain("explanation-filesize-min", map[string]any{"fileSizeMin": minSize})
	}
	if maxSize > 0 {
		term := "filesize:<=" + strconv.FormatInt(maxSize, 10)
		b.params.Add(ParamSearch, term)
		b.api = append(b.api, term)
		b.explain("explanation-filesize-max", map[string]any{"fileSizeMax": maxSize})
	}
}

func (b *builder) dates(fs core.FieldSet) {
	if !fs.DateAfter.IsZero() {
		d := fs.DateAfter.Format(core.DateLayout)
		b.params.Set(ParamDateAfter, d)
		b.api = append(b.api, ParamDateAfter+":"+d)
		b.explain("explanation-dateafter", map[string]any{ParamDateAfter: d})
	}
	if !fs.DateBefore.IsZero() {
		d := fs.DateBefore.Format(core.DateLayout)
		b.params.Set(ParamDateBefore, d)
		b.api = append(b.api, ParamDateBefore+":"+d)
		b.explain("explanation-datebefore", map[string]any{ParamDateBefore: d})
	}
}

func (b *builder) namespaces(ids []int) {
	var names []string
	for _, ns := range ids {
		if ns < 0 {
			continue
		}
		id := strconv.Itoa(ns)
		b.params.Add("ns"+id, "1")
		names = append(names, id)
	}
	if len(names) > 0 {
		b.explain("explanation-namespaces", map[string]any{"namespaces": strings.Join(names, ", ")})
	}
}

func needsQuotes(term string) bool {
	return strings.ContainsFunc(term, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')'
	})
}

func isQuoted(term string) bool {
	return len(term) >= 2 && strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`)
}

// English fallbacks used when the locale's translator has no entry.
var defaultExplanations = map[string]string{
	"explanation-fuzzy-applied": "Fuzzy search for \"{mainQuery}\".",
	"explanation-main-query":    "Articles containing \"{mainQuery}\".",
	"explanation-intitle":       "\"{mainQuery}\" in titles only.",
	"explanation-exact-phrase":  "Exact phrase \"{exactPhrase}\".",
	"explanation-without-words": "Excluding: {withoutWords}.",
	"explanation-any-words":     "At least one of: {anyWords}.",
	"explanation-incategory":    "In category \"{incategory}\".",
	"explanation-deepcat":       "In category tree \"{deepcat}\".",
	"explanation-linksto":       "Linking to \"{linksto}\".",
	"explanation-prefix":        "Title prefix \"{prefix}\".",
	"explanation-insource":      "Source text contains \"{insource}\".",
	"explanation-hastemplate":   "Uses template \"{hastemplate}\".",
	"explanation-filetype":      "File types: {fileType}.",
	"explanation-filesize-min":  "At least {fileSizeMin} bytes.",
	"explanation-filesize-max":  "At most {fileSizeMax} bytes.",
	"explanation-dateafter":     "After {dateafter}.",
	"explanation-datebefore":    "Before {datebefore}.",
	"explanation-namespaces":    "Namespaces: {namespaces}.",
}
