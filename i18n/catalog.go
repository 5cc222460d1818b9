package i18n

import "sync"

// Catalog is an in-memory Translator keyed by language then message key.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
}

var _ Translator = (*Catalog)(nil)

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{messages: make(map[string]map[string]string)}
}

// Set stores a set of messages for lang, merging with existing ones.
func (c *Catalog) Set(lang string, messages map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.messages[lang]
	if !ok {
		m = make(map[string]string, len(messages))
		c.messages[lang] = m
	}
	for k, v := range messages {
		m[k] = v
	}
}

// Lookup implements Translator.
func (c *Catalog) Lookup(lang, key, def string, subs map[string]any) string {
	c.mu.RLock()
	msg, ok := c.messages[lang][key]
	c.mu.RUnlock()
	if !ok || msg == "" {
		msg = def
	}
	return Substitute(msg, subs)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the shared catalog holding the built-in German and
// English messages.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog()
		defaultCatalog.Set("de", deMessages)
		defaultCatalog.Set("en", enMessages)
	})
	return defaultCatalog
}

var enMessages = map[string]string{
	"explanation-heading":                "How your query is built:",
	"explanation-fuzzy-applied":          "Fuzzy search is applied to \"{mainQuery}\" (~), so similar spellings match too.",
	"explanation-main-query":             "Searches for articles containing \"{mainQuery}\".",
	"explanation-intitle":                "Searches for \"{mainQuery}\" in article titles only.",
	"explanation-exact-phrase":           "Finds the exact phrase \"{exactPhrase}\".",
	"explanation-without-words":          "Excludes articles containing: {withoutWords}.",
	"explanation-any-words":              "Finds articles containing at least one of: {anyWords}.",
	"explanation-incategory":             "Restricts results to the category \"{incategory}\".",
	"explanation-deepcat":                "Restricts results to the category \"{deepcat}\" and its subcategories.",
	"explanation-linksto":                "Finds pages that link to \"{linksto}\".",
	"explanation-prefix":                 "Finds pages whose title starts with \"{prefix}\".",
	"explanation-insource":               "Searches the source text for \"{insource}\".",
	"explanation-hastemplate":            "Finds pages using the template \"{hastemplate}\".",
	"explanation-filetype":               "Restricts files to the types: {fileType}.",
	"explanation-filesize-min":           "Files of at least {fileSizeMin} bytes.",
	"explanation-filesize-max":           "Files of at most {fileSizeMax} bytes.",
	"explanation-dateafter":              "Pages edited after {dateafter}.",
	"explanation-datebefore":             "Pages edited before {datebefore}.",
	"explanation-namespaces":             "Searches in the namespaces: {namespaces}.",
	"network-loading":                    "Analysis running...",
	"network-loading-progress":           "Loading data... {current}/{total}",
	"network-explanation-intro":          "{total} articles analyzed, {connected} of them connected by {edges} relationships.",
	"network-explanation-interpretation": "Articles are connected when they share categories or significant title words. Shared title words count double.",
	"network-explanation-central":        "Most central article: {title}",
	"network-explanation-categories":     "Most frequent categories: {categories}",
	"network-explanation-note":           "Only the ten strongest articles are drawn; the export contains the complete analysis.",
	"network-empty":                      "No results to analyze.",
	"search-no-results":                  "No results found.",
	"search-failed":                      "The search could not be completed.",
	"summary-unavailable":                "Summary not available.",
}

var deMessages = map[string]string{
	"explanation-heading":                "So wird deine Suche aufgebaut:",
	"explanation-fuzzy-applied":          "Unscharfe Suche für \"{mainQuery}\" (~): ähnliche Schreibweisen werden mitgefunden.",
	"explanation-main-query":             "Sucht nach Artikeln, die \"{mainQuery}\" enthalten.",
	"explanation-intitle":                "Sucht \"{mainQuery}\" nur in Artikeltiteln.",
	"explanation-exact-phrase":           "Findet die exakte Wortgruppe \"{exactPhrase}\".",
	"explanation-without-words":          "Schließt Artikel aus, die folgende Wörter enthalten: {withoutWords}.",
	"explanation-any-words":              "Findet Artikel mit mindestens einem dieser Begriffe: {anyWords}.",
	"explanation-incategory":             "Beschränkt die Ergebnisse auf die Kategorie \"{incategory}\".",
	"explanation-deepcat":                "Beschränkt die Ergebnisse auf die Kategorie \"{deepcat}\" samt Unterkategorien.",
	"explanation-linksto":                "Findet Seiten, die auf \"{linksto}\" verlinken.",
	"explanation-prefix":                 "Findet Seiten, deren Titel mit \"{prefix}\" beginnt.",
	"explanation-insource":               "Durchsucht den Quelltext nach \"{insource}\".",
	"explanation-hastemplate":            "Findet Seiten mit der Vorlage \"{hastemplate}\".",
	"explanation-filetype":               "Beschränkt Dateien auf die Typen: {fileType}.",
	"explanation-filesize-min":           "Dateien mit mindestens {fileSizeMin} Bytes.",
	"explanation-filesize-max":           "Dateien mit höchstens {fileSizeMax} Bytes.",
	"explanation-dateafter":              "Seiten, die nach dem {dateafter} bearbeitet wurden.",
	"explanation-datebefore":             "Seiten, die vor dem {datebefore} bearbeitet wurden.",
	"explanation-namespaces":             "Sucht in den Namensräumen: {namespaces}.",
	"network-loading":                    "Analyse läuft...",
	"network-loading-progress":           "Lade Daten... {current}/{total}",
	"network-explanation-intro":          "{total} Artikel analysiert, davon {connected} über {edges} Beziehungen verbunden.",
	"network-explanation-interpretation": "Artikel sind verbunden, wenn sie Kategorien oder markante Titelwörter teilen. Gemeinsame Titelwörter zählen doppelt.",
	"network-explanation-central":        "Zentralster Artikel: {title}",
	"network-explanation-categories":     "Häufigste Kategorien: {categories}",
	"network-explanation-note":           "Gezeichnet werden nur die zehn stärksten Artikel; der Export enthält die vollständige Analyse.",
	"network-empty":                      "Keine Ergebnisse zum Analysieren.",
	"search-no-results":                  "Keine Ergebnisse gefunden.",
	"search-failed":                      "Die Suche konnte nicht durchgeführt werden.",
	"summary-unavailable":                "Keine Zusammenfassung verfügbar.",
}
