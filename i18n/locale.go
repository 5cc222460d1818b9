package i18n

import (
	"fmt"
	"regexp"
	"strings"
)

// Translator looks up localized strings. Implementations must be safe
// for concurrent use.
type Translator interface {
	// Lookup returns the translation for key in lang, or def when the key
	// is unknown. Placeholders of the form {name} are replaced from subs.
	Lookup(lang, key, def string, subs map[string]any) string
}

// Locale is the active language passed explicitly through compilation
// and analysis calls.
type Locale struct {
	Lang       string
	Translator Translator
}

// NewLocale returns a locale for lang backed by the built-in catalog.
func NewLocale(lang string) Locale {
	return Locale{Lang: Match(lang), Translator: Default()}
}

// T translates key, falling back to def.
func (l Locale) T(key, def string, subs map[string]any) string {
	if l.Translator == nil {
		return Substitute(def, subs)
	}
	return l.Translator.Lookup(l.language(), key, def, subs)
}

// OrKeyword returns the disjunction keyword users type in this locale.
func (l Locale) OrKeyword() string {
	if l.language() == "de" {
		return "ODER"
	}
	return "OR"
}

func (l Locale) language() string {
	if l.Lang == "" {
		return DefaultLanguage
	}
	return l.Lang
}

var placeholderPattern = regexp.MustCompile(`\{\s*([A-Za-z0-9_]+)\s*\}`)

// Substitute replaces {name} placeholders in s with values from subs.
// Unknown placeholders are left untouched.
func Substitute(s string, subs map[string]any) string {
	if len(subs) == 0 || !strings.Contains(s, "{") {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := subs[name]
		if !ok {
			return match
		}
		return fmt.Sprint(value)
	})
}
