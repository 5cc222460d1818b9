package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing better matches.
const DefaultLanguage = "de"

var (
	supported = []language.Tag{language.German, language.English}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the language codes with a built-in catalog.
func Supported() []string {
	return []string{"de", "en"}
}

// Match picks the supported language closest to the given preferences.
// Each preference may be a BCP 47 tag or an Accept-Language style list.
func Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	base, _ := supported[idx].Base()
	return base.String()
}
