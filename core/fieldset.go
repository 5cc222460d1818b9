package core

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by date fields.
const DateLayout = "2006-01-02"

// Field keys of the encoded form state.
const (
	keyMainQuery    = "q"
	keyExactPhrase  = "phrase"
	keyWithoutWords = "without"
	keyAnyWords     = "any"
	keyFuzzy        = "fuzzy"
	keyInTitle      = "intitle"
	keyInCategory   = "incategory"
	keyDeepCategory = "deepcat"
	keyLinksTo      = "linksto"
	keyPrefix       = "prefix"
	keyInSource     = "insource"
	keyHasTemplate  = "hastemplate"
	keyFileType     = "filetype"
	keyFileSizeMin  = "minsize"
	keyFileSizeMax  = "maxsize"
	keyDateAfter    = "after"
	keyDateBefore   = "before"
	keyNamespace    = "ns"
)

// Values encodes the field set as form values. Only non-empty fields
// are written, so the encoding of an empty FieldSet is empty.
func (fs FieldSet) Values() url.Values {
	v := url.Values{}
	setText := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			v.Set(key, value)
		}
	}
	setText(keyMainQuery, fs.MainQuery)
	setText(keyExactPhrase, fs.ExactPhrase)
	setText(keyWithoutWords, fs.WithoutWords)
	setText(keyAnyWords, fs.AnyWords)
	if fs.Fuzzy {
		v.Set(keyFuzzy, "1")
	}
	if fs.InTitle {
		v.Set(keyInTitle, "1")
	}
	setText(keyInCategory, fs.InCategory)
	setText(keyDeepCategory, fs.DeepCategory)
	setText(keyLinksTo, fs.LinksTo)
	setText(keyPrefix, fs.Prefix)
	setText(keyInSource, fs.InSource)
	setText(keyHasTemplate, fs.HasTemplate)
	for _, ft := range fs.FileTypes {
		v.Add(keyFileType, string(ft))
	}
	if fs.FileSizeMin != 0 {
		v.Set(keyFileSizeMin, strconv.FormatInt(fs.FileSizeMin, 10))
	}
	if fs.FileSizeMax != 0 {
		v.Set(keyFileSizeMax, strconv.FormatInt(fs.FileSizeMax, 10))
	}
	if !fs.DateAfter.IsZero() {
		v.Set(keyDateAfter, fs.DateAfter.Format(DateLayout))
	}
	if !fs.DateBefore.IsZero() {
		v.Set(keyDateBefore, fs.DateBefore.Format(DateLayout))
	}
	for _, ns := range fs.Namespaces {
		v.Add(keyNamespace, strconv.Itoa(ns))
	}
	return v
}

// ParseFieldSet decodes form values produced by FieldSet.Values.
// Unknown keys are ignored; malformed numbers and dates are errors.
func ParseFieldSet(v url.Values) (FieldSet, error) {
	fs := FieldSet{
		MainQuery:    v.Get(keyMainQuery),
		ExactPhrase:  v.Get(keyExactPhrase),
		WithoutWords: v.Get(keyWithoutWords),
		AnyWords:     v.Get(keyAnyWords),
		Fuzzy:        parseFlag(v.Get(keyFuzzy)),
		InTitle:      parseFlag(v.Get(keyInTitle)),
		InCategory:   v.Get(keyInCategory),
		DeepCategory: v.Get(keyDeepCategory),
		LinksTo:      v.Get(keyLinksTo),
		Prefix:       v.Get(keyPrefix),
		InSource:     v.Get(keyInSource),
		HasTemplate:  v.Get(keyHasTemplate),
	}

	for _, raw := range v[keyFileType] {
		for _, part := range strings.Split(raw, "|") {
			if part = strings.TrimSpace(part); part != "" {
				fs.FileTypes = append(fs.FileTypes, FileType(part))
			}
		}
	}

	var err error
	if fs.FileSizeMin, err = parseSize(v.Get(keyFileSizeMin)); err != nil {
		return FieldSet{}, fmt.Errorf("%w: %s: %w", ErrInvalidFieldSet, keyFileSizeMin, err)
	}
	if fs.FileSizeMax, err = parseSize(v.Get(keyFileSizeMax)); err != nil {
		return FieldSet{}, fmt.Errorf("%w: %s: %w", ErrInvalidFieldSet, keyFileSizeMax, err)
	}
	if fs.DateAfter, err = ParseDate(v.Get(keyDateAfter)); err != nil {
		return FieldSet{}, fmt.Errorf("%w: %s: %w", ErrInvalidFieldSet, keyDateAfter, err)
	}
	if fs.DateBefore, err = ParseDate(v.Get(keyDateBefore)); err != nil {
		return FieldSet{}, fmt.Errorf("%w: %s: %w", ErrInvalidFieldSet, keyDateBefore, err)
	}

	for _, raw := range v[keyNamespace] {
		ns, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return FieldSet{}, fmt.Errorf("%w: %s: %w", ErrInvalidFieldSet, keyNamespace, err)
		}
		fs.Namespaces = append(fs.Namespaces, ns)
	}

	return fs, nil
}

// MarshalText encodes the field set as a URL query string.
func (fs FieldSet) MarshalText() ([]byte, error) {
	return []byte(fs.Values().Encode()), nil
}

// UnmarshalText decodes a URL query string produced by MarshalText.
func (fs *FieldSet) UnmarshalText(text []byte) error {
	v, err := url.ParseQuery(string(text))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFieldSet, err)
	}
	parsed, err := ParseFieldSet(v)
	if err != nil {
		return err
	}
	*fs = parsed
	return nil
}

// SortedNamespaces returns the namespace ids sorted and deduplicated.
func (fs *FieldSet) SortedNamespaces() []int {
	out := slices.Clone(fs.Namespaces)
	slices.Sort(out)
	return slices.Compact(out)
}

// ParseDate parses a YYYY-MM-DD date. The empty string is the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

// ParseFileTypes parses a list of file type tags, each of which may be
// pipe or comma separated.
func ParseFileTypes(raw ...string) ([]FileType, error) {
	var out []FileType
	for _, r := range raw {
		for _, part := range strings.FieldsFunc(r, func(c rune) bool { return c == '|' || c == ',' }) {
			ft := FileType(strings.ToLower(strings.TrimSpace(part)))
			if ft == "" {
				continue
			}
			if !ft.Valid() {
				return nil, fmt.Errorf("%w: %q", ErrUnknownFileType, part)
			}
			out = append(out, ft)
		}
	}
	return out, nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
