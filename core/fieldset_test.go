package core

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullFieldSet() FieldSet {
	return FieldSet{
		MainQuery:    "albert einstein",
		ExactPhrase:  "general relativity",
		WithoutWords: "film movie",
		AnyWords:     "physics OR chemistry",
		Fuzzy:        true,
		InTitle:      true,
		InCategory:   "Physicists;Nobel laureates",
		DeepCategory: "Science",
		LinksTo:      "Ulm",
		Prefix:       "Albert",
		InSource:     "relativity",
		HasTemplate:  "Infobox scientist",
		FileTypes:    []FileType{FileTypeBitmap, FileTypeVideo},
		FileSizeMin:  1024,
		FileSizeMax:  4096,
		DateAfter:    time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		DateBefore:   time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
		Namespaces:   []int{0, 14},
	}
}

func TestFieldSetValuesRoundTrip(t *testing.T) {
	fs := fullFieldSet()

	parsed, err := ParseFieldSet(fs.Values())
	require.NoError(t, err)
	assert.Equal(t, fs, parsed)
}

func TestFieldSetValuesOmitsEmpty(t *testing.T) {
	assert.Empty(t, FieldSet{}.Values())
	assert.Equal(t, url.Values{"q": {"cat"}}, FieldSet{MainQuery: " cat "}.Values())
}

func TestParseFieldSetErrors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{name: "bad min size", values: url.Values{"minsize": {"big"}}},
		{name: "bad max size", values: url.Values{"maxsize": {"1.5"}}},
		{name: "bad date", values: url.Values{"after": {"01/02/2020"}}},
		{name: "bad namespace", values: url.Values{"ns": {"main"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFieldSet(tt.values)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFieldSet))
		})
	}
}

func TestParseFieldSetPipeFileTypes(t *testing.T) {
	fs, err := ParseFieldSet(url.Values{"filetype": {"audio|video"}, "ignored": {"x"}})
	require.NoError(t, err)
	assert.Equal(t, []FileType{FileTypeAudio, FileTypeVideo}, fs.FileTypes)
}

func TestFieldSetTextMarshalling(t *testing.T) {
	entry := HistoryEntry{Name: "x", PrimaryURL: "u", State: fullFieldSet()}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded HistoryEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entry.State, decoded.State)
}

func TestSortedNamespaces(t *testing.T) {
	fs := FieldSet{Namespaces: []int{14, 0, 6, 0}}
	assert.Equal(t, []int{0, 6, 14}, fs.SortedNamespaces())
	assert.Equal(t, []int{14, 0, 6, 0}, fs.Namespaces)
}

func TestParseFileTypes(t *testing.T) {
	got, err := ParseFileTypes("bitmap,Audio", "3d|video")
	require.NoError(t, err)
	assert.Equal(t, []FileType{FileTypeBitmap, FileTypeAudio, FileType3D, FileTypeVideo}, got)

	_, err = ParseFileTypes("bitmap,spreadsheet")
	assert.ErrorIs(t, err, ErrUnknownFileType)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)
}
