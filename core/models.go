package core

import (
	"encoding/binary"
	"net/url"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FileType is a media type tag understood by the filetype: search operator.
type FileType string

const (
	FileTypeBitmap     FileType = "bitmap"
	FileTypeDrawing    FileType = "drawing"
	FileTypeAudio      FileType = "audio"
	FileTypeVideo      FileType = "video"
	FileTypeMultimedia FileType = "multimedia"
	FileTypeOffice     FileType = "office"
	FileTypeArchive    FileType = "archive"
	FileType3D         FileType = "3d"
)

// FileTypes lists every known file type in display order.
var FileTypes = []FileType{
	FileTypeBitmap,
	FileTypeDrawing,
	FileTypeAudio,
	FileTypeVideo,
	FileTypeMultimedia,
	FileTypeOffice,
	FileTypeArchive,
	FileType3D,
}

// Valid reports whether t is one of the known file types.
func (t FileType) Valid() bool {
	for _, known := range FileTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FieldSet is the structured query input, one slot per search option.
// Empty values contribute nothing to a compiled query.
type FieldSet struct {
	MainQuery    string
	ExactPhrase  string
	WithoutWords string // space separated
	AnyWords     string // separated by the locale's disjunction keyword
	Fuzzy        bool
	InTitle      bool
	InCategory   string // semicolon separated
	DeepCategory string // semicolon separated
	LinksTo      string
	Prefix       string
	InSource     string
	HasTemplate  string
	FileTypes    []FileType
	FileSizeMin  int64 // bytes, 0 when absent
	FileSizeMax  int64 // bytes, 0 when absent
	DateAfter    time.Time
	DateBefore   time.Time
	Namespaces   []int
}

// IsEmpty reports whether no field carries a value.
func (fs *FieldSet) IsEmpty() bool {
	return strings.TrimSpace(fs.MainQuery) == "" &&
		strings.TrimSpace(fs.ExactPhrase) == "" &&
		strings.TrimSpace(fs.WithoutWords) == "" &&
		strings.TrimSpace(fs.AnyWords) == "" &&
		strings.TrimSpace(fs.InCategory) == "" &&
		strings.TrimSpace(fs.DeepCategory) == "" &&
		strings.TrimSpace(fs.LinksTo) == "" &&
		strings.TrimSpace(fs.Prefix) == "" &&
		strings.TrimSpace(fs.InSource) == "" &&
		strings.TrimSpace(fs.HasTemplate) == "" &&
		len(fs.FileTypes) == 0 &&
		fs.FileSizeMin == 0 && fs.FileSizeMax == 0 &&
		fs.DateAfter.IsZero() && fs.DateBefore.IsZero() &&
		len(fs.Namespaces) == 0
}

// CompiledQuery is the output of query compilation. It is fully
// determined by the FieldSet and the locale it was compiled with.
type CompiledQuery struct {
	APIQuery     string       `json:"apiQuery"`
	BrowserQuery string       `json:"browserQuery"`
	Explanation  []string     `json:"explanation"`
	SearchParams SearchParams `json:"searchParams"`
	Lang         string       `json:"lang"`
}

// IsEmpty reports whether the compiled query has nothing to search for.
func (q *CompiledQuery) IsEmpty() bool {
	return q.APIQuery == ""
}

// SearchURL returns the Special:Search address carrying the structured
// parameters, or "" when the query is empty.
func (q *CompiledQuery) SearchURL() string {
	if q.IsEmpty() {
		return ""
	}
	return WikiBaseURL(q.Lang) + "/wiki/Special:Search?" + q.SearchParams.Encode()
}

// WikiBaseURL returns the site root for a language edition.
func WikiBaseURL(lang string) string {
	if lang == "" {
		lang = "de"
	}
	return "https://" + lang + ".wikipedia.org"
}

// ArticleURL returns the canonical article address for a title.
func ArticleURL(lang, title string) string {
	return WikiBaseURL(lang) + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// ResultItem is a single search hit. Title is the only field the
// graph builder consumes.
type ResultItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
	Summary string `json:"summary,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ArticleNode is one analyzed article. TotalStrength and ConnectionCount
// only ever grow while edges are computed.
type ArticleNode struct {
	Title           string   `json:"title"`
	Categories      []string `json:"categories"`
	TotalStrength   int      `json:"totalStrength"`
	ConnectionCount int      `json:"connectionCount"`
	Position        *Point   `json:"position,omitempty"` // set for visual nodes only
}

// Edge is an undirected relationship between two articles, identified by title.
type Edge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Strength int    `json:"strength"`
}

// CategoryCount is a category name with the number of nodes carrying it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GraphSummary describes the complete node set of one analysis.
type GraphSummary struct {
	ConnectedNodes int             `json:"connectedNodes"`
	EdgeCount      int             `json:"edgeCount"`
	Strongest      string          `json:"strongest,omitempty"`
	StrongestScore int             `json:"strongestScore"`
	TopCategories  []CategoryCount `json:"topCategories"`
}

// AnalysisSnapshot is the full exportable record of one analysis run.
type AnalysisSnapshot struct {
	Timestamp   time.Time     `json:"timestamp"`
	SourceQuery string        `json:"sourceQuery"`
	ResultCount int           `json:"resultCount"`
	Nodes       []ArticleNode `json:"nodes"`
	Edges       []Edge        `json:"edges"`
	Summary     GraphSummary  `json:"summary"`
}

// HistoryEntry is a persisted past query.
type HistoryEntry struct {
	ID         ID        `json:"id"`
	Name       string    `json:"name"`
	PrimaryURL string    `json:"url"`
	State      FieldSet  `json:"state"`
	Lang       string    `json:"lang"`
	Timestamp  time.Time `json:"timestamp"`
	Favorite   bool      `json:"favorite"`
}

// NewHistoryEntry builds an entry whose ID is derived from the URL, so
// recording the same search twice yields the same entry.
func NewHistoryEntry(name, primaryURL, lang string, state FieldSet, ts time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:         IDFromContent(primaryURL),
		Name:       strings.TrimSpace(name),
		PrimaryURL: primaryURL,
		State:      state,
		Lang:       lang,
		Timestamp:  ts.UTC(),
	}
}
