package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/wikiscope/core"
)

var csvHeader = []string{"name", "url", "timestamp"}

// HistoryFileName returns the conventional file name of a history export
// made at t. ext is "json" or "csv".
func HistoryFileName(t time.Time, ext string) string {
	return fmt.Sprintf("wiki-search-history-%s.%s", t.Format(time.DateOnly), ext)
}

// WriteHistoryJSON writes entries as an indented JSON array.
func WriteHistoryJSON(w io.Writer, entries []*core.HistoryEntry) error {
	if entries == nil {
		entries = []*core.HistoryEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteHistoryCSV writes one name,url,timestamp row per entry after a
// header row. Timestamps are RFC 3339 in UTC.
func WriteHistoryCSV(w io.Writer, entries []*core.HistoryEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{e.Name, e.PrimaryURL, e.Timestamp.UTC().Format(time.RFC3339)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadHistoryJSON reads entries written by WriteHistoryJSON. Every entry
// must be valid; IDs are recomputed from the URLs.
func ReadHistoryJSON(r io.Reader) ([]*core.HistoryEntry, error) {
	var entries []*core.HistoryEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHistoryFile, err)
	}
	for i, e := range entries {
		if err := core.ValidateHistoryEntry(e); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidHistoryFile, i, err)
		}
		e.ID = core.IDFromContent(e.PrimaryURL)
	}
	return entries, nil
}
