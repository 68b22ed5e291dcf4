// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Title kinds present in the catalog.
const (
	TypeMovie  = "Movie"
	TypeTVShow = "TV Show"
)

// Title is one cleaned catalog row. Multi-valued fields (Cast, Country,
// ListedIn) keep their raw comma-separated form.
type Title struct {
	RowID       uuid.UUID // synthetic id assigned at load time
	Position    int       // 0-based position in the cleaned table
	ShowID      string    // source identifier, "" when the column is absent
	Type        string    // "Movie" or "TV Show"
	Title       string
	Director    string
	Cast        string
	Country     string
	DateAdded   time.Time // zero when the source value was missing or unparsable
	ReleaseYear int       // 0 when missing
	Rating      string
	Duration    string // free-form, e.g. "90 min" or "2 Seasons"
	ListedIn    string // empty when missing
	YearAdded   int    // 0 iff DateAdded is zero
	Description string
}

// HasDateAdded reports whether the title carries a parsed date_added.
func (t Title) HasDateAdded() bool { return !t.DateAdded.IsZero() }

// HasYearAdded reports whether year_added is non-null.
func (t Title) HasYearAdded() bool { return t.YearAdded != 0 }

// HasReleaseYear reports whether release_year is non-null.
func (t Title) HasReleaseYear() bool { return t.ReleaseYear != 0 }

// LoadInfo describes how a Table was produced.
type LoadInfo struct {
	SourcePath         string    `json:"source_path"`
	RowsRead           int       `json:"rows_read"`
	RowsDropped        int       `json:"rows_dropped"`
	DateParseFailures  int       `json:"date_parse_failures"`
	ColumnsDropped     []string  `json:"columns_dropped"`
	LoadedAt           time.Time `json:"loaded_at"`
	LoadDurationMillis float64   `json:"load_duration_ms"`
}

// Table is the canonical, immutable catalog snapshot shared by all pages.
type Table struct {
	titles []Title
	info   LoadInfo
}

// NewTable takes ownership of titles and renumbers their positions.
// Callers must not retain or modify the slice afterwards.
func NewTable(titles []Title, info LoadInfo) *Table {
	for i := range titles {
		titles[i].Position = i
	}
	return &Table{titles: titles, info: info}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.titles)
}

// Each calls fn for every row in table order until fn returns false.
func (t *Table) Each(fn func(Title) bool) {
	if t == nil {
		return
	}
	for _, row := range t.titles {
		if !fn(row) {
			return
		}
	}
}

// Rows returns a copy of all rows in table order.
func (t *Table) Rows() []Title {
	if t == nil {
		return nil
	}
	out := make([]Title, len(t.titles))
	copy(out, t.titles)
	return out
}

// Info returns the load metadata.
func (t *Table) Info() LoadInfo {
	if t == nil {
		return LoadInfo{}
	}
	info := t.info
	info.ColumnsDropped = append([]string(nil), t.info.ColumnsDropped...)
	return info
}
