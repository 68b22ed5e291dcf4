package pages

import (
	"github.com/okian/flixdash/internal/domain/model"
)

// Row is the display projection of a Title. Nullable fields are pointers.
type Row struct {
	RowID       string  `json:"row_id"`
	Position    int     `json:"position"`
	ShowID      string  `json:"show_id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	Cast        string  `json:"cast"`
	Country     string  `json:"country"`
	DateAdded   *string `json:"date_added"`
	ReleaseYear *int    `json:"release_year"`
	Rating      string  `json:"rating"`
	Duration    string  `json:"duration"`
	ListedIn    *string `json:"listed_in"`
	YearAdded   *int    `json:"year_added"`
	Description string  `json:"description"`
}

// NewRow projects a Title for display.
func NewRow(t model.Title) Row {
	r := Row{
		RowID:       t.RowID.String(),
		Position:    t.Position,
		ShowID:      t.ShowID,
		Type:        t.Type,
		Title:       t.Title,
		Director:    t.Director,
		Cast:        t.Cast,
		Country:     t.Country,
		Rating:      t.Rating,
		Duration:    t.Duration,
		Description: t.Description,
	}
	if t.HasDateAdded() {
		d := t.DateAdded.Format(dateLayout)
		r.DateAdded = &d
	}
	if t.HasReleaseYear() {
		y := t.ReleaseYear
		r.ReleaseYear = &y
	}
	if t.ListedIn != "" {
		l := t.ListedIn
		r.ListedIn = &l
	}
	if t.HasYearAdded() {
		y := t.YearAdded
		r.YearAdded = &y
	}
	return r
}

// DatasetPage is the cleaned table and its row count.
type DatasetPage struct {
	Heading string        `json:"heading"`
	Count   int           `json:"count"`
	Titles  []model.Title `json:"-"`
}

// Dataset returns the full canonical table without transformation.
func Dataset(t *model.Table) DatasetPage {
	return DatasetPage{
		Heading: "Dataset Netflix",
		Count:   t.Len(),
		Titles:  t.Rows(),
	}
}

// Window returns display rows [offset, offset+limit) of the page.
// limit <= 0 returns every row from offset.
func (p DatasetPage) Window(offset, limit int) []Row {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(p.Titles) {
		return []Row{}
	}
	end := len(p.Titles)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]Row, 0, end-offset)
	for _, title := range p.Titles[offset:end] {
		out = append(out, NewRow(title))
	}
	return out
}
