// Package export renders page aggregates as an xlsx workbook.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/okian/flixdash/internal/domain/pages"
	"github.com/okian/flixdash/internal/domain/types"
)

// ContentType is the media type of Write output.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrNoSheets is returned when there is nothing to write.
var ErrNoSheets = errors.New("export: no sheets")

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// Write builds the workbook in memory and streams it to w.
func Write(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(first, sh.Name); err != nil {
				return fmt.Errorf("export: sheet %q: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("export: sheet %q: %w", sh.Name, err)
		}
		if err := writeSheet(f, sh); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sh Sheet) error {
	header := make([]interface{}, len(sh.Header))
	for i, h := range sh.Header {
		header[i] = h
	}
	rows := append([][]interface{}{header}, sh.Rows...)
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return fmt.Errorf("export: sheet %q: %w", sh.Name, err)
		}
		if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
			return fmt.Errorf("export: sheet %q row %d: %w", sh.Name, r+1, err)
		}
	}
	return nil
}

// Counts renders a ranked frequency list.
func Counts(name, label string, data []types.Count) Sheet {
	sh := Sheet{Name: name, Header: []string{"rank", label, "count"}}
	for _, c := range data {
		sh.Rows = append(sh.Rows, []interface{}{c.Rank, c.Label, c.Count})
	}
	return sh
}

// Years renders per-year counts.
func Years(name, label string, data []types.YearCount) Sheet {
	sh := Sheet{Name: name, Header: []string{label, "count"}}
	for _, y := range data {
		sh.Rows = append(sh.Rows, []interface{}{y.Year, y.Count})
	}
	return sh
}

// Matrix renders a cross tabulation with row labels in the first column.
func Matrix(name, corner string, m types.Matrix) Sheet {
	sh := Sheet{Name: name, Header: append([]string{corner}, m.Columns...)}
	for i, label := range m.Rows {
		row := make([]interface{}, 0, len(m.Columns)+1)
		row = append(row, label)
		for _, v := range m.Cells[i] {
			row = append(row, v)
		}
		sh.Rows = append(sh.Rows, row)
	}
	return sh
}

// DatasetSheets renders the cleaned table.
func DatasetSheets(p pages.DatasetPage) []Sheet {
	sh := Sheet{Name: "dataset", Header: []string{
		"row_id", "show_id", "type", "title", "director", "cast", "country", "date_added",
		"release_year", "rating", "duration", "listed_in", "year_added", "description",
	}}
	for _, r := range p.Window(0, 0) {
		sh.Rows = append(sh.Rows, []interface{}{
			r.RowID, r.ShowID, r.Type, r.Title, r.Director, r.Cast, r.Country, deref(r.DateAdded),
			derefInt(r.ReleaseYear), r.Rating, r.Duration, deref(r.ListedIn), derefInt(r.YearAdded),
			r.Description,
		})
	}
	return []Sheet{sh}
}

// EDASheets renders every EDA summary.
func EDASheets(p pages.EDAPage) []Sheet {
	old := Sheet{Name: "eda_old_content", Header: []string{"title", "release_year", "date_added"}}
	for _, o := range p.OldContentSample {
		old.Rows = append(old.Rows, []interface{}{o.Title, o.ReleaseYear, o.DateAdded})
	}
	return []Sheet{
		Counts("eda_types", "type", p.TypeCounts),
		Counts("eda_countries", "country", p.TopCountries),
		Counts("eda_genres", "genre", p.TopGenres),
		Counts("eda_directors", "director", p.TopDirectors),
		Counts("eda_cast", "cast", p.TopCast),
		Years("eda_release_years", "release_year", p.RecentReleaseYears),
		old,
	}
}

// VisualizationSheets renders the data behind every chart.
func VisualizationSheets(p pages.VisualizationPage) []Sheet {
	return []Sheet{
		Counts("viz_types", "type", p.TypeDistribution.Data),
		Counts("viz_genres", "genre", p.TopGenres.Data),
		Counts("viz_countries", "country", p.TopCountries.Data),
		Counts("viz_directors", "director", p.TopDirectors.Data),
		Counts("viz_cast", "cast", p.TopCast.Data),
		Years("viz_release_years", "release_year", p.TopReleaseYears.Data),
		Years("viz_yearly_added", "year_added", p.YearlyAdded.Data),
		Matrix("viz_release_rating", "release_year", p.ReleaseByRating.Data),
		Matrix("viz_genre_type", "type", p.GenreByType.Data),
		Matrix("viz_type_release", "release_year", p.TypeByReleaseYear.Data),
	}
}

// RecencySheets renders the recency rankings.
func RecencySheets(p pages.RecencyPage) []Sheet {
	window := Sheet{Name: "rfm_window", Header: []string{"max_year_added", "window_start", "recent_rows"}}
	window.Rows = [][]interface{}{{p.MaxYearAdded, p.WindowStart, p.RecentRows}}
	return []Sheet{
		window,
		Counts("rfm_recent_genres", "genre", p.RecentGenres),
		Counts("rfm_countries", "country", p.TopCountries.Data),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
