package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/flixdash/internal/domain/pages"
	"github.com/okian/flixdash/internal/domain/types"
)

func render(w io.Writer, b *Bundle, names []string, limit int) {
	for _, name := range names {
		switch name {
		case pages.NameDataset:
			if b.Dataset != nil {
				RenderDataset(w, b.Dataset, limit)
			}
		case pages.NameEDA:
			if b.EDA != nil {
				RenderEDA(w, b.EDA)
			}
		case pages.NameVisualization:
			if b.Visualization != nil {
				RenderVisualization(w, b.Visualization)
			}
		case pages.NameRecency:
			if b.Recency != nil {
				RenderRecency(w, b.Recency)
			}
		}
	}
}

func heading(w io.Writer, s string) {
	fmt.Fprintf(w, "\n%s\n%s\n", s, strings.Repeat("=", len([]rune(s))))
}

func section(w io.Writer, s string) {
	fmt.Fprintf(w, "\n%s\n", s)
}

func newTab(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RenderDataset prints the first limit rows of the dataset page.
func RenderDataset(w io.Writer, p *Dataset, limit int) {
	heading(w, p.Heading)
	rows := p.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	fmt.Fprintf(w, "%d titles, showing %d\n\n", p.Count, len(rows))

	tw := newTab(w)
	fmt.Fprintln(tw, "#\tshow_id\ttype\ttitle\tcountry\trelease_year\trating\tyear_added")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Position, r.ShowID, r.Type, r.Title, r.Country, optInt(r.ReleaseYear), r.Rating, optInt(r.YearAdded))
	}
	_ = tw.Flush()
}

// RenderEDA prints the summary tables of the EDA page.
func RenderEDA(w io.Writer, p *pages.EDAPage) {
	heading(w, p.Heading)
	counts(w, "Types", "type", p.TypeCounts)
	counts(w, "Top countries", "country", p.TopCountries)
	counts(w, "Top genres", "genre", p.TopGenres)
	counts(w, "Top directors", "director", p.TopDirectors)
	counts(w, "Top cast", "cast", p.TopCast)
	years(w, "Recent release years", p.RecentReleaseYears)

	section(w, "Old content added recently")
	tw := newTab(w)
	fmt.Fprintln(tw, "title\trelease_year\tdate_added")
	for _, o := range p.OldContentSample {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", o.Title, o.ReleaseYear, o.DateAdded)
	}
	_ = tw.Flush()
}

// RenderVisualization prints the data behind every chart.
func RenderVisualization(w io.Writer, p *pages.VisualizationPage) {
	heading(w, p.Heading)
	for _, c := range []pages.CountChart{p.TypeDistribution, p.TopGenres, p.TopCountries, p.TopDirectors, p.TopCast} {
		counts(w, c.Chart.Title, "value", c.Data)
	}
	years(w, p.TopReleaseYears.Chart.Title, p.TopReleaseYears.Data)
	years(w, p.YearlyAdded.Chart.Title, p.YearlyAdded.Data)
	for _, c := range []pages.MatrixChart{p.ReleaseByRating, p.GenreByType, p.TypeByReleaseYear} {
		matrix(w, c.Chart.Title, c.Data)
	}
}

// RenderRecency prints the recency window and its country ranking.
func RenderRecency(w io.Writer, p *pages.RecencyPage) {
	heading(w, p.Heading)
	fmt.Fprintln(w, p.Subheading)
	if p.MaxYearAdded == 0 {
		fmt.Fprintln(w, "no titles carry a date_added")
		return
	}
	fmt.Fprintf(w, "window %d-%d, %d titles\n", p.WindowStart, p.MaxYearAdded, p.RecentRows)
	counts(w, "Recent genres", "genre", p.RecentGenres)
	counts(w, p.TopCountries.Chart.Title, "country", p.TopCountries.Data)
}

func counts(w io.Writer, title, label string, data []types.Count) {
	section(w, title)
	tw := newTab(w)
	fmt.Fprintf(tw, "rank\t%s\tcount\n", label)
	for _, c := range data {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", c.Rank, c.Label, c.Count)
	}
	_ = tw.Flush()
}

func years(w io.Writer, title string, data []types.YearCount) {
	section(w, title)
	tw := newTab(w)
	fmt.Fprintln(tw, "year\tcount")
	for _, y := range data {
		fmt.Fprintf(tw, "%d\t%d\n", y.Year, y.Count)
	}
	_ = tw.Flush()
}

func matrix(w io.Writer, title string, m types.Matrix) {
	section(w, title)
	tw := newTab(w)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(m.Columns, "\t"))
	for i, row := range m.Rows {
		cells := make([]string, len(m.Cells[i]))
		for j, v := range m.Cells[i] {
			cells[j] = strconv.Itoa(v)
		}
		fmt.Fprintf(tw, "%s\t%s\n", row, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
