package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the catalog file.
const (
	ColShowID      = "show_id"
	ColType        = "type"
	ColTitle       = "title"
	ColDirector    = "director"
	ColCast        = "cast"
	ColCountry     = "country"
	ColDateAdded   = "date_added"
	ColReleaseYear = "release_year"
	ColRating      = "rating"
	ColDuration    = "duration"
	ColListedIn    = "listed_in"
	ColDescription = "description"
	ColYearAdded   = "year_added"
)

// Blank trailing columns carried by the source file.
const (
	artifactFirst = 12
	artifactLast  = 25
)

// DateLayout is the normalized form of date_added after cleaning.
const DateLayout = "2006-01-02"

// requiredColumns must be non-null for a row to survive cleaning.
var requiredColumns = []string{ColDirector, ColCast, ColCountry, ColRating, ColDuration}

// schemaColumns must exist in the frame.
var schemaColumns = []string{
	ColType, ColTitle, ColDirector, ColCast, ColCountry,
	ColDateAdded, ColReleaseYear, ColRating, ColDuration, ColListedIn,
}

var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	DateLayout,
	"2006-01-02 15:04:05",
	"1/2/2006",
	"2-Jan-06",
}

// Report summarizes one cleaning pass.
type Report struct {
	RowsIn            int
	RowsOut           int
	ColumnsDropped    []string
	DateParseFailures int
}

// Clean drops the artifact columns, keeps rows with every required field,
// normalizes date_added and derives year_added. Running it on its own output
// changes nothing.
func Clean(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out, _, err := CleanWithReport(df)
	return out, err
}

// CleanWithReport is Clean plus a summary of what was removed.
func CleanWithReport(df dataframe.DataFrame) (dataframe.DataFrame, Report, error) {
	rep := Report{RowsIn: df.Nrow()}
	if df.Err != nil {
		return df, rep, loadError("clean", "", df.Err)
	}

	df, rep.ColumnsDropped = dropArtifacts(df)
	if err := checkSchema(df); err != nil {
		return df, rep, loadError("clean", "", err)
	}

	for _, col := range requiredColumns {
		df = df.Filter(dataframe.F{Colname: col, Comparator: series.CompFunc, Comparando: present})
	}

	dates, failures := normalizeDates(df.Col(ColDateAdded))
	rep.DateParseFailures = failures
	df = df.Mutate(dates).Mutate(yearsAdded(dates))
	if df.Err != nil {
		return df, rep, loadError("clean", "", df.Err)
	}

	rep.RowsOut = df.Nrow()
	return df, rep, nil
}

func present(el series.Element) bool { return !el.IsNA() }

func dropArtifacts(df dataframe.DataFrame) (dataframe.DataFrame, []string) {
	have := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		have[name] = true
	}
	dropped := []string{}
	for n := artifactFirst; n <= artifactLast; n++ {
		name := "Unnamed: " + strconv.Itoa(n)
		if have[name] {
			dropped = append(dropped, name)
		}
	}
	if len(dropped) == 0 {
		return df, dropped
	}
	return df.Drop(dropped), dropped
}

func checkSchema(df dataframe.DataFrame) error {
	have := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		have[name] = true
	}
	for _, col := range schemaColumns {
		if !have[col] {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return nil
}

// parseDate accepts the source layouts and the normalized one.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeDates rewrites every parsable date to DateLayout. Missing and
// unparsable values become NA; only the latter count as failures.
func normalizeDates(s series.Series) (series.Series, int) {
	out := make([]string, s.Len())
	failures := 0
	for i := range out {
		el := s.Elem(i)
		if el.IsNA() {
			out[i] = "NaN"
			continue
		}
		t, ok := parseDate(el.String())
		if !ok {
			failures++
			out[i] = "NaN"
			continue
		}
		out[i] = t.Format(DateLayout)
	}
	return series.New(out, series.String, ColDateAdded), failures
}

func yearsAdded(dates series.Series) series.Series {
	out := make([]string, dates.Len())
	for i := range out {
		el := dates.Elem(i)
		if el.IsNA() {
			out[i] = "NaN"
			continue
		}
		// dates are already normalized, so the year is the first four bytes
		out[i] = el.String()[:4]
	}
	return series.New(out, series.Int, ColYearAdded)
}
