package pages

import (
	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/internal/domain/tally"
	"github.com/okian/flixdash/internal/domain/types"
)

// OldContent is an old release that was added to the catalog.
type OldContent struct {
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year"`
	DateAdded   string `json:"date_added"`
}

// EDAPage holds the exploratory summaries. Every field is computed
// independently from the same snapshot.
type EDAPage struct {
	Heading            string            `json:"heading"`
	TypeCounts         []types.Count     `json:"type_counts"`
	TopCountries       []types.Count     `json:"top_countries"`
	TopGenres          []types.Count     `json:"top_genres"`
	TopDirectors       []types.Count     `json:"top_directors"`
	TopCast            []types.Count     `json:"top_cast"`
	RecentReleaseYears []types.YearCount `json:"recent_release_years"`
	OldContentSample   []OldContent      `json:"old_content_sample"`
}

// EDA computes the exploratory summaries. Country and director rankings
// count raw field values; genre and cast rankings count exploded tokens.
func EDA(t *model.Table) EDAPage {
	return EDAPage{
		Heading:            "Exploratory Data Analysis (EDA)",
		TypeCounts:         counts(tally.Values(column(t, typeOf)).Sorted()),
		TopCountries:       topValues(t, countryOf),
		TopGenres:          topTokens(t, genresOf),
		TopDirectors:       topValues(t, directorOf),
		TopCast:            topTokens(t, castOf),
		RecentReleaseYears: RecentReleaseYears(t, recentYearsShown),
		OldContentSample:   OldContentAdded(t, oldContentSample),
	}
}

// RecentReleaseYears returns the n greatest release years with their row
// counts, newest first.
func RecentReleaseYears(t *model.Table, n int) []types.YearCount {
	byYear := tally.SortedByKey(releaseYears(t), true)
	if n > 0 && n < len(byYear) {
		byYear = byYear[:n]
	}
	return yearCounts(byYear)
}

// OldContentAdded returns up to limit rows, in table order, released before
// 2000 that have a year_added. limit <= 0 returns every match.
func OldContentAdded(t *model.Table, limit int) []OldContent {
	out := []OldContent{}
	t.Each(func(row model.Title) bool {
		if row.HasReleaseYear() && row.ReleaseYear < oldContentCutoff && row.HasYearAdded() {
			out = append(out, OldContent{
				Title:       row.Title,
				ReleaseYear: row.ReleaseYear,
				DateAdded:   row.DateAdded.Format(dateLayout),
			})
		}
		return limit <= 0 || len(out) < limit
	})
	return out
}
