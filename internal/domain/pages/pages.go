// Package pages implements the four dashboard pages. Each page is a pure
// function over an immutable catalog snapshot; none of them modifies the
// table or keeps state between calls.
package pages

import (
	"strings"

	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/internal/domain/tally"
	"github.com/okian/flixdash/internal/domain/types"
)

// Page names in navigation order.
const (
	NameDataset       = "Dataset"
	NameEDA           = "EDA"
	NameVisualization = "Visualisasi"
	NameRecency       = "RFM"
)

// Names lists the navigable pages in sidebar order.
func Names() []string {
	return []string{NameDataset, NameEDA, NameVisualization, NameRecency}
}

// Lookup resolves a page name or URL slug, case-insensitively.
func Lookup(s string) (string, bool) {
	for _, name := range Names() {
		if strings.EqualFold(s, name) {
			return name, true
		}
	}
	return "", false
}

// Slug returns the URL path segment for a page name.
func Slug(name string) string { return strings.ToLower(name) }

// Ranking sizes shared by the pages.
const (
	topN              = 10
	topReleaseYears   = 15
	recentYearsShown  = 10
	oldContentSample  = 5
	oldContentCutoff  = 2000
	heatmapFromYear   = 2000
	segmentGenres     = 10
	segmentYears      = 15
	recencyWindowYear = 1
)

// dateLayout formats date_added in page output.
const dateLayout = "2006-01-02"

func column(t *model.Table, field func(model.Title) string) []string {
	out := make([]string, 0, t.Len())
	t.Each(func(row model.Title) bool {
		out = append(out, field(row))
		return true
	})
	return out
}

func counts(buckets []tally.Bucket[string]) []types.Count {
	out := make([]types.Count, len(buckets))
	for i, b := range buckets {
		out[i] = types.Count{Rank: i + 1, Label: b.Key, Count: b.Count}
	}
	return out
}

func yearCounts(buckets []tally.Bucket[int]) []types.YearCount {
	out := make([]types.YearCount, len(buckets))
	for i, b := range buckets {
		out[i] = types.YearCount{Year: b.Key, Count: b.Count}
	}
	return out
}

func topValues(t *model.Table, field func(model.Title) string) []types.Count {
	return counts(tally.Values(column(t, field)).Top(topN))
}

func topTokens(t *model.Table, field func(model.Title) string) []types.Count {
	return counts(tally.Exploded(column(t, field)).Top(topN))
}

func releaseYears(t *model.Table) *tally.Counter[int] {
	c := tally.NewCounter[int]()
	t.Each(func(row model.Title) bool {
		if row.HasReleaseYear() {
			c.Add(row.ReleaseYear)
		}
		return true
	})
	return c
}

func typeOf(row model.Title) string     { return row.Type }
func countryOf(row model.Title) string  { return row.Country }
func directorOf(row model.Title) string { return row.Director }
func castOf(row model.Title) string     { return row.Cast }
func genresOf(row model.Title) string   { return row.ListedIn }

func identity(s string) string { return s }
