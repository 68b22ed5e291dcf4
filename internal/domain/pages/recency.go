package pages

import (
	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/internal/domain/tally"
	"github.com/okian/flixdash/internal/domain/types"
)

// RecencyPage is the recency view. RecentGenres is returned for callers but
// the page only charts TopCountries.
type RecencyPage struct {
	Heading      string        `json:"heading"`
	Subheading   string        `json:"subheading"`
	MaxYearAdded int           `json:"max_year_added"`
	WindowStart  int           `json:"window_start"`
	RecentRows   int           `json:"recent_rows"`
	RecentGenres []types.Count `json:"recent_genres"`
	TopCountries CountChart    `json:"top_countries"`
}

// RecentWindow returns the latest year_added and the rows whose year_added
// is within one year of it. A table without any year_added has no window.
func RecentWindow(t *model.Table) (int, []model.Title) {
	maxYear := 0
	t.Each(func(row model.Title) bool {
		if row.HasYearAdded() && row.YearAdded > maxYear {
			maxYear = row.YearAdded
		}
		return true
	})
	if maxYear == 0 {
		return 0, []model.Title{}
	}
	recent := []model.Title{}
	t.Each(func(row model.Title) bool {
		if row.HasYearAdded() && row.YearAdded >= maxYear-recencyWindowYear {
			recent = append(recent, row)
		}
		return true
	})
	return maxYear, recent
}

// Recency ranks genres among recently added rows and individual countries
// across the whole table.
func Recency(t *model.Table) RecencyPage {
	maxYear, recent := RecentWindow(t)

	genres := make([]string, len(recent))
	for i, row := range recent {
		genres[i] = row.ListedIn
	}

	page := RecencyPage{
		Heading:      "RFM Analysis",
		Subheading:   "Negara Asal Konten Terbanyak yang Diunggah (1 Tahun Terakhir)",
		MaxYearAdded: maxYear,
		RecentRows:   len(recent),
		RecentGenres: counts(tally.Exploded(genres).Top(topN)),
		TopCountries: CountChart{
			Chart: types.Chart{Kind: types.ChartBarH, Title: "Top 10 Negara Asal Konten Netflix", XLabel: "Jumlah", YLabel: "Negara"},
			Data:  topTokens(t, countryOf),
		},
	}
	if maxYear != 0 {
		page.WindowStart = maxYear - recencyWindowYear
	}
	return page
}
