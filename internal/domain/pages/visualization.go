package pages

import (
	"strconv"

	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/internal/domain/tally"
	"github.com/okian/flixdash/internal/domain/types"
)

// CountChart is a ranked series with its chart descriptor.
type CountChart struct {
	Chart types.Chart   `json:"chart"`
	Data  []types.Count `json:"data"`
}

// YearChart is a per-year series with its chart descriptor.
type YearChart struct {
	Chart types.Chart       `json:"chart"`
	Data  []types.YearCount `json:"data"`
}

// MatrixChart is a count matrix with its chart descriptor.
type MatrixChart struct {
	Chart types.Chart  `json:"chart"`
	Data  types.Matrix `json:"data"`
}

// VisualizationPage holds every chart of the visualization page.
type VisualizationPage struct {
	Heading           string      `json:"heading"`
	TypeDistribution  CountChart  `json:"type_distribution"`
	TopGenres         CountChart  `json:"top_genres"`
	TopCountries      CountChart  `json:"top_countries"`
	TopDirectors      CountChart  `json:"top_directors"`
	TopCast           CountChart  `json:"top_cast"`
	TopReleaseYears   YearChart   `json:"top_release_years"`
	YearlyAdded       YearChart   `json:"yearly_added"`
	ReleaseByRating   MatrixChart `json:"release_by_rating"`
	GenreByType       MatrixChart `json:"genre_by_type"`
	TypeByReleaseYear MatrixChart `json:"type_by_release_year"`
}

// Visualization computes the chart data. The main genre used for
// segmentation is derived locally and never stored on the table.
func Visualization(t *model.Table) VisualizationPage {
	return VisualizationPage{
		Heading: "Visualisasi dan Analisis Penjelas",
		TypeDistribution: CountChart{
			Chart: types.Chart{Kind: types.ChartPie, Title: "Distribusi Tipe Tayangan (Movie vs TV Show)"},
			Data:  counts(tally.Values(column(t, typeOf)).Sorted()),
		},
		TopGenres: CountChart{
			Chart: types.Chart{Kind: types.ChartBarH, Title: "10 Genre Paling Sering Muncul", XLabel: "Jumlah Tayangan"},
			Data:  topTokens(t, genresOf),
		},
		TopCountries: CountChart{
			Chart: types.Chart{Kind: types.ChartBar, Title: "10 Negara Asal Teratas", XLabel: "Negara", YLabel: "Jumlah Tayangan"},
			Data:  topValues(t, countryOf),
		},
		TopDirectors: CountChart{
			Chart: types.Chart{Kind: types.ChartBarH, Title: "10 Sutradara Terproduktif", XLabel: "Jumlah Tayangan"},
			Data:  topValues(t, directorOf),
		},
		TopCast: CountChart{
			Chart: types.Chart{Kind: types.ChartBarH, Title: "10 Aktor/Aktris Terproduktif", XLabel: "Jumlah Penampilan"},
			Data:  topTokens(t, castOf),
		},
		TopReleaseYears: YearChart{
			Chart: types.Chart{Kind: types.ChartBar, Title: "Tahun Rilis dengan Konten Terbanyak", XLabel: "Tahun Rilis", YLabel: "Jumlah Konten"},
			Data:  yearCounts(releaseYears(t).Top(topReleaseYears)),
		},
		YearlyAdded: YearChart{
			Chart: types.Chart{Kind: types.ChartLine, Title: "Jumlah Tayangan Ditambahkan per Tahun", XLabel: "Tahun", YLabel: "Jumlah Tayangan"},
			Data:  YearlyAdded(t),
		},
		ReleaseByRating: MatrixChart{
			Chart: types.Chart{Kind: types.ChartHeatmap, Title: "Jumlah Tayangan per Tahun Rilis dan Rating", XLabel: "Rating", YLabel: "Tahun Rilis"},
			Data:  ReleaseByRating(t, heatmapFromYear),
		},
		GenreByType: MatrixChart{
			Chart: types.Chart{Kind: types.ChartGroupedBar, Title: "Segmentasi Genre Populer Berdasarkan Tipe Tayangan", XLabel: "Genre", YLabel: "Jumlah Tayangan"},
			Data:  GenreByType(t, segmentGenres),
		},
		TypeByReleaseYear: MatrixChart{
			Chart: types.Chart{Kind: types.ChartMultiLine, Title: "Segmentasi Tipe Tayangan Berdasarkan Tahun Rilis", XLabel: "Tahun Rilis", YLabel: "Jumlah Tayangan"},
			Data:  TypeByReleaseYear(t, segmentYears),
		},
	}
}

// YearlyAdded counts rows per year_added in chronological order.
func YearlyAdded(t *model.Table) []types.YearCount {
	c := tally.NewCounter[int]()
	t.Each(func(row model.Title) bool {
		if row.HasYearAdded() {
			c.Add(row.YearAdded)
		}
		return true
	})
	return yearCounts(tally.SortedByKey(c, false))
}

// ReleaseByRating cross-tabulates release_year x rating over the whole
// table, then keeps release years >= fromYear. Rating columns come from the
// whole table, so a rating seen only in older rows appears as zeros.
func ReleaseByRating(t *model.Table, fromYear int) types.Matrix {
	var pairs []tally.Pair[int, string]
	t.Each(func(row model.Title) bool {
		if row.HasReleaseYear() && row.Rating != "" {
			pairs = append(pairs, tally.Pair[int, string]{Row: row.ReleaseYear, Col: row.Rating})
		}
		return true
	})
	grid := tally.CrossTab(pairs).FilterRows(func(year int) bool { return year >= fromYear })
	return grid.Matrix(strconv.Itoa, identity)
}

// MainGenres returns the first listed genre of every row, aligned with table
// positions. Rows without listed_in get "".
func MainGenres(t *model.Table) []string {
	out := make([]string, 0, t.Len())
	t.Each(func(row model.Title) bool {
		g, _ := tally.FirstToken(row.ListedIn)
		out = append(out, g)
		return true
	})
	return out
}

// GenreByType counts rows per type x main genre, keeping the genres with
// the n largest totals.
func GenreByType(t *model.Table, n int) types.Matrix {
	genres := MainGenres(t)
	var pairs []tally.Pair[string, string]
	t.Each(func(row model.Title) bool {
		if g := genres[row.Position]; g != "" && row.Type != "" {
			pairs = append(pairs, tally.Pair[string, string]{Row: row.Type, Col: g})
		}
		return true
	})
	return tally.CrossTab(pairs).TopColumns(n).Matrix(identity, identity)
}

// TypeByReleaseYear counts rows per release_year x type for the n most
// recent release years, oldest first.
func TypeByReleaseYear(t *model.Table, n int) types.Matrix {
	var pairs []tally.Pair[int, string]
	t.Each(func(row model.Title) bool {
		if row.HasReleaseYear() && row.Type != "" {
			pairs = append(pairs, tally.Pair[int, string]{Row: row.ReleaseYear, Col: row.Type})
		}
		return true
	})
	return tally.CrossTab(pairs).TailRows(n).Matrix(strconv.Itoa, identity)
}
