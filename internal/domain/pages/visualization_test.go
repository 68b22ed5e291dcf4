package pages_test

import (
	"testing"

	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/internal/domain/pages"
	"github.com/okian/flixdash/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVisualization(t *testing.T) {
	Convey("Given the fixture table", t, func() {
		table := fixture()
		before := table.Rows()
		page := pages.Visualization(table)

		Convey("Then the table is not modified", func() {
			So(table.Rows(), ShouldResemble, before)
		})

		Convey("Then every chart carries a descriptor", func() {
			So(page.TypeDistribution.Chart.Kind, ShouldEqual, types.ChartPie)
			So(page.TopGenres.Chart.Kind, ShouldEqual, types.ChartBarH)
			So(page.TopCountries.Chart.Kind, ShouldEqual, types.ChartBar)
			So(page.YearlyAdded.Chart.Kind, ShouldEqual, types.ChartLine)
			So(page.ReleaseByRating.Chart.Kind, ShouldEqual, types.ChartHeatmap)
			So(page.GenreByType.Chart.Kind, ShouldEqual, types.ChartGroupedBar)
			So(page.TypeByReleaseYear.Chart.Kind, ShouldEqual, types.ChartMultiLine)
		})

		Convey("Then year_added counts are chronological", func() {
			So(page.YearlyAdded.Data, ShouldResemble, []types.YearCount{
				{Year: 2018, Count: 1}, {Year: 2020, Count: 1}, {Year: 2021, Count: 2},
			})
		})

		Convey("Then the heatmap keeps all rating columns but only years >= 2000", func() {
			m := page.ReleaseByRating.Data
			So(m.Rows, ShouldResemble, []string{"2019", "2020"})
			So(m.Columns, ShouldResemble, []string{"PG", "R", "TV-MA", "TV-Y"})
			v, ok := m.Get("2019", "R")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0)
			v, _ = m.Get("2020", "TV-MA")
			So(v, ShouldEqual, 1)
		})

		Convey("Then genre segmentation uses the first genre only", func() {
			m := page.GenreByType.Data
			So(m.Rows, ShouldResemble, []string{model.TypeMovie, model.TypeTVShow})
			v, _ := m.Get(model.TypeMovie, "Dramas")
			So(v, ShouldEqual, 1)
			v, _ = m.Get(model.TypeTVShow, "International TV Shows")
			So(v, ShouldEqual, 1)
			v, _ = m.Get(model.TypeTVShow, "Dramas")
			So(v, ShouldEqual, 0)
			_, ok := m.Get(model.TypeTVShow, "Documentaries")
			So(ok, ShouldBeFalse)
		})

		Convey("Then release-year segmentation is ordered by year", func() {
			m := page.TypeByReleaseYear.Data
			So(m.Rows, ShouldResemble, []string{"1990", "1995", "1998", "2019", "2020"})
			So(m.Columns, ShouldResemble, []string{model.TypeMovie, model.TypeTVShow})
		})
	})

	Convey("Given rows (2001, PG), (2001, PG), (2001, R)", t, func() {
		rows := []model.Title{title("a", 2001, 0), title("b", 2001, 0), title("c", 2001, 0)}
		rows[2].Rating = "R"
		m := pages.ReleaseByRating(model.NewTable(rows, model.LoadInfo{}), 2000)

		Convey("Then the cross tab reports {2001: {PG: 2, R: 1}}", func() {
			So(m.Rows, ShouldResemble, []string{"2001"})
			So(m.Columns, ShouldResemble, []string{"PG", "R"})
			So(m.Cells, ShouldResemble, [][]int{{2, 1}})
		})

		Convey("And a rating seen only before 2000 is zero-filled", func() {
			rows = append(rows, title("d", 1990, 0))
			rows[3].Rating = "G"
			m := pages.ReleaseByRating(model.NewTable(rows, model.LoadInfo{}), 2000)
			So(m.Columns, ShouldResemble, []string{"G", "PG", "R"})
			So(m.Cells, ShouldResemble, [][]int{{0, 2, 1}})
		})
	})

	Convey("Given main genres", t, func() {
		rows := []model.Title{title("a", 2001, 0), title("b", 2001, 0)}
		rows[0].ListedIn = " Horror Movies , Dramas"
		rows[1].ListedIn = ""
		genres := pages.MainGenres(model.NewTable(rows, model.LoadInfo{}))
		So(genres, ShouldResemble, []string{"Horror Movies", ""})
	})

	Convey("Given more than fifteen release years", t, func() {
		var rows []model.Title
		for y := 1990; y < 2010; y++ {
			rows = append(rows, title("x", y, 0))
		}
		m := pages.TypeByReleaseYear(model.NewTable(rows, model.LoadInfo{}), 15)

		Convey("Then only the fifteen latest are kept, oldest first", func() {
			So(len(m.Rows), ShouldEqual, 15)
			So(m.Rows[0], ShouldEqual, "1995")
			So(m.Rows[14], ShouldEqual, "2009")
		})
	})
}
