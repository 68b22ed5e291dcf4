package model_test

import (
	"testing"
	"time"

	model "github.com/okian/flixdash/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func sampleTitles() []model.Title {
	return []model.Title{
		{Type: model.TypeMovie, Title: "A", ReleaseYear: 2001},
		{Type: model.TypeTVShow, Title: "B", ReleaseYear: 2005, DateAdded: time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC), YearAdded: 2019},
		{Type: model.TypeMovie, Title: "C"},
	}
}

func TestTitle(t *testing.T) {
	convey.Convey("Given a Title", t, func() {
		convey.Convey("When it has no date_added", func() {
			title := model.Title{Title: "x"}

			convey.Convey("Then date and year are both null", func() {
				convey.So(title.HasDateAdded(), convey.ShouldBeFalse)
				convey.So(title.HasYearAdded(), convey.ShouldBeFalse)
				convey.So(title.HasReleaseYear(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When it has a date_added", func() {
			title := sampleTitles()[1]

			convey.Convey("Then date and year are both set", func() {
				convey.So(title.HasDateAdded(), convey.ShouldBeTrue)
				convey.So(title.HasYearAdded(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestTable(t *testing.T) {
	convey.Convey("Given a table of three titles", t, func() {
		table := model.NewTable(sampleTitles(), model.LoadInfo{SourcePath: "x.csv", ColumnsDropped: []string{"Unnamed: 12"}})

		convey.Convey("Then positions are assigned in order", func() {
			convey.So(table.Len(), convey.ShouldEqual, 3)
			for i, row := range table.Rows() {
				convey.So(row.Position, convey.ShouldEqual, i)
			}
		})

		convey.Convey("Then Rows returns a copy", func() {
			rows := table.Rows()
			rows[0].Title = "mutated"
			convey.So(table.Rows()[0].Title, convey.ShouldEqual, "A")
		})

		convey.Convey("Then Info returns a copy", func() {
			info := table.Info()
			info.ColumnsDropped[0] = "mutated"
			convey.So(table.Info().ColumnsDropped[0], convey.ShouldEqual, "Unnamed: 12")
		})

		convey.Convey("When iterating with early stop", func() {
			seen := 0
			table.Each(func(model.Title) bool {
				seen++
				return seen < 2
			})
			convey.So(seen, convey.ShouldEqual, 2)
		})
	})

	convey.Convey("Given a nil table", t, func() {
		var table *model.Table

		convey.Convey("Then it behaves as empty", func() {
			convey.So(table.Len(), convey.ShouldEqual, 0)
			convey.So(table.Rows(), convey.ShouldBeNil)
		})
	})
}
