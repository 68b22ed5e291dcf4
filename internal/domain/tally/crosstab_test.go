package tally_test

import (
	"strconv"
	"testing"

	"github.com/okian/flixdash/internal/domain/tally"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCrossTab(t *testing.T) {
	Convey("Given release_year x rating observations", t, func() {
		pairs := []tally.Pair[int, string]{
			{Row: 2001, Col: "PG"},
			{Row: 2001, Col: "PG"},
			{Row: 2001, Col: "R"},
			{Row: 1995, Col: "TV-Y"},
		}
		grid := tally.CrossTab(pairs)

		Convey("Then keys are sorted and cells counted", func() {
			So(grid.Rows, ShouldResemble, []int{1995, 2001})
			So(grid.Cols, ShouldResemble, []string{"PG", "R", "TV-Y"})
			So(grid.Cells, ShouldResemble, [][]int{{0, 0, 1}, {2, 1, 0}})
		})

		Convey("When restricting to release_year >= 2000", func() {
			recent := grid.FilterRows(func(y int) bool { return y >= 2000 })

			Convey("Then other rating columns stay present and zero-filled", func() {
				m := recent.Matrix(strconv.Itoa, func(s string) string { return s })
				So(m.Rows, ShouldResemble, []string{"2001"})
				So(m.Columns, ShouldResemble, []string{"PG", "R", "TV-Y"})
				v, _ := m.Get("2001", "PG")
				So(v, ShouldEqual, 2)
				v, _ = m.Get("2001", "R")
				So(v, ShouldEqual, 1)
				v, ok := m.Get("2001", "TV-Y")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 0)
			})
		})

		Convey("When filtering away every row", func() {
			empty := grid.FilterRows(func(int) bool { return false })
			So(empty.Rows, ShouldBeEmpty)
			So(len(empty.Cols), ShouldEqual, 3)
		})
	})

	Convey("Given no observations", t, func() {
		grid := tally.CrossTab[int, string](nil)
		m := grid.Matrix(strconv.Itoa, func(s string) string { return s })
		So(m.Rows, ShouldBeEmpty)
		So(m.Columns, ShouldBeEmpty)
	})
}

func TestGridReshape(t *testing.T) {
	Convey("Given a type x genre grid", t, func() {
		pairs := []tally.Pair[string, string]{
			{Row: "Movie", Col: "Dramas"}, {Row: "Movie", Col: "Dramas"},
			{Row: "Movie", Col: "Comedies"}, {Row: "TV Show", Col: "Kids' TV"},
			{Row: "TV Show", Col: "Kids' TV"}, {Row: "TV Show", Col: "Kids' TV"},
			{Row: "Movie", Col: "Action"},
		}
		grid := tally.CrossTab(pairs)

		Convey("When keeping the top two columns", func() {
			top := grid.TopColumns(2)

			Convey("Then columns are ordered by total", func() {
				So(top.Cols, ShouldResemble, []string{"Kids' TV", "Dramas"})
				So(top.Cells, ShouldResemble, [][]int{{0, 2}, {3, 0}})
			})
		})

		Convey("When equal totals compete", func() {
			top := grid.TopColumns(4)
			So(top.Cols, ShouldResemble, []string{"Kids' TV", "Dramas", "Action", "Comedies"})
		})

		Convey("When keeping the last row", func() {
			tail := grid.TailRows(1)
			So(tail.Rows, ShouldResemble, []string{"TV Show"})
			So(tail.ColumnTotal(0), ShouldEqual, 0)
			So(grid.TailRows(10).Rows, ShouldResemble, grid.Rows)
		})
	})
}
