package tally_test

import (
	"testing"

	"github.com/okian/flixdash/internal/domain/tally"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExplodedGenres(t *testing.T) {
	Convey("Given three listed_in values", t, func() {
		c := tally.Exploded([]string{"Drama, International", "Drama", "Comedy"})

		Convey("Then each genre is counted once per row", func() {
			So(c.Get("Drama"), ShouldEqual, 2)
			So(c.Get("International"), ShouldEqual, 1)
			So(c.Get("Comedy"), ShouldEqual, 1)
			So(c.Len(), ShouldEqual, 3)
		})

		Convey("Then ties keep first appearance order", func() {
			sorted := c.Sorted()
			So(sorted, ShouldResemble, []tally.Bucket[string]{
				{Key: "Drama", Count: 2},
				{Key: "International", Count: 1},
				{Key: "Comedy", Count: 1},
			})
		})
	})
}

func TestCounterTop(t *testing.T) {
	Convey("Given a counter with twelve distinct keys", t, func() {
		c := tally.NewCounter[string]()
		keys := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
		for i, k := range keys {
			c.AddN(k, 1+i%3)
		}

		Convey("When taking the top 10", func() {
			top := c.Top(10)

			Convey("Then the list is truncated and non-increasing", func() {
				So(len(top), ShouldEqual, 10)
				for i := 1; i < len(top); i++ {
					So(top[i].Count, ShouldBeLessThanOrEqualTo, top[i-1].Count)
				}
			})

			Convey("Then equal counts keep insertion order", func() {
				So(top[0].Key, ShouldEqual, "c")
				So(top[1].Key, ShouldEqual, "f")
				So(top[2].Key, ShouldEqual, "i")
				So(top[3].Key, ShouldEqual, "l")
			})
		})

		Convey("When asking for more than exists", func() {
			So(len(c.Top(50)), ShouldEqual, 12)
			So(len(c.Top(0)), ShouldEqual, 12)
		})
	})
}

func TestValues(t *testing.T) {
	Convey("Given raw values with nulls", t, func() {
		c := tally.Values([]string{"United States, India", "", "India", "United States, India"})

		Convey("Then combined strings are counted as-is and nulls skipped", func() {
			So(c.Get("United States, India"), ShouldEqual, 2)
			So(c.Get("India"), ShouldEqual, 1)
			So(c.Get(""), ShouldEqual, 0)
			So(c.Len(), ShouldEqual, 2)
		})
	})
}

func TestSortedByKey(t *testing.T) {
	Convey("Given year counts", t, func() {
		c := tally.NewCounter[int]()
		c.AddAll([]int{2019, 2017, 2019, 2021, 2017, 2019})

		Convey("Then ascending and descending key orders are available", func() {
			So(tally.SortedByKey(c, false), ShouldResemble, []tally.Bucket[int]{
				{Key: 2017, Count: 2}, {Key: 2019, Count: 3}, {Key: 2021, Count: 1},
			})
			So(tally.SortedByKey(c, true)[0], ShouldResemble, tally.Bucket[int]{Key: 2021, Count: 1})
		})
	})
}
