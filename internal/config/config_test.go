package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/flixdash/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8501")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DataPath, convey.ShouldEqual, "data/netflix_titles.csv")
			convey.So(cfg.WatchData, convey.ShouldBeTrue)
			convey.So(cfg.MetricsSchedule, convey.ShouldEqual, "@every 10s")
			convey.So(cfg.DatasetPageLimit, convey.ShouldEqual, 500)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid settings", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"an empty addr", func(c *config.Config) { c.Addr = " " }},
			{"an empty data path", func(c *config.Config) { c.DataPath = "" }},
			{"a zero limit", func(c *config.Config) { c.DatasetPageLimit = 0 }},
			{"an unknown log format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"a bad schedule", func(c *config.Config) { c.MetricsSchedule = "every now and then" }},
		}
		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				cfg := config.New(context.Background())
				tc.mutate(cfg)
				err := cfg.Validate()

				convey.Convey("Then validation fails", func() {
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
