package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	app "github.com/okian/flixdash/internal/app"
	"github.com/okian/flixdash/internal/config"
	"github.com/okian/flixdash/pkg/logger"
	"github.com/okian/flixdash/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

const catalogCSV = "show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description\n" +
	"s1,Movie,One,Ann,X,India,\"January 1, 2020\",2019,PG,90 min,Dramas,d\n" +
	"s2,TV Show,Two,Bo,Y,United States,\"March 3, 2021\",2021,TV-MA,1 Season,Crime TV Shows,d\n"

func startService(t *testing.T) *app.Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netflix_titles.csv")
	if err := os.WriteFile(path, []byte(catalogCSV), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	svc := app.New(app.WithLogger(logger.NewNop()), app.WithDataPath(path))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestConfigLoading(t *testing.T) {
	convey.Convey("Given FLIXDASH environment variables", t, func() {
		_ = os.Setenv("FLIXDASH_ADDR", ":9090")
		_ = os.Setenv("FLIXDASH_DATASET_PAGE_LIMIT", "50")
		defer func() {
			_ = os.Unsetenv("FLIXDASH_ADDR")
			_ = os.Unsetenv("FLIXDASH_DATASET_PAGE_LIMIT")
		}()

		convey.Convey("Then configuration should pick them up", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.DatasetPageLimit, convey.ShouldEqual, 50)
		})
	})
}

func TestMux(t *testing.T) {
	convey.Convey("Given a started service", t, func() {
		svc := startService(t)
		mux := newMux(context.Background(), svc, 10)

		get := func(target string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
			return w
		}

		convey.Convey("Then every surface is routed", func() {
			convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/pages").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And the pages are computed from the catalog", func() {
			w := get("/api/pages/rfm")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"max_year_added":2021`)

			w = get("/api/pages/dataset")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"count":2`)
		})
	})
}

func TestMetricsSchedule(t *testing.T) {
	convey.Convey("Given a metrics schedule", t, func() {
		convey.Convey("When the schedule is valid", func() {
			c, err := scheduleMetrics("@every 1h")
			convey.So(err, convey.ShouldBeNil)
			convey.So(c.Entries(), convey.ShouldHaveLength, 1)

			convey.Convey("Then running it does not reload an invalidated catalog", func() {
				svc := startService(t)
				convey.So(svc.Invalidate(context.Background()), convey.ShouldBeNil)
				before := catalogLoads()

				c.Entries()[0].Job.Run()
				convey.So(catalogLoads(), convey.ShouldEqual, before)
			})
		})

		convey.Convey("When the schedule is invalid", func() {
			c, err := scheduleMetrics("not a schedule")
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(c, convey.ShouldBeNil)
		})
	})
}

// catalogLoads reads the successful catalog load counter.
func catalogLoads() float64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() == "flixdash_dashboard_catalog_loads_total" && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}
