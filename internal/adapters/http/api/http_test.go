package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/flixdash/internal/adapters/catalog"
	"github.com/okian/flixdash/internal/adapters/export"
	"github.com/okian/flixdash/internal/adapters/http/api"
	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/internal/domain/pages"
)

type mockDeps struct {
	table       *model.Table
	err         error
	invalidated int
	exported    []string
}

func (m *mockDeps) Dataset(context.Context) (pages.DatasetPage, error) {
	return pages.Dataset(m.table), m.err
}

func (m *mockDeps) EDA(context.Context) (pages.EDAPage, error) {
	return pages.EDA(m.table), m.err
}

func (m *mockDeps) Visualization(context.Context) (pages.VisualizationPage, error) {
	return pages.Visualization(m.table), m.err
}

func (m *mockDeps) Recency(context.Context) (pages.RecencyPage, error) {
	return pages.Recency(m.table), m.err
}

func (m *mockDeps) Export(_ context.Context, page string, w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	m.exported = append(m.exported, page)
	return export.Write(w, export.RecencySheets(pages.Recency(m.table))...)
}

func (m *mockDeps) Invalidate(context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.invalidated++
	return nil
}

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "rows": 3}
}

func fixture(n int) *model.Table {
	rows := make([]model.Title, n)
	for i := range rows {
		rows[i] = model.Title{
			Type: model.TypeMovie, Title: fmt.Sprintf("t%d", i), Director: "D", Cast: "C",
			Country: "US", Rating: "PG", Duration: "90 min", ListedIn: "Dramas",
			ReleaseYear: 2000 + i, YearAdded: 2010 + i,
		}
	}
	return model.NewTable(rows, model.LoadInfo{})
}

func newMux(deps *mockDeps, limit int) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, mockStats{}, limit).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body
}

func TestPages(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockDeps{table: fixture(3)}
		mux := newMux(deps, 2)

		Convey("When listing pages", func() {
			w := do(mux, http.MethodGet, "/api/pages")

			Convey("Then the four pages come in navigation order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var links []map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &links), ShouldBeNil)
				So(len(links), ShouldEqual, 4)
				So(links[0]["name"], ShouldEqual, "Dataset")
				So(links[2]["slug"], ShouldEqual, "visualisasi")
				So(links[3]["path"], ShouldEqual, "/api/pages/rfm")
			})
		})

		Convey("When requesting the dataset page", func() {
			w := do(mux, http.MethodGet, "/api/pages/dataset?offset=1")

			Convey("Then rows are windowed but the count is complete", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Count  int         `json:"count"`
					Offset int         `json:"offset"`
					Limit  int         `json:"limit"`
					Rows   []pages.Row `json:"rows"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Count, ShouldEqual, 3)
				So(body.Limit, ShouldEqual, 2)
				So(len(body.Rows), ShouldEqual, 2)
				So(body.Rows[0].Title, ShouldEqual, "t1")
			})
		})

		Convey("When the dataset limit is too large", func() {
			w := do(mux, http.MethodGet, "/api/pages/dataset?limit=5")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["code"], ShouldEqual, "limit_exceeded")
		})

		Convey("When the dataset offset is invalid", func() {
			w := do(mux, http.MethodGet, "/api/pages/dataset?offset=-1")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["code"], ShouldEqual, "bad_request")
		})

		Convey("When requesting the analysis pages", func() {
			for _, slug := range []string{"eda", "visualisasi", "rfm", "EDA"} {
				w := do(mux, http.MethodGet, "/api/pages/"+slug)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			}

			w := do(mux, http.MethodGet, "/api/pages/rfm")
			var body map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["max_year_added"], ShouldEqual, 2012.0)
		})

		Convey("When requesting an unknown page", func() {
			w := do(mux, http.MethodGet, "/api/pages/settings")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeError(w)["code"], ShouldEqual, "unknown_page")
		})

		Convey("When using the wrong method", func() {
			w := do(mux, http.MethodPost, "/api/pages/eda")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the catalog cannot be loaded", func() {
			deps.err = &catalog.LoadError{Op: "read", Path: "x.csv", Err: errors.New("gone")}
			w := do(mux, http.MethodGet, "/api/pages/eda")

			Convey("Then the API reports it as unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				body := decodeError(w)
				So(body["code"], ShouldEqual, "catalog_unavailable")
				So(body["message"], ShouldContainSubstring, "api.get_page")
			})
		})

		Convey("When the service fails otherwise", func() {
			deps.err = errors.New("boom")
			w := do(mux, http.MethodGet, "/api/pages/dataset")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(decodeError(w)["code"], ShouldEqual, "internal_error")
		})
	})
}

func TestExport(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockDeps{table: fixture(2)}
		mux := newMux(deps, 10)

		Convey("When exporting one page", func() {
			w := do(mux, http.MethodGet, "/api/export.xlsx?page=RFM")

			Convey("Then a workbook attachment is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, export.ContentType)
				So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "flixdash-rfm.xlsx")
				So(w.Body.Len(), ShouldBeGreaterThan, 0)
				So(deps.exported, ShouldResemble, []string{"rfm"})
			})
		})

		Convey("When exporting everything", func() {
			w := do(mux, http.MethodGet, "/api/export.xlsx")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "flixdash-all.xlsx")
			So(deps.exported, ShouldResemble, []string{""})
		})

		Convey("When exporting an unknown page", func() {
			w := do(mux, http.MethodGet, "/api/export.xlsx?page=nope")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(deps.exported, ShouldBeEmpty)
		})

		Convey("When the export fails", func() {
			deps.err = &catalog.LoadError{Op: "read", Err: errors.New("gone")}
			w := do(mux, http.MethodGet, "/api/export.xlsx")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
		})
	})
}

func TestInvalidateStatsHealth(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockDeps{table: fixture(1)}
		mux := newMux(deps, 10)

		Convey("When invalidating with POST", func() {
			w := do(mux, http.MethodPost, "/api/catalog/invalidate")
			So(w.Code, ShouldEqual, http.StatusAccepted)
			So(deps.invalidated, ShouldEqual, 1)
		})

		Convey("When invalidating with GET", func() {
			w := do(mux, http.MethodGet, "/api/catalog/invalidate")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, http.MethodPost)
			So(deps.invalidated, ShouldEqual, 0)
		})

		Convey("When reading stats", func() {
			w := do(mux, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"rows":3`)
		})

		Convey("When scraping health metrics", func() {
			do(mux, http.MethodGet, "/stats")
			w := do(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "flixdash_dashboard_http_requests_total")
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given API errors", t, func() {
		err := api.NewKind("api.op", api.ErrBadRequest)
		So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "api.op: bad request")

		cause := &catalog.LoadError{Op: "read", Err: errors.New("gone")}
		wrapped := api.Wrap("api.op", cause)
		So(errors.Is(wrapped, catalog.ErrLoad), ShouldBeTrue)
		So(strings.HasPrefix(wrapped.Error(), "api.op: "), ShouldBeTrue)
		So(api.Wrap("api.op", nil), ShouldBeNil)
	})

	Convey("Given a nil mux", t, func() {
		So(func() {
			api.NewServer(&mockDeps{}, mockStats{}, 1).Register(context.Background(), nil)
		}, ShouldPanic)
	})
}
