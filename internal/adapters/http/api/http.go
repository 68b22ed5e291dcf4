// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/flixdash/internal/domain/pages"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PageDependencies

	// Export writes the xlsx workbook of one page, or of all pages for "all".
	Export(ctx context.Context, page string, w io.Writer) error

	// Invalidate drops the cached catalog snapshot.
	Invalidate(ctx context.Context) error
}

// PageDependencies computes the dashboard pages.
type PageDependencies interface {
	Dataset(ctx context.Context) (pages.DatasetPage, error)
	EDA(ctx context.Context) (pages.EDAPage, error)
	Visualization(ctx context.Context) (pages.VisualizationPage, error)
	Recency(ctx context.Context) (pages.RecencyPage, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	pagesHandler   *PagesHandler
	exportHandler  *ExportHandler
	catalogHandler *CatalogHandler
}

// NewServer creates a new API server with all handlers. datasetLimit is the
// default and maximum row window of the dataset page.
func NewServer(deps Dependencies, statsProvider StatsProvider, datasetLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		pagesHandler:   NewPagesHandler(deps, datasetLimit),
		exportHandler:  NewExportHandler(deps),
		catalogHandler: NewCatalogHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/pages", MetricsMiddleware(s.pagesHandler.HandleList, "pages"))
	mux.HandleFunc("/api/pages/", MetricsMiddleware(s.pagesHandler.HandlePage, "page"))
	mux.HandleFunc("/api/export.xlsx", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	mux.HandleFunc("/api/catalog/invalidate", MetricsMiddleware(s.catalogHandler.HandleInvalidate, "invalidate"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps an upstream error to a status and error code.
func writeFailure(w http.ResponseWriter, op string, err error) {
	switch {
	case isCatalogUnavailable(err):
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
