package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/flixdash/internal/domain/pages"
)

// PagesHandler serves the navigation and the four dashboard pages.
type PagesHandler struct {
	deps         PageDependencies
	datasetLimit int
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(deps PageDependencies, datasetLimit int) *PagesHandler {
	if datasetLimit <= 0 {
		datasetLimit = 500
	}
	return &PagesHandler{deps: deps, datasetLimit: datasetLimit}
}

type pageLink struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Path string `json:"path"`
}

type datasetResponse struct {
	Heading string      `json:"heading"`
	Count   int         `json:"count"`
	Offset  int         `json:"offset"`
	Limit   int         `json:"limit"`
	Rows    []pages.Row `json:"rows"`
}

// HandleList handles GET /api/pages requests.
func (h *PagesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	names := pages.Names()
	links := make([]pageLink, len(names))
	for i, name := range names {
		slug := pages.Slug(name)
		links[i] = pageLink{Name: name, Slug: slug, Path: "/api/pages/" + slug}
	}
	writeJSON(w, http.StatusOK, links)
}

// HandlePage handles GET /api/pages/{page} requests.
func (h *PagesHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_page"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/api/pages/")
	name, ok := pages.Lookup(slug)
	if slug == "" || strings.Contains(slug, "/") || !ok {
		writeError(w, http.StatusNotFound, "unknown_page", NewKind(op, ErrUnknownPage))
		return
	}

	ctx := r.Context()
	switch name {
	case pages.NameDataset:
		h.handleDataset(w, r)
	case pages.NameEDA:
		page, err := h.deps.EDA(ctx)
		respond(w, op, page, err)
	case pages.NameVisualization:
		page, err := h.deps.Visualization(ctx)
		respond(w, op, page, err)
	case pages.NameRecency:
		page, err := h.deps.Recency(ctx)
		respond(w, op, page, err)
	}
}

func (h *PagesHandler) handleDataset(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dataset"
	q := r.URL.Query()

	limit, err := intParam(q.Get("limit"), h.datasetLimit, 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	if limit > h.datasetLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrLimitExceeded))
		return
	}
	offset, err := intParam(q.Get("offset"), 0, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}

	page, err := h.deps.Dataset(r.Context())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, datasetResponse{
		Heading: page.Heading,
		Count:   page.Count,
		Offset:  offset,
		Limit:   limit,
		Rows:    page.Window(offset, limit),
	})
}

func respond(w http.ResponseWriter, op string, page any, err error) {
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// intParam parses an optional integer query value no smaller than min.
func intParam(raw string, def, min int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return 0, fmt.Errorf("%w: %q must be an integer >= %d", ErrBadRequest, raw, min)
	}
	return n, nil
}
