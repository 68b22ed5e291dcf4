package api

import (
	"context"
	"net/http"

	"github.com/okian/flixdash/pkg/metrics"
)

// CatalogDependencies controls the catalog cache.
type CatalogDependencies interface {
	Invalidate(ctx context.Context) error
}

// CatalogHandler handles catalog cache requests.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

type invalidateResponse struct {
	Status string `json:"status"`
}

// HandleInvalidate handles POST /api/catalog/invalidate requests.
func (h *CatalogHandler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.invalidate"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err := h.deps.Invalidate(r.Context()); err != nil {
		writeFailure(w, op, err)
		return
	}
	metrics.RecordCatalogInvalidation("api")
	writeJSON(w, http.StatusAccepted, invalidateResponse{Status: "invalidated"})
}
