package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/okian/flixdash/internal/adapters/export"
	"github.com/okian/flixdash/internal/domain/pages"
)

// ExportHandler serves xlsx exports of the page aggregates.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /api/export.xlsx?page= requests. The workbook is
// built in memory so a failed render still gets a JSON error.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	page := strings.TrimSpace(r.URL.Query().Get("page"))
	file := "flixdash-all.xlsx"
	if page != "" && !strings.EqualFold(page, "all") {
		name, ok := pages.Lookup(page)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown_page", NewKind(op, ErrUnknownPage))
			return
		}
		page = pages.Slug(name)
		file = "flixdash-" + page + ".xlsx"
	}

	var buf bytes.Buffer
	if err := h.deps.Export(r.Context(), page, &buf); err != nil {
		writeFailure(w, op, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
