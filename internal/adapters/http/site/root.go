// Package site serves the embedded dashboard front end.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
)

// Error constants
var (
	ErrAsset = errors.New("dashboard asset missing")
)

// Register attaches the dashboard front end to mux at /.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", NewRootHandler())
}

// RootHandler serves the sidebar shell and its static assets.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

// ServeHTTP serves embedded files. Unknown paths without an extension fall
// back to index.html so /eda or /rfm deep links open the right page.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" && path.Ext(r.URL.Path) == "" {
		r = r.Clone(r.Context())
		r.URL.Path = "/"
	}
	h.files.ServeHTTP(w, r)
}

// Check verifies the shell and its scripts were embedded.
func Check() error {
	for _, name := range []string{"index.html", "app.js", "style.css"} {
		if !Has(name) {
			return fmt.Errorf("%w: %s", ErrAsset, name)
		}
	}
	return nil
}

// Has reports whether name is an embedded asset.
func Has(name string) bool {
	f, err := FS().Open(name)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
