// Package site serves the landing page.
package site

import (
	"context"
	"net/http"

	"github.com/okian/plotdeck/internal/adapters/http/api"
)

// landingHTML links to the chart page.
const landingHTML = `<a href="/plotly">Go to Dynamic Plotly Page</a>`

// Register attaches the landing page to mux. Only the exact root path is
// served; other unmatched paths fall through to the mux's 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	h := NewRootHandler()
	mux.HandleFunc("GET /{$}", api.MetricsMiddleware(h.HandleRoot, "root"))
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests. Query parameters are ignored.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(landingHTML))
}
