// Package site serves the dashboard's static assets and the root redirect.
package site

import (
	"context"
	"net/http"
	"strings"
)

// DashboardPath is where GET / redirects.
const DashboardPath = "/dashboard"

// Register attaches the asset routes and the root redirect to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("/assets/", assets(http.FileServer(FS())))
	mux.Handle("/{$}", NewRootHandler())
}

// RootHandler redirects the bare root to the dashboard.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// ServeHTTP handles GET / requests.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, DashboardPath, http.StatusFound)
}

// assets serves embedded files for GET and HEAD. Directory listings are
// not exposed.
func assets(files http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		files.ServeHTTP(w, r)
	})
}
