// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/tomtom215/scanserv/internal/auth"
	"github.com/tomtom215/scanserv/internal/config"
)

// APIPrefix is the mount point of all API routes.
const APIPrefix = "/api/v1"

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	middleware    *auth.Middleware
	chiMiddleware *ChiMiddleware
	staticDir     string
}

// NewRouter creates a new router. A nil or disabled auth middleware leaves
// the API open.
func NewRouter(handler *Handler, middleware *auth.Middleware, cfg *config.Config) *Router {
	if middleware == nil {
		middleware = auth.NewMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		middleware:    middleware,
		chiMiddleware: NewChiMiddlewareFromConfig(cfg.Security),
		staticDir:     cfg.Paths.Static,
	}
}

// serveStaticOrIndex serves static files or index.html for SPA routing
func (router *Router) serveStaticOrIndex(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path

	// Set Cache-Control headers based on file type
	switch ext := strings.ToLower(path.Ext(p)); {
	case ext == ".js" || ext == ".css":
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	case ext == ".png" || ext == ".svg" || ext == ".jpg" || ext == ".webp" || ext == ".ico":
		w.Header().Set("Cache-Control", "public, max-age=604800")
	case p == "/" || p == "/index.html" || p == "/manifest.json":
		w.Header().Set("Cache-Control", "public, max-age=300")
	}

	if p != "/" && router.fileExists(p) {
		http.FileServer(http.Dir(router.staticDir)).ServeHTTP(w, r)
		return
	}

	// SPA fallback - serve index.html for unknown routes
	if w.Header().Get("Cache-Control") == "" {
		w.Header().Set("Cache-Control", "public, max-age=300")
	}
	http.ServeFile(w, r, filepath.Join(router.staticDir, "index.html"))
}

// fileExists checks if a file exists in the static directory
func (router *Router) fileExists(p string) bool {
	f, err := http.Dir(router.staticDir).Open(p)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return !stat.IsDir()
}
