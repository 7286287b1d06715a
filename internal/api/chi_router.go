// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/scanserv/internal/middleware"
)

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)        // X-Request-ID header and logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Documentation & Observability
	// ========================
	// Served without credentials
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Group(func(r chi.Router) {
		r.Use(router.middleware.Authenticate)

		// ========================
		// API Endpoints
		// ========================
		r.Route(APIPrefix, func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit(APIPrefix))
			r.Use(APISecurityHeaders())
			r.Use(middleware.PrometheusMetrics)
			r.Use(middleware.Compression)
			r.Use(DecodeBody)

			r.NotFound(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusNotFound, &requestError{code: http.StatusNotFound, msg: "no route for " + r.Method + " " + r.URL.Path})
			})
			r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusMethodNotAllowed, &requestError{code: http.StatusMethodNotAllowed, msg: "method " + r.Method + " not allowed on " + r.URL.Path})
			})

			// Inline group: URL parameters are resolved before the logger runs
			r.Group(func(r chi.Router) {
				r.Use(RequestLogger)
				router.registerRoutes(r)
			})
		})

		// ========================
		// Static Files & SPA
		// ========================
		// Must be last - catches all unmatched routes
		r.Get("/*", router.serveStaticOrIndex)
	})

	return r
}

// registerRoutes adds the API route table.
func (router *Router) registerRoutes(r chi.Router) {
	h := router.handler

	r.Delete("/context", Dispatch(h.DeleteContext))
	r.Get("/context", Dispatch(h.ReadContext))

	r.Get("/files", Dispatch(h.ListFiles))
	r.Post("/files/{name}/actions/{action}", Dispatch(h.FileAction))
	r.Get("/files/{name}/thumbnail", Dispatch(h.ReadThumbnail))
	r.Get("/files/{name}", Dispatch(h.DownloadFile))
	r.Delete("/files/{name}", Dispatch(h.DeleteFile))
	r.Put("/files/{name}", Dispatch(h.RenameFile))

	r.Get("/preview", Dispatch(h.ReadPreview))
	r.Delete("/preview", Dispatch(h.DeletePreview))
	r.Post("/preview", Dispatch(h.CreatePreview))

	r.Post("/scan", Dispatch(h.Scan))

	r.Get("/system", Dispatch(h.SystemInfo))
}
