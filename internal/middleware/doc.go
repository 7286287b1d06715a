// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package middleware provides HTTP middleware components for the application.

All middleware has the chi signature func(http.Handler) http.Handler and is
installed with r.Use.

Key Components:

  - RequestID: UUID request IDs in the X-Request-ID header and in the logging
    context (request_id, correlation_id)
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for text and JSON responses; images and file
    downloads pass through

Middleware Stack:

	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(middleware.Compression)
	    ...
	})

Access the request ID in a handler:

	id := middleware.GetRequestID(r.Context())
*/
package middleware
