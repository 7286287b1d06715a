// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package api provides the HTTP layer of Scanserv.

It mounts the scanner and file routes under /api/v1, serves the client
bundle at the site root, and publishes the Swagger UI and Prometheus metrics.

Key Components:

  - Router: route table and middleware stack (chi)
  - Handler: route handlers delegating to a ScanAPI collaborator
  - Dispatch: adapts error-returning handlers; failures become 500 responses
  - FormatError: turns any failure into an ErrorPayload {message, code?}
  - RequestLogger: logs an ordered snapshot of each request at info level
  - DecodeBody: parses JSON and URL-encoded bodies before routing

Request Pipeline:

	RequestID -> RealIP -> Recoverer -> CORS
	  /metrics, /swagger/*                  (no credentials)
	  Authenticate (basic auth, when users are configured)
	    /api/v1: RateLimit -> SecurityHeaders -> Metrics -> Gzip -> DecodeBody
	             -> RequestLogger -> handler
	    /*: static files with index.html fallback

Error Responses:

Every failure is answered with a JSON object holding at least a message.
Failures that carry a code (scanner errors, validation errors) include it:

	{"message": "file \"a.jpg\" not found", "code": 404}

Handler failures are always sent with HTTP status 500; the code field carries
the domain code.

Usage Example:

	handler := api.NewHandler(scannerAPI, cfg)
	router := api.NewRouter(handler, auth.NewMiddleware(basicAuth), cfg)
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
