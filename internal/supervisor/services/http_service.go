// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/scanserv/internal/logging"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs the API listener under supervision. The listener
// runs on the Serve goroutine; a watcher goroutine calls Shutdown once ctx
// ends, bounded by shutdownTimeout so in-flight scans can finish their
// response.
//
//	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
//	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

// NewHTTPServerService wraps server. A non-positive shutdownTimeout becomes 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &HTTPServerService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service. A listener failure is returned so the
// supervisor restarts the service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	listening := make(chan struct{})
	defer close(listening)

	shutdown := make(chan error, 1)
	go func() {
		select {
		case <-listening:
			return
		case <-ctx.Done():
		}
		logging.Info().Str("service", h.String()).Dur("timeout", h.shutdownTimeout).Msg("Shutting down HTTP server")

		stopCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()
		shutdown <- h.server.Shutdown(stopCtx)
	}()

	err := h.server.ListenAndServe()
	if ctx.Err() != nil {
		if serr := <-shutdown; serr != nil {
			return fmt.Errorf("http server shutdown failed: %w", serr)
		}
		return ctx.Err()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("http server failed: %w", err)
}

// String names the service in supervisor events.
func (h *HTTPServerService) String() string {
	return "http-server"
}
