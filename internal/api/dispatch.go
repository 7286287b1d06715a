// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"net/http"

	"github.com/tomtom215/scanserv/internal/logging"
)

// HandlerFunc is an API handler that may fail.
//
// A HandlerFunc that returns nil must have written exactly one complete
// response. A HandlerFunc that returns an error must not have written
// anything; Dispatch writes the error response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Dispatch adapts h to http.HandlerFunc. A returned error is formatted with
// FormatError and sent with status 500. Exactly one response is produced per
// request: if h wrote before failing, the error is logged but not sent.
func Dispatch(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: w}
		err := h(tw, r)
		if err == nil {
			if !tw.wrote {
				logging.Ctx(r.Context()).Warn().
					Str("path", r.URL.Path).
					Msg("Handler returned without writing a response")
			}
			return
		}
		if tw.wrote {
			logging.Ctx(r.Context()).Error().Err(err).
				Str("path", r.URL.Path).
				Msg("Handler failed after writing a response")
			return
		}
		writeError(w, http.StatusInternalServerError, err)
	}
}

// trackingWriter records whether the handler started a response.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(status int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *trackingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
