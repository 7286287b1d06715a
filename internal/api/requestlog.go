// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tomtom215/scanserv/internal/logging"
)

// LogField is one key of a request log entry.
type LogField struct {
	Key   string
	Value any
}

// LogEntry is an ordered request snapshot.
type LogEntry []LogField

// MarshalZerologObject writes the fields in order.
func (e LogEntry) MarshalZerologObject(ev *zerolog.Event) {
	for _, f := range e {
		ev.Interface(f.Key, f.Value)
	}
}

// Get returns the value stored under key.
func (e LogEntry) Get(key string) (any, bool) {
	for _, f := range e {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in order.
func (e LogEntry) Keys() []string {
	keys := make([]string, len(e))
	for i, f := range e {
		keys[i] = f.Key
	}
	return keys
}

// Snapshot captures method, path, params, query and body of r, in that
// order. Empty strings and empty maps are left out.
func Snapshot(r *http.Request) LogEntry {
	entry := make(LogEntry, 0, 5)
	addText := func(key, v string) {
		if v != "" {
			entry = append(entry, LogField{Key: key, Value: v})
		}
	}
	addMap := func(key string, v map[string]any) {
		if len(v) > 0 {
			entry = append(entry, LogField{Key: key, Value: v})
		}
	}

	addText("method", r.Method)
	addText("path", r.URL.Path)
	addMap("params", urlParams(r))
	addMap("query", flatten(r.URL.Query()))
	addMap("body", bodyValues(r))
	return entry
}

func urlParams(r *http.Request) map[string]any {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	params := make(map[string]any, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

// RequestLogger logs a Snapshot of every request at info level before the
// handler runs. Mount it inside the routing group so URL parameters are set.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.Ctx(r.Context()).Info().
			Object("request", Snapshot(r)).
			Msg("API request")
		next.ServeHTTP(w, r)
	})
}
