// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/scanserv/internal/logging"
)

type contextKey string

// UsernameContextKey holds the authenticated username.
const UsernameContextKey contextKey = "username"

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UsernameContextKey).(string)
	return name, ok && name != ""
}

// Middleware gates requests behind HTTP Basic authentication.
type Middleware struct {
	basicAuthManager *BasicAuthManager
}

// NewMiddleware creates the gate. A nil manager disables authentication.
func NewMiddleware(basicAuthManager *BasicAuthManager) *Middleware {
	return &Middleware{basicAuthManager: basicAuthManager}
}

// Enabled reports whether requests are checked.
func (m *Middleware) Enabled() bool {
	return m != nil && m.basicAuthManager != nil
}

// Authenticate rejects requests without valid credentials with a 401
// challenge. The wrapped handler is not called for rejected requests.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	if !m.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := m.basicAuthManager.ValidateCredentials(r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, ErrNoCredentials) {
				RecordBasicAuth("missing")
				m.sendBasicAuthChallenge(w, "Unauthorized: authentication required")
				return
			}
			RecordBasicAuth("invalid")
			logging.Ctx(r.Context()).Warn().
				Str("remote_addr", r.RemoteAddr).
				Str("path", r.URL.Path).
				Msg("Basic auth validation failed")
			m.sendBasicAuthChallenge(w, "Unauthorized: invalid credentials")
			return
		}

		RecordBasicAuth("success")
		ctx := context.WithValue(r.Context(), UsernameContextKey, username)
		ctx = logging.ContextWithUser(ctx, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sendBasicAuthChallenge sends a WWW-Authenticate challenge and error response
func (m *Middleware) sendBasicAuthChallenge(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", m.basicAuthManager.GetWWWAuthenticateHeader())
	http.Error(w, message, http.StatusUnauthorized)
}
