// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/scanserv/internal/logging"
)

func TestMiddlewareAuthenticate(t *testing.T) {
	t.Parallel()
	gate := NewMiddleware(newTestManager(t))

	tests := []struct {
		name          string
		authHeader    string
		wantStatus    int
		wantCalled    bool
		wantChallenge bool
	}{
		{"no credentials", "", http.StatusUnauthorized, false, true},
		{"wrong password", makeBasicAuthHeader("admin", "nope"), http.StatusUnauthorized, false, true},
		{"valid credentials", makeBasicAuthHeader("admin", "securepass123"), http.StatusOK, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			var gotUser, logUser string
			handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUser, _ = UsernameFromContext(r.Context())
				logUser = logging.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/files/a.jpg", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if got := rec.Header().Get("WWW-Authenticate") != ""; got != tt.wantChallenge {
				t.Errorf("challenge header present = %v, want %v", got, tt.wantChallenge)
			}
			if tt.wantCalled && gotUser != "admin" {
				t.Errorf("username in context = %q, want admin", gotUser)
			}
			if tt.wantCalled && logUser != "admin" {
				t.Errorf("logging user = %q, want admin", logUser)
			}
		})
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	t.Parallel()

	gate := NewMiddleware(nil)
	if gate.Enabled() {
		t.Fatal("gate without a manager should be disabled")
	}

	called := false
	handler := gate.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/files", nil))
	if !called {
		t.Error("disabled gate should pass requests through")
	}
}
