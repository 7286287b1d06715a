// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

// Package auth provides the HTTP Basic authentication gate.
//
// Users come from configuration as a username to password mapping. When the
// mapping is empty the gate is disabled and every request passes through.
// Otherwise each request must carry valid Basic credentials; anything else
// gets 401 Unauthorized with a WWW-Authenticate challenge and the wrapped
// handler never runs.
//
// Passwords are hashed with bcrypt at startup. Configured values that are
// already bcrypt hashes are used directly, so plaintext passwords need not be
// stored in config files:
//
//	security:
//	  users:
//	    alice: "$2a$12$..."
//
// Usage:
//
//	mgr, err := auth.NewBasicAuthManager(cfg.Security.Users)
//	if err != nil {
//	    return err
//	}
//	gate := auth.NewMiddleware(mgr)
//	r.Use(gate.Authenticate)
package auth
