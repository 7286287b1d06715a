// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package logging provides the process-wide zerolog logger for Scanserv.

Every component logs through this package instead of the standard log package.
The logger is configured once from main:

	logging.Init(logging.Config{
	    Level:  cfg.Logging.Level,
	    Format: cfg.Logging.Format,
	    Caller: cfg.Logging.Caller,
	})

and then used with the level helpers:

	logging.Info().Str("dir", dir).Msg("Output directory ready")
	logging.Error().Err(err).Msg("Scan failed")

# Request Context

HTTP middleware stores a request ID and a short correlation ID in the request
context. Ctx returns a logger that carries both:

	logging.Ctx(r.Context()).Info().Msg("Preview created")

# slog Bridge

The suture supervisor logs through log/slog. NewSlogLogger returns an
slog.Logger whose records are written by the zerolog logger, so supervisor
events end up in the same stream as everything else.

# Environment Variables

  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include file:line in each entry (default: false)
*/
package logging
