// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Command server runs the scanserv HTTP API.

It drives SANE scanners through scanimage, stores finished scans in the
output directory and serves the client bundle at the site root. The API
lives under /api/v1; /metrics exposes Prometheus metrics and /swagger/
serves the API document.

# Configuration

Settings are layered: built-in defaults, then an optional YAML file
(CONFIG_PATH or ./config.yaml), then environment variables.

	HTTP_PORT=8080
	OUTPUT_DIR=/var/lib/scanserv/output
	THUMBNAIL_DIR=/var/lib/scanserv/thumbnails
	TEMP_DIR=/var/lib/scanserv/temp
	USERS=alice:secret
	SCANNER_DEVICE_CACHE_TTL=1h
	LOG_LEVEL=debug

Basic authentication is enabled as soon as one user is configured.

# Lifecycle

The HTTP listener and the device warm-up run under a suture supervisor
tree. SIGINT or SIGTERM cancels the tree; the listener then drains
in-flight requests for up to ten seconds.
*/
package main
