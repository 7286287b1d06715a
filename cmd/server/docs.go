// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package main

// @title Scanserv API
// @version 1.0.0
// @description HTTP API for driving network scanners and managing scanned files.
// @description
// @description ## Errors
// @description
// @description Every failure is answered with status 500 and a JSON body `{"message": "...", "code": 404}`.
// @description The optional `code` carries the HTTP-style status of the underlying failure.
// @description
// @description ## Authentication
// @description
// @description When users are configured every endpoint except `/metrics` and `/swagger` requires HTTP Basic authentication.
// @description
// @description ## Rate Limiting
// @description
// @description Requests under `/api/v1` are limited per client IP. Exceeding the limit returns 429.

// @contact.name Scanserv
// @contact.url https://github.com/tomtom215/scanserv

// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @BasePath /api/v1

// @securityDefinitions.basic BasicAuth

// @tag.name Context
// @tag.description Scanner devices and capabilities

// @tag.name Files
// @tag.description Scanned files in the output directory

// @tag.name Preview
// @tag.description Low resolution preview scans

// @tag.name Scan
// @tag.description Full scans

// @tag.name System
// @tag.description Host and backend information
