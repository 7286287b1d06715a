// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package fileinfo wraps a file that lives under one of the server's configured
roots (output, thumbnail, temp).

New joins the root and the caller-supplied name directly. It does not reject
names such as "../x"; callers that must stay inside the root check Contained.
The HTTP download and rename routes rely on the plain join, while the scanner
refuses names that are not contained.

	f := fileinfo.New(cfg.Paths.Output, "scan_1.jpg")
	if f.Exists() {
	    _ = f.Rename("invoice.jpg")
	}
*/
package fileinfo
