// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package scanner drives a SANE scanimage backend and manages the files it produces.

API is the collaborator behind the HTTP routes. It probes devices with
scanimage -L and scanimage -A, keeps the result in a Badger-backed DeviceStore,
captures previews and scans, applies image filters, encodes output through a
named pipeline and runs configured file actions (local commands or S3 uploads).

	api, err := scanner.New(cfg)
	if err != nil {
	    return err
	}
	defer api.Close()

	res, err := api.Scan(ctx, scanner.ScanRequest{
	    Params:   scanner.ScanParams{DeviceID: "epson2:net:10.0.0.5", Resolution: 300},
	    Filters:  []string{"filter.auto-level"},
	    Pipeline: "JPG | High quality",
	})

Backend invocations go through a circuit breaker; once it opens, calls fail
with a 503 *Error until the breaker timeout elapses.

Failures that clients should see with a specific code are returned as *Error,
which wraps one of the package sentinels (ErrNotFound, ErrUnknownFilter, ...)
and exposes Code.

File names are resolved under their root and names that escape it are refused
with ErrInvalidName.
*/
package scanner
