// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package services adapts long-running scanserv components to suture.Service.

Each wrapper translates a component lifecycle into Serve(ctx) error and
implements fmt.Stringer so supervisor events name the service:

  - HTTPServerService runs the API listener and shuts it down gracefully
    when its context is canceled.
  - DeviceWarmupService probes scanner devices in the background and,
    with an interval, keeps the device store warm.
  - OutputWatchService follows the output directory so thumbnails of scans
    removed outside the API are dropped.

Wrappers depend on small interfaces (HTTPServer, DeviceWarmer, OutputWatcher) rather than
concrete types so tests can drive them with fakes.
*/
package services
