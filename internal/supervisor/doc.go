// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package supervisor runs scanserv's long-lived services under suture v4.

The tree has two layers so a misbehaving scanner backend cannot take the
API listener down with it:

	RootSupervisor ("scanserv")
	├── ScannerSupervisor ("scanner-layer")
	│   ├── DeviceWarmupService
	│   └── OutputWatchService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's exponential backoff. Events are
logged through sutureslog, which main wires to the zerolog-backed slog
handler from internal/logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddScannerService(services.NewDeviceWarmupService(scanAPI, cfg.Scanner.DeviceCacheTTL))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	// Run blocks until ctx is canceled and every layer has stopped.
	if err := tree.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor tree error")
	}
*/
package supervisor
