// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"context"
	"os"
	"runtime"
	"strings"
	"time"
)

// SystemInfo reports host, runtime and backend details. It never probes
// devices; Devices counts the ones already known.
func (a *API) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	info := &SystemInfo{
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		GoVersion:     runtime.Version(),
		Hostname:      hostname,
		NumCPU:        runtime.NumCPU(),
		StartedAt:     a.startedAt,
		UptimeSeconds: time.Since(a.startedAt).Seconds(),
		Version:       a.cfg.App.Version,
		Backend:       a.cfg.Scanner.Command,
		Breaker:       a.breaker.State(),
	}

	if devices, ok, err := a.store.Load(); err == nil && ok {
		info.Devices = len(devices)
	}

	// Best effort: a missing backend still yields the rest of the report.
	if out, err := a.run(ctx, "version", "--version"); err == nil {
		info.BackendInfo = strings.TrimSpace(string(out))
	} else {
		a.log.Debug().Err(err).Msg("Scanner backend version unavailable")
	}

	return info, nil
}
