// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

//go:build integration

package testinfra

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

// terminateTimeout bounds container teardown in t.Cleanup.
const terminateTimeout = 30 * time.Second

// SkipIfNoDocker skips t when the container provider is unreachable, so the
// integration suite degrades to a skip on hosts without a Docker daemon.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

// CleanupContainer registers teardown of c with t. A nil container is
// ignored so callers can register before checking the start error.
func CleanupContainer(t *testing.T, c testcontainers.Container) {
	t.Helper()
	t.Cleanup(func() {
		if c == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), terminateTimeout)
		defer cancel()
		if err := c.Terminate(ctx); err != nil {
			t.Logf("terminate %s: %v", c.GetContainerID(), err)
		}
	})
}
