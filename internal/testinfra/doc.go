// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

// Package testinfra provides container helpers for integration tests.
//
// It uses testcontainers-go to start real services. Tests that use it carry
// the integration build tag and skip when Docker is unavailable:
//
//	//go:build integration
//
//	func TestUpload(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    minio, err := testinfra.NewMinIOContainer(context.Background())
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    testinfra.CleanupContainer(t, minio)
//	    // point an s3 action at minio.Endpoint
//	}
//
// Run them with:
//
//	go test -tags integration ./...
//
// First runs download container images; later runs use the local cache.
package testinfra
