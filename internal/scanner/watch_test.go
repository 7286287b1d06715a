// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchOutputDropsThumbnailOfRemovedScan(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	api := newTestAPI(t, cfg, newFakeRunner(t))
	if err := os.MkdirAll(cfg.Paths.Output, 0o750); err != nil {
		t.Fatal(err)
	}
	scan := filepath.Join(cfg.Paths.Output, "b.png")
	if err := os.WriteFile(scan, testPNG(t, 64, 64), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := api.ReadThumbnail(context.Background(), "b.png"); err != nil {
		t.Fatalf("ReadThumbnail() error = %v", err)
	}
	thumb := filepath.Join(cfg.Paths.Thumbnail, "b.png")
	if _, err := os.Stat(thumb); err != nil {
		t.Fatalf("thumbnail not stored: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- api.WatchOutput(ctx, ready) }()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("WatchOutput() exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch never registered")
	}

	// Removed behind the API's back.
	if err := os.Remove(scan); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(thumb); errors.Is(err, os.ErrNotExist) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("thumbnail of removed scan was not dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, ok := api.thumbs.Get("b.png"); ok {
		t.Error("cached thumbnail still present")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("WatchOutput() = %v, want context.Canceled", err)
	}
}

func TestWatchOutputMissingDirectory(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Paths.Output = filepath.Join(t.TempDir(), "does-not-exist")
	api := newTestAPI(t, cfg, newFakeRunner(t))

	if err := api.WatchOutput(context.Background(), nil); err == nil {
		t.Error("WatchOutput() on a missing directory should fail")
	}
}
