// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

//go:build integration

package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tomtom215/scanserv/internal/config"
	"github.com/tomtom215/scanserv/internal/testinfra"
)

func TestS3ActionUploadsToMinIO(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	server, err := testinfra.NewMinIOContainer(ctx)
	if err != nil {
		t.Fatalf("start minio: %v", err)
	}
	testinfra.CleanupContainer(t, server)

	cfg := testConfig(t)
	cfg.Actions = []config.ActionConfig{{
		Name:      "archive",
		Type:      config.ActionTypeS3,
		Endpoint:  "http://" + server.Endpoint,
		Bucket:    "scans",
		AccessKey: server.AccessKey,
		SecretKey: server.SecretKey,
		Prefix:    "inbox",
	}}
	api := newTestAPI(t, cfg, newFakeRunner(t))

	if err := os.MkdirAll(cfg.Paths.Output, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Paths.Output, "page.png"), testPNG(t, 20, 20), 0o600); err != nil {
		t.Fatal(err)
	}

	// The bucket does not exist yet; the action creates it.
	if err := api.FileAction(ctx, "page.png", "archive"); err != nil {
		t.Fatalf("FileAction() error = %v", err)
	}

	client, err := minio.New(server.Endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(server.AccessKey, server.SecretKey, ""),
	})
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}
	info, err := client.StatObject(ctx, "scans", "inbox/page.png", minio.StatObjectOptions{})
	if err != nil {
		t.Fatalf("StatObject() error = %v", err)
	}
	if info.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", info.ContentType)
	}

	// Uploading again into the existing bucket overwrites the object.
	if err := api.FileAction(ctx, "page.png", "archive"); err != nil {
		t.Errorf("second FileAction() error = %v", err)
	}
}
