// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"context"

	"github.com/tomtom215/scanserv/internal/config"
	"github.com/tomtom215/scanserv/internal/fileinfo"
	"github.com/tomtom215/scanserv/internal/scanner"
)

// ScanAPI is the scanner collaborator the route handlers delegate to.
// *scanner.API implements it.
type ScanAPI interface {
	ReadContext(ctx context.Context) (*scanner.Context, error)
	DeleteContext(ctx context.Context) error
	ListFiles(ctx context.Context) ([]fileinfo.Entry, error)
	FileAction(ctx context.Context, name, action string) error
	ReadThumbnail(ctx context.Context, name string) ([]byte, error)
	DeleteFile(ctx context.Context, name string) (*fileinfo.Entry, error)
	ReadPreview(ctx context.Context, filters []string) ([]byte, error)
	DeletePreview(ctx context.Context) (*fileinfo.Entry, error)
	CreatePreview(ctx context.Context, req scanner.PreviewRequest) (*scanner.PreviewResult, error)
	Scan(ctx context.Context, req scanner.ScanRequest) (*scanner.ScanResult, error)
	SystemInfo(ctx context.Context) (*scanner.SystemInfo, error)
}

var _ ScanAPI = (*scanner.API)(nil)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files by resource:
//   - handlers_context.go: scanner context
//   - handlers_files.go: scanned files, thumbnails and actions
//   - handlers_preview.go: preview image
//   - handlers_scan.go: scanning
//   - handlers_system.go: system information
type Handler struct {
	api    ScanAPI
	config *config.Config
}

// NewHandler creates a handler serving files from cfg.Paths.
func NewHandler(api ScanAPI, cfg *config.Config) *Handler {
	return &Handler{api: api, config: cfg}
}
