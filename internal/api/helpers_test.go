// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/scanserv/internal/config"
	"github.com/tomtom215/scanserv/internal/fileinfo"
	"github.com/tomtom215/scanserv/internal/scanner"
)

// fakeScanAPI records calls and returns canned results.
type fakeScanAPI struct {
	mu    sync.Mutex
	calls []string
	err   error

	preview     []byte
	filters     []string
	scanRequest scanner.ScanRequest
}

func (f *fakeScanAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeScanAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeScanAPI) ReadContext(ctx context.Context) (*scanner.Context, error) {
	if err := f.record("ReadContext"); err != nil {
		return nil, err
	}
	return &scanner.Context{Filters: []string{"filter.auto-level"}, Version: "test"}, nil
}

func (f *fakeScanAPI) DeleteContext(ctx context.Context) error {
	return f.record("DeleteContext")
}

func (f *fakeScanAPI) ListFiles(ctx context.Context) ([]fileinfo.Entry, error) {
	if err := f.record("ListFiles"); err != nil {
		return nil, err
	}
	return []fileinfo.Entry{{Name: "a.jpg", Extension: ".jpg"}}, nil
}

func (f *fakeScanAPI) FileAction(ctx context.Context, name, action string) error {
	return f.record("FileAction:" + name + ":" + action)
}

func (f *fakeScanAPI) ReadThumbnail(ctx context.Context, name string) ([]byte, error) {
	if err := f.record("ReadThumbnail:" + name); err != nil {
		return nil, err
	}
	return []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), nil
}

func (f *fakeScanAPI) DeleteFile(ctx context.Context, name string) (*fileinfo.Entry, error) {
	if err := f.record("DeleteFile:" + name); err != nil {
		return nil, err
	}
	return &fileinfo.Entry{Name: name}, nil
}

func (f *fakeScanAPI) ReadPreview(ctx context.Context, filters []string) ([]byte, error) {
	if err := f.record("ReadPreview"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = filters
	return f.preview, nil
}

func (f *fakeScanAPI) DeletePreview(ctx context.Context) (*fileinfo.Entry, error) {
	if err := f.record("DeletePreview"); err != nil {
		return nil, err
	}
	return &fileinfo.Entry{Name: "preview.png"}, nil
}

func (f *fakeScanAPI) CreatePreview(ctx context.Context, req scanner.PreviewRequest) (*scanner.PreviewResult, error) {
	if err := f.record("CreatePreview:" + req.Params.DeviceID); err != nil {
		return nil, err
	}
	return &scanner.PreviewResult{File: fileinfo.Entry{Name: "preview.png"}}, nil
}

func (f *fakeScanAPI) Scan(ctx context.Context, req scanner.ScanRequest) (*scanner.ScanResult, error) {
	if err := f.record("Scan:" + req.Params.DeviceID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanRequest = req
	return &scanner.ScanResult{File: fileinfo.Entry{Name: "scan.jpg"}}, nil
}

func (f *fakeScanAPI) SystemInfo(ctx context.Context) (*scanner.SystemInfo, error) {
	if err := f.record("SystemInfo"); err != nil {
		return nil, err
	}
	return &scanner.SystemInfo{OS: "linux", StartedAt: time.Unix(0, 0)}, nil
}

// newTestConfig returns a config rooted in a temp directory with output,
// thumbnail and static directories created.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Output:    filepath.Join(root, "output"),
			Thumbnail: filepath.Join(root, "thumbnail"),
			Temp:      filepath.Join(root, "temp"),
			Static:    filepath.Join(root, "client"),
		},
		Security: config.SecurityConfig{
			RateLimitDisabled: true,
		},
	}
	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Thumbnail, cfg.Paths.Temp, cfg.Paths.Static} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return cfg
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// newTestServer wires the full router around a fake collaborator.
func newTestServer(t *testing.T, cfg *config.Config, fake *fakeScanAPI) http.Handler {
	t.Helper()
	router := NewRouter(NewHandler(fake, cfg), nil, cfg)
	return router.SetupChi()
}

func decodePayload(t *testing.T, body []byte) ErrorPayload {
	t.Helper()
	var p ErrorPayload
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("decode error payload %q: %v", body, err)
	}
	return p
}

// countingWriter counts terminal response actions. A Write without a prior
// WriteHeader counts as one implicit WriteHeader.
type countingWriter struct {
	header      http.Header
	status      int
	headerCalls int
	body        []byte
}

func newCountingWriter() *countingWriter {
	return &countingWriter{header: make(http.Header)}
}

func (w *countingWriter) Header() http.Header { return w.header }

func (w *countingWriter) WriteHeader(status int) {
	w.headerCalls++
	if w.status == 0 {
		w.status = status
	}
}

func (w *countingWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	w.body = append(w.body, b...)
	return len(b), nil
}

func withBody(r *http.Request, body *requestBody) context.Context {
	return context.WithValue(r.Context(), bodyContextKey{}, body)
}

func withRouteContext(r *http.Request, rctx *chi.Context) context.Context {
	return context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
}
