// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/scanserv/internal/auth"
	"github.com/tomtom215/scanserv/internal/config"
	"github.com/tomtom215/scanserv/internal/scanner"
)

func serve(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRenameFile_WithThumbnail(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "a.jpg", "scan")
	writeTestFile(t, cfg.Paths.Thumbnail, "a.jpg", "thumb")
	srv := newTestServer(t, cfg, &fakeScanAPI{})

	w := serve(srv, http.MethodPut, "/api/v1/files/a.jpg", "application/json", `{"newName":"b.jpg"}`)

	if w.Code != http.StatusOK || w.Body.String() != "200" {
		t.Fatalf("response = %d %q, want 200 \"200\"", w.Code, w.Body.String())
	}
	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Thumbnail} {
		if _, err := os.Stat(filepath.Join(dir, "b.jpg")); err != nil {
			t.Errorf("%s/b.jpg missing: %v", dir, err)
		}
		if _, err := os.Stat(filepath.Join(dir, "a.jpg")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s/a.jpg should be gone, stat err = %v", dir, err)
		}
	}
}

func TestRenameFile_WithoutThumbnail(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "a.jpg", "scan")
	srv := newTestServer(t, cfg, &fakeScanAPI{})

	w := serve(srv, http.MethodPut, "/api/v1/files/a.jpg", "application/x-www-form-urlencoded", "newName=b.jpg")

	if w.Code != http.StatusOK || w.Body.String() != "200" {
		t.Fatalf("response = %d %q, want 200 \"200\"", w.Code, w.Body.String())
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "b.jpg")); err != nil {
		t.Errorf("b.jpg missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Thumbnail, "b.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("no thumbnail should be created, stat err = %v", err)
	}
}

func TestRenameFile_Failures(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "a.jpg", "scan")
	writeTestFile(t, cfg.Paths.Output, "taken.jpg", "scan B")
	writeTestFile(t, cfg.Paths.Thumbnail, "taken.jpg", "thumb B")
	srv := newTestServer(t, cfg, &fakeScanAPI{})

	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
	}{
		{"missing file", "/api/v1/files/missing.jpg", `{"newName":"b.jpg"}`, http.StatusNotFound},
		{"missing newName", "/api/v1/files/a.jpg", `{}`, http.StatusBadRequest},
		{"new name with separator", "/api/v1/files/a.jpg", `{"newName":"../b.jpg"}`, http.StatusBadRequest},
		{"source escapes root", "/api/v1/files/..%2Fa.jpg", `{"newName":"b.jpg"}`, http.StatusBadRequest},
		{"target exists", "/api/v1/files/a.jpg", `{"newName":"taken.jpg"}`, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(srv, http.MethodPut, tt.target, "application/json", tt.body)
			if w.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", w.Code)
			}
			p := decodePayload(t, w.Body.Bytes())
			if p.Message == "" {
				t.Error("message should not be empty")
			}
			if p.Code == nil || *p.Code != tt.wantCode {
				t.Errorf("code = %v, want %d", p.Code, tt.wantCode)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "a.jpg")); err != nil {
		t.Errorf("a.jpg should be untouched: %v", err)
	}
	for dir, want := range map[string]string{cfg.Paths.Output: "scan B", cfg.Paths.Thumbnail: "thumb B"} {
		if got, err := os.ReadFile(filepath.Join(dir, "taken.jpg")); err != nil || string(got) != want {
			t.Errorf("%s/taken.jpg = %q (%v), want %q", dir, got, err, want)
		}
	}
}

func TestRenameFile_RestoresThumbnailOnConflict(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "a.jpg", "scan A")
	writeTestFile(t, cfg.Paths.Thumbnail, "a.jpg", "thumb A")
	writeTestFile(t, cfg.Paths.Output, "b.jpg", "scan B")
	srv := newTestServer(t, cfg, &fakeScanAPI{})

	w := serve(srv, http.MethodPut, "/api/v1/files/a.jpg", "application/json", `{"newName":"b.jpg"}`)

	if p := decodePayload(t, w.Body.Bytes()); p.Code == nil || *p.Code != http.StatusConflict {
		t.Fatalf("code = %v, want 409", p.Code)
	}
	if got, err := os.ReadFile(filepath.Join(cfg.Paths.Thumbnail, "a.jpg")); err != nil || string(got) != "thumb A" {
		t.Errorf("thumbnail a.jpg = %q (%v), want it kept", got, err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Thumbnail, "b.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("thumbnail must not move on a refused rename, stat err = %v", err)
	}
}

func TestRenameFile_DropsStaleThumbnailOfNewName(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "a.jpg", "scan A")
	writeTestFile(t, cfg.Paths.Thumbnail, "a.jpg", "thumb A")
	writeTestFile(t, cfg.Paths.Thumbnail, "b.jpg", "orphan")
	srv := newTestServer(t, cfg, &fakeScanAPI{})

	w := serve(srv, http.MethodPut, "/api/v1/files/a.jpg", "application/json", `{"newName":"b.jpg"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got, err := os.ReadFile(filepath.Join(cfg.Paths.Thumbnail, "b.jpg")); err != nil || string(got) != "thumb A" {
		t.Errorf("thumbnail b.jpg = %q (%v), want the renamed scan's thumbnail", got, err)
	}
}

func TestRenameFile_KeepsThumbnailWhileOutputIsWatched(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "a.jpg", "scan")
	writeTestFile(t, cfg.Paths.Thumbnail, "a.jpg", "thumb")

	scanAPI, err := scanner.New(cfg)
	if err != nil {
		t.Fatalf("scanner.New() error = %v", err)
	}
	t.Cleanup(func() { _ = scanAPI.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- scanAPI.WatchOutput(ctx, ready) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	})
	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("WatchOutput() exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch never registered")
	}

	srv := NewRouter(NewHandler(scanAPI, cfg), nil, cfg).SetupChi()
	w := serve(srv, http.MethodPut, "/api/v1/files/a.jpg", "application/json", `{"newName":"b.jpg"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	// Give the watcher time to handle the rename event of a.jpg.
	time.Sleep(200 * time.Millisecond)
	if got, err := os.ReadFile(filepath.Join(cfg.Paths.Thumbnail, "b.jpg")); err != nil || string(got) != "thumb" {
		t.Errorf("thumbnail b.jpg = %q (%v), want it kept after the watcher ran", got, err)
	}
}

func TestFileRoutes_LiteralPercentInName(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "scan%41.jpg", "literal")
	writeTestFile(t, cfg.Paths.Output, "scanA.jpg", "decoded twice")
	srv := newTestServer(t, cfg, &fakeScanAPI{})

	w := serve(srv, http.MethodGet, "/api/v1/files/scan%2541.jpg", "", "")
	if w.Code != http.StatusOK || w.Body.String() != "literal" {
		t.Fatalf("download = %d %q, want 200 \"literal\"", w.Code, w.Body.String())
	}

	w = serve(srv, http.MethodPut, "/api/v1/files/scan%2541.jpg", "application/json", `{"newName":"renamed.jpg"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("rename status = %d, body %s", w.Code, w.Body.String())
	}
	if got, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "renamed.jpg")); err != nil || string(got) != "literal" {
		t.Errorf("renamed.jpg = %q (%v), want the literal %%-named scan", got, err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "scanA.jpg")); err != nil {
		t.Errorf("scanA.jpg should be untouched: %v", err)
	}
}

func TestDownloadFile(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "scan 1.pdf", "%PDF-1.4 test")
	srv := newTestServer(t, cfg, &fakeScanAPI{})

	w := serve(srv, http.MethodGet, "/api/v1/files/scan%201.pdf", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "%PDF-1.4 test" {
		t.Errorf("body = %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment") || !strings.Contains(cd, "scan 1.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	w = serve(srv, http.MethodGet, "/api/v1/files/missing.pdf", "", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("missing file status = %d, want 500", w.Code)
	}
	if p := decodePayload(t, w.Body.Bytes()); p.Code == nil || *p.Code != http.StatusNotFound {
		t.Errorf("missing file code = %v, want 404", p.Code)
	}
}

func TestDownloadFile_RefusesEscape(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, filepath.Dir(cfg.Paths.Output), "secret.txt", "secret")
	srv := newTestServer(t, cfg, &fakeScanAPI{})

	w := serve(srv, http.MethodGet, "/api/v1/files/..%2Fsecret.txt", "", "")

	if w.Body.String() == "secret" {
		t.Fatal("file outside the output directory was served")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestReadPreview_Base64RoundTrip(t *testing.T) {
	preview := []byte{0xff, 0xd8, 0xff, 0x00, 0x01, 0x02, 0xfe, '\n', 0x00}
	fake := &fakeScanAPI{preview: preview}
	srv := newTestServer(t, newTestConfig(t), fake)

	w := serve(srv, http.MethodGet, "/api/v1/preview?filter=filter.threshold&filter=filter.blur,filter.invert", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp PreviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := base64.StdEncoding.DecodeString(resp.Content)
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	if !reflect.DeepEqual(got, preview) {
		t.Errorf("decoded preview = %v, want %v", got, preview)
	}
	if want := []string{"filter.threshold", "filter.blur", "filter.invert"}; !reflect.DeepEqual(fake.filters, want) {
		t.Errorf("filters = %v, want %v", fake.filters, want)
	}
}

func TestRoutes_Delegate(t *testing.T) {
	tests := []struct {
		method      string
		target      string
		body        string
		wantCall    string
		wantBody    string
		contentType string
	}{
		{http.MethodDelete, "/api/v1/context", "", "DeleteContext", "{}", "application/json"},
		{http.MethodGet, "/api/v1/context", "", "ReadContext", "", "application/json"},
		{http.MethodGet, "/api/v1/files", "", "ListFiles", "", "application/json"},
		{http.MethodPost, "/api/v1/files/a.jpg/actions/upload", "", "FileAction:a.jpg:upload", "200", "text/plain"},
		{http.MethodGet, "/api/v1/files/a.jpg/thumbnail", "", "ReadThumbnail:a.jpg", "", "image/jpeg"},
		{http.MethodDelete, "/api/v1/files/a.jpg", "", "DeleteFile:a.jpg", "", "application/json"},
		{http.MethodDelete, "/api/v1/preview", "", "DeletePreview", "", "application/json"},
		{http.MethodPost, "/api/v1/preview", `{"params":{"deviceId":"test:0"}}`, "CreatePreview:test:0", "", "application/json"},
		{http.MethodPost, "/api/v1/scan", `{"params":{"deviceId":"test:0","resolution":300},"pipeline":"PNG"}`, "Scan:test:0", "", "application/json"},
		{http.MethodGet, "/api/v1/system", "", "SystemInfo", "", "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			fake := &fakeScanAPI{}
			srv := newTestServer(t, newTestConfig(t), fake)

			ct := ""
			if tt.body != "" {
				ct = "application/json"
			}
			w := serve(srv, tt.method, tt.target, ct, tt.body)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if calls := fake.Calls(); len(calls) != 1 || calls[0] != tt.wantCall {
				t.Errorf("calls = %v, want [%s]", calls, tt.wantCall)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %s", ct, tt.contentType)
			}
		})
	}
}

func TestScan_RequestBody(t *testing.T) {
	fake := &fakeScanAPI{}
	srv := newTestServer(t, newTestConfig(t), fake)

	body := `{"params":{"deviceId":"test:0","resolution":300,"mode":"Color"},"filters":["filter.auto-level"],"pipeline":"PNG"}`
	if w := serve(srv, http.MethodPost, "/api/v1/scan", "application/json", body); w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	want := scanner.ScanRequest{
		Params:   scanner.ScanParams{DeviceID: "test:0", Resolution: 300, Mode: "Color"},
		Filters:  []string{"filter.auto-level"},
		Pipeline: "PNG",
	}
	if !reflect.DeepEqual(fake.scanRequest, want) {
		t.Errorf("request = %+v, want %+v", fake.scanRequest, want)
	}

	w := serve(srv, http.MethodPost, "/api/v1/scan", "application/json", `{"params":{}}`)
	if p := decodePayload(t, w.Body.Bytes()); p.Code == nil || *p.Code != http.StatusBadRequest {
		t.Errorf("missing deviceId code = %v, want 400", p.Code)
	}
}

func TestRoutes_CollaboratorFailureIs500(t *testing.T) {
	targets := []struct{ method, target, body string }{
		{http.MethodGet, "/api/v1/context", ""},
		{http.MethodDelete, "/api/v1/context", ""},
		{http.MethodGet, "/api/v1/files", ""},
		{http.MethodPost, "/api/v1/files/a.jpg/actions/upload", ""},
		{http.MethodGet, "/api/v1/files/a.jpg/thumbnail", ""},
		{http.MethodDelete, "/api/v1/files/a.jpg", ""},
		{http.MethodGet, "/api/v1/preview", ""},
		{http.MethodDelete, "/api/v1/preview", ""},
		{http.MethodPost, "/api/v1/preview", `{"params":{"deviceId":"x"}}`},
		{http.MethodPost, "/api/v1/scan", `{"params":{"deviceId":"x"}}`},
		{http.MethodGet, "/api/v1/system", ""},
	}

	fake := &fakeScanAPI{err: errors.New("scanner unplugged")}
	srv := newTestServer(t, newTestConfig(t), fake)

	for _, tt := range targets {
		ct := ""
		if tt.body != "" {
			ct = "application/json"
		}
		w := serve(srv, tt.method, tt.target, ct, tt.body)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s %s: status = %d, want 500", tt.method, tt.target, w.Code)
			continue
		}
		if p := decodePayload(t, w.Body.Bytes()); p.Message != "scanner unplugged" {
			t.Errorf("%s %s: message = %q", tt.method, tt.target, p.Message)
		}
	}
}

func TestRoutes_ExactlyOneTerminalWrite(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "a.jpg", "scan")
	writeTestFile(t, cfg.Paths.Output, "c.jpg", "scan")

	requests := []struct{ method, target, body string }{
		{http.MethodDelete, "/api/v1/context", ""},
		{http.MethodGet, "/api/v1/context", ""},
		{http.MethodGet, "/api/v1/files", ""},
		{http.MethodPost, "/api/v1/files/a.jpg/actions/upload", ""},
		{http.MethodGet, "/api/v1/files/a.jpg/thumbnail", ""},
		{http.MethodGet, "/api/v1/files/a.jpg", ""},
		{http.MethodGet, "/api/v1/files/missing.jpg", ""},
		{http.MethodDelete, "/api/v1/files/a.jpg", ""},
		{http.MethodPut, "/api/v1/files/c.jpg", `{"newName":"d.jpg"}`},
		{http.MethodPut, "/api/v1/files/c.jpg", `{}`},
		{http.MethodGet, "/api/v1/preview", ""},
		{http.MethodDelete, "/api/v1/preview", ""},
		{http.MethodPost, "/api/v1/preview", `{"params":{"deviceId":"x"}}`},
		{http.MethodPost, "/api/v1/scan", `{"params":{"deviceId":"x"}}`},
		{http.MethodGet, "/api/v1/system", ""},
	}

	for _, fake := range []*fakeScanAPI{{}, {err: errors.New("failed")}} {
		srv := newTestServer(t, cfg, fake)
		for _, tt := range requests {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}

			w := newCountingWriter()
			srv.ServeHTTP(w, req)

			if w.headerCalls != 1 {
				t.Errorf("%s %s (err=%v): terminal writes = %d, want 1", tt.method, tt.target, fake.err, w.headerCalls)
			}
		}
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	srv := newTestServer(t, newTestConfig(t), &fakeScanAPI{})

	w := serve(srv, http.MethodGet, "/api/v1/nope", "", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if p := decodePayload(t, w.Body.Bytes()); p.Message == "" {
		t.Error("message should not be empty")
	}
}

func TestStaticServing(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Static, "index.html", "<html>app</html>")
	writeTestFile(t, cfg.Paths.Static, "app.js", "console.log(1)")
	srv := newTestServer(t, cfg, &fakeScanAPI{})

	tests := []struct {
		target    string
		wantBody  string
		wantCache string
	}{
		{"/", "<html>app</html>", "public, max-age=300"},
		{"/app.js", "console.log(1)", "public, max-age=31536000, immutable"},
		{"/settings/devices", "<html>app</html>", "public, max-age=300"},
	}
	for _, tt := range tests {
		w := serve(srv, http.MethodGet, tt.target, "", "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", tt.target, w.Code)
			continue
		}
		if w.Body.String() != tt.wantBody {
			t.Errorf("%s: body = %q, want %q", tt.target, w.Body.String(), tt.wantBody)
		}
		if got := w.Header().Get("Cache-Control"); got != tt.wantCache {
			t.Errorf("%s: Cache-Control = %q, want %q", tt.target, got, tt.wantCache)
		}
	}
}

func newAuthServer(t *testing.T, cfg *config.Config, fake *fakeScanAPI) http.Handler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mgr, err := auth.NewBasicAuthManager(map[string]string{"alice": string(hash)})
	if err != nil {
		t.Fatalf("NewBasicAuthManager: %v", err)
	}
	return NewRouter(NewHandler(fake, cfg), auth.NewMiddleware(mgr), cfg).SetupChi()
}

func TestAuth_ChallengeWithoutSideEffects(t *testing.T) {
	cfg := newTestConfig(t)
	writeTestFile(t, cfg.Paths.Output, "a.jpg", "scan")
	writeTestFile(t, cfg.Paths.Static, "index.html", "<html>app</html>")
	fake := &fakeScanAPI{}
	srv := newAuthServer(t, cfg, fake)

	requests := []struct{ method, target, body string }{
		{http.MethodDelete, "/api/v1/context", ""},
		{http.MethodDelete, "/api/v1/files/a.jpg", ""},
		{http.MethodPut, "/api/v1/files/a.jpg", `{"newName":"b.jpg"}`},
		{http.MethodPost, "/api/v1/scan", `{"params":{"deviceId":"x"}}`},
		{http.MethodGet, "/api/v1/files/a.jpg", ""},
		{http.MethodGet, "/", ""},
	}

	for _, tt := range requests {
		for _, header := range []string{"", "Basic " + base64.StdEncoding.EncodeToString([]byte("alice:wrong"))} {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			req.Header.Set("Content-Type", "application/json")
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("%s %s: status = %d, want 401", tt.method, tt.target, w.Code)
			}
			if !strings.HasPrefix(w.Header().Get("WWW-Authenticate"), "Basic ") {
				t.Errorf("%s %s: missing challenge header", tt.method, tt.target)
			}
			if strings.Contains(w.Body.String(), "scan") || strings.Contains(w.Body.String(), "<html>") {
				t.Errorf("%s %s: protected content leaked: %q", tt.method, tt.target, w.Body.String())
			}
		}
	}

	if calls := fake.Calls(); len(calls) != 0 {
		t.Errorf("collaborator called without credentials: %v", calls)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "a.jpg")); err != nil {
		t.Errorf("a.jpg should not be renamed: %v", err)
	}
}

func TestAuth_ValidCredentials(t *testing.T) {
	fake := &fakeScanAPI{}
	srv := newAuthServer(t, newTestConfig(t), fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system", nil)
	req.SetBasicAuth("alice", "secret")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if calls := fake.Calls(); len(calls) != 1 {
		t.Errorf("calls = %v", calls)
	}
}

func TestAuth_DocsAndMetricsAreOpen(t *testing.T) {
	srv := newAuthServer(t, newTestConfig(t), &fakeScanAPI{})

	for _, target := range []string{"/metrics", "/swagger/index.html"} {
		w := serve(srv, http.MethodGet, target, "", "")
		if w.Code == http.StatusUnauthorized {
			t.Errorf("%s should not require credentials", target)
		}
	}
}
