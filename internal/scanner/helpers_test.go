// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/tomtom215/scanserv/internal/config"
)

const testDeviceID = "test:0"

const testDeviceList = "device `test:0' is a Noname frontend-tester virtual device\n"

const testDeviceOptions = `
All options specific to device ` + "`test:0'" + `:
  Scan Mode:
    --mode Gray|Color [Gray]
        Selects the scan mode (e.g., lineart, monochrome, or color).
    --source Flatbed|Automatic Document Feeder [Flatbed]
        Selects the scan source.
    --resolution 75|150|300|600dpi [75]
        Sets the resolution of the scanned image.
  Geometry:
    -l 0..200mm [0]
        Top-left x position of scan area.
    -t 0..200mm [0]
        Top-left y position of scan area.
    -x 0..200mm [80]
        Width of scan-area.
    -y 0..200mm [100]
        Height of scan-area.
  Enhancement:
    --brightness -100..100% (in steps of 1) [0]
        Controls the brightness of the acquired image.
    --contrast -100..100% (in steps of 1) [inactive]
        Controls the contrast of the acquired image.
`

// fakeRunner answers scanimage invocations from canned output.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	fail  error
	image []byte
}

func newFakeRunner(t *testing.T) *fakeRunner {
	t.Helper()
	return &fakeRunner{image: testPNG(t, 40, 60)}
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{name}, args...))
	if f.fail != nil {
		return nil, f.fail
	}
	switch {
	case len(args) == 1 && args[0] == "-L":
		return []byte(testDeviceList), nil
	case len(args) > 0 && args[0] == "-A":
		return []byte(testDeviceOptions), nil
	case len(args) == 1 && args[0] == "--version":
		return []byte("scanimage (sane-backends) 1.2.1; backend version 1.2.1\n"), nil
	case len(args) > 0 && args[0] == "-d":
		return f.image, nil
	}
	return nil, errors.New("unexpected invocation: " + strings.Join(args, " "))
}

func (f *fakeRunner) count(arg string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) > 1 && c[1] == arg {
			n++
		}
	}
	return n
}

func (f *fakeRunner) last() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeRunner) setFail(err error) {
	f.mu.Lock()
	f.fail = err
	f.mu.Unlock()
}

// testPNG encodes a w x h gradient.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(40 + (x*150)/w)
			img.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		App: config.AppConfig{Name: "scanserv", Version: "9.9.9"},
		Paths: config.PathsConfig{
			Output:    filepath.Join(dir, "output"),
			Thumbnail: filepath.Join(dir, "thumbnail"),
			Temp:      filepath.Join(dir, "temp"),
			Static:    filepath.Join(dir, "client"),
		},
		Scanner: config.ScannerConfig{
			Command:           "scanimage",
			Timeout:           time.Minute,
			PreviewResolution: 100,
			ThumbnailSize:     32,
			FilenamePattern:   "scan_2006-01-02 15.04.05",
			BreakerFailures:   3,
			BreakerTimeout:    time.Minute,
		},
	}
}

func newTestAPI(t *testing.T, cfg *config.Config, runner Runner, opts ...Option) *API {
	t.Helper()
	all := append([]Option{
		WithRunner(runner),
		WithClock(func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }),
	}, opts...)

	api, err := New(cfg, all...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = api.Close() })
	return api
}

// codeOf extracts the numeric code from a scanner error, or 0.
func codeOf(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}
