// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"testing"
)

func TestParseDeviceList(t *testing.T) {
	t.Parallel()

	out := []byte("device `epson2:net:192.168.1.20' is a Epson PID 0x1234 flatbed scanner\n" +
		"device `test:0' is a Noname frontend-tester virtual device\n" +
		"\n" +
		"No scanners were identified.\n")

	devices := parseDeviceList(out)
	if len(devices) != 2 {
		t.Fatalf("parseDeviceList() returned %d devices, want 2", len(devices))
	}
	if devices[0].ID != "epson2:net:192.168.1.20" {
		t.Errorf("devices[0].ID = %q", devices[0].ID)
	}
	if devices[0].Name != "Epson PID 0x1234 flatbed scanner" {
		t.Errorf("devices[0].Name = %q", devices[0].Name)
	}
}

func TestParseDeviceFeatures(t *testing.T) {
	t.Parallel()

	features := parseDeviceFeatures([]byte(testDeviceOptions))

	tests := []struct {
		name     string
		def      string
		options  []string
		limits   []float64
		interval float64
		unit     string
		enabled  bool
	}{
		{name: "--mode", def: "Gray", options: []string{"Gray", "Color"}, enabled: true},
		{name: "--source", def: "Flatbed", options: []string{"Flatbed", "Automatic Document Feeder"}, enabled: true},
		{name: "--resolution", def: "75", options: []string{"75", "150", "300", "600"}, unit: "dpi", enabled: true},
		{name: "-x", def: "80", limits: []float64{0, 200}, unit: "mm", enabled: true},
		{name: "--brightness", def: "0", limits: []float64{-100, 100}, interval: 1, unit: "%", enabled: true},
		{name: "--contrast", def: "", limits: []float64{-100, 100}, interval: 1, unit: "%", enabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := features[tt.name]
			if !ok {
				t.Fatalf("feature %s missing; got %v", tt.name, features)
			}
			if f.Default != tt.def {
				t.Errorf("Default = %q, want %q", f.Default, tt.def)
			}
			if !equalStrings(f.Options, tt.options) {
				t.Errorf("Options = %v, want %v", f.Options, tt.options)
			}
			if !equalFloats(f.Limits, tt.limits) {
				t.Errorf("Limits = %v, want %v", f.Limits, tt.limits)
			}
			if f.Interval != tt.interval {
				t.Errorf("Interval = %v, want %v", f.Interval, tt.interval)
			}
			if f.Unit != tt.unit {
				t.Errorf("Unit = %q, want %q", f.Unit, tt.unit)
			}
			if f.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", f.Enabled, tt.enabled)
			}
		})
	}
}

func TestDeviceHelpers(t *testing.T) {
	t.Parallel()

	d := Device{ID: testDeviceID, Features: parseDeviceFeatures([]byte(testDeviceOptions))}

	if got := d.Resolutions(); !equalInts(got, []int{75, 150, 300, 600}) {
		t.Errorf("Resolutions() = %v", got)
	}
	w, h := d.MaxArea()
	if w != 200 || h != 200 {
		t.Errorf("MaxArea() = %v x %v, want 200 x 200", w, h)
	}
	if !d.has("--brightness") || d.has("--contrast") || d.has("--missing") {
		t.Error("has() should report only enabled features")
	}
}

func TestBuildScanArgs(t *testing.T) {
	t.Parallel()

	d := Device{ID: testDeviceID, Features: parseDeviceFeatures([]byte(testDeviceOptions))}
	brightness, contrast := 10, 20

	args := buildScanArgs(d, ScanParams{
		DeviceID:   testDeviceID,
		Resolution: 300,
		Mode:       "Color",
		Left:       1.5,
		Top:        2,
		Width:      100,
		Height:     150,
		Brightness: &brightness,
		Contrast:   &contrast,
	})

	want := []string{
		"-d", testDeviceID, "--format=png",
		"--resolution", "300",
		"--mode", "Color",
		"-l", "1.5", "-t", "2", "-x", "100", "-y", "150",
		"--brightness", "10",
	}
	if !equalStrings(args, want) {
		t.Errorf("buildScanArgs() = %v\nwant %v", args, want)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
