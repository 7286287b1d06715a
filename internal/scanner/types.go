// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"time"

	"github.com/tomtom215/scanserv/internal/fileinfo"
)

// Device is a scanner reported by the backend together with the options it accepts.
type Device struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Features map[string]Feature `json:"features"`
}

// Feature is one device option as reported by scanimage -A, e.g. --resolution.
type Feature struct {
	Text     string    `json:"text"`
	Default  string    `json:"default,omitempty"`
	Options  []string  `json:"options,omitempty"`  // discrete values: Color|Gray|Lineart
	Limits   []float64 `json:"limits,omitempty"`   // [min, max] for range values
	Interval float64   `json:"interval,omitempty"` // range step, 0 when unspecified
	Unit     string    `json:"unit,omitempty"`
	Enabled  bool      `json:"enabled"`
}

// PaperSize is a named page size in millimetres.
type PaperSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Context is everything a client needs to build a scan request.
type Context struct {
	Devices    []Device    `json:"devices"`
	Filters    []string    `json:"filters"`
	Pipelines  []string    `json:"pipelines"`
	PaperSizes []PaperSize `json:"paperSizes"`
	Actions    []string    `json:"actions"`
	Version    string      `json:"version"`
}

// ScanParams are the device parameters of a scan. Geometry is in millimetres.
type ScanParams struct {
	DeviceID   string  `json:"deviceId" validate:"required"`
	Resolution int     `json:"resolution" validate:"omitempty,min=1,max=9600"`
	Mode       string  `json:"mode,omitempty"`
	Source     string  `json:"source,omitempty"`
	Left       float64 `json:"left" validate:"min=0"`
	Top        float64 `json:"top" validate:"min=0"`
	Width      float64 `json:"width" validate:"min=0"`
	Height     float64 `json:"height" validate:"min=0"`
	Brightness *int    `json:"brightness,omitempty" validate:"omitempty,min=-100,max=100"`
	Contrast   *int    `json:"contrast,omitempty" validate:"omitempty,min=-100,max=100"`
}

// ScanRequest is the body of POST /scan.
type ScanRequest struct {
	Params   ScanParams `json:"params" validate:"required"`
	Filters  []string   `json:"filters,omitempty"`
	Pipeline string     `json:"pipeline,omitempty"`
}

// PreviewRequest is the body of POST /preview.
type PreviewRequest struct {
	Params ScanParams `json:"params" validate:"required"`
}

// ScanResult describes the file a scan produced.
type ScanResult struct {
	File fileinfo.Entry `json:"file"`
}

// PreviewResult describes a freshly captured preview.
type PreviewResult struct {
	File fileinfo.Entry `json:"file"`
}

// SystemInfo reports host and runtime details.
type SystemInfo struct {
	OS            string    `json:"os"`
	Arch          string    `json:"arch"`
	GoVersion     string    `json:"goVersion"`
	Hostname      string    `json:"hostname"`
	NumCPU        int       `json:"numCpu"`
	StartedAt     time.Time `json:"startedAt"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
	Version       string    `json:"version"`
	Backend       string    `json:"backend"`
	BackendInfo   string    `json:"backendInfo,omitempty"`
	Devices       int       `json:"devices"`
	Breaker       string    `json:"breaker"`
}
