// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/tomtom215/scanserv/internal/fileinfo"
	"github.com/tomtom215/scanserv/internal/metrics"
)

// previewName is the raw preview kept in the temp directory.
const previewName = "preview.png"

// placeholder dimensions roughly match an A4 page at low resolution.
const (
	placeholderWidth  = 210
	placeholderHeight = 297
)

func (a *API) previewFile() *fileinfo.FileInfo {
	return fileinfo.New(a.cfg.Paths.Temp, previewName)
}

// CreatePreview captures a low resolution scan of the whole bed.
func (a *API) CreatePreview(ctx context.Context, req PreviewRequest) (result *PreviewResult, err error) {
	defer func() { metrics.RecordScan("preview", err) }()

	dev, err := a.device(ctx, req.Params.DeviceID)
	if err != nil {
		return nil, err
	}

	params := req.Params
	params.Resolution = a.cfg.Scanner.PreviewResolution
	params.Left, params.Top = 0, 0
	params.Width, params.Height = dev.MaxArea()

	out, err := a.run(ctx, "preview", buildScanArgs(dev, params)...)
	if err != nil {
		return nil, err
	}

	f := a.previewFile()
	if err := writeAtomic(a.cfg.Paths.Temp, previewName, out); err != nil {
		return nil, err
	}
	entry, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &PreviewResult{File: entry}, nil
}

// ReadPreview returns the current preview as JPEG with filters applied. When
// no preview has been captured a blank page is returned.
func (a *API) ReadPreview(ctx context.Context, filterNames []string) ([]byte, error) {
	if err := validateFilters(filterNames); err != nil {
		return nil, err
	}

	var img image.Image
	f := a.previewFile()
	if f.Exists() {
		decoded, err := imaging.Open(f.FullName())
		if err != nil {
			return nil, fmt.Errorf("decode preview: %w", err)
		}
		img = applyFilters(decoded, filterNames)
	} else {
		img = imaging.New(placeholderWidth, placeholderHeight, color.White)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(75)); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// DeletePreview removes the captured preview.
func (a *API) DeletePreview(ctx context.Context) (*fileinfo.Entry, error) {
	entry, err := a.previewFile().Delete()
	if errors.Is(err, fileinfo.ErrNotExist) {
		return nil, notFound(ErrNoPreview, "no preview to delete")
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// buildScanArgs turns request parameters into scanimage arguments. Options
// the device does not report are left out.
func buildScanArgs(dev Device, p ScanParams) []string {
	args := []string{"-d", dev.ID, "--format=png"}

	if p.Resolution > 0 {
		args = append(args, "--resolution", strconv.Itoa(p.Resolution))
	}
	if p.Mode != "" && dev.has("--mode") {
		args = append(args, "--mode", p.Mode)
	}
	if p.Source != "" && dev.has("--source") {
		args = append(args, "--source", p.Source)
	}
	if p.Width > 0 && p.Height > 0 {
		args = append(args,
			"-l", formatMM(p.Left),
			"-t", formatMM(p.Top),
			"-x", formatMM(p.Width),
			"-y", formatMM(p.Height),
		)
	}
	if p.Brightness != nil && dev.has("--brightness") {
		args = append(args, "--brightness", strconv.Itoa(*p.Brightness))
	}
	if p.Contrast != nil && dev.has("--contrast") {
		args = append(args, "--contrast", strconv.Itoa(*p.Contrast))
	}
	return args
}

func (d Device) has(feature string) bool {
	f, ok := d.Features[feature]
	return ok && f.Enabled
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
