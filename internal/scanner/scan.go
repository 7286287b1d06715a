// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/tomtom215/scanserv/internal/fileinfo"
	"github.com/tomtom215/scanserv/internal/metrics"
)

// Scan captures an image with the requested parameters, applies filters,
// encodes it with the pipeline and stores it in the output directory.
func (a *API) Scan(ctx context.Context, req ScanRequest) (result *ScanResult, err error) {
	defer func() { metrics.RecordScan("scan", err) }()

	if err := validateFilters(req.Filters); err != nil {
		return nil, err
	}
	pipeline, err := lookupPipeline(req.Pipeline)
	if err != nil {
		return nil, err
	}
	dev, err := a.device(ctx, req.Params.DeviceID)
	if err != nil {
		return nil, err
	}

	params := req.Params
	if params.Resolution == 0 {
		if def, err := strconv.Atoi(dev.Features["--resolution"].Default); err == nil {
			params.Resolution = def
		}
	}

	raw, err := a.run(ctx, "scan", buildScanArgs(dev, params)...)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode scan: %w", err)
	}
	img = applyFilters(img, req.Filters)

	var buf bytes.Buffer
	if err := pipeline.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode scan as %s: %w", pipeline.Name, err)
	}

	name := a.uniqueName(a.now().Format(a.cfg.Scanner.FilenamePattern), pipeline.Extension)
	if err := writeAtomic(a.cfg.Paths.Output, name, buf.Bytes()); err != nil {
		return nil, err
	}

	entry, err := fileinfo.New(a.cfg.Paths.Output, name).Stat()
	if err != nil {
		return nil, err
	}

	a.log.Info().
		Str("device", dev.ID).
		Str("file", name).
		Str("pipeline", pipeline.Name).
		Int("resolution", params.Resolution).
		Msg("Scan completed")
	return &ScanResult{File: entry}, nil
}

// uniqueName appends _2, _3... to base until no file of that name exists.
func (a *API) uniqueName(base, ext string) string {
	name := base + ext
	for i := 2; fileinfo.New(a.cfg.Paths.Output, name).Exists(); i++ {
		name = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
	return name
}

// writeAtomic writes data to dir/name through a temporary file in the same
// directory so readers never see a partial file.
func writeAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store %s: %w", name, err)
	}
	return nil
}
