// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/disintegration/imaging"
	"github.com/tomtom215/scanserv/internal/fileinfo"
	"github.com/tomtom215/scanserv/internal/metrics"
)

// thumbnail is a cached JPEG keyed by file name. source is the modification
// time of the scan it was rendered from, so a replaced scan is re-rendered.
type thumbnail struct {
	source int64
	data   []byte
}

// ReadThumbnail returns a JPEG thumbnail of the named scan. Thumbnails are
// kept in memory and written under the thumbnail directory with the same
// name as the scan.
func (a *API) ReadThumbnail(ctx context.Context, name string) ([]byte, error) {
	f, err := resolve(a.cfg.Paths.Output, name)
	if err != nil {
		return nil, err
	}
	src, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if t, ok := a.thumbs.Get(name); ok && t.source == src.LastModified {
		metrics.RecordCacheLookup("thumbnail", true)
		return t.data, nil
	}
	metrics.RecordCacheLookup("thumbnail", false)
	metrics.RecordFileOperation("thumbnail")

	onDisk := fileinfo.New(a.cfg.Paths.Thumbnail, name)
	if st, err := onDisk.Stat(); err == nil && st.LastModified >= src.LastModified {
		data, err := onDisk.ReadAll()
		if err == nil {
			a.thumbs.Set(name, thumbnail{source: src.LastModified, data: data})
			return data, nil
		}
	}

	data, err := a.renderThumbnail(f)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(a.cfg.Paths.Thumbnail, 0o750); err != nil {
		a.log.Warn().Err(err).Msg("Failed to create thumbnail directory")
	} else if err := os.WriteFile(onDisk.FullName(), data, 0o640); err != nil {
		a.log.Warn().Err(err).Str("file", name).Msg("Failed to store thumbnail")
	}

	a.thumbs.Set(name, thumbnail{source: src.LastModified, data: data})
	return data, nil
}

func (a *API) renderThumbnail(f *fileinfo.FileInfo) ([]byte, error) {
	img, err := imaging.Open(f.FullName(), imaging.AutoOrientation(true))
	if err != nil {
		return nil, newError(http.StatusUnsupportedMediaType, ErrUnsupported, "cannot render thumbnail for %q: %v", f.Name(), err)
	}

	size := a.cfg.Scanner.ThumbnailSize
	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
