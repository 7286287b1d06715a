// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/tomtom215/scanserv/internal/fileinfo"
	"github.com/tomtom215/scanserv/internal/metrics"
)

// WatchOutput follows the output directory until ctx is canceled. When a
// scan is removed or renamed (by a sync client, a shell), its cached and
// stored thumbnail is dropped so a later file with the same name is rendered
// fresh. The rename route moves the thumbnail before the scan, so the event
// of its own rename finds nothing left to drop.
//
// ready, when non-nil, is closed once the watch is registered.
func (a *API) WatchOutput(ctx context.Context, ready chan<- struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create output watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(a.cfg.Paths.Output); err != nil {
		return fmt.Errorf("watch %s: %w", a.cfg.Paths.Output, err)
	}
	a.log.Debug().Str("dir", a.cfg.Paths.Output).Msg("Watching output directory")
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("output watcher closed")
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				a.forgetThumbnail(filepath.Base(ev.Name))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("output watcher closed")
			}
			a.log.Warn().Err(err).Msg("Output watcher error")
		}
	}
}

// forgetThumbnail drops the cached and stored thumbnail of name.
func (a *API) forgetThumbnail(name string) {
	a.thumbs.Delete(name)

	thumb := fileinfo.New(a.cfg.Paths.Thumbnail, name)
	if !thumb.Contained() {
		return
	}
	if err := os.Remove(thumb.FullName()); err == nil {
		metrics.RecordFileOperation("thumbnail_evict")
		a.log.Debug().Str("file", name).Msg("Dropped thumbnail of removed scan")
	} else if !errors.Is(err, os.ErrNotExist) {
		a.log.Warn().Err(err).Str("file", name).Msg("Failed to drop thumbnail")
	}
}
