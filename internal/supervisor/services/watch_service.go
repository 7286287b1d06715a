// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package services

import (
	"context"
	"errors"
	"fmt"
)

// OutputWatcher is satisfied by *scanner.API.
type OutputWatcher interface {
	WatchOutput(ctx context.Context, ready chan<- struct{}) error
}

// OutputWatchService keeps the output directory watch running. The watch
// blocks until its context ends; any other exit is a failure and suture
// restarts it, which also re-registers a directory that was recreated.
type OutputWatchService struct {
	watcher OutputWatcher
	name    string
}

// NewOutputWatchService wraps watcher.
func NewOutputWatchService(watcher OutputWatcher) *OutputWatchService {
	return &OutputWatchService{watcher: watcher, name: "output-watch"}
}

// Serve implements suture.Service.
func (s *OutputWatchService) Serve(ctx context.Context) error {
	err := s.watcher.WatchOutput(ctx, nil)
	if ctx.Err() != nil && (err == nil || errors.Is(err, ctx.Err())) {
		return ctx.Err()
	}
	if err == nil {
		err = errors.New("watch ended")
	}
	return fmt.Errorf("output watch failed: %w", err)
}

// String names the service in supervisor events.
func (s *OutputWatchService) String() string {
	return s.name
}
