// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/scanserv/internal/logging"
)

// DeviceWarmer is satisfied by *scanner.API.
type DeviceWarmer interface {
	WarmDevices(ctx context.Context) (int, error)
}

// DeviceWarmupService probes scanner devices in the background so the first
// GET /context does not wait on scanimage.
//
// With a zero interval the service warms once and then asks the supervisor
// not to restart it. A positive interval (normally the device cache TTL)
// re-warms on every tick, which re-probes once the stored entry expires.
// A failed warm-up is returned so suture applies its backoff and retries.
type DeviceWarmupService struct {
	warmer   DeviceWarmer
	interval time.Duration
	name     string
}

// NewDeviceWarmupService wraps warmer.
func NewDeviceWarmupService(warmer DeviceWarmer, interval time.Duration) *DeviceWarmupService {
	return &DeviceWarmupService{
		warmer:   warmer,
		interval: interval,
		name:     "device-warmup",
	}
}

// Serve implements suture.Service.
func (s *DeviceWarmupService) Serve(ctx context.Context) error {
	if err := s.warm(ctx); err != nil {
		return err
	}
	if s.interval <= 0 {
		return suture.ErrDoNotRestart
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.warm(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *DeviceWarmupService) warm(ctx context.Context) error {
	start := time.Now()
	n, err := s.warmer.WarmDevices(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("device warm-up failed: %w", err)
	}
	logging.Debug().Int("devices", n).Dur("took", time.Since(start)).Msg("Scanner devices warm")
	return nil
}

// String names the service in supervisor events.
func (s *DeviceWarmupService) String() string {
	return s.name
}
