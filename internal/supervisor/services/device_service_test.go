// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type fakeWarmer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeWarmer) WarmDevices(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

var _ suture.Service = (*DeviceWarmupService)(nil)

func TestDeviceWarmupService_OnceWithoutInterval(t *testing.T) {
	warmer := &fakeWarmer{}
	err := NewDeviceWarmupService(warmer, 0).Serve(context.Background())

	if !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() = %v, want ErrDoNotRestart", err)
	}
	if n := warmer.calls.Load(); n != 1 {
		t.Errorf("WarmDevices calls = %d, want 1", n)
	}
}

func TestDeviceWarmupService_FailureIsReturned(t *testing.T) {
	probeErr := errors.New("scanimage: no devices")
	warmer := &fakeWarmer{err: probeErr}

	err := NewDeviceWarmupService(warmer, time.Minute).Serve(context.Background())
	if !errors.Is(err, probeErr) {
		t.Errorf("Serve() = %v, want wrapped probe error", err)
	}
}

func TestDeviceWarmupService_RefreshesOnInterval(t *testing.T) {
	warmer := &fakeWarmer{}
	svc := NewDeviceWarmupService(warmer, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
	if n := warmer.calls.Load(); n < 3 {
		t.Errorf("WarmDevices calls = %d, want at least 3", n)
	}
	if svc.String() != "device-warmup" {
		t.Errorf("String() = %q", svc.String())
	}
}
