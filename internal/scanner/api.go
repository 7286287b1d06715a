// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomtom215/scanserv/internal/cache"
	"github.com/tomtom215/scanserv/internal/config"
	"github.com/tomtom215/scanserv/internal/fileinfo"
	"github.com/tomtom215/scanserv/internal/logging"
	"github.com/tomtom215/scanserv/internal/metrics"
)

// breakerName labels the scanner circuit breaker in logs and metrics.
const breakerName = "scanimage"

// API performs the scanner and file operations behind the HTTP routes.
type API struct {
	cfg *config.Config

	runner       Runner // scanner backend, behind the circuit breaker
	breaker      *BreakerRunner
	actionRunner Runner
	store        *DeviceStore
	ownsStore    bool
	thumbs       *cache.Cache[thumbnail]
	actions      []Action

	probeMu   sync.Mutex
	startedAt time.Time
	now       func() time.Time
	log       zerolog.Logger
}

// Option customises an API.
type Option func(*API)

// WithRunner replaces the scanner backend runner. It is still wrapped by the
// circuit breaker.
func WithRunner(r Runner) Option {
	return func(a *API) { a.runner = r }
}

// WithActionRunner replaces the runner used by command actions.
func WithActionRunner(r Runner) Option {
	return func(a *API) { a.actionRunner = r }
}

// WithDeviceStore supplies an already open device store. The caller keeps
// ownership and must close it.
func WithDeviceStore(s *DeviceStore) Option {
	return func(a *API) { a.store = s }
}

// WithClock overrides the time source used to name scans.
func WithClock(now func() time.Time) Option {
	return func(a *API) { a.now = now }
}

// New builds the scanner API from cfg. Close releases the device store and
// the thumbnail cache.
func New(cfg *config.Config, opts ...Option) (*API, error) {
	a := &API{
		cfg:       cfg,
		startedAt: time.Now(),
		now:       time.Now,
		log:       logging.WithComponent("scanner"),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.runner == nil {
		a.runner = ExecRunner{Timeout: cfg.Scanner.Timeout}
	}
	a.breaker = NewBreakerRunner(a.runner, breakerName, cfg.Scanner.BreakerFailures, cfg.Scanner.BreakerTimeout)
	a.runner = a.breaker

	if a.actionRunner == nil {
		a.actionRunner = ExecRunner{Timeout: cfg.Scanner.Timeout}
	}

	actions, err := newActions(cfg.Actions, a.actionRunner)
	if err != nil {
		return nil, err
	}
	a.actions = actions

	if a.store == nil {
		store, err := OpenDeviceStore(cfg.Paths.DevicesDB, cfg.Scanner.DeviceCacheTTL)
		if err != nil {
			return nil, err
		}
		a.store = store
		a.ownsStore = true
	}

	a.thumbs = cache.New[thumbnail](10*time.Minute, 512)
	return a, nil
}

// Close releases resources held by the API.
func (a *API) Close() error {
	a.thumbs.Close()
	if a.ownsStore {
		return a.store.Close()
	}
	return nil
}

// run invokes the scanner backend and records timing.
func (a *API) run(ctx context.Context, operation string, args ...string) ([]byte, error) {
	start := time.Now()
	out, err := a.runner.Run(ctx, a.cfg.Scanner.Command, args...)
	metrics.RecordScannerCommand(operation, time.Since(start), err)
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, fmt.Errorf("scanner %s: %w", operation, err)
	}
	return out, nil
}

// ReadContext returns the devices, filters, pipelines, paper sizes and
// actions available to clients. Devices are probed on first use.
func (a *API) ReadContext(ctx context.Context) (*Context, error) {
	devices, err := a.devices(ctx)
	if err != nil {
		return nil, err
	}

	actionNames := make([]string, len(a.actions))
	for i, act := range a.actions {
		actionNames[i] = act.Name()
	}

	return &Context{
		Devices:    devices,
		Filters:    FilterNames(),
		Pipelines:  PipelineNames(),
		PaperSizes: paperSizes,
		Actions:    actionNames,
		Version:    a.cfg.App.Version,
	}, nil
}

// DeleteContext forgets the probed devices; the next ReadContext re-probes.
func (a *API) DeleteContext(ctx context.Context) error {
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("clear devices: %w", err)
	}
	a.log.Info().Msg("Device cache cleared")
	return nil
}

// WarmDevices loads the stored devices, probing the backend when none are
// stored, and reports how many are known.
func (a *API) WarmDevices(ctx context.Context) (int, error) {
	devices, err := a.devices(ctx)
	if err != nil {
		return 0, err
	}
	return len(devices), nil
}

// devices returns stored devices or probes the backend.
func (a *API) devices(ctx context.Context) ([]Device, error) {
	if devices, ok, err := a.store.Load(); err != nil {
		return nil, err
	} else if ok {
		metrics.RecordCacheLookup("devices", true)
		return devices, nil
	}

	a.probeMu.Lock()
	defer a.probeMu.Unlock()

	// Another request may have finished probing while we waited.
	if devices, ok, err := a.store.Load(); err != nil {
		return nil, err
	} else if ok {
		return devices, nil
	}
	metrics.RecordCacheLookup("devices", false)

	devices, err := a.probe(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(devices); err != nil {
		return nil, err
	}
	metrics.ScannerDevices.Set(float64(len(devices)))
	return devices, nil
}

func (a *API) probe(ctx context.Context) ([]Device, error) {
	out, err := a.run(ctx, "list", "-L")
	if err != nil {
		return nil, err
	}
	devices := parseDeviceList(out)

	for _, id := range a.cfg.Scanner.Devices {
		if !containsDevice(devices, id) {
			devices = append(devices, Device{ID: id, Name: id})
		}
	}
	if len(devices) == 0 {
		return nil, notFound(ErrUnknownDevice, "no scanner devices found")
	}

	for i := range devices {
		out, err := a.run(ctx, "describe", "-A", "-d", devices[i].ID)
		if err != nil {
			return nil, err
		}
		devices[i].Features = parseDeviceFeatures(out)
	}

	a.log.Info().Int("devices", len(devices)).Msg("Scanner devices probed")
	return devices, nil
}

func containsDevice(devices []Device, id string) bool {
	for _, d := range devices {
		if d.ID == id {
			return true
		}
	}
	return false
}

// device finds a device by ID.
func (a *API) device(ctx context.Context, id string) (Device, error) {
	devices, err := a.devices(ctx)
	if err != nil {
		return Device{}, err
	}
	for _, d := range devices {
		if d.ID == id {
			return d, nil
		}
	}
	return Device{}, badRequest(ErrUnknownDevice, "unknown device %q", id)
}

// ListFiles returns the scans in the output directory, newest first.
func (a *API) ListFiles(ctx context.Context) ([]fileinfo.Entry, error) {
	return fileinfo.List(a.cfg.Paths.Output)
}

// resolve returns the named file under root, refusing names that leave root.
func resolve(root, name string) (*fileinfo.FileInfo, error) {
	f := fileinfo.New(root, name)
	if name == "" || !f.Contained() {
		return nil, badRequest(ErrInvalidName, "invalid file name %q", name)
	}
	if !f.Exists() {
		return nil, notFound(ErrNotFound, "file %q not found", name)
	}
	return f, nil
}

// FileAction runs the configured action named action against the file.
func (a *API) FileAction(ctx context.Context, name, action string) error {
	var act Action
	for _, candidate := range a.actions {
		if candidate.Name() == action {
			act = candidate
			break
		}
	}
	if act == nil {
		return notFound(ErrUnknownAction, "unknown action %q", action)
	}

	f, err := resolve(a.cfg.Paths.Output, name)
	if err != nil {
		return err
	}

	err = act.Run(ctx, f)
	metrics.RecordFileAction(act.Type(), err)
	if err != nil {
		return err
	}
	a.log.Info().Str("file", name).Str("action", action).Msg("File action completed")
	return nil
}

// DeleteFile removes a scan and its thumbnail.
func (a *API) DeleteFile(ctx context.Context, name string) (*fileinfo.Entry, error) {
	f, err := resolve(a.cfg.Paths.Output, name)
	if err != nil {
		return nil, err
	}

	entry, err := f.Delete()
	if err != nil {
		return nil, err
	}
	metrics.RecordFileOperation("delete")

	a.thumbs.Delete(name)
	if t := fileinfo.New(a.cfg.Paths.Thumbnail, name); t.Exists() {
		if _, err := t.Delete(); err != nil {
			a.log.Warn().Err(err).Str("file", name).Msg("Failed to delete thumbnail")
		}
	}
	return &entry, nil
}

// paperSizes in millimetres.
var paperSizes = []PaperSize{
	{Name: "A3", Width: 297, Height: 420},
	{Name: "A4", Width: 210, Height: 297},
	{Name: "A5", Width: 148, Height: 210},
	{Name: "A6", Width: 105, Height: 148},
	{Name: "B5", Width: 176, Height: 250},
	{Name: "Letter", Width: 215.9, Height: 279.4},
	{Name: "Legal", Width: 215.9, Height: 355.6},
	{Name: "Tabloid", Width: 279.4, Height: 431.8},
	{Name: "Photo 10x15", Width: 100, Height: 150},
	{Name: "Photo 13x18", Width: 130, Height: 180},
}
