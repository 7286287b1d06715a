// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/scanserv/docs"
	"github.com/tomtom215/scanserv/internal/api"
	"github.com/tomtom215/scanserv/internal/auth"
	"github.com/tomtom215/scanserv/internal/config"
	"github.com/tomtom215/scanserv/internal/logging"
	"github.com/tomtom215/scanserv/internal/metrics"
	"github.com/tomtom215/scanserv/internal/scanner"
	"github.com/tomtom215/scanserv/internal/supervisor"
	"github.com/tomtom215/scanserv/internal/supervisor/services"
)

func main() {
	// LoadWithKoanf validates before returning.
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", cfg.App.Version).
		Str("addr", cfg.Server.Addr()).
		Str("output", cfg.Paths.Output).
		Bool("auth", cfg.Security.AuthEnabled()).
		Msg("Starting scanserv")

	prepareDirectories(cfg)

	scanAPI, err := scanner.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize scanner")
	}
	defer func() {
		if err := scanAPI.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing scanner")
		}
	}()

	var basicAuth *auth.BasicAuthManager
	if cfg.Security.AuthEnabled() {
		basicAuth, err = auth.NewBasicAuthManager(cfg.Security.Users)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize basic authentication")
		}
		logging.Info().Int("users", len(cfg.Security.Users)).Msg("Basic authentication enabled")
	}

	docs.SwaggerInfo.Title = cfg.App.Name + " API"
	docs.SwaggerInfo.Description = cfg.App.Description
	docs.SwaggerInfo.Version = cfg.App.Version
	stopAppInfo := metrics.SetAppInfo(cfg.App.Version)
	defer stopAppInfo()

	handler := api.NewHandler(scanAPI, cfg)
	router := api.NewRouter(handler, auth.NewMiddleware(basicAuth), cfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddScannerService(services.NewDeviceWarmupService(scanAPI, cfg.Scanner.DeviceCacheTTL))
	tree.AddScannerService(services.NewOutputWatchService(scanAPI))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	logging.Info().Msg("Scanserv stopped")
}

// prepareDirectories creates the working directories. Failures are logged
// and left for the first request that needs the directory to report.
func prepareDirectories(cfg *config.Config) {
	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Thumbnail, cfg.Paths.Temp} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			logging.Warn().Err(err).Str("dir", dir).Msg("Failed to create directory")
		}
	}
}
