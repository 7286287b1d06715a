// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// A Config is built once in main, validated, and then passed by pointer to every
// component that needs it. Nothing mutates it after startup.
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	srv := &http.Server{Addr: cfg.Server.Addr()}
type Config struct {
	App      AppConfig      `koanf:"app"`
	Server   ServerConfig   `koanf:"server"`
	Paths    PathsConfig    `koanf:"paths"`
	Security SecurityConfig `koanf:"security"`
	Scanner  ScannerConfig  `koanf:"scanner"`
	Actions  []ActionConfig `koanf:"actions"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// AppConfig describes the application. The values are published in the
// generated API document.
type AppConfig struct {
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
	Version     string `koanf:"version"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PathsConfig holds the directories the server reads and writes.
type PathsConfig struct {
	// Output is where finished scans are stored and served from /files.
	Output string `koanf:"output"`

	// Thumbnail holds generated thumbnails, named after their source file.
	Thumbnail string `koanf:"thumbnail"`

	// Temp holds previews and intermediate scan output.
	Temp string `koanf:"temp"`

	// Static is the client bundle served at the site root.
	Static string `koanf:"static"`

	// DevicesDB is the Badger directory used to persist probed devices.
	// Empty keeps the device store in memory.
	DevicesDB string `koanf:"devices_db"`
}

// SecurityConfig holds authentication and request limiting settings
type SecurityConfig struct {
	// Users maps usernames to plaintext passwords. Basic authentication is
	// enabled when at least one user is configured.
	// Env: USERS=alice:secret,bob:hunter2
	Users map[string]string `koanf:"users"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// AuthEnabled reports whether any credentials are configured.
func (s SecurityConfig) AuthEnabled() bool {
	return len(s.Users) > 0
}

// ScannerConfig controls how the scanimage backend is driven.
type ScannerConfig struct {
	// Command is the SANE frontend binary. Default: scanimage
	Command string `koanf:"command"`

	// Timeout bounds a single scanner invocation.
	Timeout time.Duration `koanf:"timeout"`

	// PreviewResolution is the dpi used for previews.
	PreviewResolution int `koanf:"preview_resolution"`

	// ThumbnailSize is the longest edge of generated thumbnails in pixels.
	ThumbnailSize int `koanf:"thumbnail_size"`

	// FilenamePattern is a Go time layout used to name scans.
	FilenamePattern string `koanf:"filename_pattern"`

	// DeviceCacheTTL is how long probed devices stay valid. Zero never expires.
	DeviceCacheTTL time.Duration `koanf:"device_cache_ttl"`

	// Devices lists extra device IDs probed in addition to scanimage -L output.
	Devices []string `koanf:"devices"`

	// BreakerFailures is the number of consecutive scanner failures that open
	// the circuit breaker.
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// Action types
const (
	ActionTypeCommand = "command"
	ActionTypeS3      = "s3"
)

// ActionConfig describes a named action that can be run against a scanned file.
//
// A command action runs Command with Args; the placeholder {filename} in any
// argument is replaced with the absolute path of the file. An s3 action
// uploads the file to Bucket under Prefix.
type ActionConfig struct {
	Name    string   `koanf:"name"`
	Type    string   `koanf:"type"`
	Command string   `koanf:"command"`
	Args    []string `koanf:"args"`

	Endpoint  string `koanf:"endpoint"`
	Bucket    string `koanf:"bucket"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	UseSSL    bool   `koanf:"use_ssl"`
	Prefix    string `koanf:"prefix"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}
