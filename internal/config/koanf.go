// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/scanserv/config.yaml",
	"/etc/scanserv/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "scanserv",
			Description: "Network scanner HTTP API",
			Version:     "1.0.0",
		},
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Paths: PathsConfig{
			Output:    "./data/output",
			Thumbnail: "./data/thumbnail",
			Temp:      "./data/temp",
			Static:    "./client",
			DevicesDB: "./data/devices",
		},
		Security: SecurityConfig{
			Users:             map[string]string{},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Scanner: ScannerConfig{
			Command:           "scanimage",
			Timeout:           5 * time.Minute,
			PreviewResolution: 100,
			ThumbnailSize:     256,
			FilenamePattern:   "scan_2006-01-02 15.04.05",
			DeviceCacheTTL:    0,
			BreakerFailures:   3,
			BreakerTimeout:    30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// OUTPUT_DIR -> paths.output
	// SCANNER_PREVIEW_RESOLUTION -> scanner.preview_resolution
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processUserField(k); err != nil {
		return nil, fmt.Errorf("failed to process users: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"scanner.devices",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		if trimmed := splitList(strVal); len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// processUserField converts USERS=alice:pw,bob:pw2 into the security.users map.
// A YAML mapping is left untouched.
func processUserField(k *koanf.Koanf) error {
	strVal, ok := k.Get("security.users").(string)
	if !ok {
		return nil
	}

	users, err := ParseUsers(strVal)
	if err != nil {
		return err
	}

	// Delete first so the string value does not survive the merge.
	k.Delete("security.users")
	m := make(map[string]interface{}, len(users))
	for name, pw := range users {
		m[name] = pw
	}
	return k.Set("security.users", m)
}

// ParseUsers parses a comma-separated list of user:password pairs.
// The password is everything after the first colon and may itself contain colons.
func ParseUsers(s string) (map[string]string, error) {
	users := make(map[string]string)
	for _, pair := range splitList(s) {
		name, pw, found := strings.Cut(pair, ":")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid user entry %q: expected user:password", pair)
		}
		users[name] = pw
	}
	return users, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			trimmed = append(trimmed, p)
		}
	}
	return trimmed
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Only mapped names are loaded; everything else in the environment is ignored.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - OUTPUT_DIR -> paths.output
//   - USERS -> security.users
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Application info
		"app_name":        "app.name",
		"app_description": "app.description",
		"app_version":     "app.version",

		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Path mappings
		"output_dir":     "paths.output",
		"thumbnail_dir":  "paths.thumbnail",
		"temp_dir":       "paths.temp",
		"static_dir":     "paths.static",
		"devices_db_dir": "paths.devices_db",

		// Security mappings
		"users":               "security.users",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",

		// Scanner mappings
		"scanner_command":            "scanner.command",
		"scanner_timeout":            "scanner.timeout",
		"scanner_preview_resolution": "scanner.preview_resolution",
		"scanner_thumbnail_size":     "scanner.thumbnail_size",
		"scanner_filename_pattern":   "scanner.filename_pattern",
		"scanner_device_cache_ttl":   "scanner.device_cache_ttl",
		"scanner_devices":            "scanner.devices",
		"scanner_breaker_failures":   "scanner.breaker_failures",
		"scanner_breaker_timeout":    "scanner.breaker_timeout",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
