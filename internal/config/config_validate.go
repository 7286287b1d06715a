// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validatePaths(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateScanner(); err != nil {
		return err
	}

	if err := c.validateActions(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

// validatePaths requires every working directory to be set. Directories are
// created at startup, so they need not exist yet.
func (c *Config) validatePaths() error {
	required := []struct {
		env   string
		value string
	}{
		{"OUTPUT_DIR", c.Paths.Output},
		{"THUMBNAIL_DIR", c.Paths.Thumbnail},
		{"TEMP_DIR", c.Paths.Temp},
		{"STATIC_DIR", c.Paths.Static},
	}
	for _, p := range required {
		if strings.TrimSpace(p.value) == "" {
			return fmt.Errorf("%s must not be empty", p.env)
		}
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	for name := range c.Security.Users {
		if name == "" {
			return fmt.Errorf("USERS contains an empty username")
		}
		if strings.Contains(name, ":") {
			return fmt.Errorf("USERS username %q must not contain ':'", name)
		}
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	return c.validateRateLimits()
}

// validateCORS rejects wildcard CORS in production when credentials are configured.
func (c *Config) validateCORS() error {
	if c.Security.AuthEnabled() && c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production with authentication enabled. " +
			"Set specific origins: CORS_ORIGINS=https://scanner.example.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Security.AuthEnabled() && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting bounds. Skipped when rate limiting is disabled.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d, got %d",
			minRateLimitRequests, maxRateLimitRequests, c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v, got %v",
			minRateLimitWindow, maxRateLimitWindow, c.Security.RateLimitWindow)
	}
	return nil
}

// validateScanner validates scanner backend settings
func (c *Config) validateScanner() error {
	if strings.TrimSpace(c.Scanner.Command) == "" {
		return fmt.Errorf("SCANNER_COMMAND must not be empty")
	}
	if c.Scanner.Timeout <= 0 {
		return fmt.Errorf("SCANNER_TIMEOUT must be positive")
	}
	if c.Scanner.PreviewResolution < 1 {
		return fmt.Errorf("SCANNER_PREVIEW_RESOLUTION must be positive")
	}
	if c.Scanner.ThumbnailSize < 16 || c.Scanner.ThumbnailSize > 4096 {
		return fmt.Errorf("SCANNER_THUMBNAIL_SIZE must be between 16 and 4096")
	}
	if c.Scanner.FilenamePattern == "" {
		return fmt.Errorf("SCANNER_FILENAME_PATTERN must not be empty")
	}
	if c.Scanner.BreakerFailures == 0 {
		return fmt.Errorf("SCANNER_BREAKER_FAILURES must be at least 1")
	}
	return nil
}

// validateActions checks that every action is named, unique and fully configured.
func (c *Config) validateActions() error {
	seen := make(map[string]bool, len(c.Actions))
	for i, a := range c.Actions {
		if a.Name == "" {
			return fmt.Errorf("actions[%d]: name is required", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("actions[%d]: duplicate action name %q", i, a.Name)
		}
		seen[a.Name] = true

		switch a.Type {
		case ActionTypeCommand:
			if a.Command == "" {
				return fmt.Errorf("action %q: command is required", a.Name)
			}
		case ActionTypeS3:
			if a.Endpoint == "" || a.Bucket == "" {
				return fmt.Errorf("action %q: endpoint and bucket are required", a.Name)
			}
		default:
			return fmt.Errorf("action %q: type must be one of: %s, %s", a.Name, ActionTypeCommand, ActionTypeS3)
		}
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
