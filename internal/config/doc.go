// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package config provides centralized configuration management for Scanserv.

Configuration is layered with Koanf v2. Struct defaults load first, then an
optional YAML file, then environment variables. The first config file found in
CONFIG_PATH, config.yaml, config.yml or /etc/scanserv/config.yaml is used.

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development or production

Paths:
  - OUTPUT_DIR: Finished scans (default: ./data/output)
  - THUMBNAIL_DIR: Generated thumbnails (default: ./data/thumbnail)
  - TEMP_DIR: Previews and intermediate files (default: ./data/temp)
  - STATIC_DIR: Client bundle served at / (default: ./client)
  - DEVICES_DB_DIR: Badger directory for probed devices; empty keeps it in memory

Security:
  - USERS: Comma-separated user:password pairs; enables basic auth when set
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Scanner:
  - SCANNER_COMMAND (default: scanimage), SCANNER_TIMEOUT
  - SCANNER_PREVIEW_RESOLUTION, SCANNER_THUMBNAIL_SIZE, SCANNER_FILENAME_PATTERN
  - SCANNER_DEVICES: Extra device IDs to probe
  - SCANNER_DEVICE_CACHE_TTL, SCANNER_BREAKER_FAILURES, SCANNER_BREAKER_TIMEOUT

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line

File actions can only be configured in YAML:

	actions:
	  - name: print
	    type: command
	    command: lp
	    args: ["{filename}"]
	  - name: archive
	    type: s3
	    endpoint: minio.local:9000
	    bucket: scans
	    access_key: scanserv
	    secret_key: change-me
*/
package config
