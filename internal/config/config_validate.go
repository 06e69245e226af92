// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/sitepulse/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateUploads(); err != nil {
		return err
	}

	if err := c.validateAnalytics(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if strings.TrimSpace(c.Storage.UploadsDir) == "" {
		return fmt.Errorf("UPLOADS_DIR is required")
	}

	switch c.Storage.EventBackend {
	case EventBackendJSON:
		return nil
	case EventBackendBadger:
		if strings.TrimSpace(c.Storage.BadgerPath) == "" {
			return fmt.Errorf("BADGER_PATH is required when EVENT_BACKEND=badger")
		}
		if c.Storage.BadgerGCInterval <= 0 {
			return fmt.Errorf("BADGER_GC_INTERVAL must be positive when EVENT_BACKEND=badger")
		}
		return nil
	default:
		return fmt.Errorf("EVENT_BACKEND must be %q or %q, got %q", EventBackendJSON, EventBackendBadger, c.Storage.EventBackend)
	}
}

func (c *Config) validateUploads() error {
	if c.Uploads.MaxFiles < 1 {
		return fmt.Errorf("UPLOAD_MAX_FILES must be at least 1, got %d", c.Uploads.MaxFiles)
	}
	if c.Uploads.MaxRequestBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

func (c *Config) validateAnalytics() error {
	if c.Analytics.RealtimeLimit < 1 {
		return fmt.Errorf("ANALYTICS_REALTIME_LIMIT must be at least 1, got %d", c.Analytics.RealtimeLimit)
	}
	if c.Analytics.TopPagesLimit < 1 {
		return fmt.Errorf("ANALYTICS_TOP_PAGES_LIMIT must be at least 1, got %d", c.Analytics.TopPagesLimit)
	}
	if c.Analytics.CacheTTL < 0 {
		return fmt.Errorf("ANALYTICS_CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin (use * for any)")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1 when rate limiting is enabled")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateMetrics() error {
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with /, got %q", c.Metrics.Path)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a recognized level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
