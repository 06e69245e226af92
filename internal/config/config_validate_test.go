// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"empty data dir", func(c *Config) { c.Storage.DataDir = " " }, "DATA_DIR"},
		{"empty uploads dir", func(c *Config) { c.Storage.UploadsDir = "" }, "UPLOADS_DIR"},
		{"badger without path", func(c *Config) {
			c.Storage.EventBackend = EventBackendBadger
			c.Storage.BadgerPath = ""
		}, "BADGER_PATH"},
		{"badger without gc interval", func(c *Config) {
			c.Storage.EventBackend = EventBackendBadger
			c.Storage.BadgerGCInterval = 0
		}, "BADGER_GC_INTERVAL"},
		{"negative cache ttl", func(c *Config) { c.Analytics.CacheTTL = -time.Second }, "ANALYTICS_CACHE_TTL"},
		{"zero realtime limit", func(c *Config) { c.Analytics.RealtimeLimit = 0 }, "ANALYTICS_REALTIME_LIMIT"},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, "CORS_ORIGINS"},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"metrics disabled skips path", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Path = ""
		}, ""},
		{"bad log format", func(c *Config) { c.Logging.Format = "text" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}
