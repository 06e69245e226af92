// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

// Package config loads Sitepulse configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	server := http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)}
package config

import (
	"path/filepath"
	"time"
)

// Event log backends.
const (
	EventBackendJSON   = "json"
	EventBackendBadger = "badger"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Uploads   UploadsConfig   `koanf:"uploads"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StorageConfig holds on-disk locations for the catalog, the event log and uploaded files.
type StorageConfig struct {
	DataDir    string `koanf:"data_dir"`
	UploadsDir string `koanf:"uploads_dir"`

	// EventBackend selects the event log store: "json" (single document) or "badger".
	EventBackend     string        `koanf:"event_backend"`
	BadgerPath       string        `koanf:"badger_path"`
	BadgerGCInterval time.Duration `koanf:"badger_gc_interval"`
}

// MediaCatalogPath returns the media catalog document path.
func (s StorageConfig) MediaCatalogPath() string {
	return filepath.Join(s.DataDir, "media.json")
}

// EventLogPath returns the JSON event log document path.
func (s StorageConfig) EventLogPath() string {
	return filepath.Join(s.DataDir, "analytics.json")
}

// MediaDir returns the directory uploaded media files are written to.
func (s StorageConfig) MediaDir() string {
	return filepath.Join(s.UploadsDir, "media")
}

// UploadsConfig holds multipart upload limits
type UploadsConfig struct {
	MaxFiles        int   `koanf:"max_files"`
	MaxRequestBytes int64 `koanf:"max_request_bytes"`
}

// AnalyticsConfig holds aggregation and filtering settings
type AnalyticsConfig struct {
	AdminPrefixes []string      `koanf:"admin_prefixes"`
	AdminMarkers  []string      `koanf:"admin_markers"`
	RealtimeLimit int           `koanf:"realtime_limit"`
	TopPagesLimit int           `koanf:"top_pages_limit"`
	CacheTTL      time.Duration `koanf:"cache_ttl"` // 0 disables the period view cache
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Caller     bool   `koanf:"caller"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Load reads configuration from defaults, an optional config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
