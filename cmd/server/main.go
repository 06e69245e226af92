// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tomtom215/sitepulse/internal/analytics"
	"github.com/tomtom215/sitepulse/internal/api"
	"github.com/tomtom215/sitepulse/internal/cache"
	"github.com/tomtom215/sitepulse/internal/catalog"
	"github.com/tomtom215/sitepulse/internal/config"
	"github.com/tomtom215/sitepulse/internal/eventlog"
	"github.com/tomtom215/sitepulse/internal/filestore"
	"github.com/tomtom215/sitepulse/internal/logging"
	"github.com/tomtom215/sitepulse/internal/metrics"
	"github.com/tomtom215/sitepulse/internal/supervisor"
	"github.com/tomtom215/sitepulse/internal/supervisor/services"
	ws "github.com/tomtom215/sitepulse/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		File: logging.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		},
	})
	defer func() {
		_ = logging.Close()
	}()

	logging.Info().Str("version", version).Msg("Starting Sitepulse with supervisor tree")
	metrics.SetAppInfo(version)

	if stop := watchLogLevel(); stop != nil {
		defer func() {
			_ = stop()
		}()
	}

	logging.Info().
		Str("data_dir", cfg.Storage.DataDir).
		Str("uploads_dir", cfg.Storage.UploadsDir).
		Str("event_backend", cfg.Storage.EventBackend).
		Msg("Configuration loaded")

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("Sitepulse exited with error")
		_ = logging.Close()
		os.Exit(1)
	}

	logging.Info().Msg("Application stopped gracefully")
}

// run wires the stores, the API and the supervisor tree, then blocks until a
// shutdown signal arrives.
//
//nolint:gocyclo // Sequential setup steps
func run(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	mediaCatalog, err := catalog.Open(cfg.Storage.MediaCatalogPath())
	if err != nil {
		return fmt.Errorf("open media catalog: %w", err)
	}

	files, err := filestore.New(cfg.Storage.MediaDir())
	if err != nil {
		return fmt.Errorf("open upload directory: %w", err)
	}

	events, gc, err := openEventLog(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := events.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event log")
		}
	}()
	logging.Info().Str("backend", cfg.Storage.EventBackend).Msg("Event log opened")

	aggOpts := []analytics.Option{
		analytics.WithRealtimeLimit(cfg.Analytics.RealtimeLimit),
		analytics.WithTopPagesLimit(cfg.Analytics.TopPagesLimit),
	}
	if cfg.Analytics.CacheTTL > 0 {
		viewCache := cache.New[any](cfg.Analytics.CacheTTL)
		defer viewCache.Close()
		aggOpts = append(aggOpts, analytics.WithCache(viewCache))
		logging.Info().Dur("ttl", cfg.Analytics.CacheTTL).Msg("Analytics view cache enabled")
	}
	filter := analytics.NewAdminFilter(cfg.Analytics.AdminPrefixes, cfg.Analytics.AdminMarkers)
	aggregator := analytics.NewAggregator(events, filter, aggOpts...)

	wsHub := ws.NewHub()

	handler := api.NewHandler(cfg, api.Deps{
		Catalog:    mediaCatalog,
		Files:      files,
		Events:     events,
		Aggregator: aggregator,
		WSHub:      wsHub,
	})
	router := api.NewRouter(handler, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// === BUILD SUPERVISOR TREE ===

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if gc != nil {
		tree.AddDataService(services.NewEventLogGCService(gc, cfg.Storage.BadgerGCInterval))
		logging.Info().Dur("interval", cfg.Storage.BadgerGCInterval).Msg("Event log GC added to supervisor tree")
	}
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			serveErr = fmt.Errorf("supervisor tree: %w", err)
		}
		cancel()
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if n := tree.LogUnstoppedServices(); n > 0 {
		logging.Warn().Int("count", n).Msg("Services failed to stop within timeout")
	}

	return serveErr
}

// watchLogLevel reapplies logging.level whenever the config file changes.
// Other settings need a restart. It returns nil when there is no config file
// to watch.
func watchLogLevel() func() error {
	path := config.FilePath()
	if path == "" {
		return nil
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	stop, err := config.WatchConfigFile(path, func() {
		cfg, err := config.Load()
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Config reload failed, keeping current log level")
			return
		}
		logging.SetLevelString(cfg.Logging.Level)
		logging.Info().Str("level", cfg.Logging.Level).Msg("Log level reloaded from config file")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch disabled")
		return nil
	}
	logging.Info().Str("path", path).Msg("Watching config file for log level changes")
	return stop
}

// openEventLog opens the configured event log backend. The returned collector
// is non-nil only for backends that need periodic value log GC.
func openEventLog(cfg *config.Config) (eventlog.Store, services.ValueLogCollector, error) {
	switch cfg.Storage.EventBackend {
	case config.EventBackendBadger:
		store, err := eventlog.OpenBadger(eventlog.BadgerConfig{
			Path:       cfg.Storage.BadgerPath,
			SyncWrites: true,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open badger event log: %w", err)
		}
		return store, store, nil
	default:
		store, err := eventlog.OpenJSON(cfg.Storage.EventLogPath())
		if err != nil {
			return nil, nil, fmt.Errorf("open event log: %w", err)
		}
		return store, nil, nil
	}
}
