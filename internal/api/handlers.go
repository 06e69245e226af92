// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package api

import (
	"time"

	"github.com/tomtom215/sitepulse/internal/analytics"
	"github.com/tomtom215/sitepulse/internal/catalog"
	"github.com/tomtom215/sitepulse/internal/config"
	"github.com/tomtom215/sitepulse/internal/eventlog"
	"github.com/tomtom215/sitepulse/internal/filestore"
	ws "github.com/tomtom215/sitepulse/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness probes
//   - handlers_media.go: media list, upload and delete
//   - handlers_analytics.go: event ingestion and analytics views
//   - handlers_live.go: websocket activity feed
type Handler struct {
	catalog    *catalog.Catalog
	files      *filestore.Store
	events     eventlog.Store
	aggregator *analytics.Aggregator
	filter     analytics.AdminFilter
	wsHub      *ws.Hub
	config     *config.Config
	startTime  time.Time
}

// Deps bundles the stores and services a Handler works on. WSHub may be nil,
// which disables live broadcasts and the /live endpoint.
type Deps struct {
	Catalog    *catalog.Catalog
	Files      *filestore.Store
	Events     eventlog.Store
	Aggregator *analytics.Aggregator
	WSHub      *ws.Hub
}

// NewHandler creates a new API handler.
//
// The admin filter is built from cfg so that ingestion and the aggregator
// apply the same prefixes and markers.
//
//	handler := api.NewHandler(cfg, api.Deps{Catalog: cat, Files: files, Events: events, Aggregator: agg, WSHub: hub})
//	router := api.NewRouter(handler, cfg)
//	server := &http.Server{Handler: router.SetupChi()}
func NewHandler(cfg *config.Config, deps Deps) *Handler {
	return &Handler{
		catalog:    deps.Catalog,
		files:      deps.Files,
		events:     deps.Events,
		aggregator: deps.Aggregator,
		filter:     analytics.NewAdminFilter(cfg.Analytics.AdminPrefixes, cfg.Analytics.AdminMarkers),
		wsHub:      deps.WSHub,
		config:     cfg,
		startTime:  time.Now(),
	}
}
