// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/sitepulse/internal/config"
	"github.com/tomtom215/sitepulse/internal/middleware"
)

// Router wires handlers and middleware into a Chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	config        *config.Config
}

// NewRouter creates a router for handler using the security and metrics
// settings from cfg.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFrom(cfg.Security)),
		config:        cfg,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, nil)
	})

	limit := router.chiMiddleware.RateLimit()

	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/health", h.Health)
		r.Get("/health/ready", h.HealthReady)

		r.Route("/media", func(r chi.Router) {
			r.Get("/", h.ListMedia)
			r.With(limit).Post("/", h.UploadMedia)
			r.With(limit).Delete("/{id}", h.DeleteMedia)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.With(limit).Post("/track", h.Track)

			r.Group(func(r chi.Router) {
				r.Use(chimiddleware.Compress(5, "application/json"))
				r.Get("/summary", h.AnalyticsSummary)
				r.Get("/timeseries", h.AnalyticsTimeseries)
				r.Get("/top-pages", h.AnalyticsTopPages)
				r.Get("/sources", h.AnalyticsSources)
				r.Get("/devices", h.AnalyticsDevices)
				r.Get("/realtime", h.AnalyticsRealtime)
			})

			r.Get("/live", h.AnalyticsLive)
		})
	})

	uploads := http.StripPrefix(UploadsURLPrefix, noDirListing(http.FileServer(http.Dir(router.config.Storage.UploadsDir))))
	r.Handle(UploadsURLPrefix+"/*", uploads)

	if router.config.Metrics.Enabled {
		r.Handle(router.config.Metrics.Path, promhttp.Handler())
	}

	return r
}

// noDirListing hides directory indexes so only stored files are reachable.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
