// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeStored   = "stored"
	OutcomeIgnored  = "ignored"
	OutcomeFailed   = "failed"
	OutcomeDeleted  = "deleted"
	OutcomeNotFound = "not_found"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Media Metrics
	MediaUploadedFiles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_uploaded_files_total",
			Help: "Total number of uploaded media files",
		},
	)

	MediaUploadedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_uploaded_bytes_total",
			Help: "Total bytes written for uploaded media files",
		},
	)

	MediaDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_deletes_total",
			Help: "Total number of media delete requests by outcome",
		},
		[]string{"outcome"}, // "deleted", "not_found", "failed"
	)

	// Analytics Metrics
	AnalyticsEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_events_total",
			Help: "Total number of tracked events by outcome",
		},
		[]string{"outcome"}, // "stored", "ignored", "failed"
	)

	AnalyticsCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_lookups_total",
			Help: "Total number of analytics view cache lookups",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	// Event Log Metrics
	EventLogGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_log_gc_runs_total",
			Help: "Total number of BadgerDB value log GC runs",
		},
		[]string{"result"}, // "ok", "error"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordUpload records one stored media file of the given size.
func RecordUpload(bytes int64) {
	MediaUploadedFiles.Inc()
	if bytes > 0 {
		MediaUploadedBytes.Add(float64(bytes))
	}
}

// RecordMediaDelete records a delete request outcome.
func RecordMediaDelete(outcome string) {
	MediaDeletes.WithLabelValues(outcome).Inc()
}

// RecordTrack records a track request outcome.
func RecordTrack(outcome string) {
	AnalyticsEvents.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup records an analytics cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		AnalyticsCacheLookups.WithLabelValues("hit").Inc()
	} else {
		AnalyticsCacheLookups.WithLabelValues("miss").Inc()
	}
}

// RecordGCRun records a value log GC pass.
func RecordGCRun(err error) {
	if err != nil {
		EventLogGCRuns.WithLabelValues("error").Inc()
		return
	}
	EventLogGCRuns.WithLabelValues("ok").Inc()
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// UpdateUptime sets the uptime gauge from the process start time.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
