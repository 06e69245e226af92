// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - Request ID: UUID-based request tracking, propagated into the logging context
  - Access Log: one structured zerolog line per request
  - Prometheus Metrics: request count, latency and in-flight gauge

All three take and return http.HandlerFunc; the router adapts them to chi
with a small wrapper. The typical order for an API route is:

	middleware.RequestID(          // request_id + correlation_id in context
	    middleware.AccessLog(      // method, route, status, duration
	        middleware.PrometheusMetrics(
	            handler,
	        ),
	    ),
	)

Status codes are captured by a wrapping ResponseWriter that still exposes
http.Hijacker and http.Flusher, so WebSocket upgrades work behind it.
*/
package middleware
