// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered on the default registry through promauto and exposed
by the HTTP layer at the configured metrics path (default /metrics):

	curl http://localhost:4000/metrics

# Available Metrics

HTTP:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Media:
  - media_uploaded_files_total
  - media_uploaded_bytes_total
  - media_deletes_total{outcome}: deleted, not_found, failed

Analytics:
  - analytics_events_total{outcome}: stored, ignored, failed
  - analytics_cache_lookups_total{result}: hit, miss

WebSocket:
  - websocket_connections
  - websocket_messages_sent_total

Event log:
  - event_log_gc_runs_total{result}: ok, error

System:
  - app_info{version, go_version}
  - app_uptime_seconds
*/
package metrics
