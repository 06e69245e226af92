// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

/*
Package api provides the HTTP surface of Sitepulse using the Chi router.

# Routes

	GET    /api/health                  liveness probe
	GET    /api/health/ready            readiness probe (data and upload dirs)
	GET    /api/media                   list media records
	POST   /api/media                   multipart upload, field "files"
	DELETE /api/media/{id}              delete one record and its file
	GET    /uploads/*                   uploaded files
	POST   /api/analytics/track         ingest one event
	GET    /api/analytics/summary       ?period=1d|7d|30d|90d|1y
	GET    /api/analytics/timeseries    ?period=
	GET    /api/analytics/top-pages     ?period=
	GET    /api/analytics/sources       ?period=
	GET    /api/analytics/devices       ?period=
	GET    /api/analytics/realtime      newest 20 events
	GET    /api/analytics/live          websocket activity feed
	GET    /metrics                     Prometheus exposition (configurable)

# Middleware

Every request passes through request ID assignment, access logging, RealIP,
panic recovery and CORS. /api routes add security headers and Prometheus
request metrics. Mutating routes (upload, delete, track) are rate limited
per client IP with go-chi/httprate.

# Responses

Success bodies are the bare payload: arrays for lists and objects for
acknowledgements. Errors are always {"error":"<code>"} with an optional
"message", for example:

	{"error":"no_files"}
	{"error":"too_many_files"}
	{"error":"not_found"}
	{"error":"failed_to_track"}
*/
package api
