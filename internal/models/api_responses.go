// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package models

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Uploads string `json:"uploads"`
	Version int    `json:"version"`
}

// OKResponse acknowledges a mutation with no payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

// TrackResponse acknowledges a tracked event. Exactly one of EventID or
// Ignored is set.
type TrackResponse struct {
	OK      bool   `json:"ok"`
	EventID string `json:"eventId,omitempty"`
	Ignored bool   `json:"ignored,omitempty"`
}

// ErrorResponse is the body of every error reply. Error is a short
// machine-readable code.
type ErrorResponse struct {
	Error string `json:"error"`
}
