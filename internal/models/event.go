// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package models

import "time"

// Default values applied to tracked events with missing fields.
const (
	DefaultEventType = "pageview"
	DefaultEventPath = "/"
)

// AnalyticsEvent is a single stored tracking event.
//
// TS is the ingestion time in milliseconds since the Unix epoch. Device holds
// the raw user agent or client-supplied label; classification happens at
// query time.
type AnalyticsEvent struct {
	ID        string `json:"id"`
	TS        int64  `json:"ts"`
	Type      string `json:"type"`
	Path      string `json:"path"`
	Referrer  string `json:"referrer"`
	Device    string `json:"device"`
	SessionID string `json:"sessionId"`
	IP        string `json:"ip"`
}

// Time returns the event timestamp as a time.Time.
func (e *AnalyticsEvent) Time() time.Time {
	return time.UnixMilli(e.TS)
}

// TrackRequest is the body accepted by the track endpoint. Every field is
// optional; Page is an alias for Path used by older clients. The max tags
// are length caps applied by truncation, not rejection.
type TrackRequest struct {
	Type      string `json:"type" validate:"max=256"`
	Path      string `json:"path" validate:"max=2048"`
	Page      string `json:"page" validate:"max=2048"`
	Referrer  string `json:"referrer" validate:"max=2048"`
	Device    string `json:"device" validate:"max=1024"`
	SessionID string `json:"sessionId" validate:"max=512"`
}
