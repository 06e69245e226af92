// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

// Package eventlog stores tracked analytics events append-only.
//
// Two backends implement Store:
//   - JSONStore keeps every event in one JSON document (the default)
//   - BadgerStore keeps one BadgerDB key per event for larger logs
//
// Both return events from All in append order and never modify or delete
// stored events.
package eventlog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/sitepulse/internal/models"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("event log is closed")

// ErrNilEvent is returned when Append is called with a nil event.
var ErrNilEvent = errors.New("event cannot be nil")

// Store is an append-only event log.
type Store interface {
	// Append assigns ID and TS when they are empty, then persists the event.
	Append(ctx context.Context, event *models.AnalyticsEvent) error

	// All returns every stored event in append order.
	All(ctx context.Context) ([]models.AnalyticsEvent, error)

	// Close releases the backend.
	Close() error
}

// stamp fills in the identifier and ingestion timestamp when absent.
func stamp(event *models.AnalyticsEvent, now time.Time) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.TS == 0 {
		event.TS = now.UnixMilli()
	}
}
