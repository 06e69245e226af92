// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/sitepulse/internal/jsondoc"
	"github.com/tomtom215/sitepulse/internal/models"
)

// JSONStore keeps the whole event log in a single JSON document that is
// rewritten on every append.
type JSONStore struct {
	doc *jsondoc.Document[[]models.AnalyticsEvent]
	now func() time.Time
}

// OpenJSON loads or creates the event log document at path.
func OpenJSON(path string) (*JSONStore, error) {
	doc, err := jsondoc.Open(path, func() []models.AnalyticsEvent {
		return []models.AnalyticsEvent{}
	})
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	return &JSONStore{doc: doc, now: time.Now}, nil
}

// Append implements Store.
func (s *JSONStore) Append(ctx context.Context, event *models.AnalyticsEvent) error {
	if event == nil {
		return ErrNilEvent
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stamp(event, s.now())

	err := s.doc.Update(func(events []models.AnalyticsEvent) ([]models.AnalyticsEvent, error) {
		return append(events, *event), nil
	})
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// All implements Store.
func (s *JSONStore) All(ctx context.Context) ([]models.AnalyticsEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	events, err := s.doc.Read()
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

// Close implements Store. The JSON document holds no open handles.
func (s *JSONStore) Close() error {
	return nil
}
