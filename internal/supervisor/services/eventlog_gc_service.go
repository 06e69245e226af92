// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package services

import (
	"context"
	"time"

	"github.com/tomtom215/sitepulse/internal/logging"
	"github.com/tomtom215/sitepulse/internal/metrics"
)

// DefaultGCInterval is used when the configured interval is not positive.
const DefaultGCInterval = 10 * time.Minute

// ValueLogCollector is satisfied by *eventlog.BadgerStore.
type ValueLogCollector interface {
	RunGC() error
}

// EventLogGCService periodically reclaims Badger value log space for the
// event log. It only runs when the badger backend is selected.
//
//	store, _ := eventlog.OpenBadger(eventlog.BadgerConfig{Path: cfg.Storage.BadgerPath})
//	tree.AddDataService(services.NewEventLogGCService(store, cfg.Storage.BadgerGCInterval))
type EventLogGCService struct {
	collector ValueLogCollector
	interval  time.Duration
	name      string
}

// NewEventLogGCService creates the GC loop for collector.
func NewEventLogGCService(collector ValueLogCollector, interval time.Duration) *EventLogGCService {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	return &EventLogGCService{
		collector: collector,
		interval:  interval,
		name:      "eventlog-gc",
	}
}

// Serve implements suture.Service. GC failures are logged and counted but do
// not stop the loop; a closed store will simply keep failing until shutdown.
func (s *EventLogGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *EventLogGCService) runOnce() {
	start := time.Now()
	err := s.collector.RunGC()
	metrics.RecordGCRun(err)
	if err != nil {
		logging.Warn().Err(err).Str("service", s.name).Msg("Event log GC failed")
		return
	}
	logging.Debug().Dur("duration", time.Since(start)).Msg("Event log GC completed")
}

// String implements fmt.Stringer.
func (s *EventLogGCService) String() string {
	return s.name
}
