// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/sitepulse/internal/eventlog"
	"github.com/tomtom215/sitepulse/internal/metrics"
)

// countingCollector counts RunGC calls and returns err.
type countingCollector struct {
	calls atomic.Int32
	err   error
}

func (c *countingCollector) RunGC() error {
	c.calls.Add(1)
	return c.err
}

func TestEventLogGCService_Interface(t *testing.T) {
	var _ suture.Service = (*EventLogGCService)(nil)
	var _ ValueLogCollector = (*eventlog.BadgerStore)(nil)
}

func TestNewEventLogGCService_DefaultInterval(t *testing.T) {
	t.Parallel()

	for _, interval := range []time.Duration{0, -time.Second} {
		svc := NewEventLogGCService(&countingCollector{}, interval)
		if svc.interval != DefaultGCInterval {
			t.Errorf("NewEventLogGCService(%v).interval = %v, want %v", interval, svc.interval, DefaultGCInterval)
		}
	}
	if got := NewEventLogGCService(&countingCollector{}, time.Minute).String(); got != "eventlog-gc" {
		t.Errorf("String() = %q, want eventlog-gc", got)
	}
}

//nolint:paralleltest // reads global GC counters
func TestEventLogGCService_Serve(t *testing.T) {
	t.Run("runs on each tick until canceled", func(t *testing.T) {
		collector := &countingCollector{}
		svc := NewEventLogGCService(collector, 10*time.Millisecond)
		before := testutil.ToFloat64(metrics.EventLogGCRuns.WithLabelValues("ok"))

		ctx, cancel := context.WithTimeout(context.Background(), 75*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
		}
		calls := collector.calls.Load()
		if calls < 2 {
			t.Errorf("RunGC calls = %d, want at least 2", calls)
		}
		after := testutil.ToFloat64(metrics.EventLogGCRuns.WithLabelValues("ok"))
		if after-before != float64(calls) {
			t.Errorf("ok GC runs delta = %v, want %d", after-before, calls)
		}
	})

	t.Run("keeps running after GC errors", func(t *testing.T) {
		collector := &countingCollector{err: errors.New("disk full")}
		svc := NewEventLogGCService(collector, 10*time.Millisecond)
		before := testutil.ToFloat64(metrics.EventLogGCRuns.WithLabelValues("error"))

		ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
		defer cancel()
		_ = svc.Serve(ctx)

		if collector.calls.Load() < 2 {
			t.Errorf("RunGC calls = %d, want at least 2", collector.calls.Load())
		}
		if after := testutil.ToFloat64(metrics.EventLogGCRuns.WithLabelValues("error")); after <= before {
			t.Error("error GC runs counter did not increase")
		}
	})

	t.Run("collects an in-memory badger store", func(t *testing.T) {
		store, err := eventlog.OpenBadger(eventlog.BadgerConfig{InMemory: true})
		if err != nil {
			t.Fatalf("OpenBadger() error = %v", err)
		}
		defer store.Close()

		svc := NewEventLogGCService(store, 10*time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
		defer cancel()
		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
		}
	})
}
