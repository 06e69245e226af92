// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package eventlog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/sitepulse/internal/models"
)

// storeFactories lets every behavioral test run against both backends.
func storeFactories() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"json": func(t *testing.T) Store {
			t.Helper()
			s, err := OpenJSON(filepath.Join(t.TempDir(), "analytics.json"))
			if err != nil {
				t.Fatalf("OpenJSON() error = %v", err)
			}
			return s
		},
		"badger": func(t *testing.T) Store {
			t.Helper()
			s, err := OpenBadger(BadgerConfig{InMemory: true})
			if err != nil {
				t.Fatalf("OpenBadger() error = %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestStore_AppendAssignsIDAndTimestamp(t *testing.T) {
	t.Parallel()

	for name, open := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)

			before := time.Now().UnixMilli()
			event := &models.AnalyticsEvent{Type: "pageview", Path: "/"}
			if err := s.Append(context.Background(), event); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			after := time.Now().UnixMilli()

			if event.ID == "" {
				t.Error("Append() did not assign an ID")
			}
			if event.TS < before || event.TS > after {
				t.Errorf("TS = %d, want within [%d, %d]", event.TS, before, after)
			}

			events, err := s.All(context.Background())
			if err != nil {
				t.Fatalf("All() error = %v", err)
			}
			if len(events) != 1 {
				t.Fatalf("All() returned %d events, want 1", len(events))
			}
			if events[0] != *event {
				t.Errorf("All()[0] = %+v, want %+v", events[0], *event)
			}
		})
	}
}

func TestStore_AppendKeepsProvidedFields(t *testing.T) {
	t.Parallel()

	for name, open := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)

			event := &models.AnalyticsEvent{ID: "fixed", TS: 1700000000000, Path: "/a"}
			if err := s.Append(context.Background(), event); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			if event.ID != "fixed" || event.TS != 1700000000000 {
				t.Errorf("Append() overwrote provided fields: %+v", event)
			}
		})
	}
}

func TestStore_AllPreservesAppendOrder(t *testing.T) {
	t.Parallel()

	for name, open := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)

			for i := 0; i < 5; i++ {
				event := &models.AnalyticsEvent{
					ID:   fmt.Sprintf("e%d", i),
					TS:   1700000000000 + int64(i)*1000,
					Path: fmt.Sprintf("/p%d", i),
				}
				if err := s.Append(context.Background(), event); err != nil {
					t.Fatalf("Append(%d) error = %v", i, err)
				}
			}

			events, err := s.All(context.Background())
			if err != nil {
				t.Fatalf("All() error = %v", err)
			}
			if len(events) != 5 {
				t.Fatalf("All() returned %d events, want 5", len(events))
			}
			for i, e := range events {
				if want := fmt.Sprintf("e%d", i); e.ID != want {
					t.Errorf("events[%d].ID = %q, want %q", i, e.ID, want)
				}
			}
		})
	}
}

func TestStore_EmptyLog(t *testing.T) {
	t.Parallel()

	for name, open := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)

			events, err := s.All(context.Background())
			if err != nil {
				t.Fatalf("All() error = %v", err)
			}
			if events == nil || len(events) != 0 {
				t.Errorf("All() = %#v, want empty non-nil slice", events)
			}
		})
	}
}

func TestStore_NilEvent(t *testing.T) {
	t.Parallel()

	for name, open := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)

			if err := s.Append(context.Background(), nil); !errors.Is(err, ErrNilEvent) {
				t.Errorf("Append(nil) error = %v, want ErrNilEvent", err)
			}
		})
	}
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()

	for name, open := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := s.Append(ctx, &models.AnalyticsEvent{Path: "/"})
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Append() error = %v, want context.Canceled", err)
			}
		})
	}
}

func TestStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	for name, open := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)

			const n = 25
			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- s.Append(context.Background(), &models.AnalyticsEvent{Path: "/"})
				}()
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				if err != nil {
					t.Fatalf("Append() error = %v", err)
				}
			}

			events, err := s.All(context.Background())
			if err != nil {
				t.Fatalf("All() error = %v", err)
			}
			if len(events) != n {
				t.Errorf("All() returned %d events, want %d", len(events), n)
			}
		})
	}
}

func TestJSONStore_Reopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "analytics.json")
	s, err := OpenJSON(path)
	if err != nil {
		t.Fatalf("OpenJSON() error = %v", err)
	}
	if err := s.Append(context.Background(), &models.AnalyticsEvent{Path: "/kept"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenJSON(path)
	if err != nil {
		t.Fatalf("OpenJSON() reopen error = %v", err)
	}
	events, err := reopened.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(events) != 1 || events[0].Path != "/kept" {
		t.Errorf("All() after reopen = %+v, want one /kept event", events)
	}
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := OpenBadger(BadgerConfig{Path: dir})
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := s.Append(context.Background(), &models.AnalyticsEvent{Path: "/kept"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadger(BadgerConfig{Path: dir})
	if err != nil {
		t.Fatalf("OpenBadger() reopen error = %v", err)
	}
	defer reopened.Close()

	events, err := reopened.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(events) != 1 || events[0].Path != "/kept" {
		t.Errorf("All() after reopen = %+v, want one /kept event", events)
	}
}

func TestBadgerStore_Closed(t *testing.T) {
	t.Parallel()

	s, err := OpenBadger(BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	if err := s.Append(context.Background(), &models.AnalyticsEvent{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Append() after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.All(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("All() after Close error = %v, want ErrClosed", err)
	}
	if err := s.RunGC(); !errors.Is(err, ErrClosed) {
		t.Errorf("RunGC() after Close error = %v, want ErrClosed", err)
	}
}

func TestBadgerStore_RunGC(t *testing.T) {
	t.Parallel()

	s, err := OpenBadger(BadgerConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	defer s.Close()

	if err := s.Append(context.Background(), &models.AnalyticsEvent{Path: "/"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}

func TestEventKeyOrdering(t *testing.T) {
	t.Parallel()

	early := eventKey(9)
	late := eventKey(10)
	if string(early) >= string(late) {
		t.Errorf("eventKey ordering: %q should sort before %q", early, late)
	}
}
