// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/tomtom215/sitepulse/internal/cache"
	"github.com/tomtom215/sitepulse/internal/metrics"
	"github.com/tomtom215/sitepulse/internal/models"
)

// Default view sizes.
const (
	DefaultRealtimeLimit = 20
	DefaultTopPagesLimit = 10
)

// Placeholder for realtime fields the event log does not record.
const Unknown = "Unknown"

// isoMillis matches the ISO-8601 form browsers produce for Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// EventSource supplies the full event log. eventlog.Store satisfies it.
type EventSource interface {
	All(ctx context.Context) ([]models.AnalyticsEvent, error)
}

// Aggregator computes dashboard views from an EventSource.
type Aggregator struct {
	events        EventSource
	filter        AdminFilter
	now           func() time.Time
	loc           *time.Location
	realtimeLimit int
	topPagesLimit int
	cache         *cache.Cache[any]

	// gen counts Invalidate calls. A view computed across an Invalidate is
	// never left in the cache.
	gen atomic.Uint64
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock sets the time source used for window boundaries and buckets.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLocation sets the time zone used for hour and day buckets.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithRealtimeLimit sets how many events Realtime returns.
func WithRealtimeLimit(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.realtimeLimit = n
		}
	}
}

// WithTopPagesLimit sets how many rows TopPages returns.
func WithTopPagesLimit(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.topPagesLimit = n
		}
	}
}

// WithCache memoizes views in c until Invalidate is called or entries expire.
func WithCache(c *cache.Cache[any]) Option {
	return func(a *Aggregator) {
		a.cache = c
	}
}

// NewAggregator creates an aggregator over events.
func NewAggregator(events EventSource, filter AdminFilter, opts ...Option) *Aggregator {
	a := &Aggregator{
		events:        events,
		filter:        filter,
		now:           time.Now,
		loc:           time.Local,
		realtimeLimit: DefaultRealtimeLimit,
		topPagesLimit: DefaultTopPagesLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Invalidate drops every cached view. It is a no-op without a cache.
func (a *Aggregator) Invalidate() {
	if a.cache != nil {
		a.gen.Add(1)
		a.cache.Clear()
	}
}

// cached returns the memoized value for key or computes and stores it.
func cached[T any](a *Aggregator, key string, compute func() (T, error)) (T, error) {
	if a.cache != nil {
		if v, ok := a.cache.Get(key); ok {
			if typed, ok := v.(T); ok {
				metrics.RecordCacheLookup(true)
				return typed, nil
			}
		}
		metrics.RecordCacheLookup(false)
	}

	gen := a.gen.Load()
	v, err := compute()
	if err != nil {
		return v, err
	}
	if a.cache != nil && a.gen.Load() == gen {
		a.cache.Set(key, v)
		// Invalidate may have cleared the cache between the check and Set.
		if a.gen.Load() != gen {
			a.cache.Delete(key)
		}
	}
	return v, nil
}

// counted returns the non-administrative events in append order.
func (a *Aggregator) counted(ctx context.Context) ([]models.AnalyticsEvent, error) {
	all, err := a.events.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	out := make([]models.AnalyticsEvent, 0, len(all))
	for i := range all {
		if !a.filter.IsAdmin(all[i].Path) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// inWindow returns counted events with ts >= now - period.
func (a *Aggregator) inWindow(ctx context.Context, period Period) ([]models.AnalyticsEvent, error) {
	events, err := a.counted(ctx)
	if err != nil {
		return nil, err
	}

	from := a.now().Add(-period.Duration()).UnixMilli()
	out := events[:0]
	for i := range events {
		if events[i].TS >= from {
			out = append(out, events[i])
		}
	}
	return out, nil
}

// Summary returns headline metrics for the period.
func (a *Aggregator) Summary(ctx context.Context, period Period) (models.Summary, error) {
	return cached(a, cache.Key("summary", string(period)), func() (models.Summary, error) {
		events, err := a.inWindow(ctx, period)
		if err != nil {
			return models.Summary{}, err
		}

		perSession := make(map[string]int)
		for i := range events {
			perSession[events[i].SessionID]++
		}

		bounced := 0
		for _, n := range perSession {
			if n == 1 {
				bounced++
			}
		}

		return models.Summary{
			Visitors:   len(perSession),
			PageViews:  len(events),
			BounceRate: bounceRate(bounced, len(perSession)),
		}, nil
	})
}

// bounceRate is the percentage of bounced sessions rounded to one decimal.
func bounceRate(bounced, sessions int) float64 {
	if sessions == 0 {
		return 0
	}
	return math.Round(float64(bounced)*1000/float64(sessions)) / 10
}

// TopPages ranks paths by event count, most viewed first. Ties keep the
// order in which the paths were first seen.
func (a *Aggregator) TopPages(ctx context.Context, period Period) ([]models.PageCount, error) {
	return cached(a, cache.Key("top-pages", string(period)), func() ([]models.PageCount, error) {
		events, err := a.inWindow(ctx, period)
		if err != nil {
			return nil, err
		}

		pages := groupCount(events, func(e *models.AnalyticsEvent) string { return e.Path })
		sort.SliceStable(pages, func(i, j int) bool {
			return pages[i].count > pages[j].count
		})
		if len(pages) > a.topPagesLimit {
			pages = pages[:a.topPagesLimit]
		}

		out := make([]models.PageCount, len(pages))
		for i, p := range pages {
			out[i] = models.PageCount{Path: p.key, Count: p.count}
		}
		return out, nil
	})
}

// Sources counts events per traffic source class in first-seen order.
func (a *Aggregator) Sources(ctx context.Context, period Period) ([]models.SourceCount, error) {
	return cached(a, cache.Key("sources", string(period)), func() ([]models.SourceCount, error) {
		events, err := a.inWindow(ctx, period)
		if err != nil {
			return nil, err
		}

		groups := groupCount(events, func(e *models.AnalyticsEvent) string { return ClassifySource(e.Referrer) })
		out := make([]models.SourceCount, len(groups))
		for i, g := range groups {
			out[i] = models.SourceCount{Source: g.key, Count: g.count}
		}
		return out, nil
	})
}

// Devices counts events per device class in first-seen order.
func (a *Aggregator) Devices(ctx context.Context, period Period) ([]models.DeviceCount, error) {
	return cached(a, cache.Key("devices", string(period)), func() ([]models.DeviceCount, error) {
		events, err := a.inWindow(ctx, period)
		if err != nil {
			return nil, err
		}

		groups := groupCount(events, func(e *models.AnalyticsEvent) string { return ClassifyDevice(e.Device) })
		out := make([]models.DeviceCount, len(groups))
		for i, g := range groups {
			out[i] = models.DeviceCount{Device: g.key, Count: g.count}
		}
		return out, nil
	})
}

// Realtime returns the most recent events, newest first, ignoring the
// period window.
func (a *Aggregator) Realtime(ctx context.Context) ([]models.RealtimeEntry, error) {
	return cached(a, cache.Key("realtime"), func() ([]models.RealtimeEntry, error) {
		events, err := a.counted(ctx)
		if err != nil {
			return nil, err
		}

		// Ties keep append order, so walking backwards lists the later append first.
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].TS < events[j].TS
		})

		n := min(len(events), a.realtimeLimit)
		out := make([]models.RealtimeEntry, 0, n)
		for i := len(events) - 1; i >= len(events)-n; i-- {
			out = append(out, RealtimeEntryFor(&events[i]))
		}
		return out, nil
	})
}

// RealtimeEntryFor renders one event as an activity feed row.
func RealtimeEntryFor(e *models.AnalyticsEvent) models.RealtimeEntry {
	return models.RealtimeEntry{
		Time:     e.Time().UTC().Format(isoMillis),
		Page:     e.Path,
		Location: Unknown,
		Device:   ClassifyDevice(e.Device),
		Duration: Unknown,
	}
}

type keyCount struct {
	key   string
	count int
}

// groupCount counts events by key, keeping keys in first-seen order.
func groupCount(events []models.AnalyticsEvent, keyFn func(*models.AnalyticsEvent) string) []keyCount {
	index := make(map[string]int)
	groups := make([]keyCount, 0)
	for i := range events {
		k := keyFn(&events[i])
		if at, ok := index[k]; ok {
			groups[at].count++
			continue
		}
		index[k] = len(groups)
		groups = append(groups, keyCount{key: k, count: 1})
	}
	return groups
}
