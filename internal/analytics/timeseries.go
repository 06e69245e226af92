// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package analytics

import (
	"context"
	"strconv"
	"time"

	"github.com/tomtom215/sitepulse/internal/cache"
	"github.com/tomtom215/sitepulse/internal/models"
)

const (
	dayKeyLayout   = "2006-01-02"
	dayLabelLayout = "Jan 2"
)

// bucketSet maps bucket keys to positions in a Timeseries.
type bucketSet struct {
	labels []string
	index  map[string]int
	keyFn  func(time.Time) string
}

func hourlyBuckets() bucketSet {
	b := bucketSet{
		labels: make([]string, 24),
		index:  make(map[string]int, 24),
		keyFn:  func(t time.Time) string { return strconv.Itoa(t.Hour()) },
	}
	for h := 0; h < 24; h++ {
		b.labels[h] = strconv.Itoa(h) + ":00"
		b.index[strconv.Itoa(h)] = h
	}
	return b
}

// trailingDayBuckets builds n day buckets ending today, oldest first.
func trailingDayBuckets(now time.Time, n int) bucketSet {
	b := bucketSet{
		labels: make([]string, n),
		index:  make(map[string]int, n),
		keyFn:  func(t time.Time) string { return t.Format(dayKeyLayout) },
	}
	for i := 0; i < n; i++ {
		d := now.AddDate(0, 0, -(n - 1 - i))
		b.labels[i] = d.Format(dayLabelLayout)
		b.index[d.Format(dayKeyLayout)] = i
	}
	return b
}

func (a *Aggregator) buckets(period Period) bucketSet {
	if period == PeriodDay {
		return hourlyBuckets()
	}
	return trailingDayBuckets(a.now().In(a.loc), period.dailyBuckets())
}

// Timeseries counts in-window events per bucket. 1d uses 24 hour-of-day
// buckets; every other period uses trailing day buckets. Events whose day
// has no bucket are dropped.
func (a *Aggregator) Timeseries(ctx context.Context, period Period) (models.Timeseries, error) {
	return cached(a, cache.Key("timeseries", string(period)), func() (models.Timeseries, error) {
		events, err := a.inWindow(ctx, period)
		if err != nil {
			return models.Timeseries{}, err
		}

		b := a.buckets(period)
		values := make([]int, len(b.labels))
		for i := range events {
			key := b.keyFn(events[i].Time().In(a.loc))
			if at, ok := b.index[key]; ok {
				values[at]++
			}
		}

		return models.Timeseries{Labels: b.labels, Values: values}, nil
	})
}
