// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package analytics

import "time"

// Period is a trailing time window token.
type Period string

// Supported periods.
const (
	PeriodDay     Period = "1d"
	PeriodWeek    Period = "7d"
	PeriodMonth   Period = "30d"
	PeriodQuarter Period = "90d"
	PeriodYear    Period = "1y"
)

// DefaultPeriod is used for missing or unknown tokens.
const DefaultPeriod = PeriodWeek

const day = 24 * time.Hour

var periodDurations = map[Period]time.Duration{
	PeriodDay:     day,
	PeriodWeek:    7 * day,
	PeriodMonth:   30 * day,
	PeriodQuarter: 90 * day,
	PeriodYear:    365 * day,
}

// ResolvePeriod maps a query token to a Period, falling back to DefaultPeriod.
func ResolvePeriod(token string) Period {
	p := Period(token)
	if _, ok := periodDurations[p]; ok {
		return p
	}
	return DefaultPeriod
}

// Duration returns the window length; unknown periods use DefaultPeriod's.
func (p Period) Duration() time.Duration {
	if d, ok := periodDurations[p]; ok {
		return d
	}
	return periodDurations[DefaultPeriod]
}

// dailyBuckets is the number of day buckets a timeseries uses for p.
// 90d and 1y deliberately use 12 trailing day slots rather than months.
func (p Period) dailyBuckets() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	default:
		return 12
	}
}
