// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package models

// Summary holds headline metrics for a period.
//
// Visitors counts distinct session IDs, which approximates unique visitors.
// AvgSession, NewMembers and MobileTraffic cannot be derived from the event
// log and are always serialized as null.
type Summary struct {
	Visitors      int      `json:"visitors"`
	PageViews     int      `json:"pageViews"`
	BounceRate    float64  `json:"bounceRate"`
	AvgSession    *float64 `json:"avgSession"`
	NewMembers    *int     `json:"newMembers"`
	MobileTraffic *float64 `json:"mobileTraffic"`
}

// Timeseries holds bucketed event counts; Labels and Values have equal length.
type Timeseries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// PageCount is one row of the top pages ranking.
type PageCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// SourceCount is one row of the traffic source breakdown.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// DeviceCount is one row of the device class breakdown.
type DeviceCount struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

// RealtimeEntry is one row of the recent activity feed. Location and Duration
// are placeholders since events carry neither.
type RealtimeEntry struct {
	Time     string `json:"time"`
	Page     string `json:"page"`
	Location string `json:"location"`
	Device   string `json:"device"`
	Duration string `json:"duration"`
}
