// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

// Package models defines the data structures shared by the stores, the
// analytics aggregator and the HTTP API.
//
// JSON field names follow the public wire format consumed by the site
// dashboard (camelCase, epoch-millisecond event timestamps), so the structs
// here double as the on-disk document layout.
package models
