// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

// Package validation provides struct validation using go-playground/validator v10.
//
// The validator is a thread-safe singleton that reports fields by their JSON
// names and translates failures into short human-readable messages.
//
// Truncate uses the max tags as length caps: string fields that exceed their
// cap are cut to the first max runes instead of failing the request. The
// track endpoint relies on this so that tracking calls degrade gracefully.
//
// # Example
//
//	type TrackRequest struct {
//	    Type string `json:"type" validate:"max=256"`
//	    Path string `json:"path" validate:"max=2048"`
//	}
//
//	if fields := validation.Truncate(&req); len(fields) > 0 {
//	    logger.Debug().Strs("fields", fields).Msg("Truncated over-long fields")
//	}
package validation
