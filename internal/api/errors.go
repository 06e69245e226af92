// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package api

import "errors"

// Error codes returned in {"error":code} bodies.
const (
	ErrCodeNoFiles          = "no_files"
	ErrCodeTooManyFiles     = "too_many_files"
	ErrCodePayloadTooLarge  = "payload_too_large"
	ErrCodeUploadFailed     = "upload_failed"
	ErrCodeCatalog          = "catalog_unavailable"
	ErrCodeNotFound         = "not_found"
	ErrCodeDeleteFailed     = "delete_failed"
	ErrCodeFailedToTrack    = "failed_to_track"
	ErrCodeAnalytics        = "analytics_unavailable"
	ErrCodeNotReady         = "not_ready"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeLiveUnavailable  = "live_unavailable"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// Upload request errors.
var (
	// ErrNoFiles means the request carried no "files" parts.
	ErrNoFiles = errors.New("no files in upload")

	// ErrTooManyFiles means the request exceeded the per-request file limit.
	ErrTooManyFiles = errors.New("too many files in upload")
)
