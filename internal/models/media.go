// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package models

import "time"

// MediaRecord describes one uploaded file.
//
// Name and Type are client supplied and only used for display. StoredName is
// the sanitized, collision-resistant name on disk and URL is derived from it.
// Records are never mutated after creation.
type MediaRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StoredName string    `json:"storedName"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadDate time.Time `json:"uploadDate"`
	URL        string    `json:"url"`
}
