// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package analytics

import "strings"

// AdminFilter recognizes administrative paths that must never be counted.
// A path is administrative when it starts with one of the prefixes or
// contains one of the markers anywhere.
type AdminFilter struct {
	prefixes []string
	markers  []string
}

// NewAdminFilter builds a filter, ignoring empty prefixes and markers.
func NewAdminFilter(prefixes, markers []string) AdminFilter {
	return AdminFilter{
		prefixes: nonEmpty(prefixes),
		markers:  nonEmpty(markers),
	}
}

// IsAdmin reports whether path is administrative.
func (f AdminFilter) IsAdmin(path string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, m := range f.markers {
		if strings.Contains(path, m) {
			return true
		}
	}
	return false
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// NormalizePath turns a client-reported page into a stored path: query and
// fragment are dropped, a leading slash is enforced and empty becomes "/".
func NormalizePath(raw string) string {
	path := strings.TrimSpace(raw)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
