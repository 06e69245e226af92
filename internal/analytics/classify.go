// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package analytics

import (
	"net/url"
	"strings"
)

// Traffic source classes.
const (
	SourceDirect   = "Direct"
	SourceSearch   = "Search"
	SourceSocial   = "Social"
	SourceReferral = "Referral"
)

// Device classes.
const (
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"
)

var (
	searchHosts = []string{"google"}
	socialHosts = []string{"facebook", "twitter", "instagram"}

	mobileMarkers = []string{"Mobile", "Android", "iPhone"}
	tabletMarkers = []string{"Tablet", "iPad"}
)

// ClassifySource maps a referrer to Direct, Search, Social or Referral.
// Anything that is not empty and not a recognized host, including
// unparseable input, is a Referral.
func ClassifySource(referrer string) string {
	if referrer == "" {
		return SourceDirect
	}

	u, err := url.Parse(referrer)
	if err != nil {
		return SourceReferral
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "":
		return SourceReferral
	case containsAny(host, searchHosts):
		return SourceSearch
	case containsAny(host, socialHosts):
		return SourceSocial
	default:
		return SourceReferral
	}
}

// ClassifyDevice maps a user agent (or client label) to Mobile, Tablet or
// Desktop. Mobile markers are checked first, so an iPad UA that also says
// "Mobile" counts as Mobile.
func ClassifyDevice(userAgent string) string {
	switch {
	case containsAny(userAgent, mobileMarkers):
		return DeviceMobile
	case containsAny(userAgent, tabletMarkers):
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
