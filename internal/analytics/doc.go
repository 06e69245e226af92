// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

/*
Package analytics derives read-only dashboard views from the event log.

Every view except Realtime is computed over a trailing time window chosen by
a period token (1d, 7d, 30d, 90d, 1y; anything else means 7d). Events whose
path is administrative are excluded from every view, even though the track
endpoint already refuses to store them.

# Approximations

The numbers are heuristics, not measurements:
  - visitors counts distinct session IDs, and a session ID is not a person
  - bounce rate is the share of sessions with exactly one event in the window
  - device and traffic source come from substring matching on the user agent
    and referrer host
  - 90d and 1y timeseries use 12 trailing day slots, not calendar months

Metrics the event log cannot support (average session length, new members,
mobile traffic share) are reported as null instead of being estimated.

# Caching

An Aggregator built WithCache memoizes period views until the TTL expires or
Invalidate is called, which the track handler does after every stored event.
*/
package analytics
