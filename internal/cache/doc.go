// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

/*
Package cache provides a thread-safe in-memory cache with TTL support.

It backs the analytics period views: each view for each period is cached
under a key built by Key and the whole cache is cleared whenever a new
event is stored, so a cached view is never older than the last tracked
event or the TTL, whichever comes first.

# Usage Example

	c := cache.New[any](30 * time.Second)
	defer c.Close()

	key := cache.Key("summary", "7d")
	if v, ok := c.Get(key); ok {
	    return v
	}
	v := compute()
	c.Set(key, v)

Expired entries are removed lazily on Get and by a background cleanup loop
that stops on Close.
*/
package cache
