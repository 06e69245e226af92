// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

/*
Package websocket provides the live activity feed for dashboard clients.

It uses gorilla/websocket with a hub-client architecture: the Hub tracks
connected clients and fans out every broadcast, and each Client runs a
readPump and a writePump goroutine.

	┌──────────┐
	│   Hub    │ ← BroadcastActivity after each stored event
	└────┬─────┘
	     │
	┌────┴─────┬─────────┬─────────┐
	│ Client1  │ Client2 │ Client3 │
	└──────────┴─────────┴─────────┘

Message Types:

  - activity: one realtime feed entry ({time, page, location, device, duration})
  - ping: sent by clients; answered with pong
  - pong: reply to a client ping

Wire format:

	{"type":"activity","data":{"time":"2026-03-15T14:29:00.000Z","page":"/","location":"Unknown","device":"Desktop","duration":"Unknown"}}

The hub runs under the supervisor through RunWithContext; cancelling the
context closes every client. Slow clients whose send buffer is full are
dropped instead of blocking the broadcast.
*/
package websocket
