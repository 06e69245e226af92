// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

/*
Package main is the entry point for the Sitepulse server application.

Sitepulse is a small self-hosted backend for a website: it keeps a media
library of uploaded files and records first-party page analytics, serving
both through a JSON API.

# Application Architecture

The server runs its long-lived components under Suture v4 supervision:

	RootSupervisor ("sitepulse")
	├── DataSupervisor ("data-layer")
	│   └── Event log GC (badger backend only)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket Hub (live activity feed)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (Chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output and optional rotated file
 3. Storage: media catalog, upload directory and event log
 4. Analytics: aggregator with optional response cache
 5. WebSocket Hub: live activity broadcasts
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=4000               # HTTP server port
	DATA_DIR=./data              # media.json and analytics.json
	UPLOADS_DIR=./uploads        # uploaded files, served at /uploads
	EVENT_BACKEND=json           # json or badger
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	CORS_ORIGINS=*               # comma-separated origins

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:
  - Stops accepting new connections
  - Waits for in-flight requests to complete
  - Closes websocket clients
  - Closes the event log

# Example Usage

	export DATA_DIR=/var/lib/sitepulse
	export UPLOADS_DIR=/var/lib/sitepulse/uploads
	./sitepulse

Docker:

	docker run -d -p 4000:4000 -v sitepulse:/data \
	  -e DATA_DIR=/data -e UPLOADS_DIR=/data/uploads \
	  ghcr.io/tomtom215/sitepulse
*/
package main
