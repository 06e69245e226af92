// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

/*
Package supervisor provides process supervision for Sitepulse using suture v4.

# Overview

Long-running components are grouped into three layers:

	RootSupervisor ("sitepulse")
	├── DataSupervisor ("data-layer")
	│   └── EventLogGCService (badger event backend only)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashing service is restarted by its layer. Failures decay over
FailureDecay seconds; past FailureThreshold the layer waits FailureBackoff
before the next restart.

The JSON documents (media catalog, JSON event log) are not supervised. They
are plain files guarded by a mutex and have no background work.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
	    ...
	}
	tree.LogUnstoppedServices()

Services return ctx.Err() when asked to stop, nil when done for good, and any
other error to request a restart.
*/
package supervisor
