// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

/*
Package services provides suture.Service wrappers for Sitepulse components.

Each wrapper adapts a component's lifecycle to suture's Serve(ctx) contract
and names itself through String() for the supervisor's event log:

  - HTTPServerService: ListenAndServe plus graceful Shutdown (api layer)
  - WebSocketHubService: the live activity hub (messaging layer)
  - EventLogGCService: periodic Badger value log GC (data layer, badger backend only)

The wrappers depend on small interfaces (HTTPServer, ContextHub,
ValueLogCollector) rather than concrete types so they can be tested with
fakes and so this package does not import the components it supervises.

Usage:

	tree, _ := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))
	if badgerStore != nil {
	    tree.AddDataService(services.NewEventLogGCService(badgerStore, cfg.Storage.BadgerGCInterval))
	}
	err := tree.Serve(ctx)
*/
package services
