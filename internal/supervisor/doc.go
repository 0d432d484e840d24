// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

/*
Package supervisor provides process supervision for SoberShot using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("sobershot")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogHealthService
	│   └── CacheJanitorService (when the recommendation cache is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing health monitor is restarted with backoff while the HTTP server
keeps serving.

# Usage

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogHealthService(store, interval, zlog))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Event Logging

Supervisor events (service panics, restarts, backoff) go through
sutureslog into the zerolog-backed slog handler from the logging package.

# Restart Policy

FailureThreshold failures within the FailureDecay window put a supervisor
into backoff for FailureBackoff. Services get ShutdownTimeout to return
after their context is canceled; stragglers show up in
UnstoppedServiceReport.
*/
package supervisor
