// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

/*
Package services provides suture.Service wrappers for SoberShot components.

Each wrapper implements suture.Service and fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the ListenAndServe pattern to Serve

Catalog Health (CatalogHealthService):
  - Pings the catalog store on an interval
  - Publishes the result as the catalog_up gauge
  - Logs transitions between reachable and unreachable only

Cache Janitor (CacheJanitorService):
  - Purges expired recommendation cache entries on an interval

All services return ctx.Err() on cancellation, which suture treats as a
clean stop.
*/
package services
