// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to start a real PostgreSQL server so the
// catalog's postgres backend runs against the same engine as production:
//
//	func TestPostgresCatalog(t *testing.T) {
//	    pg := testinfra.StartPostgres(t)
//	    store, err := catalog.NewPostgresStore(pg.DSN)
//	    // ...
//	}
//
// Files in this package carry the integration build tag; run them with
//
//	go test -tags integration ./...
//
// Tests are skipped when no Docker daemon is reachable
// (testcontainers.SkipIfProviderIsNotHealthy). The first run pulls
// the postgres image; later runs use the cached copy.
package testinfra
