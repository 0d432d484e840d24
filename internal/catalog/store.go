// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

/*
Package catalog is the persistent drink collection behind /add-drink and
/search.

The collection is insert-only: a drink is added once by name and never
updated or deleted. Open picks a backend from the DSN:

	""                       SQLite at data/sobershot.db
	postgres://, postgresql://  PostgreSQL via pgx
	duckdb://<path>          DuckDB (empty path = in-memory)
	badger://<dir>           BadgerDB (":memory:" = in-memory)
	sqlite://<path>, other   SQLite at the given path

All SQL backends share one implementation (sqlStore) driven by a dialect
and an embedded migration. Decorators add Prometheus instrumentation
(Instrument) and an optional global write throttle (Throttle).

The catalog is independent of the row-aligned dataset used for
recommendations. Drinks added here are searchable immediately but never
appear in recommendation results until the offline artifacts are rebuilt.
*/
package catalog

import (
	"context"
	"errors"

	"github.com/tomtom215/sobershot/internal/models"
)

var (
	// ErrDuplicateKey is returned when a drink with the same name exists.
	ErrDuplicateKey = errors.New("drink already exists")

	// ErrNoMatch is returned when a search matches nothing.
	ErrNoMatch = errors.New("no drinks found matching your query")
)

// Store is the catalog contract shared by every backend.
type Store interface {
	// InsertIfAbsent stores rec unless a drink with the same name exists,
	// in which case it returns ErrDuplicateKey and writes nothing.
	InsertIfAbsent(ctx context.Context, rec models.DrinkRecord) (models.StoredDrink, error)

	// SearchByText returns drinks whose name or category contains query,
	// case-insensitively, in insertion order. Zero matches is ErrNoMatch.
	SearchByText(ctx context.Context, query string) ([]models.DrinkRecord, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
