// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/sobershot/internal/catalog/migrations"
)

// NewDuckDBStore opens a DuckDB catalog at path; an empty path is in-memory.
func NewDuckDBStore(path string) (Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	dbPath := path
	if dbPath == "" {
		dbPath = ":memory:"
	}

	// Extension autoloading would reach the network on first use.
	dsn := dbPath + "?autoinstall_known_extensions=false&autoload_known_extensions=false"

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s, err := newSQLStore(db, dialect{
		name:         BackendDuckDB,
		migrations:   migrations.DuckDB,
		migration:    "duckdb/001_init.sql",
		serialWrites: true,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
