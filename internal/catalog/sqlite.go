// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"

	"github.com/tomtom215/sobershot/internal/catalog/migrations"
)

// sqlitePragmas are appended to file DSNs that carry no query string.
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// sqliteFoldFunc is registered on the driver because SQLite's LOWER only
// handles ASCII.
const sqliteFoldFunc = "casefold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(sqliteFoldFunc, 1, casefold)
}

func casefold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return foldText(v), nil
	case []byte:
		return foldText(string(v)), nil
	default:
		return v, nil
	}
}

// NewSQLiteStore opens (creating if needed) a SQLite catalog at path.
func NewSQLiteStore(path string) (Store, error) {
	if path == "" {
		path = DefaultSQLitePath
	}

	dsn := path
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
		if !strings.Contains(path, "?") {
			dsn = path + sqlitePragmas
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One writer at a time; also keeps :memory: to a single database.
	db.SetMaxOpenConns(1)

	s, err := newSQLStore(db, dialect{
		name:       BackendSQLite,
		migrations: migrations.SQLite,
		migration:  "sqlite/001_init.sql",
		foldFunc:   sqliteFoldFunc,
		foldQuery:  foldText,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
