// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"fmt"
	"strings"
)

// DefaultSQLitePath is used when the DSN is empty.
const DefaultSQLitePath = "data/sobershot.db"

// Backend names a catalog implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendDuckDB   Backend = "duckdb"
	BackendBadger   Backend = "badger"
)

// BackendFor returns the backend Open would choose for dsn.
func BackendFor(dsn string) Backend {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(dsn, "duckdb://"):
		return BackendDuckDB
	case strings.HasPrefix(dsn, "badger://"):
		return BackendBadger
	default:
		return BackendSQLite
	}
}

// Open creates the store selected by dsn and runs its migrations.
func Open(dsn string) (Store, error) {
	switch BackendFor(dsn) {
	case BackendPostgres:
		s, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return s, nil

	case BackendDuckDB:
		s, err := NewDuckDBStore(strings.TrimPrefix(dsn, "duckdb://"))
		if err != nil {
			return nil, fmt.Errorf("duckdb: %w", err)
		}
		return s, nil

	case BackendBadger:
		s, err := NewBadgerStore(strings.TrimPrefix(dsn, "badger://"))
		if err != nil {
			return nil, fmt.Errorf("badger: %w", err)
		}
		return s, nil

	default:
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			path = DefaultSQLitePath
		}
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return s, nil
	}
}

// RedactDSN hides the password of a URL-style DSN for logging.
func RedactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return dsn
	}
	userinfo := rest[:at]
	if user, _, hasPass := strings.Cut(userinfo, ":"); hasPass {
		return scheme + "://" + user + ":xxxxx" + rest[at:]
	}
	return dsn
}
