// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/sobershot/internal/models"
)

// dialect captures what differs between the SQL backends.
type dialect struct {
	name       Backend
	migrations fs.FS
	migration  string

	// dollarParams rewrites ? placeholders to $1, $2, ...
	dollarParams bool

	// serialWrites funnels inserts through one mutex. DuckDB reports
	// concurrent conflicting inserts as commit errors instead of no-ops.
	serialWrites bool

	// foldFunc is the SQL function applied to searched columns and
	// foldQuery its Go counterpart for the pattern. Empty means LOWER.
	foldFunc  string
	foldQuery func(string) string
}

// sqlStore implements Store on database/sql for SQLite, PostgreSQL and DuckDB.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
	writeMu sync.Mutex

	insertSQL string
	searchSQL string
}

const insertDrinkSQL = `
	INSERT INTO drinks (id, name, category, glass, ingredients, instructions, image, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (name) DO NOTHING`

// Both columns go through the dialect's fold function; the pattern is
// folded in Go.
const searchDrinksSQL = `
	SELECT name, category, glass, ingredients, instructions, image
	FROM drinks
	WHERE %[1]s(name) LIKE ? ESCAPE '\' OR %[1]s(category) LIKE ? ESCAPE '\'
	ORDER BY seq`

func newSQLStore(db *sql.DB, d dialect) (*sqlStore, error) {
	if d.foldFunc == "" {
		d.foldFunc = "LOWER"
	}
	if d.foldQuery == nil {
		d.foldQuery = lowerText
	}

	s := &sqlStore{
		db:        db,
		dialect:   d,
		insertSQL: insertDrinkSQL,
		searchSQL: fmt.Sprintf(searchDrinksSQL, d.foldFunc),
	}
	if d.dollarParams {
		s.insertSQL = rebindDollar(s.insertSQL)
		s.searchSQL = rebindDollar(s.searchSQL)
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// migrate executes the dialect's migration one statement at a time.
func (s *sqlStore) migrate() error {
	data, err := fs.ReadFile(s.dialect.migrations, s.dialect.migration)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}

	for _, stmt := range strings.Split(string(data), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration %s: %w", s.dialect.migration, err)
		}
	}
	return nil
}

func (s *sqlStore) InsertIfAbsent(ctx context.Context, rec models.DrinkRecord) (models.StoredDrink, error) {
	rec = rec.WithDefaults()
	ingredients, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return models.StoredDrink{}, fmt.Errorf("marshal ingredients: %w", err)
	}

	stored := models.StoredDrink{
		DrinkRecord: rec,
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
	}

	if s.dialect.serialWrites {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}

	res, err := s.db.ExecContext(ctx, s.insertSQL,
		stored.ID, rec.Name, rec.Category, rec.Glass, string(ingredients),
		rec.Instructions, rec.Image, stored.CreatedAt,
	)
	if err != nil {
		return models.StoredDrink{}, fmt.Errorf("insert drink: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.StoredDrink{}, fmt.Errorf("insert drink: rows affected: %w", err)
	}
	if affected == 0 {
		return models.StoredDrink{}, ErrDuplicateKey
	}
	return stored, nil
}

func (s *sqlStore) SearchByText(ctx context.Context, query string) ([]models.DrinkRecord, error) {
	pattern := containsPattern(query, s.dialect.foldQuery)

	rows, err := s.db.QueryContext(ctx, s.searchSQL, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search drinks: %w", err)
	}
	defer rows.Close()

	var results []models.DrinkRecord
	for rows.Next() {
		var rec models.DrinkRecord
		var ingredients string
		if err := rows.Scan(&rec.Name, &rec.Category, &rec.Glass, &ingredients, &rec.Instructions, &rec.Image); err != nil {
			return nil, fmt.Errorf("scan drink: %w", err)
		}
		if rec.Ingredients, err = decodeIngredients(ingredients); err != nil {
			return nil, fmt.Errorf("drink %q: %w", rec.Name, err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drinks: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNoMatch
	}
	return results, nil
}

func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func decodeIngredients(raw string) (map[string]string, error) {
	ing := map[string]string{}
	if raw == "" || raw == "null" {
		return ing, nil
	}
	if err := json.Unmarshal([]byte(raw), &ing); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	if ing == nil {
		ing = map[string]string{}
	}
	return ing, nil
}

// rebindDollar turns the n-th ? into $n. The catalog queries contain no
// literal question marks.
func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
