// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/tomtom215/sobershot/internal/models"
)

// Key layout
const (
	drinkKeyPrefix = "drink:"
	drinkSeqKey    = "seq:drinks"
)

// BadgerInMemory as the directory keeps the catalog in memory.
const BadgerInMemory = ":memory:"

// maxTxnRetries bounds retries of a conflicting insert transaction.
const maxTxnRetries = 3

// badgerDrink is the value stored under drink:<name>.
type badgerDrink struct {
	Seq       uint64             `json:"seq"`
	ID        string             `json:"id"`
	Record    models.DrinkRecord `json:"record"`
	CreatedAt time.Time          `json:"created_at"`
}

// BadgerStore implements Store on an embedded BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewBadgerStore opens a BadgerDB catalog in dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	var opts badger.Options
	if dir == BadgerInMemory || dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return newBadgerStore(db)
}

func newBadgerStore(db *badger.DB) (*BadgerStore, error) {
	seq, err := db.GetSequence([]byte(drinkSeqKey), 100)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq}, nil
}

func drinkKey(name string) []byte {
	return []byte(drinkKeyPrefix + name)
}

// InsertIfAbsent performs get-then-set inside one transaction. Badger's
// optimistic concurrency turns a racing insert of the same name into
// ErrConflict, which is retried and then observed as a duplicate.
func (s *BadgerStore) InsertIfAbsent(ctx context.Context, rec models.DrinkRecord) (models.StoredDrink, error) {
	rec = rec.WithDefaults()

	seq, err := s.seq.Next()
	if err != nil {
		return models.StoredDrink{}, fmt.Errorf("next sequence: %w", err)
	}

	value := badgerDrink{
		Seq:       seq,
		ID:        uuid.NewString(),
		Record:    rec,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(value)
	if err != nil {
		return models.StoredDrink{}, fmt.Errorf("marshal drink: %w", err)
	}

	key := drinkKey(rec.Name)
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return models.StoredDrink{}, err
		}

		err = s.db.Update(func(txn *badger.Txn) error {
			_, getErr := txn.Get(key)
			if getErr == nil {
				return ErrDuplicateKey
			}
			if !errors.Is(getErr, badger.ErrKeyNotFound) {
				return fmt.Errorf("get drink: %w", getErr)
			}
			return txn.Set(key, data)
		})
		if !errors.Is(err, badger.ErrConflict) || attempt >= maxTxnRetries {
			break
		}
	}

	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return models.StoredDrink{}, ErrDuplicateKey
		}
		return models.StoredDrink{}, fmt.Errorf("insert drink: %w", err)
	}

	return models.StoredDrink{DrinkRecord: rec, ID: value.ID, CreatedAt: value.CreatedAt}, nil
}

// SearchByText scans every drink and matches with Unicode case folding.
func (s *BadgerStore) SearchByText(ctx context.Context, query string) ([]models.DrinkRecord, error) {
	// A Caser carries state and must not be shared between goroutines.
	folder := cases.Fold()
	needle := folder.String(query)

	var matches []badgerDrink
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(drinkKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var d badgerDrink
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &d)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}

			if strings.Contains(folder.String(d.Record.Name), needle) ||
				strings.Contains(folder.String(d.Record.Category), needle) {
				matches = append(matches, d)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search drinks: %w", err)
	}

	if len(matches) == 0 {
		return nil, ErrNoMatch
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Seq < matches[j].Seq })

	results := make([]models.DrinkRecord, len(matches))
	for i := range matches {
		results[i] = matches[i].Record.WithDefaults()
	}
	return results, nil
}

// Ping fails once the database is closed.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return nil
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	var errs []error
	if err := s.seq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release sequence: %w", err))
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close badger: %w", err))
	}
	return errors.Join(errs...)
}
