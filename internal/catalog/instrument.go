// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/sobershot/internal/metrics"
	"github.com/tomtom215/sobershot/internal/models"
)

// instrumentedStore records catalog_operations_total and
// catalog_operation_duration_seconds for every call.
type instrumentedStore struct {
	next Store
}

// Instrument wraps s with Prometheus instrumentation.
func Instrument(s Store) Store {
	return &instrumentedStore{next: s}
}

func (s *instrumentedStore) InsertIfAbsent(ctx context.Context, rec models.DrinkRecord) (models.StoredDrink, error) {
	start := time.Now()
	stored, err := s.next.InsertIfAbsent(ctx, rec)
	metrics.RecordCatalogOperation("insert", resultLabel(err), time.Since(start))
	return stored, err
}

func (s *instrumentedStore) SearchByText(ctx context.Context, query string) ([]models.DrinkRecord, error) {
	start := time.Now()
	results, err := s.next.SearchByText(ctx, query)
	metrics.RecordCatalogOperation("search", resultLabel(err), time.Since(start))
	return results, err
}

func (s *instrumentedStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.next.Ping(ctx)
	metrics.RecordCatalogOperation("ping", resultLabel(err), time.Since(start))
	return err
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate"
	case errors.Is(err, ErrNoMatch):
		return "no_match"
	default:
		return "error"
	}
}
