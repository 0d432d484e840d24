// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sobershot/internal/catalog"
	"github.com/tomtom215/sobershot/internal/config"
	"github.com/tomtom215/sobershot/internal/models"
)

// initCatalog opens the configured store and seeds it from records when
// enabled. The returned store is instrumented and, if configured,
// write-throttled. Seeding bypasses the throttle.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initCatalog(ctx context.Context, cfg *config.Config, records []models.DrinkRecord, logger zerolog.Logger) (catalog.Store, error) {
	backend := catalog.BackendFor(cfg.Catalog.DSN)
	logger.Info().
		Str("backend", string(backend)).
		Str("dsn", catalog.RedactDSN(cfg.Catalog.DSN)).
		Msg("opening catalog")

	base, err := catalog.Open(cfg.Catalog.DSN)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	store := catalog.Instrument(base)

	if err := store.Ping(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping catalog: %w", err), store.Close())
	}

	if cfg.Catalog.SeedFromSnapshot {
		res, err := catalog.Seed(ctx, store, records)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("seed catalog: %w", err), store.Close())
		}
		logger.Info().
			Int("inserted", res.Inserted).
			Int("skipped", res.Skipped).
			Msg("catalog seeded from snapshot")
	}

	if cfg.Catalog.WriteRateLimit > 0 {
		logger.Info().
			Float64("per_second", cfg.Catalog.WriteRateLimit).
			Int("burst", cfg.Catalog.WriteBurst).
			Msg("catalog write throttle enabled")
	}
	return catalog.Throttle(store, cfg.Catalog.WriteRateLimit, cfg.Catalog.WriteBurst), nil
}
