// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/sobershot/internal/models"
)

// SeedResult counts what Seed did.
type SeedResult struct {
	Inserted int
	Skipped  int
}

// Seed inserts every record that is not already in the catalog. Records
// whose name exists are counted as skipped. Seeding is idempotent, so a
// restart re-running it only skips.
func Seed(ctx context.Context, s Store, records []models.DrinkRecord) (SeedResult, error) {
	var res SeedResult
	for i := range records {
		if records[i].Name == "" {
			res.Skipped++
			continue
		}

		_, err := s.InsertIfAbsent(ctx, records[i])
		switch {
		case err == nil:
			res.Inserted++
		case errors.Is(err, ErrDuplicateKey):
			res.Skipped++
		default:
			return res, fmt.Errorf("seed record %d (%q): %w", i, records[i].Name, err)
		}
	}
	return res, nil
}
