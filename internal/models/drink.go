// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

/*
Package models defines the data structures shared across SoberShot.

Key Components:

  - DrinkRecord: a catalog cocktail; the same shape is stored in the catalog
    and materialized from the row-aligned dataset snapshot
  - StoredDrink: a DrinkRecord plus the identifier assigned on insertion
  - Request and response bodies for the HTTP API

DrinkRecord is treated as immutable once created. Copy the Ingredients map
before modifying it.
*/
package models

import "time"

// DrinkRecord is a single cocktail. Name is the catalog's unique key.
type DrinkRecord struct {
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	Ingredients  map[string]string `json:"ingredients"`
	Glass        string            `json:"glass"`
	Instructions string            `json:"instructions"`
	Image        string            `json:"image"`
}

// WithDefaults returns r with a non-nil Ingredients map, so that a missing
// ingredient list serializes as {} rather than null.
//
//nolint:gocritic // DrinkRecord is small and copied on purpose
func (r DrinkRecord) WithDefaults() DrinkRecord {
	if r.Ingredients == nil {
		r.Ingredients = map[string]string{}
	}
	return r
}

// Clone returns a deep copy of r.
//
//nolint:gocritic // DrinkRecord is small and copied on purpose
func (r DrinkRecord) Clone() DrinkRecord {
	if r.Ingredients != nil {
		ing := make(map[string]string, len(r.Ingredients))
		for k, v := range r.Ingredients {
			ing[k] = v
		}
		r.Ingredients = ing
	}
	return r
}

// StoredDrink is a DrinkRecord as persisted by the catalog store.
type StoredDrink struct {
	DrinkRecord
	ID        string    `json:"_id"`
	CreatedAt time.Time `json:"-"`
}
