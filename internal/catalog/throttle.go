// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/tomtom215/sobershot/internal/models"
)

// throttledStore puts a process-wide token bucket in front of writes.
// Reads are not limited here; per-client limits live in the HTTP layer.
type throttledStore struct {
	Store
	limiter *rate.Limiter
}

// Throttle limits InsertIfAbsent to perSecond calls with the given burst.
// A non-positive rate returns s unchanged.
func Throttle(s Store, perSecond float64, burst int) Store {
	if perSecond <= 0 {
		return s
	}
	if burst < 1 {
		burst = 1
	}
	return &throttledStore{Store: s, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// InsertIfAbsent waits for a token, giving up when ctx is done.
func (s *throttledStore) InsertIfAbsent(ctx context.Context, rec models.DrinkRecord) (models.StoredDrink, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return models.StoredDrink{}, fmt.Errorf("catalog write throttled: %w", err)
	}
	return s.Store.InsertIfAbsent(ctx, rec)
}
