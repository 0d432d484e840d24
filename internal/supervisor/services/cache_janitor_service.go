// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Purger drops expired cache entries. *recommend.Engine satisfies it.
type Purger interface {
	PurgeExpired() int
}

// CacheJanitorService purges expired recommendation cache entries so that
// a TTL cache under light traffic does not hold stale rankings forever.
type CacheJanitorService struct {
	cache    Purger
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates the janitor. A non-positive interval
// becomes one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(cache Purger, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.cache.PurgeExpired(); n > 0 {
				s.logger.Debug().Int("purged", n).Msg("expired cache entries purged")
			}
		}
	}
}

// String implements fmt.Stringer for suture's event log.
func (s *CacheJanitorService) String() string {
	return s.name
}
