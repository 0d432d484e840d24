// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sobershot/internal/metrics"
)

const (
	defaultHealthInterval = 30 * time.Second
	maxPingTimeout        = 5 * time.Second
)

// Pinger is satisfied by catalog.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CatalogHealthService pings the catalog periodically and publishes the
// result as the catalog_up gauge.
type CatalogHealthService struct {
	store    Pinger
	interval time.Duration
	logger   zerolog.Logger
	name     string

	// nil until the first check
	healthy *bool
}

// NewCatalogHealthService creates the monitor. A non-positive interval
// becomes 30s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogHealthService(store Pinger, interval time.Duration, logger zerolog.Logger) *CatalogHealthService {
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	return &CatalogHealthService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "catalog-health").Logger(),
		name:     "catalog-health",
	}
}

// Serve implements suture.Service. The first check runs immediately.
func (s *CatalogHealthService) Serve(ctx context.Context) error {
	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

// check pings once. Only transitions are logged.
func (s *CatalogHealthService) check(ctx context.Context) {
	timeout := s.interval
	if timeout > maxPingTimeout {
		timeout = maxPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := s.store.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}
	up := err == nil
	metrics.SetCatalogUp(up)

	switch {
	case s.healthy != nil && *s.healthy == up:
	case up:
		s.logger.Info().Msg("catalog reachable")
	default:
		s.logger.Warn().Err(err).Msg("catalog unreachable")
	}
	s.healthy = &up
}

// String implements fmt.Stringer for suture's event log.
func (s *CatalogHealthService) String() string {
	return s.name
}
