// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sobershot/internal/cache"
	"github.com/tomtom215/sobershot/internal/logging"
	"github.com/tomtom215/sobershot/internal/metrics"
	"github.com/tomtom215/sobershot/internal/models"
)

// Scorer produces one similarity score per dataset row for a query row.
type Scorer interface {
	Score(ctx context.Context, query []float32) ([]float64, error)
}

// Features is the row-aligned feature matrix.
type Features interface {
	Rows() int
	Row(i int) []float32
}

// Config tunes the engine. The zero value disables caching and timeouts.
type Config struct {
	// Timeout bounds one model call; 0 leaves the caller's deadline alone.
	Timeout time.Duration

	// CacheSize 0 disables the result cache.
	CacheSize int
	CacheTTL  time.Duration
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests    int64
	CacheHits   int64
	CacheMisses int64
	Errors      int64
}

type cacheKey struct {
	index int
	topN  int
}

// Engine serves recommendations from a fixed dataset. It is safe for
// concurrent use.
type Engine struct {
	records  []models.DrinkRecord
	features Features
	model    Scorer
	config   Config
	logger   zerolog.Logger

	// nil when caching is disabled
	cache *cache.LRU[cacheKey, []int]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates an engine over row-aligned records and features.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(records []models.DrinkRecord, features Features, model Scorer, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if features == nil || model == nil {
		return nil, errors.New("recommend: features and model are required")
	}
	if len(records) != features.Rows() {
		return nil, fmt.Errorf("%w: %d records, %d feature rows", ErrMisaligned, len(records), features.Rows())
	}
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("recommend: negative cache size %d", cfg.CacheSize)
	}

	e := &Engine{
		records:  records,
		features: features,
		model:    model,
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.CacheSize > 0 {
		e.cache = cache.NewLRU[cacheKey, []int](cfg.CacheSize, cfg.CacheTTL)
	}
	return e, nil
}

// Rows returns the number of rows the engine can recommend from.
func (e *Engine) Rows() int { return len(e.records) }

// Recommend returns up to topN drinks most similar to dataset row index,
// excluding the row itself.
func (e *Engine) Recommend(ctx context.Context, index, topN int) ([]models.DrinkRecord, error) {
	e.requestCount.Add(1)

	n := len(e.records)
	if index < 0 || index >= n {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("invalid_index")
		return nil, fmt.Errorf("%w: %d is not in [0, %d)", ErrInvalidIndex, index, n)
	}
	if topN < 1 {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("invalid_count")
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, topN)
	}

	key := cacheKey{index: index, topN: topN}
	if e.cache != nil {
		if ranked, ok := e.cache.Get(key); ok {
			e.cacheHits.Add(1)
			metrics.RecordCacheLookup(true)
			metrics.RecordRecommendation("cache_hit")
			return e.materialize(ranked), nil
		}
		e.cacheMisses.Add(1)
		metrics.RecordCacheLookup(false)
	}

	ranked, err := e.rank(ctx, index, topN)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("unavailable")
		logging.Ctx(ctx).Warn().
			Err(err).
			Int("drink_index", index).
			Int("top_n", topN).
			Msg("recommendation failed")
		return nil, err
	}

	if e.cache != nil {
		e.cache.Add(key, ranked)
	}
	metrics.RecordRecommendation("ok")
	return e.materialize(ranked), nil
}

// rank scores row index and returns the ranked neighbor indices.
func (e *Engine) rank(ctx context.Context, index, topN int) ([]int, error) {
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	scores, err := e.model.Score(ctx, e.features.Row(index))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	n := len(e.records)
	if len(scores) != n {
		return nil, fmt.Errorf("%w: model returned %d scores for %d rows", ErrUnavailable, len(scores), n)
	}
	for i, s := range scores {
		if math.IsNaN(s) {
			return nil, fmt.Errorf("%w: model returned NaN for row %d", ErrUnavailable, i)
		}
	}

	ranked := Rank(scores, index, topN)
	e.logger.Debug().
		Int("drink_index", index).
		Int("top_n", topN).
		Int("returned", len(ranked)).
		Msg("recommendation ranked")
	return ranked, nil
}

// materialize maps ranked rows to fresh record copies so callers never
// share state with the dataset or the cache.
func (e *Engine) materialize(ranked []int) []models.DrinkRecord {
	out := make([]models.DrinkRecord, len(ranked))
	for i, row := range ranked {
		out[i] = e.records[row].Clone().WithDefaults()
	}
	return out
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		Errors:      e.errorCount.Load(),
	}
}

// PurgeExpired drops expired cache entries and returns how many went.
func (e *Engine) PurgeExpired() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.CleanupExpired()
}
