// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sobershot/internal/config"
	"github.com/tomtom215/sobershot/internal/dataset"
	"github.com/tomtom215/sobershot/internal/recommend"
	"github.com/tomtom215/sobershot/internal/similarity"
)

// RecommendComponents holds the recommendation stack built at startup.
type RecommendComponents struct {
	Dataset *dataset.Dataset
	Model   similarity.Model
	Engine  *recommend.Engine
}

// Close releases the model.
func (c *RecommendComponents) Close() error {
	if c == nil || c.Model == nil {
		return nil
	}
	return c.Model.Close()
}

// initRecommend loads the dataset, builds the model and the engine. Any
// failure is returned wrapped in recommend.ErrUnavailable so that main
// refuses to start.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	ds, err := dataset.Load(cfg.Dataset, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: load dataset: %w", recommend.ErrUnavailable, err)
	}

	model, err := similarity.New(cfg.Model, ds.Matrix)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s model: %w", recommend.ErrUnavailable, cfg.Model.Kind, err)
	}

	engine, err := recommend.NewEngine(ds.Records, ds.Matrix, model, recommend.Config{
		Timeout:   cfg.Recommend.Timeout,
		CacheSize: cfg.Recommend.CacheSize,
		CacheTTL:  cfg.Recommend.CacheTTL,
	}, logger)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("%w: build engine: %w", recommend.ErrUnavailable, err),
			model.Close(),
		)
	}

	logger.Info().
		Int("rows", ds.Rows()).
		Int("features", ds.Matrix.Cols()).
		Str("model", model.Name()).
		Bool("breaker", cfg.Model.Breaker.Enabled).
		Int("cache_size", cfg.Recommend.CacheSize).
		Msg("recommendation engine ready")

	return &RecommendComponents{Dataset: ds, Model: model, Engine: engine}, nil
}
