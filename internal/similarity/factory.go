// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package similarity

import (
	"fmt"

	"github.com/tomtom215/sobershot/internal/config"
)

// New builds the model selected by cfg.Kind over matrix, with the breaker
// (when enabled) inside the instrumentation.
func New(cfg config.ModelConfig, matrix Matrix) (Model, error) {
	var base Model
	switch cfg.Kind {
	case config.ModelKindCosine, "":
		base = NewCosine(matrix)
	case config.ModelKindONNX:
		m, err := NewONNX(ONNXConfig{
			ModelPath:      cfg.Path,
			RuntimeLibrary: cfg.RuntimeLibrary,
			InputName:      cfg.InputName,
			OutputName:     cfg.OutputName,
		}, matrix.Rows(), matrix.Cols())
		if err != nil {
			return nil, err
		}
		base = m
	default:
		return nil, fmt.Errorf("unknown model kind %q", cfg.Kind)
	}

	model := base
	if cfg.Breaker.Enabled {
		model = WithBreaker(model, BreakerConfig{
			FailureThreshold: cfg.Breaker.FailureThreshold,
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
		})
	}
	return Instrument(model), nil
}
