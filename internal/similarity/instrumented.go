// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package similarity

import (
	"context"
	"time"

	"github.com/tomtom215/sobershot/internal/metrics"
)

type instrumentedModel struct {
	next Model
}

// Instrument records recommend_model_duration_seconds for every Score call.
func Instrument(next Model) Model {
	return &instrumentedModel{next: next}
}

func (m *instrumentedModel) Name() string { return m.next.Name() }

func (m *instrumentedModel) Score(ctx context.Context, query []float32) ([]float64, error) {
	start := time.Now()
	scores, err := m.next.Score(ctx, query)
	metrics.RecordModelDuration(time.Since(start))
	return scores, err
}

func (m *instrumentedModel) Close() error { return m.next.Close() }
