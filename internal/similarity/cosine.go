// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package similarity

import (
	"context"
	"fmt"

	"github.com/viant/vec/search"
)

// ctxCheckEvery is how many rows are scored between context checks.
const ctxCheckEvery = 1024

// Cosine scores by cosine similarity. Row magnitudes are computed once so
// zero rows are skipped without touching the distance kernel.
type Cosine struct {
	matrix     Matrix
	magnitudes []float32
}

// NewCosine precomputes row magnitudes for m.
func NewCosine(m Matrix) *Cosine {
	mags := make([]float32, m.Rows())
	for i := range mags {
		mags[i] = search.Float32s(m.Row(i)).Magnitude()
	}
	return &Cosine{matrix: m, magnitudes: mags}
}

// Name implements Model.
func (c *Cosine) Name() string { return "cosine" }

// Score returns 1 - cosine distance for every row. A zero vector on either
// side scores 0.
func (c *Cosine) Score(ctx context.Context, query []float32) ([]float64, error) {
	if len(query) != c.matrix.Cols() {
		return nil, fmt.Errorf("%w: query has %d features, matrix has %d", ErrShape, len(query), c.matrix.Cols())
	}

	q := search.Float32s(query)
	qm := q.Magnitude()

	scores := make([]float64, c.matrix.Rows())
	for i := range scores {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rm := c.magnitudes[i]
		if qm == 0 || rm == 0 {
			continue
		}
		scores[i] = 1 - float64(q.CosineDistance(c.matrix.Row(i)))
	}
	return scores, nil
}

// Close implements Model.
func (c *Cosine) Close() error { return nil }
