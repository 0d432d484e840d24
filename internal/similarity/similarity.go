// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

/*
Package similarity provides the scoring models behind /recommend.

A Model maps one feature row to a similarity score for every row of the
feature matrix, so the output of Score is always Rows() long and index i
refers to dataset row i. Two implementations exist:

  - Cosine: cosine similarity against every matrix row, computed with
    viant/vec. Needs nothing beyond the feature matrix.
  - ONNX: a trained model exported to ONNX and evaluated with ONNX Runtime.

New builds a model from configuration and wraps it with a circuit breaker
(sony/gobreaker) and Prometheus instrumentation.
*/
package similarity

import (
	"context"
	"errors"
)

var (
	// ErrShape is returned when a query or model output has the wrong width.
	ErrShape = errors.New("similarity: shape mismatch")

	// ErrCircuitOpen is returned while the breaker rejects calls.
	ErrCircuitOpen = errors.New("similarity: circuit open")

	// ErrClosed is returned by a model used after Close.
	ErrClosed = errors.New("similarity: model closed")
)

// Model scores a query vector against every row of the feature matrix.
// Implementations are safe for concurrent use.
type Model interface {
	Score(ctx context.Context, query []float32) ([]float64, error)
	Name() string
	Close() error
}

// Matrix is the read-only feature matrix a model scores against.
type Matrix interface {
	Rows() int
	Cols() int
	Row(i int) []float32
}
