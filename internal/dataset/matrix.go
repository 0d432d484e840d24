// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package dataset

import "fmt"

// Matrix is an immutable row-major float32 matrix.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// NewMatrix wraps data as a rows x cols matrix. data is not copied and must
// not be modified afterwards.
func NewMatrix(rows, cols int, data []float32) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative shape (%d, %d)", ErrInvalidMatrix, rows, cols)
	}
	if rows > 0 && cols == 0 {
		return nil, fmt.Errorf("%w: %d rows with zero columns", ErrInvalidMatrix, rows)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for shape (%d, %d)", ErrInvalidMatrix, len(data), rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Row returns row i as a read-only view. The slice is capacity-limited so an
// append by the caller cannot overwrite the next row.
func (m *Matrix) Row(i int) []float32 {
	start := i * m.cols
	end := start + m.cols
	return m.data[start:end:end]
}
