// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package recommend

import "errors"

var (
	// ErrInvalidIndex is returned when the query index is outside the dataset.
	ErrInvalidIndex = errors.New("drink index out of range")

	// ErrInvalidCount is returned when topN is less than 1.
	ErrInvalidCount = errors.New("top_n must be at least 1")

	// ErrUnavailable is returned when the similarity model fails or
	// produces unusable scores.
	ErrUnavailable = errors.New("recommendation unavailable")

	// ErrMisaligned is returned by NewEngine when records and features
	// disagree on the row count.
	ErrMisaligned = errors.New("records and features are not row-aligned")
)
