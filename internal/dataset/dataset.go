// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

/*
Package dataset loads the offline artifacts the recommender serves from: the
row-aligned drink snapshot and the feature matrix.

Row i of the matrix, model output i and snapshot record i describe the same
drink. Load checks that the counts agree (and, when the snapshot carries a
row column, that every row ID equals its position) and refuses to return a
Dataset otherwise. The process must not start serving in that case.

The snapshot is frozen when the artifacts are built. Drinks inserted into the
catalog afterwards are searchable but never appear in recommendations.
*/
package dataset

import (
	"errors"

	"github.com/tomtom215/sobershot/internal/models"
)

var (
	// ErrMisaligned is returned when the snapshot and matrix disagree on
	// the number of rows, or a row ID does not match its position.
	ErrMisaligned = errors.New("dataset is not row-aligned")

	// ErrChecksumMismatch is returned when the matrix file does not match
	// the configured SHA-256 digest.
	ErrChecksumMismatch = errors.New("feature matrix checksum mismatch")

	// ErrInvalidMatrix is returned for malformed .npy content.
	ErrInvalidMatrix = errors.New("invalid feature matrix")

	// ErrUnsupportedFormat is returned for artifacts in a format or dtype
	// the loader does not read.
	ErrUnsupportedFormat = errors.New("unsupported artifact format")

	// ErrInvalidSnapshot is returned for malformed snapshot records.
	ErrInvalidSnapshot = errors.New("invalid dataset snapshot")
)

// Dataset is the read-only, row-aligned pair of records and features.
type Dataset struct {
	Records []models.DrinkRecord
	Matrix  *Matrix

	// Digest is the hex SHA-256 of the matrix file.
	Digest string
}

// Rows returns the number of aligned rows.
func (d *Dataset) Rows() int { return len(d.Records) }
