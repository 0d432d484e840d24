// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sobershot/internal/config"
	"github.com/tomtom215/sobershot/internal/metrics"
)

// LoadMatrix reads and parses the .npy file at path. When wantSHA256 is
// non-empty the file digest must match it. The returned digest is always
// the hex SHA-256 of the file.
func LoadMatrix(path, wantSHA256 string) (*Matrix, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read feature matrix: %w", err)
	}

	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	if wantSHA256 != "" && !strings.EqualFold(wantSHA256, digest) {
		return nil, digest, fmt.Errorf("%w: %s has sha256 %s, want %s", ErrChecksumMismatch, path, digest, wantSHA256)
	}

	m, err := ParseNPY(data)
	if err != nil {
		return nil, digest, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, digest, nil
}

// Load reads both artifacts and asserts row alignment. Any error means the
// artifacts cannot be served.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Load(cfg config.DatasetConfig, logger zerolog.Logger) (*Dataset, error) {
	log := logger.With().Str("component", "dataset").Logger()

	records, err := LoadSnapshot(cfg.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", cfg.SnapshotPath, err)
	}

	matrix, digest, err := LoadMatrix(cfg.MatrixPath, cfg.MatrixSHA256)
	if err != nil {
		return nil, err
	}

	if len(records) != matrix.Rows() {
		return nil, fmt.Errorf("%w: snapshot has %d records, feature matrix has %d rows",
			ErrMisaligned, len(records), matrix.Rows())
	}

	if len(records) < 2 {
		log.Warn().
			Int("rows", len(records)).
			Msg("dataset has fewer than two rows; every recommendation will be empty")
	}

	metrics.SetDatasetShape(matrix.Rows(), matrix.Cols())

	log.Info().
		Str("snapshot", cfg.SnapshotPath).
		Str("matrix", cfg.MatrixPath).
		Int("rows", matrix.Rows()).
		Int("cols", matrix.Cols()).
		Str("sha256", digest).
		Bool("checksum_verified", cfg.MatrixSHA256 != "").
		Msg("dataset loaded")

	return &Dataset{Records: records, Matrix: matrix, Digest: digest}, nil
}
