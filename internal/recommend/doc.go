// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

// Package recommend ranks the drinks most similar to a given dataset row.
//
// # Algorithm
//
// Recommend(ctx, index, topN):
//
//  1. Reject index outside [0, rows) with ErrInvalidIndex and topN < 1 with
//     ErrInvalidCount. The model is not called.
//  2. Score feature row index against every row with the similarity model.
//  3. Rank rows by descending score; equal scores keep ascending row order.
//  4. Drop the query row itself, keep the first topN and map each row to
//     its dataset record.
//
// A model failure is reported as ErrUnavailable and never retried. A result
// of the wrong length or containing NaN counts as a model failure.
//
// # Determinism
//
// The same index and topN always produce the same records in the same
// order. The engine holds no mutable state apart from the optional result
// cache, which stores ranked row indices keyed by (index, topN).
//
// # Usage
//
//	engine, err := recommend.NewEngine(ds.Records, ds.Matrix, model, recommend.Config{
//	    CacheSize: 1024,
//	    CacheTTL:  10 * time.Minute,
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	recs, err := engine.Recommend(ctx, 42, 10)
//
// # Thread Safety
//
// Engine is safe for concurrent use. Records, features and model are
// shared read-only; the cache has its own lock.
package recommend
