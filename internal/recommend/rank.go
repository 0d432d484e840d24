// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package recommend

import "sort"

// Rank returns up to topN row indices ordered by descending score, ties
// broken by ascending index, with row exclude left out.
func Rank(scores []float64, exclude, topN int) []int {
	indices := make([]int, 0, len(scores))
	for i := range scores {
		if i != exclude {
			indices = append(indices, i)
		}
	}

	sort.Slice(indices, func(a, b int) bool {
		ia, ib := indices[a], indices[b]
		if scores[ia] != scores[ib] {
			return scores[ia] > scores[ib]
		}
		return ia < ib
	})

	if topN < len(indices) {
		return append([]int(nil), indices[:topN]...)
	}
	return indices
}
