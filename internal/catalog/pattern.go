// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching query literally anywhere
// in a column normalized with the same fold. An empty query matches
// everything.
func containsPattern(query string, fold func(string) string) string {
	return "%" + likeEscaper.Replace(fold(query)) + "%"
}

// lowerText pairs with SQL LOWER on PostgreSQL and DuckDB, which lower
// the full Unicode range.
func lowerText(s string) string {
	return strings.ToLower(s)
}

// foldText is full Unicode case folding, used on both sides of SQLite
// search. A Caser is stateful, so each call gets its own.
func foldText(s string) string {
	return cases.Fold().String(s)
}
