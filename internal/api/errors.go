// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package api

// Client-facing detail strings.
const (
	detailRunning        = "Beverage Recommendation API is running!"
	detailDrinkAdded     = "Drink added successfully"
	detailDuplicate      = "Drink already exists"
	detailNoMatch        = "No drinks found matching your query"
	detailInternal       = "Internal server error"
	detailBodyTooLarge   = "Request body too large"
	detailRateLimited    = "Too many requests"
	detailMissingQuery   = "query parameter is required"
	detailRecommendError = "An error occurred: "
)

// Log codes for respondError.
const (
	codeInvalidJSON     = "INVALID_JSON"
	codeValidation      = "VALIDATION_ERROR"
	codeBodyTooLarge    = "BODY_TOO_LARGE"
	codeDuplicate       = "DUPLICATE_DRINK"
	codeNoMatch         = "NO_MATCH"
	codeCatalogError    = "CATALOG_ERROR"
	codeInvalidCount    = "INVALID_TOP_N"
	codeRecommendFailed = "RECOMMEND_FAILED"
	codeNotReady        = "NOT_READY"
)
