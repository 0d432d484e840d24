// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package models

// AddDrinkRequest is the body of POST /add-drink. Every key must be present;
// glass, instructions and image may be empty strings.
type AddDrinkRequest struct {
	Name         string            `json:"name" validate:"notblank,max=200"`
	Category     string            `json:"category" validate:"notblank,max=100"`
	Ingredients  map[string]string `json:"ingredients" validate:"required,max=50,dive,keys,notblank,max=100,endkeys,max=200"`
	Glass        *string           `json:"glass" validate:"required,max=100"`
	Instructions *string           `json:"instructions" validate:"required,max=4000"`
	Image        *string           `json:"image" validate:"required,max=2048"`
}

// Record converts a validated request into a DrinkRecord.
func (r *AddDrinkRequest) Record() DrinkRecord {
	rec := DrinkRecord{
		Name:        r.Name,
		Category:    r.Category,
		Ingredients: r.Ingredients,
	}
	if r.Glass != nil {
		rec.Glass = *r.Glass
	}
	if r.Instructions != nil {
		rec.Instructions = *r.Instructions
	}
	if r.Image != nil {
		rec.Image = *r.Image
	}
	return rec.WithDefaults()
}

// RecommendRequest is the body of POST /recommend. A missing or null top_n
// takes the configured default.
type RecommendRequest struct {
	DrinkIndex *int `json:"drink_index" validate:"required"`
	TopN       *int `json:"top_n"`
}

// MessageResponse is the body of GET /.
type MessageResponse struct {
	Message string `json:"message"`
}

// AddDrinkResponse is the body of a successful POST /add-drink.
type AddDrinkResponse struct {
	Message string      `json:"message"`
	Drink   StoredDrink `json:"drink"`
}

// SearchResponse is the body of a successful GET /search.
type SearchResponse struct {
	Results []DrinkRecord `json:"results"`
}

// RecommendResponse is the body of a successful POST /recommend.
type RecommendResponse struct {
	Recommendations []DrinkRecord `json:"recommendations"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status      string `json:"status"`
	DatasetRows int    `json:"dataset_rows,omitempty"`
	Error       string `json:"error,omitempty"`
}
