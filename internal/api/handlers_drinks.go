// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/sobershot/internal/catalog"
	"github.com/tomtom215/sobershot/internal/logging"
	"github.com/tomtom215/sobershot/internal/models"
)

// AddDrink inserts a drink unless one with the same name exists.
//
// @Summary Add a drink to the catalog
// @Tags Drinks
// @Accept json
// @Produce json
// @Param drink body models.AddDrinkRequest true "Drink to add"
// @Success 200 {object} models.AddDrinkResponse "Drink added"
// @Failure 400 {object} models.ErrorResponse "Drink already exists"
// @Failure 413 {object} models.ErrorResponse "Request body too large"
// @Failure 422 {object} models.ErrorResponse "Malformed or invalid body"
// @Router /add-drink [post]
func (h *Handler) AddDrink(w http.ResponseWriter, r *http.Request) {
	var req models.AddDrinkRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	stored, err := h.catalog.InsertIfAbsent(r.Context(), req.Record())
	switch {
	case err == nil:
	case errors.Is(err, catalog.ErrDuplicateKey):
		respondError(w, r, http.StatusBadRequest, codeDuplicate, detailDuplicate, nil)
		return
	default:
		respondError(w, r, http.StatusInternalServerError, codeCatalogError, detailInternal, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("name", sanitizeLogValue(stored.Name)).
		Str("id", stored.ID).
		Msg("drink added")

	stored.DrinkRecord = stored.WithDefaults()
	respondJSON(w, http.StatusOK, &models.AddDrinkResponse{
		Message: detailDrinkAdded,
		Drink:   stored,
	})
}

// Search returns drinks whose name or category contains the query. The
// query parameter must be present; an empty value matches everything.
//
// @Summary Search drinks by name or category
// @Tags Drinks
// @Produce json
// @Param query query string true "Case-insensitive substring; empty matches every drink"
// @Success 200 {object} models.SearchResponse "Matching drinks in insertion order"
// @Failure 404 {object} models.ErrorResponse "No drinks found matching your query"
// @Failure 422 {object} models.ErrorResponse "Missing query parameter"
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	values, ok := r.URL.Query()["query"]
	if !ok {
		respondError(w, r, http.StatusUnprocessableEntity, codeValidation, detailMissingQuery, nil)
		return
	}

	results, err := h.catalog.SearchByText(r.Context(), values[0])
	switch {
	case err == nil && len(results) > 0:
	case err == nil, errors.Is(err, catalog.ErrNoMatch):
		respondError(w, r, http.StatusNotFound, codeNoMatch, detailNoMatch, nil)
		return
	default:
		respondError(w, r, http.StatusInternalServerError, codeCatalogError, detailInternal, err)
		return
	}

	for i := range results {
		results[i] = results[i].WithDefaults()
	}
	respondJSON(w, http.StatusOK, &models.SearchResponse{Results: results})
}
