// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/sobershot/internal/models"
	"github.com/tomtom215/sobershot/internal/recommend"
)

// Recommend returns the drinks most similar to drink_index. An omitted
// top_n uses the configured default.
//
// An out-of-range drink_index is a 500, not a 4xx, to stay wire
// compatible with existing clients.
//
// @Summary Recommend drinks similar to a dataset row
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.RecommendRequest true "Dataset row and result count"
// @Success 200 {object} models.RecommendResponse "Most similar drinks, best first"
// @Failure 422 {object} models.ErrorResponse "Malformed body or top_n below 1"
// @Failure 500 {object} models.ErrorResponse "Index out of range or model failure"
// @Router /recommend [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	topN := h.defaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}

	recs, err := h.recommender.Recommend(r.Context(), *req.DrinkIndex, topN)
	switch {
	case err == nil:
	case errors.Is(err, recommend.ErrInvalidCount):
		respondError(w, r, http.StatusUnprocessableEntity, codeInvalidCount, err.Error(), nil)
		return
	default:
		respondError(w, r, http.StatusInternalServerError, codeRecommendFailed, detailRecommendError+err.Error(), err)
		return
	}

	if recs == nil {
		recs = []models.DrinkRecord{}
	}
	respondJSON(w, http.StatusOK, &models.RecommendResponse{Recommendations: recs})
}
