// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sobershot/internal/catalog"
	"github.com/tomtom215/sobershot/internal/config"
	"github.com/tomtom215/sobershot/internal/models"
	"github.com/tomtom215/sobershot/internal/validation"
)

const (
	defaultTopN         = 10
	defaultMaxBodyBytes = 1 << 20
)

// Recommender produces similar drinks for a dataset row.
// *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, index, topN int) ([]models.DrinkRecord, error)
	Rows() int
}

// Handler serves the drink API.
type Handler struct {
	catalog      catalog.Store
	recommender  Recommender
	defaultTopN  int
	maxBodyBytes int64
}

// NewHandler creates a Handler. cfg may be nil, in which case built-in
// defaults apply.
func NewHandler(store catalog.Store, recommender Recommender, cfg *config.Config) *Handler {
	h := &Handler{
		catalog:      store,
		recommender:  recommender,
		defaultTopN:  defaultTopN,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	if cfg != nil {
		if cfg.Recommend.DefaultTopN > 0 {
			h.defaultTopN = cfg.Recommend.DefaultTopN
		}
		if cfg.Security.MaxBodyBytes > 0 {
			h.maxBodyBytes = cfg.Security.MaxBodyBytes
		}
	}
	return h
}

// Root answers GET / with the service banner.
//
// @Summary Service banner
// @Tags Drinks
// @Produce json
// @Success 200 {object} models.MessageResponse "Service is running"
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.MessageResponse{Message: detailRunning})
}

// decodeJSON reads a size-limited body into dst and validates it. It
// writes the error response itself and reports whether the caller should
// continue.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, codeBodyTooLarge, detailBodyTooLarge, err)
			return false
		}
		respondError(w, r, http.StatusUnprocessableEntity, codeInvalidJSON, "Invalid request body", err)
		return false
	}

	if len(body) == 0 {
		respondError(w, r, http.StatusUnprocessableEntity, codeInvalidJSON, "Request body is required", nil)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, codeInvalidJSON,
			fmt.Sprintf("Invalid JSON: %s", err.Error()), err)
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		respondError(w, r, http.StatusUnprocessableEntity, codeValidation, verr.Error(), verr)
		return false
	}
	return true
}
