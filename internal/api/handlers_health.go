// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/sobershot/internal/logging"
	"github.com/tomtom215/sobershot/internal/models"
)

const readinessTimeout = 2 * time.Second

// HealthLive reports that the process is serving requests.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthResponse "Process is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.HealthResponse{Status: "ok"})
}

// HealthReady reports 200 when the catalog answers a ping, 503 otherwise.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthResponse "Catalog reachable"
// @Failure 503 {object} models.HealthResponse "Catalog unreachable"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.catalog.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().
			Str("code", codeNotReady).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("readiness check failed")
		respondJSON(w, http.StatusServiceUnavailable, &models.HealthResponse{
			Status: "not_ready",
			Error:  "catalog unreachable",
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.HealthResponse{
		Status:      "ready",
		DatasetRows: h.recommender.Rows(),
	})
}
