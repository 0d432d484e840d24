// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

// Package metrics registers SoberShot's Prometheus collectors and exposes
// small helpers for recording them.
//
// Collectors are registered on the default registry at init through
// promauto and are served by promhttp at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "invalid_index", "invalid_count", "unavailable"
	)

	RecommendModelDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_model_duration_seconds",
			Help:    "Time spent scoring one query row against the feature matrix",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Recommendation result cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Recommendation result cache misses",
		},
	)

	// Catalog Metrics
	CatalogOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_operations_total",
			Help: "Catalog store operations by result",
		},
		[]string{"operation", "result"}, // result: "ok", "duplicate", "no_match", "error"
	)

	CatalogOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_operation_duration_seconds",
			Help:    "Duration of catalog store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CatalogStoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_store_up",
			Help: "1 when the last catalog ping succeeded, 0 otherwise",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Dataset Metrics
	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Rows in the loaded row-aligned dataset",
		},
	)

	DatasetFeatureColumns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_feature_columns",
			Help: "Columns in the loaded feature matrix",
		},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation counts a recommendation outcome.
func RecordRecommendation(outcome string) {
	RecommendRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordModelDuration observes one model scoring call.
func RecordModelDuration(duration time.Duration) {
	RecommendModelDuration.Observe(duration.Seconds())
}

// RecordCacheLookup counts a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// RecordCatalogOperation records one catalog store call.
func RecordCatalogOperation(operation, result string, duration time.Duration) {
	CatalogOperationsTotal.WithLabelValues(operation, result).Inc()
	CatalogOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetCatalogUp sets the catalog health gauge.
func SetCatalogUp(up bool) {
	if up {
		CatalogStoreUp.Set(1)
	} else {
		CatalogStoreUp.Set(0)
	}
}

// SetDatasetShape publishes the loaded dataset dimensions.
func SetDatasetShape(rows, cols int) {
	DatasetRows.Set(float64(rows))
	DatasetFeatureColumns.Set(float64(cols))
}
