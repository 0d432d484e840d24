// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package config

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.WriteRateLimit < 0 {
		return fmt.Errorf("CATALOG_WRITE_RATE_LIMIT must be >= 0, got %v", c.Catalog.WriteRateLimit)
	}
	if c.Catalog.WriteRateLimit > 0 && c.Catalog.WriteBurst < 1 {
		return fmt.Errorf("CATALOG_WRITE_BURST must be >= 1 when a write rate limit is set, got %d", c.Catalog.WriteBurst)
	}
	if c.Catalog.HealthInterval <= 0 {
		return fmt.Errorf("CATALOG_HEALTH_INTERVAL must be positive, got %v", c.Catalog.HealthInterval)
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Dataset.SnapshotPath == "" {
		return fmt.Errorf("SNAPSHOT_PATH is required")
	}
	if c.Dataset.MatrixPath == "" {
		return fmt.Errorf("FEATURE_MATRIX_PATH is required")
	}
	if digest := c.Dataset.MatrixSHA256; digest != "" {
		raw, err := hex.DecodeString(digest)
		if err != nil || len(raw) != 32 {
			return fmt.Errorf("FEATURE_MATRIX_SHA256 must be 64 hex characters")
		}
	}
	return nil
}

func (c *Config) validateModel() error {
	switch c.Model.Kind {
	case ModelKindCosine:
	case ModelKindONNX:
		if c.Model.Path == "" {
			return fmt.Errorf("MODEL_PATH is required when MODEL_KIND=onnx")
		}
		if c.Model.InputName == "" || c.Model.OutputName == "" {
			return fmt.Errorf("MODEL_INPUT_NAME and MODEL_OUTPUT_NAME are required when MODEL_KIND=onnx")
		}
	default:
		return fmt.Errorf("MODEL_KIND must be one of: %s, %s (got %q)", ModelKindCosine, ModelKindONNX, c.Model.Kind)
	}

	if c.Model.Breaker.Enabled {
		if c.Model.Breaker.FailureThreshold < 1 {
			return fmt.Errorf("MODEL_BREAKER_THRESHOLD must be >= 1")
		}
		if c.Model.Breaker.Timeout <= 0 {
			return fmt.Errorf("MODEL_BREAKER_TIMEOUT must be positive, got %v", c.Model.Breaker.Timeout)
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultTopN < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_N must be >= 1, got %d", c.Recommend.DefaultTopN)
	}
	if c.Recommend.Timeout <= 0 {
		return fmt.Errorf("RECOMMEND_TIMEOUT must be positive, got %v", c.Recommend.Timeout)
	}
	if c.Recommend.CacheSize < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE must be >= 0, got %d", c.Recommend.CacheSize)
	}
	if c.Recommend.CacheSize > 0 && c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when the cache is enabled, got %v", c.Recommend.CacheTTL)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be >= 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
		}
	}
	if c.Security.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be >= 1, got %d", c.Security.MaxBodyBytes)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error (got %q)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console (got %q)", c.Logging.Format)
	}
	return nil
}
