// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

/*
Package config loads SoberShot configuration with Koanf v2.

Sources are layered, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/sobershot/config.yaml
 3. Optional dotenv file: $DOTENV_PATH or ./.env (never overrides variables
    already present in the process environment)
 4. Environment variables, through an explicit name mapping

Example config.yaml:

	server:
	  port: 8000
	catalog:
	  dsn: "postgres://sobershot:secret@db:5432/sobershot"
	dataset:
	  snapshot_path: /data/drinks.json
	  matrix_path: /data/feature_matrix.npy
	model:
	  kind: cosine
*/
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Model     ModelConfig     `koanf:"model"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// CatalogConfig selects and tunes the catalog store.
//
// Environment Variables:
//   - CATALOG_DSN or DATABASE_URL: backend DSN (empty = SQLite at data/sobershot.db)
//   - CATALOG_SEED_FROM_SNAPSHOT: insert snapshot drinks at startup
//   - CATALOG_WRITE_RATE_LIMIT: inserts per second across all clients (0 = unlimited)
type CatalogConfig struct {
	DSN              string        `koanf:"dsn"`
	SeedFromSnapshot bool          `koanf:"seed_from_snapshot"`
	WriteRateLimit   float64       `koanf:"write_rate_limit"`
	WriteBurst       int           `koanf:"write_burst"`
	HealthInterval   time.Duration `koanf:"health_interval"`
}

// DatasetConfig points at the row-aligned artifacts loaded at startup.
type DatasetConfig struct {
	SnapshotPath string `koanf:"snapshot_path"`
	MatrixPath   string `koanf:"matrix_path"`

	// MatrixSHA256 is an optional hex digest of the .npy file.
	MatrixSHA256 string `koanf:"matrix_sha256"`
}

// Model kinds.
const (
	ModelKindCosine = "cosine"
	ModelKindONNX   = "onnx"
)

// ModelConfig selects the similarity model.
type ModelConfig struct {
	Kind string `koanf:"kind"`

	// ONNX only.
	Path           string `koanf:"path"`
	RuntimeLibrary string `koanf:"runtime_library"`
	InputName      string `koanf:"input_name"`
	OutputName     string `koanf:"output_name"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around the model.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	DefaultTopN int           `koanf:"default_top_n"`
	Timeout     time.Duration `koanf:"timeout"`

	// CacheSize 0 disables the result cache.
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds CORS, rate limit and body size settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	// Level is trace, debug, info, warn or error. Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller adds file:line to each entry.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from all layers. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
