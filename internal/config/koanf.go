// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sobershot/config.yaml",
	"/etc/sobershot/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotenvPathEnvVar overrides the dotenv file path.
const DotenvPathEnvVar = "DOTENV_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			DSN:              "",
			SeedFromSnapshot: false,
			WriteRateLimit:   0,
			WriteBurst:       10,
			HealthInterval:   30 * time.Second,
		},
		Dataset: DatasetConfig{
			SnapshotPath: "data/drinks.json",
			MatrixPath:   "data/feature_matrix.npy",
		},
		Model: ModelConfig{
			Kind:       ModelKindCosine,
			InputName:  "input",
			OutputName: "output",
			Breaker: BreakerConfig{
				Enabled:          true,
				FailureThreshold: 5,
				MaxRequests:      1,
				Interval:         0,
				Timeout:          30 * time.Second,
			},
		},
		Recommend: RecommendConfig{
			DefaultTopN: 10,
			Timeout:     5 * time.Second,
			CacheSize:   1024,
			CacheTTL:    10 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			MaxBodyBytes:      1 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf builds the configuration from defaults, file, dotenv and
// environment, then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := loadDotenv(); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// CATALOG_DSN wins over DATABASE_URL when both are set.
	if dsn := os.Getenv("CATALOG_DSN"); dsn != "" {
		if err := k.Set("catalog.dsn", dsn); err != nil {
			return nil, fmt.Errorf("failed to set catalog.dsn: %w", err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadDotenv copies variables from the dotenv file into the process
// environment. godotenv.Load leaves variables that are already set alone.
// A missing file is not an error.
func loadDotenv() error {
	path := os.Getenv(DotenvPathEnvVar)
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load dotenv file %s: %w", path, err)
	}
	return nil
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Catalog
	"catalog_dsn":                "catalog.dsn",
	"database_url":               "catalog.dsn",
	"catalog_seed_from_snapshot": "catalog.seed_from_snapshot",
	"catalog_write_rate_limit":   "catalog.write_rate_limit",
	"catalog_write_burst":        "catalog.write_burst",
	"catalog_health_interval":    "catalog.health_interval",

	// Dataset
	"snapshot_path":         "dataset.snapshot_path",
	"feature_matrix_path":   "dataset.matrix_path",
	"feature_matrix_sha256": "dataset.matrix_sha256",

	// Model
	"model_kind":                 "model.kind",
	"model_path":                 "model.path",
	"onnx_runtime_library":       "model.runtime_library",
	"model_input_name":           "model.input_name",
	"model_output_name":          "model.output_name",
	"model_breaker_enabled":      "model.breaker.enabled",
	"model_breaker_threshold":    "model.breaker.failure_threshold",
	"model_breaker_timeout":      "model.breaker.timeout",
	"model_breaker_max_requests": "model.breaker.max_requests",
	"model_breaker_interval":     "model.breaker.interval",

	// Recommend
	"recommend_default_top_n": "recommend.default_top_n",
	"recommend_timeout":       "recommend.timeout",
	"recommend_cache_size":    "recommend.cache_size",
	"recommend_cache_ttl":     "recommend.cache_ttl",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"max_body_bytes":      "security.max_body_bytes",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path,
// or "" to skip it.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DATABASE_URL -> catalog.dsn
//   - FEATURE_MATRIX_PATH -> dataset.matrix_path
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
