// Package config loads the ambient knobs shared by every CLI command:
// the max-iteration value handed to the call-graph engine, the LRU cache
// size, the import normalizer's temp-directory suffix, and the metrics
// opt-out. Built-in defaults are overridden by a ".env" file loaded via
// godotenv; no CLI flag overrides these fields.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultMaxIter    = 1000
	defaultCacheSize  = 256
	defaultTempSuffix = "_temp"
)

// Config holds the settings every analysis entrypoint needs.
type Config struct {
	MaxIter        int
	CacheSize      int
	TempSuffix     string
	DisableMetrics bool
}

// Default returns the built-in defaults, before any ".env" or flag
// overrides are applied.
func Default() Config {
	return Config{
		MaxIter:        defaultMaxIter,
		CacheSize:      defaultCacheSize,
		TempSuffix:     defaultTempSuffix,
		DisableMetrics: false,
	}
}

// Load starts from Default(), applies envPath (if it exists) via
// godotenv, and returns the result. A missing envPath is not an error —
// it simply means no overrides are present.
func Load(envPath string) Config {
	cfg := Default()

	if envPath == "" {
		return cfg
	}
	if _, err := os.Stat(envPath); err != nil {
		return cfg
	}
	vars, err := godotenv.Read(envPath)
	if err != nil {
		return cfg
	}

	if v, ok := vars["YAPPY_MAX_ITER"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxIter = n
		}
	}
	if v, ok := vars["YAPPY_CACHE_SIZE"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CacheSize = n
		}
	}
	if v, ok := vars["YAPPY_TEMP_SUFFIX"]; ok && v != "" {
		cfg.TempSuffix = v
	}
	if v, ok := vars["YAPPY_DISABLE_METRICS"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DisableMetrics = b
		}
	}

	return cfg
}
