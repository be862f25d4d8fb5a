// Package config loads ambient defaults for the identity resolution engine.
// Every engine call site takes explicit options, so nothing here is required:
// the environment only seeds the defaults an embedding process starts from.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/thewrexhamite/pool-league-predictor-sub005/internal/platform/logging"
)

// Config stores runtime defaults for matching and logging.
type Config struct {
	// MinConfidence is the default candidate-search threshold.
	MinConfidence float64
	// MatchMaxWorkers caps the worker pool used by the all-pairs scan.
	MatchMaxWorkers int
	// CaseSensitive and RespectWhitespace seed the default name normalization.
	CaseSensitive     bool
	RespectWhitespace bool
	LogLevel          logging.Level
}

func Load() (Config, error) {
	minConfidence, err := getEnvAsFloat("MATCH_MIN_CONFIDENCE", 0.7)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_MIN_CONFIDENCE: %w", err)
	}
	if minConfidence < 0 || minConfidence > 1 {
		return Config{}, fmt.Errorf("MATCH_MIN_CONFIDENCE out of range: %v", minConfidence)
	}

	maxWorkers, err := getEnvAsInt("MATCH_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_MAX_WORKERS: %w", err)
	}
	if maxWorkers <= 0 {
		return Config{}, fmt.Errorf("MATCH_MAX_WORKERS must be greater than zero: %d", maxWorkers)
	}

	caseSensitive, err := strconv.ParseBool(getEnv("MATCH_CASE_SENSITIVE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_CASE_SENSITIVE: %w", err)
	}

	respectWhitespace, err := strconv.ParseBool(getEnv("MATCH_RESPECT_WHITESPACE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_RESPECT_WHITESPACE: %w", err)
	}

	return Config{
		MinConfidence:     minConfidence,
		MatchMaxWorkers:   maxWorkers,
		CaseSensitive:     caseSensitive,
		RespectWhitespace: respectWhitespace,
		LogLevel:          parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}
