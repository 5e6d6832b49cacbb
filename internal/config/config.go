package config

import (
	"os"
	"strconv"

	"pitcheck/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Inputs   InputConfig
	Analysis AnalysisConfig
	Output   OutputConfig
	Database DatabaseConfig
}

// InputConfig holds the input artifact paths
type InputConfig struct {
	ObsFile   string // observation table (csv or xlsx)
	DrawsFile string // precomputed posterior draw matrix (gob)
}

// AnalysisConfig holds transform and reference-band settings
type AnalysisConfig struct {
	Seed            int64
	RefSeries       int
	AnimationFrames int
	Bandwidth       float64 // <= 0 selects Silverman's rule
}

// OutputConfig holds rendering destinations
type OutputConfig struct {
	Dir     string
	Animate bool
}

// DatabaseConfig holds optional run persistence settings
type DatabaseConfig struct {
	URL string // empty disables persistence
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Inputs: InputConfig{
			ObsFile:   os.Getenv("OBS_FILE"),
			DrawsFile: os.Getenv("DRAWS_FILE"),
		},
		Analysis: AnalysisConfig{
			Seed:            getEnvInt64OrDefault("SEED", 42),
			RefSeries:       getEnvIntOrDefault("REF_SERIES", 50),
			AnimationFrames: getEnvIntOrDefault("ANIMATION_FRAMES", 40),
			Bandwidth:       getEnvFloatOrDefault("BANDWIDTH", 0),
		},
		Output: OutputConfig{
			Dir:     getEnvOrDefault("OUT_DIR", "./out"),
			Animate: getEnvBoolOrDefault("ANIMATE", true),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Inputs.ObsFile == "" {
		return errors.ConfigInvalid("OBS_FILE is required")
	}
	if config.Inputs.DrawsFile == "" {
		return errors.ConfigInvalid("DRAWS_FILE is required")
	}
	if config.Analysis.RefSeries <= 0 {
		return errors.ConfigInvalid("REF_SERIES must be positive")
	}
	if config.Analysis.AnimationFrames <= 0 {
		return errors.ConfigInvalid("ANIMATION_FRAMES must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
