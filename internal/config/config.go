package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"spacexdash/internal/errors"

	"gopkg.in/yaml.v3"
)

// Data source kinds
const (
	SourceFile      = "file"
	SourcePostgres  = "postgres"
	SourceSynthetic = "synthetic"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	API       APIConfig       `yaml:"api"`
	Data      DataConfig      `yaml:"data"`
	Database  DatabaseConfig  `yaml:"database"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Profiling ProfilingConfig `yaml:"profiling"`
	LogLevel  string          `yaml:"log_level"`
}

// ServerConfig holds dashboard web server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	GinMode         string        `yaml:"gin_mode"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// APIConfig holds settings for the headless JSON API
type APIConfig struct {
	Port string `yaml:"port"`
}

// DataConfig selects where the launch table comes from
type DataConfig struct {
	Source        string `yaml:"source"`
	File          string `yaml:"file"`
	Sheet         string `yaml:"sheet"`
	SyntheticRows int    `yaml:"synthetic_rows"`
	SyntheticSeed int64  `yaml:"synthetic_seed"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// DashboardConfig holds the initial widget state
type DashboardConfig struct {
	DefaultPayloadLow  float64 `yaml:"default_payload_low"`
	DefaultPayloadHigh float64 `yaml:"default_payload_high"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string `yaml:"port"`
	Enabled bool   `yaml:"enabled"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8050",
			GinMode:         "release",
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{Port: "8051"},
		Data: DataConfig{
			Source:        SourceFile,
			File:          "spacex_launch_dash.csv",
			Sheet:         "Sheet1",
			SyntheticRows: 56,
			SyntheticSeed: 42,
		},
		Dashboard: DashboardConfig{
			DefaultPayloadLow:  500,
			DefaultPayloadHigh: 5000,
		},
		Profiling: ProfilingConfig{Port: "6060"},
		LogLevel:  "INFO",
	}
}

// Load builds the configuration from defaults, the optional CONFIG_FILE YAML
// and environment variables, in increasing precedence.
func Load() (*Config, error) {
	config := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}

	applyEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, config); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("%s: %v", path, err))
	}
	return nil
}

func applyEnv(c *Config) {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.GinMode = getEnvOrDefault("GIN_MODE", c.Server.GinMode)
	c.Server.ShutdownTimeout = getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.API.Port = getEnvOrDefault("API_PORT", c.API.Port)

	c.Data.Source = strings.ToLower(getEnvOrDefault("DATA_SOURCE", c.Data.Source))
	c.Data.File = getEnvOrDefault("DATA_FILE", c.Data.File)
	c.Data.Sheet = getEnvOrDefault("DATA_SHEET", c.Data.Sheet)
	c.Data.SyntheticRows = getEnvIntOrDefault("SYNTHETIC_ROWS", c.Data.SyntheticRows)
	c.Data.SyntheticSeed = int64(getEnvIntOrDefault("SYNTHETIC_SEED", int(c.Data.SyntheticSeed)))

	c.Database.URL = getEnvOrDefault("DATABASE_URL", c.Database.URL)

	c.Dashboard.DefaultPayloadLow = getEnvFloatOrDefault("DEFAULT_PAYLOAD_LOW", c.Dashboard.DefaultPayloadLow)
	c.Dashboard.DefaultPayloadHigh = getEnvFloatOrDefault("DEFAULT_PAYLOAD_HIGH", c.Dashboard.DefaultPayloadHigh)

	c.Profiling.Port = getEnvOrDefault("PPROF_PORT", c.Profiling.Port)
	c.Profiling.Enabled = getEnvBoolOrDefault("PPROF_ENABLED", c.Profiling.Enabled)

	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
}

func validateConfig(config *Config) error {
	switch config.Data.Source {
	case SourceFile:
		if config.Data.File == "" {
			return errors.ConfigInvalid("DATA_FILE is required when DATA_SOURCE=file")
		}
	case SourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
	case SourceSynthetic:
		if config.Data.SyntheticRows <= 0 {
			return errors.ConfigInvalid("SYNTHETIC_ROWS must be > 0")
		}
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown DATA_SOURCE %q (want file, postgres or synthetic)", config.Data.Source))
	}

	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown GIN_MODE %q", config.Server.GinMode))
	}

	if config.Dashboard.DefaultPayloadLow > config.Dashboard.DefaultPayloadHigh {
		return errors.ConfigInvalid("DEFAULT_PAYLOAD_LOW must not exceed DEFAULT_PAYLOAD_HIGH")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
