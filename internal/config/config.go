// Package config loads application configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/eventkit/signup-reconciler/internal/dates"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig holds the roster database connection settings
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// FetchConfig holds remote signup file download settings
type FetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxResponseMB  int `yaml:"max_response_mb"`
}

// ReconcileConfig holds reconciliation defaults
type ReconcileConfig struct {
	// DOBMode is the default date-order interpretation: auto, dmy, or mdy.
	DOBMode        string `yaml:"dob_mode"`
	MaxSuggestions int    `yaml:"max_suggestions"`
}

// Load reads and parses the config file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Fetch.TimeoutSeconds == 0 {
		cfg.Fetch.TimeoutSeconds = 30
	}
	if cfg.Fetch.MaxResponseMB == 0 {
		cfg.Fetch.MaxResponseMB = 20
	}
	if cfg.Reconcile.DOBMode == "" {
		cfg.Reconcile.DOBMode = dates.Auto.String()
	}
	if cfg.Reconcile.MaxSuggestions == 0 {
		cfg.Reconcile.MaxSuggestions = 3
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads config from a file, then applies environment overrides.
// A .env file in the working directory is read first if present.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if mode := os.Getenv("RECONCILE_DOB_MODE"); mode != "" {
		cfg.Reconcile.DOBMode = mode
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Reconcile.DOBMode {
	case dates.Auto.String(), dates.DMY.String(), dates.MDY.String():
		return nil
	default:
		return fmt.Errorf("unknown dob_mode %q", c.Reconcile.DOBMode)
	}
}
