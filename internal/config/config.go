package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Log      LogConfig      `yaml:"log"`
}

// DataConfig contains durable storage locations
type DataConfig struct {
	Dir       string `yaml:"dir"`        // Directory holding the collection files
	ConfigDir string `yaml:"config_dir"` // Directory holding the preferences record
}

// AutosaveConfig contains the background save cadence
type AutosaveConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.Data.Dir = val
	}
	if val := os.Getenv("CONFIG_DIR"); val != "" {
		c.Data.ConfigDir = val
	}
	if val := os.Getenv("AUTOSAVE_INTERVAL_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Autosave.IntervalSeconds)
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.ConfigDir == "" {
		c.Data.ConfigDir = "config"
	}

	if c.Autosave.IntervalSeconds < 0 {
		return fmt.Errorf("invalid autosave interval: %d", c.Autosave.IntervalSeconds)
	}
	if c.Autosave.IntervalSeconds == 0 {
		c.Autosave.IntervalSeconds = 30
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	return nil
}
