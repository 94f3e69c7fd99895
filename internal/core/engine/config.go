package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/entforge/entforge/internal/core/observability/log"
)

// Config controls the manager's update loop and logging.
type Config struct {
	LogLevel   string  `json:"log_level" yaml:"log_level"`
	Parallel   bool    `json:"parallel" yaml:"parallel"`
	FixedDelta float64 `json:"fixed_delta" yaml:"fixed_delta"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		FixedDelta: 1.0 / 60.0,
	}
}

// LoadConfig reads a yaml config file. Absent fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the manager cannot run with.
func (c Config) Validate() error {
	if c.FixedDelta <= 0 {
		return fmt.Errorf("%w: fixed_delta must be positive, got %v", ErrInvalidConfig, c.FixedDelta)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	return log.ParseLevel(c.LogLevel)
}
