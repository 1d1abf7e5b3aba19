package gradcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid gradcheck config")

// Environment variables that override file and default settings.
const (
	EnvEpsilon   = "GRADVAL_EPSILON"
	EnvTolerance = "GRADVAL_TOLERANCE"
	EnvSamples   = "GRADVAL_SAMPLES"
	EnvWorkers   = "GRADVAL_WORKERS"
	EnvOps       = "GRADVAL_OPS"
)

// Config controls a gradient check run.
type Config struct {
	// Epsilon is the half-width of the centered finite difference.
	Epsilon float32 `json:"epsilon" yaml:"epsilon"`

	// Tolerance bounds |analytic - numeric| relative to
	// max(1, |analytic|, |numeric|).
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// Samples is the number of grid points evaluated per case.
	Samples int `json:"samples" yaml:"samples"`

	// Workers caps concurrent case evaluation. 0 uses one per CPU,
	// 1 runs sequentially.
	Workers int `json:"workers" yaml:"workers"`

	// Ops restricts the run to the named cases. Empty means all.
	Ops []string `json:"ops" yaml:"ops"`
}

// DefaultConfig returns the default configuration.
//
// Epsilon and Tolerance are sized for float32 forward values: smaller steps
// lose more to cancellation than they gain in truncation error.
func DefaultConfig() Config {
	return Config{
		Epsilon:   1e-3,
		Tolerance: 5e-3,
		Samples:   9,
		Workers:   0,
	}
}

// LoadConfig loads configuration with priority: env > file > defaults.
//
// configPath may be empty. A named file that cannot be read or parsed is an
// error. The file is parsed as YAML, falling back to JSON.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	loadConfigFromEnv(&config)

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

// loadConfigFromEnv applies overrides; unparsable values are ignored.
func loadConfigFromEnv(config *Config) {
	if v := os.Getenv(EnvEpsilon); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			config.Epsilon = float32(f)
		}
	}
	if v := os.Getenv(EnvTolerance); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Tolerance = f
		}
	}
	if v := os.Getenv(EnvSamples); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Samples = i
		}
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Workers = i
		}
	}
	if v := os.Getenv(EnvOps); v != "" {
		config.Ops = splitList(v)
	}
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if !(c.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidConfig, c.Epsilon)
	}
	if !(c.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidConfig, c.Tolerance)
	}
	if c.Samples < 1 {
		return fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidConfig, c.Samples)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	for _, name := range c.Ops {
		if _, ok := lookupCase(name); !ok {
			return fmt.Errorf("%w: unknown op %q", ErrInvalidConfig, name)
		}
	}
	return nil
}
