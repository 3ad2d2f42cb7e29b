// Package config - Tool settings loaded from YAML.
package config

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-imagefx/filters"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings shared by every CLI command.
type Config struct {
	// Workers bounds row-parallel goroutines; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`
	// Parallel enables row-parallel filter execution.
	Parallel bool `yaml:"parallel" json:"parallel"`
	// UsePool recycles intermediate planes across filter calls.
	UsePool bool `yaml:"usePool" json:"usePool"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel" json:"logLevel"`
	// NoiseSeed is the default seed for the noise filter.
	NoiseSeed int `yaml:"noiseSeed" json:"noiseSeed"`
	// Ascii holds the ASCII renderer defaults.
	Ascii filters.AsciiConfig `yaml:"ascii" json:"ascii"`
}

// DefaultConfig returns the built-in settings.
//
// Returns:
// - A Config with parallelism on, info logging and the default ASCII settings.
func DefaultConfig() *Config {
	return &Config{
		Workers:  0,
		Parallel: true,
		UsePool:  true,
		LogLevel: "info",
		Ascii:    filters.DefaultAsciiConfig(),
	}
}

// LoadConfig reads a YAML file over the defaults; keys absent from the file
// keep their default values.
//
// Arguments:
// - filename: Path to the YAML file.
//
// Returns:
// - The merged, validated configuration.
//
// @example
// cfg, err := config.LoadConfig("imagefx.yaml")
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, filename)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as YAML.
func (c *Config) SaveConfig(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// Validate checks every field's range.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "workers must be >= 0, got %d", c.Workers)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.NoiseSeed < 0 || c.NoiseSeed > filters.MaxNoiseSeed {
		return errors.Wrapf(ErrInvalidConfig, "noiseSeed must be in [0, %d], got %d", filters.MaxNoiseSeed, c.NoiseSeed)
	}
	if c.Ascii.MaxWidth < 1 {
		return errors.Wrapf(ErrInvalidConfig, "ascii.maxWidth must be >= 1, got %d", c.Ascii.MaxWidth)
	}
	return nil
}

// SlogLevel parses LogLevel; an empty string means info.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(ErrInvalidConfig, "logLevel %q", c.LogLevel)
	}
	return lvl, nil
}

// KernelOptions builds the kernel options for one filter invocation.
// pool may be nil.
func (c *Config) KernelOptions(pool *kernels.Pool, rep kernels.Reporter) kernels.Options {
	opt := kernels.Options{
		Parallel: c.Parallel,
		Workers:  c.Workers,
		Progress: rep,
	}
	if c.UsePool {
		opt.Pool = pool
	}
	return opt
}
