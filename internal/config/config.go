// Package config loads settings for the sigma-stack command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SIGMASTACK"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Clauses    int    `mapstructure:"clauses" json:"clauses"`
	Index      int    `mapstructure:"index" json:"index"`
	Workers    int    `mapstructure:"workers" json:"workers"`
	Iterations int    `mapstructure:"iterations" json:"iterations"`
	Seed       string `mapstructure:"seed" json:"seed"`
	LogLevel   string `mapstructure:"log_level" json:"log_level"`
	LogFormat  string `mapstructure:"log_format" json:"log_format"`
	ChartPath  string `mapstructure:"chart_path" json:"chart_path"`
}

func DefaultConfig() *Config {
	return &Config{
		Clauses:    4,
		Index:      0,
		Workers:    4,
		Iterations: 16,
		Seed:       "",
		LogLevel:   "info",
		LogFormat:  "text",
		ChartPath:  "",
	}
}

// SetDefaults registers every key of DefaultConfig with v so that environment
// variables and flags are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("clauses", d.Clauses)
	v.SetDefault("index", d.Index)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("iterations", d.Iterations)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("chart_path", d.ChartPath)
}

// Load reads the configuration from path, or from sigma-stack.json in the
// working directory when path is empty and such a file exists, then applies
// SIGMASTACK_* environment variables and any flags already bound to v.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("sigma-stack")
		v.SetConfigType("json")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	switch {
	case c.Clauses < 2:
		return fmt.Errorf("%w: clauses must be at least 2, got %d", ErrInvalidConfig, c.Clauses)
	case c.Index < 0 || c.Index >= c.Clauses:
		return fmt.Errorf("%w: index %d outside [0, %d)", ErrInvalidConfig, c.Index, c.Clauses)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log format %q is neither text nor json", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
