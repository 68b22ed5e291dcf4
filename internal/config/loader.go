package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron"
)

// Environment names read by Load.
const (
	EnvPrefix = "FLIXDASH_"
	EnvFile   = "FLIXDASH_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if FLIXDASH_CONFIG is set
//  3. env (prefix FLIXDASH_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %v", ErrLoadConfig, path, err)
		}
	}

	// FLIXDASH_DATA_PATH -> data_path. Keys are flat, so underscores stay.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.DatasetPageLimit <= 0:
		return fmt.Errorf("%w: dataset_page_limit must be positive, got %d", ErrInvalidConfig, c.DatasetPageLimit)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := cron.Parse(c.MetricsSchedule); err != nil {
		return fmt.Errorf("%w: metrics_schedule %q: %v", ErrInvalidConfig, c.MetricsSchedule, err)
	}
	return nil
}
