// Package config defines service configuration and its loading.
//
// Values are layered: defaults from New, then an optional YAML file named
// by FLIXDASH_CONFIG, then FLIXDASH_* environment variables.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath is the Latin-1 CSV catalog file.
	DataPath string `koanf:"data_path"`

	// WatchData reloads the catalog when DataPath changes on disk.
	WatchData bool `koanf:"watch_data"`

	// MetricsSchedule is the cron spec of the metrics refresh job.
	MetricsSchedule string `koanf:"metrics_schedule"`

	// DatasetPageLimit is the default and maximum row window of the dataset page.
	DatasetPageLimit int `koanf:"dataset_page_limit"`
}

// New returns a Config with defaults. The context is reserved for loaders
// that need it.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":8501",
		DataPath:         "data/netflix_titles.csv",
		WatchData:        true,
		MetricsSchedule:  "@every 10s",
		DatasetPageLimit: 500,
	}
}
