// Package config loads the service configuration from a YAML file, overlaying
// file values on top of built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the service settings.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// DBPath is where the video_data SQLite database lives.
	DBPath string `yaml:"db_path"`

	// InteractionsPath is the persisted interaction-state file.
	InteractionsPath string `yaml:"interactions_path"`

	// AdminPasscode gates the write endpoints. Static equality check only.
	AdminPasscode string `yaml:"admin_passcode"`

	// PollIntervalSeconds is how often the feed poller re-reads the store.
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`

	// DescribeModel overrides the narration-suggestion model.
	DescribeModel string `yaml:"describe_model"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".roohdodo")
	return &Config{
		Addr:                ":8080",
		DBPath:              filepath.Join(base, "rooh.db"),
		InteractionsPath:    filepath.Join(base, "hadiqa_interactions_v4.json"),
		AdminPasscode:       "5030775",
		PollIntervalSeconds: 5,
	}
}

// Load reads path and overlays it on the defaults. A missing file just yields
// the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = Default().PollIntervalSeconds
	}
	if cfg.Addr == "" {
		cfg.Addr = Default().Addr
	}

	return cfg, nil
}
