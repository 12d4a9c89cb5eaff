// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultListen       = "127.0.0.1:7490"
	DefaultLogLevel     = "info"
	DefaultReminderLead = "30m"
)

// Config holds the full configuration for voxdo.
type Config struct {
	// Listen is the address the daemon's HTTP API binds to.
	Listen string `toml:"listen"`

	// DBPath is the SQLite database location.
	DBPath string `toml:"db_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// ReminderLead is how far ahead of a due date the reminder loop
	// announces a task, as a Go duration string.
	ReminderLead string `toml:"reminder_lead"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:       DefaultListen,
		DBPath:       defaultDBPath(),
		LogLevel:     DefaultLogLevel,
		ReminderLead: DefaultReminderLead,
	}
}

// Load reads the user config file from ~/.voxdo/config.toml, falling back
// to defaults when the file does not exist.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(filepath.Join(home, ".voxdo", "config.toml"))
}

// LoadFrom reads a config file from an explicit path. A missing file is
// not an error; values absent from the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.ReminderLead == "" {
		cfg.ReminderLead = DefaultReminderLead
	}

	return cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "voxdo.db"
	}
	return filepath.Join(home, ".voxdo", "voxdo.db")
}
