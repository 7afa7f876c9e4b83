package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultContactTemplate renders the card copied from the edit panel.
// Templates are rendered as plain text: values are not HTML-escaped.
const DefaultContactTemplate = `{{nome}} <{{email}}> · {{empresa}}`

// DefaultLoadDelay is the pause before the lead read starts
const DefaultLoadDelay = 500 * time.Millisecond

type Config struct {
	Source          string        // Lead source: JSON file, http(s) URL or SQLite catalog
	LoadDelay       time.Duration // Pause before the initial read
	DBPath          string        // Catalog written by 'leaddesk import'
	ContactTemplate string        // Mustache template for the contact card
}

type tomlConfig struct {
	Source          string  `toml:"source"`
	LoadDelay       *string `toml:"load_delay"`
	DBPath          string  `toml:"db_path"`
	ContactTemplate string  `toml:"contact_template"`
}

// Dir returns ~/.config/leaddesk
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	return filepath.Join(home, ".config", "leaddesk")
}

// DefaultPath is the config file read when no --config flag is given
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Defaults returns the configuration used when no file exists
func Defaults() *Config {
	dbPath := filepath.Join(Dir(), "leads.db")
	return &Config{
		Source:          "sqlite:" + dbPath,
		LoadDelay:       DefaultLoadDelay,
		DBPath:          dbPath,
		ContactTemplate: DefaultContactTemplate,
	}
}

// Load reads config from ~/.config/leaddesk/config.toml
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads config from path. A missing file yields the defaults; a
// file that exists but cannot be parsed is an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err != nil {
		return cfg, nil // Use defaults
	}

	var tc tomlConfig
	if _, err := toml.DecodeFile(path, &tc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if tc.DBPath != "" {
		cfg.DBPath = tc.DBPath
		cfg.Source = "sqlite:" + tc.DBPath
	}
	if tc.Source != "" {
		cfg.Source = tc.Source
	}
	if tc.LoadDelay != nil {
		d, err := time.ParseDuration(*tc.LoadDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid load_delay %q: %w", *tc.LoadDelay, err)
		}
		cfg.LoadDelay = d
	}
	if tc.ContactTemplate != "" {
		cfg.ContactTemplate = tc.ContactTemplate
	}

	return cfg, nil
}
