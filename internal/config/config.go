// Package config loads user preferences for the driftwatch client.
// Configuration lives at ~/.driftwatch/config.json; environment variables
// override the file, and command-line flags override both.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	defaultAPIURL         = "http://localhost:8000"
	defaultTimeoutSeconds = 60
)

// Config holds user preferences.
type Config struct {
	APIURL                string `json:"api_url"`
	Theme                 string `json:"theme"` // "light" or "dark"
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	DebugMode             bool   `json:"debug_mode"`
	HistoryDBPath         string `json:"history_db_path"` // empty = <config dir>/history.db
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		APIURL:                defaultAPIURL,
		Theme:                 "dark",
		RequestTimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Dir returns the directory where config, logs, and the history database
// are stored.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".driftwatch"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk and applies environment
// overrides. A missing or unreadable file falls back to defaults; Load
// never fails hard because the client must stay usable out of the box.
func Load() Config {
	cfg := DefaultConfig()

	if path, err := File(); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			var fileCfg Config
			if json.Unmarshal(data, &fileCfg) == nil {
				cfg.merge(fileCfg)
			}
		}
	}

	if v := os.Getenv("DRIFTWATCH_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("DRIFTWATCH_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DebugMode = b
		}
	}
	return cfg
}

func (c *Config) merge(o Config) {
	if o.APIURL != "" {
		c.APIURL = o.APIURL
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	if o.RequestTimeoutSeconds > 0 {
		c.RequestTimeoutSeconds = o.RequestTimeoutSeconds
	}
	if o.HistoryDBPath != "" {
		c.HistoryDBPath = o.HistoryDBPath
	}
	c.DebugMode = o.DebugMode
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path, err := File()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RequestTimeout returns the configured per-request timeout.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// HistoryPath resolves the sqlite history database location.
func (c Config) HistoryPath() (string, error) {
	if c.HistoryDBPath != "" {
		return c.HistoryDBPath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
