// ABOUTME: BMI configuration management.
// ABOUTME: Handles data directory, log level, history limit, and opening the store.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/bmi/internal/storage"
)

// DefaultLogLevel is used when no log level is configured.
const DefaultLogLevel = "warn"

// Config stores bmi tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; bmi.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/bmi.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// HistoryLimit caps the records shown by history listings. 0 shows all.
	HistoryLimit int `json:"history_limit,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the measurement database path inside the data directory.
func (c *Config) DBPath() string {
	if c.DataDir == "" {
		return storage.DefaultDBPath()
	}
	return filepath.Join(c.GetDataDir(), "bmi.db")
}

// GetLogLevel parses the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() (log.Level, error) {
	level := c.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the measurement store at path, or at DBPath when path is empty.
func (c *Config) OpenStorage(path string, opts ...storage.Option) (*storage.DB, error) {
	if path == "" {
		path = c.DBPath()
	}
	return storage.Open(ExpandPath(path), opts...)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "bmi", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
