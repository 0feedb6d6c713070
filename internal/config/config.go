// Package config loads sieve's application configuration. This is distinct
// from the persisted filter configuration (internal/store): it covers the
// runtime knobs of the tool itself: logging, the store backend, and watch
// session behavior.
//
// Configuration applies in order of increasing precedence: hardcoded
// defaults, the user config (~/.config/sieve/config.yaml), the project
// config (.sieve.yaml), and SIEVE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names a store backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the complete sieve application configuration.
type Config struct {
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// DataDir is where sieve keeps its store and logs. Default: ~/.sieve
	DataDir string `yaml:"data_dir"`

	Store StoreConfig `yaml:"store"`
	Watch WatchConfig `yaml:"watch"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	// Backend is "file" (default) or "sqlite".
	Backend string `yaml:"backend"`
}

// WatchConfig configures watch sessions.
type WatchConfig struct {
	// EventBufferSize is the shared event channel buffer. Default: 1000
	EventBufferSize int `yaml:"event_buffer_size"`

	// SweepInterval is how often stale debounce entries are purged,
	// as a duration string. Default: "30s"
	SweepInterval string `yaml:"sweep_interval"`

	// PrunePatterns are doublestar patterns for directories recursive
	// sessions never descend into. Empty means the built-in defaults.
	PrunePatterns []string `yaml:"prune_patterns"`
}

// NewConfig creates a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		DataDir:  defaultDataDir(),
		Store: StoreConfig{
			Backend: BackendFile,
		},
		Watch: WatchConfig{
			EventBufferSize: 1000,
			SweepInterval:   "30s",
			PrunePatterns:   nil,
		},
	}
}

// defaultDataDir returns the default data directory (~/.sieve).
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".sieve")
	}
	return filepath.Join(home, ".sieve")
}

// UserConfigPath returns the path of the user configuration file, following
// the XDG Base Directory convention.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sieve", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "sieve", "config.yaml")
	}
	return filepath.Join(home, ".config", "sieve", "config.yaml")
}

// Load loads configuration for the given project directory, applying user
// config, project config, and environment overrides on top of defaults.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if path := UserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if path := filepath.Join(dir, ".sieve.yaml"); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c. Explicit per-field
// merging keeps the precedence chain auditable.
func (c *Config) mergeWith(other *Config) {
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.Store.Backend != "" {
		c.Store.Backend = other.Store.Backend
	}
	if other.Watch.EventBufferSize != 0 {
		c.Watch.EventBufferSize = other.Watch.EventBufferSize
	}
	if other.Watch.SweepInterval != "" {
		c.Watch.SweepInterval = other.Watch.SweepInterval
	}
	if len(other.Watch.PrunePatterns) > 0 {
		c.Watch.PrunePatterns = other.Watch.PrunePatterns
	}
}

// applyEnvOverrides applies SIEVE_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SIEVE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SIEVE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("SIEVE_STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("SIEVE_EVENT_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Watch.EventBufferSize = n
		}
	}
	if v := os.Getenv("SIEVE_SWEEP_INTERVAL"); v != "" {
		c.Watch.SweepInterval = v
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}

	switch strings.ToLower(c.Store.Backend) {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("store.backend must be 'file' or 'sqlite', got %s", c.Store.Backend)
	}

	if c.Watch.EventBufferSize < 0 {
		return fmt.Errorf("watch.event_buffer_size must be non-negative, got %d", c.Watch.EventBufferSize)
	}
	if _, err := c.SweepInterval(); err != nil {
		return fmt.Errorf("watch.sweep_interval: %w", err)
	}
	return nil
}

// SweepInterval parses the configured sweep interval.
func (c *Config) SweepInterval() (time.Duration, error) {
	if c.Watch.SweepInterval == "" {
		return 30 * time.Second, nil
	}
	return time.ParseDuration(c.Watch.SweepInterval)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
