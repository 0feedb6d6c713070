package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateUserConfig points the user config lookup at an empty directory so
// a developer's real config never leaks into tests.
func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, 1000, cfg.Watch.EventBufferSize)
	assert.NoError(t, cfg.Validate())

	interval, err := cfg.SweepInterval()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, interval)
}

func TestLoad_ProjectFileOverridesDefaults(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	content := []byte("log_level: debug\nstore:\n  backend: sqlite\nwatch:\n  sweep_interval: 1m\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sieve.yaml"), content, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	// Unset fields keep their defaults
	assert.Equal(t, 1000, cfg.Watch.EventBufferSize)

	interval, err := cfg.SweepInterval()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, interval)
}

func TestLoad_NoFilesYieldsDefaults(t *testing.T) {
	isolateUserConfig(t)
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, NewConfig().LogLevel, cfg.LogLevel)
	assert.Equal(t, NewConfig().Store.Backend, cfg.Store.Backend)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SIEVE_LOG_LEVEL", "warn")
	t.Setenv("SIEVE_STORE_BACKEND", "sqlite")
	t.Setenv("SIEVE_EVENT_BUFFER_SIZE", "250")

	isolateUserConfig(t)
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 250, cfg.Watch.EventBufferSize)
}

func TestLoad_EnvBeatsProjectFile(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sieve.yaml"), []byte("log_level: debug\n"), 0o644))
	t.Setenv("SIEVE_LOG_LEVEL", "error")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sieve.yaml"), []byte("log_level: [unclosed"), 0o644))

	_, err := Load(dir)

	assert.Error(t, err)
}

func TestLoad_ProjectBeatsUserConfig(t *testing.T) {
	// Given: a user config and a project config disagreeing on the level
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	userDir := filepath.Join(xdg, "sieve")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("log_level: warn\ndata_dir: /custom\n"), 0o644))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sieve.yaml"), []byte("log_level: debug\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	// Then: the project wins where both speak, the user config fills the rest
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/custom", cfg.DataDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults valid", func(*Config) {}, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, false},
		{"bad backend", func(c *Config) { c.Store.Backend = "redis" }, false},
		{"negative buffer", func(c *Config) { c.Watch.EventBufferSize = -1 }, false},
		{"bad sweep interval", func(c *Config) { c.Watch.SweepInterval = "soon" }, false},
		{"sqlite backend valid", func(c *Config) { c.Store.Backend = BackendSQLite }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".sieve.yaml")

	cfg := NewConfig()
	cfg.LogLevel = "debug"
	cfg.Watch.PrunePatterns = []string{"**/target/**"}
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.LogLevel)
	assert.Equal(t, []string{"**/target/**"}, loaded.Watch.PrunePatterns)
}
