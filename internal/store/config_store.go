package store

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mbranstad/sieve/internal/detect"
	sieveerrors "github.com/mbranstad/sieve/internal/errors"
	"github.com/mbranstad/sieve/internal/filter"
)

// configKey is the single logical key the filter configuration lives under.
const configKey = "filter_config"

// ConfigStore owns the persisted filter configuration. Loads substitute the
// documented defaults on missing or corrupt data (corruption is logged,
// never propagated), and every mutation saves immediately.
type ConfigStore struct {
	store Store
	mu    sync.Mutex
}

// NewConfigStore wraps a Store.
func NewConfigStore(s Store) *ConfigStore {
	return &ConfigStore{store: s}
}

// Load returns the persisted configuration, or the defaults when nothing
// usable is stored. Read and parse failures degrade to defaults by design:
// a broken config must never take the event pipeline down with it.
func (cs *ConfigStore) Load() filter.Config {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.loadLocked()
}

func (cs *ConfigStore) loadLocked() filter.Config {
	data, ok, err := cs.store.Get(configKey)
	if err != nil {
		slog.Warn("failed to read filter config, using defaults",
			slog.String("error", err.Error()))
		return filter.DefaultConfig()
	}
	if !ok {
		return filter.DefaultConfig()
	}

	var cfg filter.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		corrupt := sieveerrors.Wrap(sieveerrors.ErrCodeStoreCorrupt, err)
		slog.Warn("persisted filter config is corrupt, using defaults",
			slog.String("code", corrupt.Code),
			slog.String("error", err.Error()))
		return filter.DefaultConfig()
	}
	return cfg
}

// Save persists the configuration.
func (cs *ConfigStore) Save(cfg filter.Config) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.saveLocked(cfg)
}

func (cs *ConfigStore) saveLocked(cfg filter.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return sieveerrors.New(sieveerrors.ErrCodeInternal, "failed to marshal filter config", err)
	}
	if err := cs.store.Put(configKey, data); err != nil {
		return sieveerrors.New(sieveerrors.ErrCodeStoreWrite, "failed to persist filter config", err)
	}
	return nil
}

// SetStageEnabled sets one stage's enabled flag and persists the result.
func (cs *ConfigStore) SetStageEnabled(stage filter.Stage, enabled bool) (filter.Config, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cfg := cs.loadLocked()
	if err := cfg.SetStageEnabled(stage, enabled); err != nil {
		return cfg, sieveerrors.Wrap(sieveerrors.ErrCodeUnknownStage, err)
	}
	return cfg, cs.saveLocked(cfg)
}

// Toggle flips one stage's enabled flag and persists the result.
func (cs *ConfigStore) Toggle(stage filter.Stage) (filter.Config, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cfg := cs.loadLocked()
	enabled, err := cfg.StageEnabled(stage)
	if err != nil {
		return cfg, sieveerrors.Wrap(sieveerrors.ErrCodeUnknownStage, err)
	}
	_ = cfg.SetStageEnabled(stage, !enabled)
	return cfg, cs.saveLocked(cfg)
}

// ApplyPreset merges the named preset into the current configuration and
// persists the result.
func (cs *ConfigStore) ApplyPreset(t detect.RepoType) (filter.Config, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cfg := cs.loadLocked()
	if err := cfg.ApplyPreset(t); err != nil {
		return cfg, sieveerrors.Wrap(sieveerrors.ErrCodeUnknownPreset, err)
	}
	return cfg, cs.saveLocked(cfg)
}

// Reset restores and persists the default configuration.
func (cs *ConfigStore) Reset() (filter.Config, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cfg := filter.DefaultConfig()
	return cfg, cs.saveLocked(cfg)
}
