package filter

import (
	"fmt"
	"time"

	"github.com/mbranstad/sieve/internal/detect"
)

// ExtensionMode selects include or exclude semantics for the extension stage.
type ExtensionMode string

const (
	// ModeInclude keeps only files whose extension is in the watched list.
	ModeInclude ExtensionMode = "include"
	// ModeExclude drops files whose extension is in the watched list.
	ModeExclude ExtensionMode = "exclude"
)

// PatternConfig configures the ignored-pattern stage. Patterns use glob
// syntax ('*' and '?' only) and match against the base name.
type PatternConfig struct {
	Enabled         bool     `json:"enabled"`
	IgnoredPatterns []string `json:"ignored_patterns"`
}

// DirectoryConfig configures the ignored-directory stage. Entries may be
// absolute paths or relative fragments; containment is strict prefix with a
// separator, so /foo/bar covers /foo/bar/baz but never /foo/barbell.
type DirectoryConfig struct {
	Enabled            bool     `json:"enabled"`
	IgnoredDirectories []string `json:"ignored_directories"`
}

// EventTypeConfig configures the event-kind allow-list stage. An empty list
// is permissive: every kind passes.
type EventTypeConfig struct {
	Enabled      bool     `json:"enabled"`
	AllowedTypes []string `json:"allowed_types"`
}

// ExtensionConfig configures the extension stage.
type ExtensionConfig struct {
	Enabled           bool          `json:"enabled"`
	WatchedExtensions []string      `json:"watched_extensions"`
	Mode              ExtensionMode `json:"mode"`
}

// DebounceConfig configures the debounce stage.
type DebounceConfig struct {
	Enabled      bool  `json:"enabled"`
	TimeWindowMs int64 `json:"time_window_ms"`
}

// Window returns the debounce window as a duration.
func (c DebounceConfig) Window() time.Duration {
	return time.Duration(c.TimeWindowMs) * time.Millisecond
}

// Config is the aggregate of the five stage configs plus the preset that
// produced the current values, if any. Each stage toggles independently.
type Config struct {
	Patterns     PatternConfig   `json:"patterns"`
	Directories  DirectoryConfig `json:"directories"`
	EventTypes   EventTypeConfig `json:"event_types"`
	Extensions   ExtensionConfig `json:"extensions"`
	Debounce     DebounceConfig  `json:"debounce"`
	ActivePreset detect.RepoType `json:"active_preset,omitempty"`
}

// DefaultTimeWindowMs is the default debounce window.
const DefaultTimeWindowMs = 300

// defaultIgnoredPatterns target OS, editor, and build noise.
var defaultIgnoredPatterns = []string{
	"*.tmp", "*.log", ".DS_Store", "Thumbs.db", "*~", "*.swp", "*.bak", "*.cache",
}

// defaultIgnoredDirectories cover common build, VCS, and dependency folders.
var defaultIgnoredDirectories = []string{
	"node_modules", ".git", "dist", "build", "out", ".next", "coverage", ".cache", "tmp", "temp",
}

// defaultAllowedTypes keep the kinds consumers usually care about.
var defaultAllowedTypes = []string{KindCreated, KindModified, KindRemoved}

// DefaultConfig returns the documented default configuration. All stages are
// enabled; the extension list is empty, so every extension passes until a
// preset or the user narrows it.
func DefaultConfig() Config {
	return Config{
		Patterns: PatternConfig{
			Enabled:         true,
			IgnoredPatterns: append([]string(nil), defaultIgnoredPatterns...),
		},
		Directories: DirectoryConfig{
			Enabled:            true,
			IgnoredDirectories: append([]string(nil), defaultIgnoredDirectories...),
		},
		EventTypes: EventTypeConfig{
			Enabled:      true,
			AllowedTypes: append([]string(nil), defaultAllowedTypes...),
		},
		Extensions: ExtensionConfig{
			Enabled:           true,
			WatchedExtensions: nil,
			Mode:              ModeInclude,
		},
		Debounce: DebounceConfig{
			Enabled:      true,
			TimeWindowMs: DefaultTimeWindowMs,
		},
	}
}

// Stage names an individual pipeline stage for toggling.
type Stage string

const (
	StagePatterns    Stage = "patterns"
	StageDirectories Stage = "directories"
	StageEventTypes  Stage = "event_types"
	StageExtensions  Stage = "extensions"
	StageDebounce    Stage = "debounce"
)

// Stages lists all stages in pipeline evaluation order.
func Stages() []Stage {
	return []Stage{StagePatterns, StageDirectories, StageEventTypes, StageExtensions, StageDebounce}
}

// SetStageEnabled flips one stage's enabled flag. Unknown stages are an
// error; the config is left unchanged.
func (c *Config) SetStageEnabled(stage Stage, enabled bool) error {
	p, err := c.stageEnabled(stage)
	if err != nil {
		return err
	}
	*p = enabled
	return nil
}

// StageEnabled reports whether a stage is enabled.
func (c *Config) StageEnabled(stage Stage) (bool, error) {
	p, err := c.stageEnabled(stage)
	if err != nil {
		return false, err
	}
	return *p, nil
}

func (c *Config) stageEnabled(stage Stage) (*bool, error) {
	switch stage {
	case StagePatterns:
		return &c.Patterns.Enabled, nil
	case StageDirectories:
		return &c.Directories.Enabled, nil
	case StageEventTypes:
		return &c.EventTypes.Enabled, nil
	case StageExtensions:
		return &c.Extensions.Enabled, nil
	case StageDebounce:
		return &c.Debounce.Enabled, nil
	default:
		return nil, fmt.Errorf("unknown filter stage: %q", stage)
	}
}
