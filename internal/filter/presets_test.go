package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbranstad/sieve/internal/detect"
)

func TestApplyPreset_PartialMerge(t *testing.T) {
	// Given: a config with a customized debounce window
	cfg := DefaultConfig()
	cfg.Debounce.TimeWindowMs = 750

	// When: applying a language preset that declares no debounce stage
	require.NoError(t, cfg.ApplyPreset(detect.TypeRust))

	// Then: directories and extensions change, debounce survives
	assert.Contains(t, cfg.Directories.IgnoredDirectories, "target")
	assert.Contains(t, cfg.Extensions.WatchedExtensions, ".rs")
	assert.Equal(t, int64(750), cfg.Debounce.TimeWindowMs)
	assert.Equal(t, detect.TypeRust, cfg.ActivePreset)
}

func TestApplyPreset_UnknownIsError(t *testing.T) {
	cfg := DefaultConfig()
	before := cfg

	err := cfg.ApplyPreset(detect.RepoType("cobol"))

	require.Error(t, err)
	assert.Equal(t, before, cfg)
}

func TestApplyPreset_EveryTypeHasOne(t *testing.T) {
	for _, repoType := range detect.Types() {
		_, ok := PresetFor(repoType)
		assert.True(t, ok, "missing preset for %s", repoType)
	}
}

func TestApplyPreset_SlicesDetachedFromCatalog(t *testing.T) {
	// Given: two configs with the same preset applied
	var a, b Config
	require.NoError(t, a.ApplyPreset(detect.TypeGo))
	require.NoError(t, b.ApplyPreset(detect.TypeGo))

	// When: mutating one config's slices
	a.Extensions.WatchedExtensions[0] = ".proto"

	// Then: the other config and the catalog are unaffected
	assert.Equal(t, ".go", b.Extensions.WatchedExtensions[0])
}

func TestApplyPreset_GenericRestoresDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Patterns.IgnoredPatterns = []string{"*.custom"}
	cfg.Debounce.TimeWindowMs = 999

	require.NoError(t, cfg.ApplyPreset(detect.TypeGeneric))

	def := DefaultConfig()
	assert.Equal(t, def.Patterns, cfg.Patterns)
	assert.Equal(t, def.Debounce, cfg.Debounce)
	assert.Equal(t, detect.TypeGeneric, cfg.ActivePreset)
}

func TestPresetFiltering_RustRepo(t *testing.T) {
	// A rust preset keeps source files and drops build output
	var cfg Config
	require.NoError(t, cfg.ApplyPreset(detect.TypeRust))
	p := NewPipeline(nil)

	assert.True(t, p.Evaluate(ChangeEvent{Path: "src/lib.rs", Kind: KindModified}, cfg))
	assert.True(t, p.Evaluate(ChangeEvent{Path: "Cargo.toml", Kind: KindModified}, cfg))
	assert.False(t, p.Evaluate(ChangeEvent{Path: "target/debug/app", Kind: KindCreated}, cfg))
	assert.False(t, p.Evaluate(ChangeEvent{Path: "notes.md", Kind: KindModified}, cfg))
}
