package filter

import (
	"fmt"

	"github.com/mbranstad/sieve/internal/detect"
)

// Preset is a partial Config bundle for one repository type. Nil stages
// leave the corresponding stage of the target config untouched; applying a
// preset is a shallow per-stage merge, never a wholesale replacement.
type Preset struct {
	Patterns    *PatternConfig
	Directories *DirectoryConfig
	EventTypes  *EventTypeConfig
	Extensions  *ExtensionConfig
	Debounce    *DebounceConfig
}

func dirs(names ...string) *DirectoryConfig {
	return &DirectoryConfig{Enabled: true, IgnoredDirectories: names}
}

func include(exts ...string) *ExtensionConfig {
	return &ExtensionConfig{Enabled: true, WatchedExtensions: exts, Mode: ModeInclude}
}

// presets maps every repository type to its filter preset. Language presets
// override only the directory and extension stages; pattern, event-type, and
// debounce settings stay whatever the user configured. The generic preset
// restores the global defaults wholesale.
var presets = map[detect.RepoType]Preset{
	detect.TypeJavaScript: {
		Directories: dirs("node_modules", ".git", "dist", "build", "out", ".next", "coverage", ".cache"),
		Extensions:  include(".js", ".jsx", ".mjs", ".cjs", ".json", ".html", ".css"),
	},
	detect.TypeTypeScript: {
		Directories: dirs("node_modules", ".git", "dist", "build", "out", ".next", "coverage", ".cache"),
		Extensions:  include(".ts", ".tsx", ".js", ".jsx", ".json", ".html", ".css"),
	},
	detect.TypePython: {
		Directories: dirs("__pycache__", ".venv", "venv", ".git", "dist", "build", ".mypy_cache", ".pytest_cache", ".tox"),
		Extensions:  include(".py", ".pyi", ".toml", ".cfg", ".ini"),
	},
	detect.TypeJava: {
		Directories: dirs("target", "build", ".gradle", ".git", "out", ".idea"),
		Extensions:  include(".java", ".xml", ".gradle", ".properties"),
	},
	detect.TypeCSharp: {
		Directories: dirs("bin", "obj", ".git", "packages", ".vs"),
		Extensions:  include(".cs", ".csproj", ".sln", ".config", ".json"),
	},
	detect.TypeCpp: {
		Directories: dirs("build", "out", "cmake-build-debug", "cmake-build-release", ".git"),
		Extensions:  include(".c", ".cc", ".cpp", ".h", ".hpp", ".cmake"),
	},
	detect.TypeGo: {
		Directories: dirs("vendor", ".git", "bin", "dist"),
		Extensions:  include(".go", ".mod", ".sum"),
	},
	detect.TypeRust: {
		Directories: dirs("target", "dist", "build"),
		Extensions:  include(".rs", ".toml", ".lock"),
	},
	detect.TypePHP: {
		Directories: dirs("vendor", ".git", "cache", "node_modules"),
		Extensions:  include(".php", ".phtml", ".twig", ".json"),
	},
	detect.TypeRuby: {
		Directories: dirs(".bundle", "vendor", ".git", "log", "tmp"),
		Extensions:  include(".rb", ".erb", ".rake", ".gemspec"),
	},
	detect.TypeGeneric: genericPreset(),
}

// genericPreset mirrors the global defaults across all five stages.
func genericPreset() Preset {
	def := DefaultConfig()
	return Preset{
		Patterns:    &def.Patterns,
		Directories: &def.Directories,
		EventTypes:  &def.EventTypes,
		Extensions:  &def.Extensions,
		Debounce:    &def.Debounce,
	}
}

// PresetFor looks up the preset for a repository type.
func PresetFor(t detect.RepoType) (Preset, bool) {
	p, ok := presets[t]
	return p, ok
}

// ApplyPreset merges the named preset into the config, stage by stage: only
// stages the preset declares are overwritten, everything else keeps its
// current value. The applied preset is recorded on the config. Unknown
// preset names are an error and leave the config unchanged.
func (c *Config) ApplyPreset(t detect.RepoType) error {
	preset, ok := PresetFor(t)
	if !ok {
		return fmt.Errorf("unknown preset: %q", t)
	}

	// Slices are copied so later edits to the config never reach back into
	// the shared catalog.
	if preset.Patterns != nil {
		c.Patterns = *preset.Patterns
		c.Patterns.IgnoredPatterns = append([]string(nil), preset.Patterns.IgnoredPatterns...)
	}
	if preset.Directories != nil {
		c.Directories = *preset.Directories
		c.Directories.IgnoredDirectories = append([]string(nil), preset.Directories.IgnoredDirectories...)
	}
	if preset.EventTypes != nil {
		c.EventTypes = *preset.EventTypes
		c.EventTypes.AllowedTypes = append([]string(nil), preset.EventTypes.AllowedTypes...)
	}
	if preset.Extensions != nil {
		c.Extensions = *preset.Extensions
		c.Extensions.WatchedExtensions = append([]string(nil), preset.Extensions.WatchedExtensions...)
	}
	if preset.Debounce != nil {
		c.Debounce = *preset.Debounce
	}
	c.ActivePreset = t
	return nil
}
