package filter

import "strings"

// ExtensionMatches reports whether a file passes the extension stage
// (true = keep). Disabled stage or empty watched list always passes.
// Files without an extension pass only under exclude semantics.
func ExtensionMatches(path string, cfg ExtensionConfig) bool {
	if !cfg.Enabled || len(cfg.WatchedExtensions) == 0 {
		return true
	}
	ext := extensionOf(path)
	if ext == "" {
		return cfg.Mode == ModeExclude
	}
	member := false
	for _, watched := range cfg.WatchedExtensions {
		if strings.ToLower(watched) == ext {
			member = true
			break
		}
	}
	if cfg.Mode == ModeExclude {
		return !member
	}
	return member
}
