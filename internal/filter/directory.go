package filter

import "strings"

// DirectoryIgnored reports whether a path lies inside any ignored directory
// (true = filtered out). A path is inside when it equals the directory or
// starts with it followed by a separator: /foo/bar covers /foo/bar/baz but
// not /foo/barbell. Disabled stage or empty list never filters.
func DirectoryIgnored(path string, cfg DirectoryConfig) bool {
	if !cfg.Enabled || len(cfg.IgnoredDirectories) == 0 {
		return false
	}
	p := NormalizePath(path)
	for _, dir := range cfg.IgnoredDirectories {
		d := NormalizePath(dir)
		if d == "" {
			continue
		}
		if p == d || strings.HasPrefix(p, d+"/") {
			return true
		}
	}
	return false
}
