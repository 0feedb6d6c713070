package filter

import "strings"

// NormalizePath canonicalizes a path for comparison: backslashes become
// forward slashes and exactly one trailing slash is stripped. Total over all
// inputs, including the empty string. Every path-based stage applies this
// before comparing, so Windows- and POSIX-style inputs compare equal.
func NormalizePath(path string) string {
	p := strings.ReplaceAll(path, `\`, "/")
	return strings.TrimSuffix(p, "/")
}

// baseName returns the substring after the last '/' of a normalized path.
func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// extensionOf returns the lower-cased extension of a path, including the
// leading dot. A base name whose only dot is the first character (hidden
// files like .gitignore) has no extension, and neither does a dotless name.
func extensionOf(path string) string {
	base := baseName(NormalizePath(path))
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(base[i:])
}
