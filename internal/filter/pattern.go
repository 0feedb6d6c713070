package filter

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// patternCacheSize bounds the compiled-glob cache. Pattern sets are small in
// practice; the cache only matters when many presets cycle through one
// pipeline.
const patternCacheSize = 256

// PatternFilter matches event base names against glob-like ignore patterns.
// Compiled patterns are cached, so repeated evaluation of the same config is
// a map hit plus a regexp match per pattern.
type PatternFilter struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewPatternFilter creates a pattern filter with an empty compile cache.
func NewPatternFilter() *PatternFilter {
	cache, _ := lru.New[string, *regexp.Regexp](patternCacheSize)
	return &PatternFilter{cache: cache}
}

// Matches reports whether the file's base name matches any ignored pattern
// (true = filtered out). A disabled stage or empty pattern list never
// filters.
func (f *PatternFilter) Matches(path string, cfg PatternConfig) bool {
	if !cfg.Enabled || len(cfg.IgnoredPatterns) == 0 {
		return false
	}
	base := baseName(NormalizePath(path))
	for _, pattern := range cfg.IgnoredPatterns {
		if f.compile(pattern).MatchString(base) {
			return true
		}
	}
	return false
}

func (f *PatternFilter) compile(pattern string) *regexp.Regexp {
	if re, ok := f.cache.Get(pattern); ok {
		return re
	}
	re := compileGlob(pattern)
	f.cache.Add(pattern, re)
	return re
}

// compileGlob translates a glob into an anchored regular expression. Only
// '*' (any run) and '?' (any single character) are wildcards; every other
// character is quoted, so construction is total and a malformed pattern
// simply matches itself literally.
func compileGlob(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
