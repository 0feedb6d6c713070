package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternFilter_Matches(t *testing.T) {
	f := NewPatternFilter()
	cfg := PatternConfig{
		Enabled:         true,
		IgnoredPatterns: []string{"*.tmp", ".DS_Store", "?ab.log"},
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"star matches suffix", "/project/build/app.tmp", true},
		{"star does not overreach", "/project/app.tmp2", false},
		{"literal name", "/project/.DS_Store", true},
		{"dot is literal not wildcard", "/project/xDS_Store", false},
		{"question mark matches one char", "/project/aab.log", true},
		{"question mark needs exactly one char", "/project/ab.log", false},
		{"basename only, directories ignored", "/project/tmp.dir/main.go", false},
		{"windows separators", `C:\work\cache.tmp`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Matches(tt.path, cfg))
		})
	}
}

func TestPatternFilter_DisabledNeverMatches(t *testing.T) {
	f := NewPatternFilter()
	cfg := PatternConfig{
		Enabled:         false,
		IgnoredPatterns: []string{"*"},
	}

	assert.False(t, f.Matches("anything.txt", cfg))
}

func TestPatternFilter_EmptyListNeverMatches(t *testing.T) {
	f := NewPatternFilter()

	assert.False(t, f.Matches("anything.txt", PatternConfig{Enabled: true}))
}

func TestPatternFilter_RegexMetacharactersAreLiteral(t *testing.T) {
	// Given: patterns full of regex metacharacters
	f := NewPatternFilter()
	cfg := PatternConfig{
		Enabled:         true,
		IgnoredPatterns: []string{"file(1).txt", "a+b.log"},
	}

	// Then: they match only themselves
	assert.True(t, f.Matches("file(1).txt", cfg))
	assert.False(t, f.Matches("file1.txt", cfg))
	assert.True(t, f.Matches("a+b.log", cfg))
	assert.False(t, f.Matches("aab.log", cfg))
}

func TestPatternFilter_CacheReuse(t *testing.T) {
	// Given: one filter evaluated repeatedly with the same pattern
	f := NewPatternFilter()
	cfg := PatternConfig{Enabled: true, IgnoredPatterns: []string{"*.swp"}}

	// When: matching many paths
	for i := 0; i < 100; i++ {
		f.Matches("/x/.main.go.swp", cfg)
	}

	// Then: only the single compiled pattern is cached
	assert.Equal(t, 1, f.cache.Len())
}

func TestCompileGlob_StarMatchesEmpty(t *testing.T) {
	re := compileGlob("*.log")

	assert.True(t, re.MatchString(".log"))
	assert.True(t, re.MatchString("server.log"))
	assert.False(t, re.MatchString("server.log1"))
}
