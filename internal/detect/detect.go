// Package detect guesses a repository's language from its top-level entries.
//
// Detection is a scored heuristic: each repository type carries a signature
// of characteristic file and directory names, and every signature name found
// among the entries scores one point. The strictly highest score wins. Ties
// go to the first-declared type in the signature table; the only exception
// is the JavaScript/TypeScript tie, which prefers TypeScript when a
// tsconfig.json is present. Detection is advisory and never fails: no signal
// yields TypeGeneric.
package detect

import (
	"os"
	"strings"
)

// RepoType is the closed enumeration of detectable repository types.
type RepoType string

const (
	TypeJavaScript RepoType = "javascript"
	TypeTypeScript RepoType = "typescript"
	TypePython     RepoType = "python"
	TypeJava       RepoType = "java"
	TypeCSharp     RepoType = "csharp"
	TypeCpp        RepoType = "cpp"
	TypeGo         RepoType = "go"
	TypeRust       RepoType = "rust"
	TypePHP        RepoType = "php"
	TypeRuby       RepoType = "ruby"

	// TypeGeneric is the zero-score fallback; its signature is empty.
	TypeGeneric RepoType = "generic"
)

// Signature is the fingerprint a repository type is scored against. Never
// mutated after declaration.
type Signature struct {
	Files       []string
	Directories []string
}

// signatureEntry pairs a type with its signature. The slice below is
// deliberately an ordered list, not a map: on equal scores the
// first-declared type wins, and that order must survive reimplementation.
type signatureEntry struct {
	Type      RepoType
	Signature Signature
}

var signatures = []signatureEntry{
	{TypeJavaScript, Signature{
		Files:       []string{"package.json", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", ".babelrc", "webpack.config.js"},
		Directories: []string{"node_modules"},
	}},
	{TypeTypeScript, Signature{
		Files:       []string{"tsconfig.json", "package.json", "tslint.json"},
		Directories: []string{"node_modules"},
	}},
	{TypePython, Signature{
		Files:       []string{"pyproject.toml", "requirements.txt", "setup.py", "setup.cfg", "Pipfile"},
		Directories: []string{"__pycache__", ".venv", "venv"},
	}},
	{TypeJava, Signature{
		Files:       []string{"pom.xml", "build.gradle", "build.gradle.kts", "settings.gradle", "gradlew"},
		Directories: []string{".gradle", ".mvn"},
	}},
	{TypeCSharp, Signature{
		Files:       []string{"global.json", "nuget.config", "packages.config", "Directory.Build.props"},
		Directories: []string{"bin", "obj"},
	}},
	{TypeCpp, Signature{
		Files:       []string{"CMakeLists.txt", "Makefile.am", "configure.ac", "conanfile.txt", "meson.build"},
		Directories: []string{"cmake"},
	}},
	{TypeGo, Signature{
		Files:       []string{"go.mod", "go.sum", "go.work"},
		Directories: []string{"vendor", "cmd", "internal"},
	}},
	{TypeRust, Signature{
		Files:       []string{"Cargo.toml", "Cargo.lock", "rust-toolchain.toml"},
		Directories: []string{"target"},
	}},
	{TypePHP, Signature{
		Files:       []string{"composer.json", "composer.lock", "artisan"},
		Directories: []string{"vendor"},
	}},
	{TypeRuby, Signature{
		Files:       []string{"Gemfile", "Gemfile.lock", "Rakefile", "config.ru"},
		Directories: []string{".bundle"},
	}},
}

// Types lists every repository type in declaration order, generic last.
func Types() []RepoType {
	types := make([]RepoType, 0, len(signatures)+1)
	for _, entry := range signatures {
		types = append(types, entry.Type)
	}
	return append(types, TypeGeneric)
}

// Valid reports whether t is a declared repository type.
func Valid(t RepoType) bool {
	for _, known := range Types() {
		if known == t {
			return true
		}
	}
	return false
}

// Score is one type's score against a set of entries.
type Score struct {
	Type  RepoType
	Score int
}

// Detect returns the best-matching repository type for a set of top-level
// file and directory names. Entries may be bare names or paths; only the
// base name matters, case-insensitively. No positive score yields
// TypeGeneric.
func Detect(entries []string) RepoType {
	scores, present := scoreEntries(entries)

	best := TypeGeneric
	bestScore := 0
	byType := make(map[RepoType]int, len(scores))
	for _, s := range scores {
		byType[s.Type] = s.Score
		if s.Score > bestScore {
			best = s.Type
			bestScore = s.Score
		}
	}

	// JavaScript is declared before TypeScript, so an exact tie lands on
	// JavaScript; flip it when a tsconfig.json says otherwise.
	if best == TypeJavaScript && byType[TypeTypeScript] == byType[TypeJavaScript] {
		if _, ok := present["tsconfig.json"]; ok {
			best = TypeTypeScript
		}
	}

	return best
}

// Scores returns every non-generic type's score in declaration order.
// Useful for explaining a detection result.
func Scores(entries []string) []Score {
	scores, _ := scoreEntries(entries)
	return scores
}

func scoreEntries(entries []string) ([]Score, map[string]struct{}) {
	present := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		name := entry
		if i := strings.LastIndexAny(name, `/\`); i >= 0 {
			name = name[i+1:]
		}
		if name != "" {
			present[strings.ToLower(name)] = struct{}{}
		}
	}

	scores := make([]Score, 0, len(signatures))
	for _, entry := range signatures {
		score := 0
		for _, f := range entry.Signature.Files {
			if _, ok := present[strings.ToLower(f)]; ok {
				score++
			}
		}
		for _, d := range entry.Signature.Directories {
			if _, ok := present[strings.ToLower(d)]; ok {
				score++
			}
		}
		scores = append(scores, Score{Type: entry.Type, Score: score})
	}
	return scores, present
}

// ListFunc returns the top-level entries of a directory, non-recursively.
type ListFunc func(path string) ([]string, error)

// ListDir is the default ListFunc, backed by os.ReadDir.
func ListDir(path string) ([]string, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(dirents))
	for _, d := range dirents {
		names = append(names, d.Name())
	}
	return names, nil
}

// DetectRoot detects the repository type of a candidate root. Listing errors
// are swallowed: detection is advisory, so failures yield TypeGeneric. When
// no lister is available at all (list == nil), the directory's own name is
// matched against language keywords as a weak fallback.
func DetectRoot(path string, list ListFunc) RepoType {
	if list == nil {
		return detectFromName(path)
	}
	entries, err := list(path)
	if err != nil {
		return TypeGeneric
	}
	return Detect(entries)
}

// nameKeywords maps directory-name substrings to types. Ordered so that
// longer, more specific keywords win ("javascript" before "java").
var nameKeywords = []struct {
	keyword string
	repo    RepoType
}{
	{"typescript", TypeTypeScript},
	{"javascript", TypeJavaScript},
	{"python", TypePython},
	{"csharp", TypeCSharp},
	{"dotnet", TypeCSharp},
	{"java", TypeJava},
	{"golang", TypeGo},
	{"rust", TypeRust},
	{"ruby", TypeRuby},
	{"php", TypePHP},
	{"cpp", TypeCpp},
	{"node", TypeJavaScript},
}

func detectFromName(path string) RepoType {
	name := strings.ToLower(path)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	for _, k := range nameKeywords {
		if strings.Contains(name, k.keyword) {
			return k.repo
		}
	}
	return TypeGeneric
}
