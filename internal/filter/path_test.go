package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"posix path unchanged", "/home/user/file.txt", "/home/user/file.txt"},
		{"backslashes converted", `C:\Users\dev\main.go`, "C:/Users/dev/main.go"},
		{"trailing slash stripped", "/home/user/", "/home/user"},
		{"only one trailing slash stripped", "/home/user//", "/home/user/"},
		{"trailing backslash stripped", `src\pkg\`, "src/pkg"},
		{"empty string", "", ""},
		{"bare slash becomes empty", "/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "file.txt", baseName("/home/user/file.txt"))
	assert.Equal(t, "file.txt", baseName("file.txt"))
	assert.Equal(t, "", baseName("/home/user/"))
}

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"simple extension", "main.go", ".go"},
		{"extension lowercased", "README.MD", ".md"},
		{"last dot wins", "archive.tar.gz", ".gz"},
		{"no extension", "Makefile", ""},
		{"hidden file has no extension", ".gitignore", ""},
		{"hidden file with extension", ".env.local", ".local"},
		{"windows path", `src\app.TS`, ".ts"},
		{"dot in directory not counted", "/home/v1.2/readme", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extensionOf(tt.path))
		})
	}
}
