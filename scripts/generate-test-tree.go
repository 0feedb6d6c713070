//go:build ignore

// Package main generates a synthetic project tree for exercising sieve
// manually: source files worth watching plus the noisy directories the
// default filters should suppress.
// Usage: go run scripts/generate-test-tree.go -output /tmp/sieve-demo -files 200
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

var (
	output = flag.String("output", "testdata/tree", "output directory")
	files  = flag.Int("files", 100, "number of source files to create")
)

var srcExts = []string{".go", ".ts", ".py", ".rs", ".md"}

var noisyDirs = []string{
	"node_modules/leftpad",
	".git/objects",
	"dist/assets",
	"target/debug",
	"__pycache__",
}

func main() {
	flag.Parse()

	for i := 0; i < *files; i++ {
		ext := srcExts[rand.Intn(len(srcExts))]
		dir := filepath.Join(*output, "src", fmt.Sprintf("pkg%d", i%10))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatal(err)
		}
		path := filepath.Join(dir, fmt.Sprintf("file%d%s", i, ext))
		if err := os.WriteFile(path, []byte(fmt.Sprintf("// file %d\n", i)), 0o644); err != nil {
			fatal(err)
		}
	}

	for _, dir := range noisyDirs {
		full := filepath.Join(*output, dir)
		if err := os.MkdirAll(full, 0o755); err != nil {
			fatal(err)
		}
		for i := 0; i < 20; i++ {
			path := filepath.Join(full, fmt.Sprintf("noise%d.js", i))
			if err := os.WriteFile(path, []byte("noise\n"), 0o644); err != nil {
				fatal(err)
			}
		}
	}

	fmt.Printf("generated %d source files plus noise under %s\n", *files, *output)
	fmt.Println("try: sieve watch", *output)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
