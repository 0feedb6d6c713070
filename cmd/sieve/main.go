// Package main provides the entry point for the sieve CLI.
package main

import (
	"os"

	"github.com/mbranstad/sieve/cmd/sieve/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
