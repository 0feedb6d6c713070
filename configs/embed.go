// Package configs provides embedded configuration templates for sieve.
//
// Templates are embedded at build time using Go's //go:embed directive so
// they ship with every distribution. `sieve config init` writes them out for
// the user to edit.
//
// Configuration hierarchy (see internal/config.Load):
//  1. Hardcoded defaults (internal/config.NewConfig)
//  2. User config (~/.config/sieve/config.yaml)
//  3. Project config (.sieve.yaml)
//  4. Environment variables (SIEVE_*)
package configs

import _ "embed"

// ProjectConfigTemplate is the template for the project-level configuration,
// created as .sieve.yaml in the project root. Settings here are meant to be
// version-controlled with the project.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
