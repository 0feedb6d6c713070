// Package cmd provides the CLI commands for sieve.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mbranstad/sieve/internal/config"
	"github.com/mbranstad/sieve/internal/logging"
	"github.com/mbranstad/sieve/internal/store"
	"github.com/mbranstad/sieve/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the sieve CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sieve",
		Short: "Filter and classify file change events",
		Long: `Sieve watches directories for file changes and runs every event
through a configurable filter pipeline: glob patterns, ignored
directories, event types, extensions, and debouncing.

Filter configuration persists between runs and can be tuned per
repository type with built-in presets.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.SetVersionTemplate("sieve version {{.Version}}\n")

	// Debug logging flag
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.sieve/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newDetectCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging sets up debug logging if the flag is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Short()))
	return nil
}

// stopLogging flushes and closes the debug log.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadAppConfig loads the application configuration for the current directory.
func loadAppConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return config.Load(cwd)
}

// openStore opens the configured persistence backend.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore(filepath.Join(cfg.DataDir, "sieve.db"))
	default:
		return store.NewFileStore(filepath.Join(cfg.DataDir, "store"))
	}
}

// openConfigStore opens the filter configuration store on the configured
// backend.
func openConfigStore(cfg *config.Config) (*store.ConfigStore, func(), error) {
	backend, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := backend.Close(); err != nil {
			slog.Warn("Failed to close store", slog.String("error", err.Error()))
		}
	}
	return store.NewConfigStore(backend), cleanup, nil
}
