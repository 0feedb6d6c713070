package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbranstad/sieve/configs"
	"github.com/mbranstad/sieve/internal/detect"
	"github.com/mbranstad/sieve/internal/filter"
	"github.com/mbranstad/sieve/internal/output"
	"github.com/mbranstad/sieve/internal/store"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the filter configuration",
		Long: `Manage the persisted filter configuration.

The configuration controls the five filter stages:
  - patterns:    glob patterns for files to ignore
  - directories: directory subtrees to ignore
  - event-types: which event kinds pass through
  - extensions:  file extension include/exclude list
  - debounce:    duplicate suppression window

Changes persist in the data directory and apply to future runs.`,
		Example: `  # Show the effective filter configuration
  sieve config show

  # Toggle a stage on or off
  sieve config toggle debounce

  # Apply the preset for a repository type
  sieve config preset rust

  # Restore defaults
  sieve config reset`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigToggleCmd())
	cmd.AddCommand(newConfigPresetCmd())
	cmd.AddCommand(newConfigResetCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project configuration file",
		Long: `Create a .sieve.yaml in the current directory from the built-in
template. The file documents every application-level setting; tune it
and commit it with the project.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .sieve.yaml")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())

	path := ".sieve.yaml"
	if _, err := os.Stat(path); err == nil && !force {
		out.Warning("Project configuration already exists")
		out.Status("💡", "Use --force to overwrite it with the template")
		return nil
	}

	if err := os.WriteFile(path, []byte(configs.ProjectConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out.Success("Created .sieve.yaml")
	out.Status("💡", "Edit it to customize, then run 'sieve watch'")
	return nil
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current filter configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cleanup, err := openConfigStoreForCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := json.MarshalIndent(cfg.Load(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <stage>",
		Short: "Toggle a filter stage on or off",
		Long: fmt.Sprintf(`Toggle a filter stage. Valid stages: %s.`,
			strings.Join(stageNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())

			cfg, cleanup, err := openConfigStoreForCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			stage := parseStage(args[0])
			updated, err := cfg.Toggle(stage)
			if err != nil {
				return err
			}

			enabled, _ := updated.StageEnabled(stage)
			if enabled {
				out.Successf("Stage %s enabled", stage)
			} else {
				out.Successf("Stage %s disabled", stage)
			}
			return nil
		},
	}
}

func newConfigPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preset <type>",
		Short: "Apply the filter preset for a repository type",
		Long: fmt.Sprintf(`Apply the built-in filter preset for a repository type.
Valid types: %s.

A preset only replaces the stages it defines; other settings are kept.`,
			strings.Join(typeNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())

			cfg, cleanup, err := openConfigStoreForCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := cfg.ApplyPreset(detect.RepoType(args[0])); err != nil {
				return err
			}
			out.Successf("Applied %s preset", args[0])
			return nil
		},
	}
}

func newConfigResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default filter configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := output.New(cmd.OutOrStdout())

			cfg, cleanup, err := openConfigStoreForCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := cfg.Reset(); err != nil {
				return err
			}
			out.Success("Filter configuration reset to defaults")
			return nil
		},
	}
}

// openConfigStoreForCmd loads the app config and opens the filter config
// store on its backend.
func openConfigStoreForCmd() (*store.ConfigStore, func(), error) {
	appCfg, err := loadAppConfig()
	if err != nil {
		return nil, nil, err
	}
	return openConfigStore(appCfg)
}

// parseStage maps CLI stage names onto Stage values. The CLI uses
// "event-types" where the config key is "event_types".
func parseStage(name string) filter.Stage {
	return filter.Stage(strings.ReplaceAll(strings.ToLower(name), "-", "_"))
}

func stageNames() []string {
	names := make([]string, 0, len(filter.Stages()))
	for _, s := range filter.Stages() {
		names = append(names, strings.ReplaceAll(string(s), "_", "-"))
	}
	return names
}

func typeNames() []string {
	names := make([]string, 0, len(detect.Types()))
	for _, t := range detect.Types() {
		names = append(names, string(t))
	}
	return names
}
