package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mbranstad/sieve/internal/detect"
	"github.com/mbranstad/sieve/internal/filter"
	"github.com/mbranstad/sieve/internal/output"
	"github.com/mbranstad/sieve/internal/watch"
)

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	var (
		watchID    string
		recursive  bool
		autoDetect bool
		presetName string
		noFilter   bool
		jsonOutput bool
		demo       bool
	)

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a directory and print filtered file change events",
		Long: `Watch a directory for file changes and print the events that pass
the filter pipeline. Defaults to the current directory.

The persisted filter configuration applies. Use --detect to pick the
preset matching the repository type for this session, or --preset to
name one explicitly. Run until interrupted.`,
		Example: `  # Watch the current directory
  sieve watch

  # Watch a project with its repository-type preset
  sieve watch ~/code/myapp --detect

  # Watch without any filtering
  sieve watch --no-filter`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			return runWatch(cmd, watchOptions{
				path:       path,
				id:         watchID,
				recursive:  recursive,
				autoDetect: autoDetect,
				preset:     presetName,
				noFilter:   noFilter,
				jsonOutput: jsonOutput,
				demo:       demo,
			})
		},
	}

	cmd.Flags().StringVar(&watchID, "id", "", "Watch session identifier (generated if empty)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Watch subdirectories recursively")
	cmd.Flags().BoolVar(&autoDetect, "detect", false, "Apply the preset for the detected repository type")
	cmd.Flags().StringVar(&presetName, "preset", "", "Apply a named repository-type preset for this session")
	cmd.Flags().BoolVar(&noFilter, "no-filter", false, "Print every event without filtering")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print events as JSON lines")
	cmd.Flags().BoolVar(&demo, "demo", false, "Emit one synthetic event through the pipeline on startup")

	return cmd
}

type watchOptions struct {
	path       string
	id         string
	recursive  bool
	autoDetect bool
	preset     string
	noFilter   bool
	jsonOutput bool
	demo       bool
}

func runWatch(cmd *cobra.Command, opts watchOptions) error {
	out := output.New(cmd.OutOrStdout())

	appCfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	cs, cleanup, err := openConfigStore(appCfg)
	if err != nil {
		return err
	}
	defer cleanup()

	filterCfg := cs.Load()

	// Session-only preset selection. Persisting is 'sieve config preset'.
	switch {
	case opts.preset != "":
		if err := filterCfg.ApplyPreset(detect.RepoType(opts.preset)); err != nil {
			return err
		}
		out.Statusf("🎛️ ", "Using %s preset", opts.preset)
	case opts.autoDetect:
		repoType := detect.DetectRoot(opts.path, detect.ListDir)
		if err := filterCfg.ApplyPreset(repoType); err != nil {
			return err
		}
		out.Statusf("🔍", "Detected %s, using its preset", repoType)
	}

	sweepInterval, err := appCfg.SweepInterval()
	if err != nil {
		return err
	}

	manager := watch.NewManager(watch.Options{
		EventBufferSize: appCfg.Watch.EventBufferSize,
		PrunePatterns:   appCfg.Watch.PrunePatterns,
	})
	defer func() {
		if err := manager.Close(); err != nil {
			slog.Warn("Failed to close watch manager", slog.String("error", err.Error()))
		}
	}()

	id, err := manager.Watch(opts.path, opts.id, opts.recursive)
	if err != nil {
		return err
	}
	out.Statusf("👀", "Watching %s (session %s)", opts.path, id)

	pipeline := filter.NewPipeline(nil)

	if opts.demo {
		if err := emitDemoEvent(cmd, out, pipeline, filterCfg, id, opts); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	sweeper := filter.NewSweeper(pipeline.State(), sweepInterval, func() time.Duration {
		return filterCfg.Debounce.Window()
	})
	g.Go(func() error {
		sweeper.Run(ctx)
		return nil
	})

	g.Go(func() error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-manager.Events():
				if !ok {
					return nil
				}
				if !opts.noFilter && !pipeline.Evaluate(ev, filterCfg) {
					continue
				}
				if opts.jsonOutput {
					if err := enc.Encode(ev); err != nil {
						return fmt.Errorf("failed to encode event: %w", err)
					}
				} else {
					out.Event(ev)
				}
			case err, ok := <-manager.Errors():
				if !ok {
					return nil
				}
				out.Warningf("watch error: %v", err)
			}
		}
	})

	return g.Wait()
}

// emitDemoEvent pushes one synthetic event through the pipeline so a user
// can check the active filter configuration without touching the tree.
func emitDemoEvent(cmd *cobra.Command, out *output.Writer, pipeline *filter.Pipeline, cfg filter.Config, watchID string, opts watchOptions) error {
	ev := filter.ChangeEvent{Path: "test-file.txt", Kind: filter.KindModified, WatchID: watchID}
	if !opts.noFilter && !pipeline.Evaluate(ev, cfg) {
		out.Statusf("🧪", "Demo event %s (%s) was filtered out", ev.Path, ev.Kind)
		return nil
	}
	if opts.jsonOutput {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(ev)
	}
	out.Event(ev)
	return nil
}
