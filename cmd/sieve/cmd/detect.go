package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbranstad/sieve/internal/detect"
	"github.com/mbranstad/sieve/internal/output"
)

// newDetectCmd creates the detect command.
func newDetectCmd() *cobra.Command {
	var jsonOutput bool
	var showScores bool

	cmd := &cobra.Command{
		Use:   "detect [path]",
		Short: "Detect the repository type of a directory",
		Long: `Detect the repository type by inspecting root-level marker files
(package.json, Cargo.toml, go.mod, ...). Defaults to the current
directory.`,
		Example: `  # Detect the current directory
  sieve detect

  # Detect another directory with per-type scores
  sieve detect ~/code/myapp --scores`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			return runDetect(cmd, path, jsonOutput, showScores)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&showScores, "scores", false, "Show per-type match scores")

	return cmd
}

func runDetect(cmd *cobra.Command, path string, jsonOutput, showScores bool) error {
	out := output.New(cmd.OutOrStdout())

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	repoType := detect.DetectRoot(path, detect.ListDir)

	var scores []detect.Score
	if showScores || jsonOutput {
		if entries, err := detect.ListDir(path); err == nil {
			scores = detect.Scores(entries)
		}
	}

	if jsonOutput {
		result := struct {
			Path   string          `json:"path"`
			Type   detect.RepoType `json:"type"`
			Scores []detect.Score  `json:"scores,omitempty"`
		}{Path: path, Type: repoType, Scores: scores}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out.Statusf("🔍", "Detected: %s", repoType)
	if showScores {
		out.Newline()
		for _, s := range scores {
			if s.Score == 0 {
				continue
			}
			out.Statusf("", "%-12s %d", s.Type, s.Score)
		}
	}
	return nil
}
