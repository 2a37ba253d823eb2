package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auracoil/auracoil/internal/config"
	"github.com/auracoil/auracoil/internal/output"
	"github.com/auracoil/auracoil/internal/review"
)

var (
	flagArtifact string
	flagDryRun   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Splice the latest review into the host document",
	Run: func(cmd *cobra.Command, args []string) {
		runApply()
	},
}

func init() {
	applyCmd.Flags().StringVar(&flagArtifact, "artifact", "", "Review artifact to apply (default: latest)")
	applyCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Preview the change without writing anything")
	applyCmd.Flags().StringVar(&flagDoc, "doc", "", "Host document path relative to the repository root")
}

func runApply() {
	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	res, err := review.Apply(root, cfg.DocPath, flagArtifact, flagDryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if flagDryRun {
		if !res.Changed {
			fmt.Fprintln(os.Stdout, "No changes.")
			return
		}
		fmt.Fprintf(os.Stdout, "Would update %s from %s:\n\n", cfg.DocPath, res.ArtifactPath)
		fmt.Fprintln(os.Stdout, output.RenderDiff(res.Before, res.After, output.ColorEnabled(os.Stdout)))
		return
	}

	if !res.Parsed {
		fmt.Fprintln(os.Stderr, "Note: artifact was not structured JSON; spliced raw text.")
	}
	fmt.Fprintf(os.Stdout, "Updated %s (%d new finding(s)).\n", cfg.DocPath, res.FindingsAdded)
}
