package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auracoil/auracoil/internal/bundle"
	"github.com/auracoil/auracoil/internal/config"
	"github.com/auracoil/auracoil/internal/output"
	"github.com/auracoil/auracoil/internal/repoindex"
	"github.com/auracoil/auracoil/internal/secrets"
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan files for secrets before they leave the machine",
	Long: "Scans the given paths, or the files a review would transmit when no\n" +
		"paths are given. Exits 1 when anything is flagged.",
	Run: func(cmd *cobra.Command, args []string) {
		runScan(args)
	},
}

func init() {
	scanCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json)")
}

func runScan(paths []string) {
	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if len(paths) == 0 {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		idx, err := repoindex.Build(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		b := bundle.Build(root, idx, bundle.Config{
			MaxFiles:     cfg.Bundle.MaxFiles,
			MaxTotalSize: cfg.Bundle.MaxTotalSize,
			MaxTokens:    cfg.Bundle.MaxTokens,
			Exclude:      cfg.Bundle.Exclude,
		})
		paths = b.Files()
	}

	result := secrets.Scan(root, paths, secrets.DefaultRules())

	if flagFormat == "json" {
		if err := output.WriteJSON(os.Stdout, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
	} else if err := output.WriteScanText(os.Stdout, result, output.ColorEnabled(os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if !result.Safe {
		exitCode = ExitIssues
	}
}
