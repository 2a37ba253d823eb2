package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/auracoil/auracoil/internal/agent"
	"github.com/auracoil/auracoil/internal/config"
	"github.com/auracoil/auracoil/internal/review"
)

// Shared review flags
var (
	flagCommand   string
	flagModel     string
	flagDoc       string
	flagTimeout   int
	flagMaxFiles  int
	flagMaxBytes  int64
	flagMaxTokens int
	flagApply     bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run a documentation review against the current repository",
	Run: func(cmd *cobra.Command, args []string) {
		runReview()
	},
}

func init() {
	reviewCmd.Flags().StringVar(&flagCommand, "command", "", "External reviewer command")
	reviewCmd.Flags().StringVar(&flagModel, "model", "", "Model name passed to the reviewer")
	reviewCmd.Flags().StringVar(&flagDoc, "doc", "", "Host document path relative to the repository root")
	reviewCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Reviewer timeout in seconds")
	reviewCmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "Maximum files in the evidence bundle")
	reviewCmd.Flags().Int64Var(&flagMaxBytes, "max-total-size", 0, "Maximum total bundle bytes")
	reviewCmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0, "Maximum estimated bundle tokens")
	reviewCmd.Flags().BoolVar(&flagApply, "apply", false, "Splice the result into the host document after reviewing")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagCommand != "" {
		m["command"] = flagCommand
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagDoc != "" {
		m["doc"] = flagDoc
	}
	if flagTimeout > 0 {
		m["timeout"] = fmt.Sprintf("%d", flagTimeout)
	}
	if flagMaxFiles > 0 {
		m["maxFiles"] = fmt.Sprintf("%d", flagMaxFiles)
	}
	if flagMaxBytes > 0 {
		m["maxTotalSize"] = fmt.Sprintf("%d", flagMaxBytes)
	}
	if flagMaxTokens > 0 {
		m["maxTokens"] = fmt.Sprintf("%d", flagMaxTokens)
	}
	return m
}

func runReview() {
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

	runner := agent.NewCLIRunner(cfg.Command, root)
	out, err := review.Run(context.Background(), root, cfg, runner, review.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var nde *review.NoDocumentError
		switch {
		case errors.As(err, &nde):
			exitCode = ExitUsageError
		case isPreflightError(err):
			exitCode = ExitAuthError
		default:
			exitCode = ExitRuntimeError
		}
		return
	}

	fmt.Fprintf(os.Stdout, "Review complete (commit %s).\n", shortOr(out.Commit, "none"))
	if out.CacheHit {
		fmt.Fprintln(os.Stdout, "Served from cache.")
	}
	fmt.Fprintf(os.Stdout, "Sent %d file(s), ~%d tokens.\n", len(out.FilesSent), out.TokenEstimate)
	if len(out.FilesExcluded) > 0 {
		fmt.Fprintf(os.Stdout, "Withheld %d file(s) after secret scan:\n", len(out.FilesExcluded))
		for _, f := range out.FilesExcluded {
			fmt.Fprintf(os.Stdout, "  %s\n", f)
		}
	}
	fmt.Fprintf(os.Stdout, "Artifact: %s\n", out.ArtifactPath)

	if flagApply {
		res, err := review.Apply(root, cfg.DocPath, out.ArtifactPath, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error applying review: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		fmt.Fprintf(os.Stdout, "Updated %s (%d new finding(s)).\n", cfg.DocPath, res.FindingsAdded)
	} else {
		fmt.Fprintln(os.Stdout, "Run `auracoil apply` to splice it into the document.")
	}
}

func isPreflightError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, sub := range []string{"preflight", "not found on PATH", "not responding"} {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}

func shortOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
