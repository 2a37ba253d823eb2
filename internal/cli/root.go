package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes. Findings from a scan are not an error, but scripts need to
// branch on them.
const (
	ExitSuccess      = 0
	ExitIssues       = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "auracoil",
	Short: "Keep project documentation honest with an external reviewer",
	Long: "Auracoil reviews a repository's documentation against its code using an\n" +
		"external LLM CLI and maintains a marker-delimited review section inside\n" +
		"the host document.",
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(findingsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print auracoil version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "auracoil version %s\n", version)
	},
}

// repoRoot resolves the repository root for a command: the --repo flag
// when set, the working directory otherwise.
func repoRoot() (string, error) {
	if flagRepo != "" {
		return flagRepo, nil
	}
	return os.Getwd()
}

var flagRepo string

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "Repository root (default: working directory)")
}
