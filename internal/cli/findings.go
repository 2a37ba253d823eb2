package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auracoil/auracoil/internal/output"
	"github.com/auracoil/auracoil/internal/state"
)

var flagAll bool

var findingsCmd = &cobra.Command{
	Use:   "findings",
	Short: "Inspect lifecycle-tracked review findings",
}

var findingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List findings (open by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return err
		}
		st := state.NewStore(root).Load()
		findings := st.Findings
		if !flagAll {
			findings = st.OpenFindings()
		}
		if flagFormat == "json" {
			return output.WriteJSON(os.Stdout, findings)
		}
		return output.WriteFindingsTable(os.Stdout, findings, output.ColorEnabled(os.Stdout))
	},
}

var findingsResolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Mark a finding resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return err
		}
		store := state.NewStore(root)
		if err := store.ResolveFinding(args[0]); err != nil {
			return fmt.Errorf("resolving finding: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Resolved %s.\n", args[0])
		return nil
	},
}

func init() {
	findingsListCmd.Flags().BoolVar(&flagAll, "all", false, "Include resolved findings")
	findingsListCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json)")
	findingsCmd.AddCommand(findingsListCmd)
	findingsCmd.AddCommand(findingsResolveCmd)
}
