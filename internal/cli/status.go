package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auracoil/auracoil/internal/gitctx"
	"github.com/auracoil/auracoil/internal/output"
	"github.com/auracoil/auracoil/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the review checkpoint and what changed since",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return err
		}
		st := state.NewStore(root).Load()

		if flagFormat == "json" {
			return output.WriteJSON(os.Stdout, st)
		}
		if err := output.WriteStateSummary(os.Stdout, st); err != nil {
			return err
		}

		if st.LastReviewedCommit != "" {
			if head := gitctx.Head(root); head != "" && head != st.LastReviewedCommit {
				files, err := gitctx.ChangedFiles(root, st.LastReviewedCommit)
				if err == nil {
					fmt.Fprintf(os.Stdout, "\n%d file(s) changed since the last review.\n", len(files))
				}
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json)")
}
