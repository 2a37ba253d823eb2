package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auracoil/auracoil/internal/output"
	"github.com/auracoil/auracoil/internal/repoindex"
)

var flagFormat string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Show the structural snapshot of the repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return err
		}
		idx, err := repoindex.Build(root)
		if err != nil {
			return fmt.Errorf("indexing repository: %w", err)
		}
		if flagFormat == "json" {
			return output.WriteJSON(os.Stdout, idx)
		}
		return output.WriteIndexText(os.Stdout, idx)
	},
}

func init() {
	indexCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json)")
}
