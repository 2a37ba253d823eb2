package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/auracoil/auracoil/internal/config"
	"github.com/auracoil/auracoil/internal/region"
	"github.com/auracoil/auracoil/internal/state"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Prepare a repository for reviews",
	Long: "Creates the host document if missing, adds the review section markers,\n" +
		"and creates the tool-private directory. Safe to run repeatedly.",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return err
		}
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		hostPath := filepath.Join(root, cfg.DocPath)
		docBytes, err := os.ReadFile(hostPath)
		created := false
		if err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("reading %s: %w", cfg.DocPath, err)
			}
			docBytes = []byte(fmt.Sprintf("# %s\n", filepath.Base(root)))
			created = true
		}

		doc := region.Ensure(string(docBytes))
		if doc != string(docBytes) || created {
			if err := os.MkdirAll(filepath.Dir(hostPath), 0o755); err != nil {
				return fmt.Errorf("creating document directory: %w", err)
			}
			if err := os.WriteFile(hostPath, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", cfg.DocPath, err)
			}
		}

		if err := os.MkdirAll(filepath.Join(root, state.Dir), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", state.Dir, err)
		}

		switch {
		case created:
			fmt.Fprintf(os.Stdout, "Created %s with a review section.\n", cfg.DocPath)
		case doc != string(docBytes):
			fmt.Fprintf(os.Stdout, "Added a review section to %s.\n", cfg.DocPath)
		default:
			fmt.Fprintf(os.Stdout, "%s already has a review section.\n", cfg.DocPath)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&flagDoc, "doc", "", "Host document path relative to the repository root")
}
