package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newConsolidateCommand() *cobra.Command {
	var repoDir, parent, asOf string
	var subsidiaries []string

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Consolidate subsidiary financials into a parent view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOfDate, err := parseDate(asOf)
			if err != nil {
				return err
			}
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			e, err := openEnv(cmd.Context(), absDir)
			if err != nil {
				return err
			}
			defer e.close()

			cons := e.engine.Consolidate(parent, subsidiaries, asOfDate)
			return printJSON(cons)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")
	cmd.Flags().StringVar(&parent, "parent", "", "parent entity ID (required)")
	_ = cmd.MarkFlagRequired("parent")
	cmd.Flags().StringSliceVar(&subsidiaries, "subsidiaries", nil, "subsidiary IDs to consolidate (required)")
	_ = cmd.MarkFlagRequired("subsidiaries")
	cmd.Flags().StringVar(&asOf, "as-of", "", "as-of date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("as-of")

	return cmd
}
