package commands

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finrep-dev/finrep/internal/consolidation"
)

func newSubsidiaryCommand() *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "subsidiary",
		Short: "Manage subsidiaries",
	}

	subCmd.PersistentFlags().String("repo", ".", "project directory")

	subCmd.AddCommand(newSubsidiaryAddCommand())
	subCmd.AddCommand(newSubsidiaryListCommand())

	return subCmd
}

func subsidiaryEnv(cmd *cobra.Command) (*env, error) {
	repoDir, err := cmd.Flags().GetString("repo")
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	return openEnv(cmd.Context(), absDir)
}

func newSubsidiaryAddCommand() *cobra.Command {
	var name, code, ownership, acquired string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a subsidiary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := decimal.NewFromString(ownership)
			if err != nil {
				return fmt.Errorf("invalid ownership %q: %w", ownership, err)
			}
			acquiredDate, err := parseDate(acquired)
			if err != nil {
				return err
			}

			e, err := subsidiaryEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			sub := e.engine.RegisterSubsidiary(consolidation.SubsidiaryParams{
				Name:            name,
				Code:            code,
				Ownership:       pct,
				AcquisitionDate: acquiredDate,
			})
			return printJSON(sub)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "subsidiary name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&code, "code", "", "subsidiary code")
	cmd.Flags().StringVar(&ownership, "ownership", "", "ownership percentage, 0-100 (required)")
	_ = cmd.MarkFlagRequired("ownership")
	cmd.Flags().StringVar(&acquired, "acquired", "", "acquisition date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("acquired")

	return cmd
}

func newSubsidiaryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered subsidiaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := subsidiaryEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			return printJSON(e.registry.Subsidiaries())
		},
	}
}
