package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finrep-dev/finrep/internal/importer"
)

func newImportCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import accounts, transactions, and cash flows from CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runImport(cmd, absDir)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")

	return cmd
}

func runImport(cmd *cobra.Command, root string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, root)
	if err != nil {
		return err
	}
	defer e.close()

	res, err := importer.Run(ctx, filepath.Join(root, "import"), e.ledger, e.cfg.EquityClassFor)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d accounts, %d transactions, %d cash flows\n",
		res.Accounts, res.Transactions, res.CashFlows)
	return nil
}
