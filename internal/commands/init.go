package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finrep-dev/finrep/internal/config"
	"github.com/finrep-dev/finrep/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new finrep project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, entityType, currency)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "llc_single_member", "entity type")
	cmd.Flags().StringVar(&currency, "currency", "USD", "reporting currency")

	return cmd
}

func runInit(dir, name, entityType, currency string) error {
	for _, d := range []string{"import", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, entityType)
	cfg.Reporting.Currency = currency
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return err
	}

	// Create the ledger database with its schema.
	led, err := ledger.Open(filepath.Join(dir, cfg.Ledger.Path), cfg.Reporting.Currency, cfg.Reporting.DecimalPlaces)
	if err != nil {
		return err
	}
	if err := led.Close(); err != nil {
		return fmt.Errorf("closing ledger: %w", err)
	}

	fmt.Printf("Initialized finrep project in %s\n", dir)
	return nil
}
