package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate financial statements and ratios",
	}

	reportCmd.PersistentFlags().String("repo", ".", "project directory")

	reportCmd.AddCommand(newBalanceSheetCommand())
	reportCmd.AddCommand(newIncomeCommand())
	reportCmd.AddCommand(newCashFlowCommand())
	reportCmd.AddCommand(newRatiosCommand())
	reportCmd.AddCommand(newPackageCommand())

	return reportCmd
}

func reportEnv(cmd *cobra.Command) (*env, error) {
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

func newBalanceSheetCommand() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Generate a balance sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(asOf)
			if err != nil {
				return err
			}

			e, err := reportEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			stmt, err := e.builder.BalanceSheet(cmd.Context(), date)
			if err != nil {
				return err
			}
			return printJSON(stmt)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "as-of date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("as-of")

	return cmd
}

func newIncomeCommand() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "income",
		Short: "Generate an income statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, endDate, err := parsePeriod(start, end)
			if err != nil {
				return err
			}

			e, err := reportEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			stmt, err := e.builder.IncomeStatement(cmd.Context(), startDate, endDate)
			if err != nil {
				return err
			}
			return printJSON(stmt)
		},
	}

	addPeriodFlags(cmd, &start, &end)

	return cmd
}

func newCashFlowCommand() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Generate a cash-flow statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, endDate, err := parsePeriod(start, end)
			if err != nil {
				return err
			}

			e, err := reportEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			stmt, err := e.builder.CashFlowStatement(cmd.Context(), startDate, endDate)
			if err != nil {
				return err
			}
			return printJSON(stmt)
		},
	}

	addPeriodFlags(cmd, &start, &end)

	return cmd
}

func newRatiosCommand() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "ratios",
		Short: "Calculate financial ratios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(asOf)
			if err != nil {
				return err
			}

			e, err := reportEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			ratios, err := e.ratios.Calculate(cmd.Context(), date)
			if err != nil {
				return err
			}
			return printJSON(ratios)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "as-of date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("as-of")

	return cmd
}

func newPackageCommand() *cobra.Command {
	var start, end, asOf string

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Generate the full financial report package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, endDate, err := parsePeriod(start, end)
			if err != nil {
				return err
			}
			asOfDate, err := parseDate(asOf)
			if err != nil {
				return err
			}

			e, err := reportEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			pkg, err := e.reports.Build(cmd.Context(), startDate, endDate, asOfDate)
			if err != nil {
				return err
			}
			return printJSON(pkg)
		},
	}

	addPeriodFlags(cmd, &start, &end)
	cmd.Flags().StringVar(&asOf, "as-of", "", "balance-sheet as-of date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("as-of")

	return cmd
}

func addPeriodFlags(cmd *cobra.Command, start, end *string) {
	cmd.Flags().StringVar(start, "start", "", "period start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(end, "end", "", "period end, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes start date %s", end, start)
	}
	return startDate, endDate, nil
}
