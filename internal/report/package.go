// Package report assembles the full financial report package: all three
// statements plus ratios, with accompanying notes.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/finrep-dev/finrep/internal/model"
	"github.com/finrep-dev/finrep/internal/ratio"
	"github.com/finrep-dev/finrep/internal/statement"
)

const dateFormat = "2006-01-02"

// Package bundles the statements and ratios for one reporting period.
type Package struct {
	BalanceSheet      model.Statement `json:"balanceSheet"`
	IncomeStatement   model.Statement `json:"incomeStatement"`
	CashFlowStatement model.Statement `json:"cashFlowStatement"`
	FinancialRatios   model.Ratios    `json:"financialRatios"`
	Notes             []string        `json:"notes"`
}

// Generator builds report packages from a statement builder and ratio
// calculator.
type Generator struct {
	builder    *statement.Builder
	calculator *ratio.Calculator
}

// NewGenerator creates a Generator.
func NewGenerator(b *statement.Builder, c *ratio.Calculator) *Generator {
	return &Generator{builder: b, calculator: c}
}

// Build generates the balance sheet as of asOf, the income and cash-flow
// statements over [start, end], and the ratio set, and returns them with
// standard notes. Each constituent statement is registered and published as
// it is generated.
func (g *Generator) Build(ctx context.Context, start, end, asOf time.Time) (Package, error) {
	balanceSheet, err := g.builder.BalanceSheet(ctx, asOf)
	if err != nil {
		return Package{}, fmt.Errorf("building balance sheet: %w", err)
	}

	income, err := g.builder.IncomeStatement(ctx, start, end)
	if err != nil {
		return Package{}, fmt.Errorf("building income statement: %w", err)
	}

	cashFlow, err := g.builder.CashFlowStatement(ctx, start, end)
	if err != nil {
		return Package{}, fmt.Errorf("building cash-flow statement: %w", err)
	}

	ratios, err := g.calculator.Calculate(ctx, asOf)
	if err != nil {
		return Package{}, fmt.Errorf("calculating ratios: %w", err)
	}

	return Package{
		BalanceSheet:      balanceSheet,
		IncomeStatement:   income,
		CashFlowStatement: cashFlow,
		FinancialRatios:   ratios,
		Notes: []string{
			fmt.Sprintf("All figures are presented in %s.", balanceSheet.Currency),
			fmt.Sprintf("Balance sheet as of %s.", asOf.Format(dateFormat)),
			fmt.Sprintf("Income and cash-flow statements cover %s through %s.",
				start.Format(dateFormat), end.Format(dateFormat)),
			"Cash-flow figures include completed records only.",
		},
	}, nil
}
