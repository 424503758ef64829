// Package ratio derives profitability, liquidity, efficiency, and leverage
// ratios from a generated balance sheet.
package ratio

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finrep-dev/finrep/internal/model"
	"github.com/finrep-dev/finrep/internal/statement"
)

var hundred = decimal.NewFromInt(100)

// Calculator computes financial ratios. It regenerates a balance sheet for
// the requested date through the statement builder; no income statement is
// cross-referenced, so net income is held at zero.
type Calculator struct {
	builder *statement.Builder
}

// NewCalculator creates a Calculator on top of a statement builder.
func NewCalculator(b *statement.Builder) *Calculator {
	return &Calculator{builder: b}
}

// Calculate derives the ratio set for asOf. Every ratio is guarded by a
// positive-denominator check; a ratio whose denominator is not positive is
// absent from its map rather than infinite or NaN. The result is ephemeral
// and not stored in the registry.
func (c *Calculator) Calculate(ctx context.Context, asOf time.Time) (model.Ratios, error) {
	stmt, err := c.builder.BalanceSheet(ctx, asOf)
	if err != nil {
		return model.Ratios{}, fmt.Errorf("generating balance sheet for ratios: %w", err)
	}
	sheet := stmt.BalanceSheet

	totalAssets := sheet.Assets.Total
	totalLiabilities := sheet.Liabilities.Total
	totalEquity := sheet.Equity.Total
	currentAssets := sheet.Assets.Current.Total
	currentLiabilities := sheet.Liabilities.Current.Total

	// Net income is not wired in from an income statement in this version.
	netIncome := decimal.Zero

	r := model.Ratios{
		Profitability: make(map[string]decimal.Decimal),
		Liquidity:     make(map[string]decimal.Decimal),
		Efficiency:    make(map[string]decimal.Decimal),
		Leverage:      make(map[string]decimal.Decimal),
	}

	if totalAssets.IsPositive() {
		r.Profitability["returnOnAssets"] = netIncome.Div(totalAssets).Mul(hundred)
		// Literal formula: (assets + liabilities) / assets, not the
		// conventional revenue-over-assets turnover.
		r.Efficiency["assetTurnover"] = totalAssets.Add(totalLiabilities).Div(totalAssets)
		r.Leverage["debtRatio"] = totalLiabilities.Div(totalAssets)
	}
	if totalEquity.IsPositive() {
		r.Profitability["returnOnEquity"] = netIncome.Div(totalEquity).Mul(hundred)
		r.Leverage["debtToEquity"] = totalLiabilities.Div(totalEquity)
	}
	if currentLiabilities.IsPositive() {
		currentRatio := currentAssets.Div(currentLiabilities)
		r.Liquidity["currentRatio"] = currentRatio
		// Quick ratio reuses the same current-assets figure; inventory is
		// not modeled separately.
		r.Liquidity["quickRatio"] = currentRatio
	}

	return r, nil
}
