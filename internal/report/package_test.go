package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finrep-dev/finrep/internal/events"
	"github.com/finrep-dev/finrep/internal/ledger"
	"github.com/finrep-dev/finrep/internal/model"
	"github.com/finrep-dev/finrep/internal/ratio"
	"github.com/finrep-dev/finrep/internal/registry"
	"github.com/finrep-dev/finrep/internal/statement"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuild_FullPackage(t *testing.T) {
	led := ledger.NewMemoryLedger("USD", 2)
	led.AddAccount(model.Account{
		ID: "a1", Code: "1101", Name: "Cash", Type: model.AccountTypeAsset,
		SubType: model.SubTypeCurrent, Active: true, Balance: dec("6000"),
	})
	led.AddAccount(model.Account{
		ID: "l1", Code: "2101", Name: "Payables", Type: model.AccountTypeLiability,
		SubType: model.SubTypeCurrent, Active: true, Balance: dec("2000"),
	})
	led.AddAccount(model.Account{
		ID: "e1", Code: "3001", Name: "Capital", Type: model.AccountTypeEquity,
		EquityClass: model.EquityCapital, Active: true, Balance: dec("4000"),
	})
	led.AddAccount(model.Account{
		ID: "r1", Code: "4101", Name: "Sales", Type: model.AccountTypeRevenue,
		Active: true,
		Transactions: []model.Transaction{
			{Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Amount: dec("500"), AccountID: "r1"},
		},
	})
	led.AddCashFlow(model.CashFlowRecord{
		Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), Amount: dec("100"),
		Direction: model.FlowInflow, Source: "customer", Status: model.FlowStatusCompleted,
	})

	reg := registry.New()
	bus := events.NewBus()
	var published int
	bus.Subscribe(events.TopicReportGenerated, func(events.Event) { published++ })

	builder := statement.NewBuilder(led, reg, bus, nil)
	gen := NewGenerator(builder, ratio.NewCalculator(builder))

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	pkg, err := gen.Build(context.Background(), start, end, asOf)
	require.NoError(t, err)

	require.NotNil(t, pkg.BalanceSheet.BalanceSheet)
	assert.True(t, pkg.BalanceSheet.BalanceSheet.IsBalanced)
	require.NotNil(t, pkg.IncomeStatement.Income)
	assert.True(t, pkg.IncomeStatement.Income.NetIncome.Equal(dec("500")))
	require.NotNil(t, pkg.CashFlowStatement.CashFlow)
	assert.True(t, pkg.CashFlowStatement.CashFlow.NetChangeInCash.Equal(dec("100")))
	assert.Contains(t, pkg.FinancialRatios.Leverage, "debtRatio")

	assert.NotEmpty(t, pkg.Notes)
	assert.Contains(t, pkg.Notes[0], "USD")

	// Four statements registered and published: the package's balance sheet,
	// income, cash flow, and the ratio calculator's internal balance sheet.
	assert.Equal(t, 4, published)
}
