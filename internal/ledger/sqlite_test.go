package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finrep-dev/finrep/internal/model"
)

func openTestLedger(t *testing.T) *SQLiteLedger {
	t.Helper()
	led, err := Open(filepath.Join(t.TempDir(), "ledger.db"), "USD", 2)
	require.NoError(t, err)
	t.Cleanup(func() { led.Close() })
	return led
}

func TestSQLiteLedger_AccountsRoundTrip(t *testing.T) {
	led := openTestLedger(t)
	ctx := context.Background()

	require.NoError(t, led.InsertAccount(ctx, model.Account{
		ID: "a1", Code: "1101", Name: "Cash", Type: model.AccountTypeAsset,
		SubType: model.SubTypeCurrent, Active: true, Balance: dec("1000.50"),
	}))
	require.NoError(t, led.InsertAccount(ctx, model.Account{
		ID: "e1", Code: "3001", Name: "Share Capital", Type: model.AccountTypeEquity,
		EquityClass: model.EquityCapital, Active: false, Balance: dec("4000"),
	}))
	require.NoError(t, led.InsertTransaction(ctx, model.Transaction{
		AccountID: "a1", Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Amount: dec("250.50"),
	}))

	accounts, err := led.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	// Ordered by code.
	cash := accounts[0]
	assert.Equal(t, "a1", cash.ID)
	assert.Equal(t, model.SubTypeCurrent, cash.SubType)
	assert.True(t, cash.Active)
	assert.True(t, cash.Balance.Equal(dec("1000.50")))
	require.Len(t, cash.Transactions, 1)
	assert.True(t, cash.Transactions[0].Amount.Equal(dec("250.50")))

	capital := accounts[1]
	assert.Equal(t, model.EquityCapital, capital.EquityClass)
	assert.False(t, capital.Active)
	assert.Empty(t, capital.Transactions)
}

func TestSQLiteLedger_CashFlowsRoundTrip(t *testing.T) {
	led := openTestLedger(t)
	ctx := context.Background()

	require.NoError(t, led.InsertCashFlow(ctx, model.CashFlowRecord{
		Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), Amount: dec("100"),
		Direction: model.FlowInflow, Source: "customer", Status: model.FlowStatusCompleted,
	}))
	require.NoError(t, led.InsertCashFlow(ctx, model.CashFlowRecord{
		Date: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), Amount: dec("20"),
		Direction: model.FlowOutflow, Purpose: "dividend", Status: model.FlowStatusPending,
	}))

	flows, err := led.CashFlows(ctx)
	require.NoError(t, err)
	require.Len(t, flows, 2)
	assert.Equal(t, "customer", flows[0].Source)
	assert.True(t, flows[0].Amount.Equal(dec("100")))
	assert.Equal(t, model.FlowStatusPending, flows[1].Status)
	assert.Equal(t, "dividend", flows[1].Purpose)
}

func TestSQLiteLedger_SubsidiariesRoundTrip(t *testing.T) {
	led := openTestLedger(t)
	ctx := context.Background()

	sub := model.Subsidiary{
		ID:              "SUB_1",
		Name:            "Sub Co",
		Code:            "SUBCO",
		Ownership:       dec("60"),
		AcquisitionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Method:          model.MethodFull,
		CreatedAt:       time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, led.SaveSubsidiary(ctx, sub))

	subs, err := led.Subsidiaries(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, sub.ID, subs[0].ID)
	assert.True(t, subs[0].Ownership.Equal(dec("60")))
	assert.Equal(t, model.MethodFull, subs[0].Method)
	assert.True(t, subs[0].AcquisitionDate.Equal(sub.AcquisitionDate))
}
