package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finrep-dev/finrep/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type memTarget struct {
	accounts     []model.Account
	transactions []model.Transaction
	cashFlows    []model.CashFlowRecord
}

func (m *memTarget) InsertAccount(_ context.Context, a model.Account) error {
	m.accounts = append(m.accounts, a)
	return nil
}

func (m *memTarget) InsertTransaction(_ context.Context, tx model.Transaction) error {
	m.transactions = append(m.transactions, tx)
	return nil
}

func (m *memTarget) InsertCashFlow(_ context.Context, r model.CashFlowRecord) error {
	m.cashFlows = append(m.cashFlows, r)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadAccounts(t *testing.T) {
	csv := AccountsHeader + "\n" +
		"a1,1101,Cash,asset,current,,true,1000\n" +
		"e1,3001,Share Capital,equity,,capital,true,4000\n"

	accounts, err := ReadAccounts(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "1101", accounts[0].Code)
	assert.Equal(t, model.AccountTypeAsset, accounts[0].Type)
	assert.Equal(t, model.SubTypeCurrent, accounts[0].SubType)
	assert.True(t, accounts[0].Active)
	assert.True(t, accounts[0].Balance.Equal(dec("1000")))

	assert.Equal(t, model.EquityCapital, accounts[1].EquityClass)
}

func TestReadAccounts_BadRow(t *testing.T) {
	csv := AccountsHeader + "\n" +
		"a1,1101,Cash,asset,current,,notabool,1000\n"

	_, err := ReadAccounts(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadTransactions(t *testing.T) {
	csv := TransactionsHeader + "\n" +
		"r1,2025-01-15,250.50\n" +
		"x1,2025-01-20,-30\n"

	txs, err := ReadTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "r1", txs[0].AccountID)
	assert.True(t, txs[0].Amount.Equal(dec("250.50")))
	assert.True(t, txs[1].Amount.IsNegative())
}

func TestReadCashFlows(t *testing.T) {
	csv := CashFlowsHeader + "\n" +
		"2025-01-05,100,inflow,customer,,completed\n" +
		"2025-01-14,20,outflow,,dividend,pending\n"

	flows, err := ReadCashFlows(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, flows, 2)
	assert.Equal(t, model.FlowInflow, flows[0].Direction)
	assert.Equal(t, "customer", flows[0].Source)
	assert.Equal(t, model.FlowStatusCompleted, flows[0].Status)
	assert.Equal(t, "dividend", flows[1].Purpose)
}

func TestRun_ImportsAllFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, AccountsFile, AccountsHeader+"\n"+
		"a1,1101,Cash,asset,current,,true,1000\n")
	writeFile(t, dir, TransactionsFile, TransactionsHeader+"\n"+
		"a1,2025-01-15,250.50\n")
	writeFile(t, dir, CashFlowsFile, CashFlowsHeader+"\n"+
		"2025-01-05,100,inflow,customer,,completed\n")

	target := &memTarget{}
	res, err := Run(context.Background(), dir, target, nil)
	require.NoError(t, err)

	assert.Equal(t, Result{Accounts: 1, Transactions: 1, CashFlows: 1}, res)
	require.Len(t, target.accounts, 1)
	require.Len(t, target.transactions, 1)
	require.Len(t, target.cashFlows, 1)
}

func TestRun_MissingFilesSkipped(t *testing.T) {
	target := &memTarget{}
	res, err := Run(context.Background(), t.TempDir(), target, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestRun_ClassifierFillsBlankEquityClass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, AccountsFile, AccountsHeader+"\n"+
		"e1,3001,Share Capital,equity,,,true,4000\n"+
		"e2,3099,Surplus,equity,,,true,50\n")

	classify := func(code string) model.EquityClass {
		if code == "3001" {
			return model.EquityCapital
		}
		return ""
	}

	target := &memTarget{}
	_, err := Run(context.Background(), dir, target, classify)
	require.NoError(t, err)

	require.Len(t, target.accounts, 2)
	assert.Equal(t, model.EquityCapital, target.accounts[0].EquityClass)
	assert.Equal(t, model.EquityClass(""), target.accounts[1].EquityClass)
}
