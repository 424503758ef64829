// Package importer loads chart-of-accounts, transaction, and cash-flow CSV
// files into a ledger store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/finrep-dev/finrep/internal/model"
)

// Target is the write side of a ledger store.
type Target interface {
	InsertAccount(ctx context.Context, a model.Account) error
	InsertTransaction(ctx context.Context, tx model.Transaction) error
	InsertCashFlow(ctx context.Context, r model.CashFlowRecord) error
}

// Classifier supplies the configured equity class for an account code.
// Used when an imported equity account row leaves the class blank.
type Classifier func(code string) model.EquityClass

// File names looked for in the import directory.
const (
	AccountsFile     = "accounts.csv"
	TransactionsFile = "transactions.csv"
	CashFlowsFile    = "cashflows.csv"
)

// Result summarizes an import run.
type Result struct {
	Accounts     int
	Transactions int
	CashFlows    int
}

// Run imports whichever of the three CSV files exist in dir into target.
// Missing files are skipped; a malformed file aborts the run.
func Run(ctx context.Context, dir string, target Target, classify Classifier) (Result, error) {
	var res Result

	accounts, err := readFile(filepath.Join(dir, AccountsFile), ReadAccounts)
	if err != nil {
		return res, err
	}
	for _, a := range accounts {
		if a.Type == model.AccountTypeEquity && a.EquityClass == "" && classify != nil {
			a.EquityClass = classify(a.Code)
		}
		if err := target.InsertAccount(ctx, a); err != nil {
			return res, err
		}
		res.Accounts++
	}

	txs, err := readFile(filepath.Join(dir, TransactionsFile), ReadTransactions)
	if err != nil {
		return res, err
	}
	for _, tx := range txs {
		if err := target.InsertTransaction(ctx, tx); err != nil {
			return res, err
		}
		res.Transactions++
	}

	flows, err := readFile(filepath.Join(dir, CashFlowsFile), ReadCashFlows)
	if err != nil {
		return res, err
	}
	for _, f := range flows {
		if err := target.InsertCashFlow(ctx, f); err != nil {
			return res, err
		}
		res.CashFlows++
	}

	return res, nil
}

// readFile opens path and parses it with read, treating a missing file as
// empty.
func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return items, nil
}
