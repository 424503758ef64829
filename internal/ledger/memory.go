package ledger

import (
	"context"

	"github.com/finrep-dev/finrep/internal/model"
)

// MemoryLedger is an in-memory Accessor for tests and programmatic embedding.
type MemoryLedger struct {
	Rounding

	currency  string
	accounts  []model.Account
	byID      map[string]model.Account
	cashFlows []model.CashFlowRecord
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger(currency string, places int32) *MemoryLedger {
	return &MemoryLedger{
		Rounding: Rounding{Places: places},
		currency: currency,
		byID:     make(map[string]model.Account),
	}
}

// AddAccount records an account. Transactions are attached to the account
// itself.
func (l *MemoryLedger) AddAccount(a model.Account) {
	l.accounts = append(l.accounts, a)
	l.byID[a.ID] = a
}

// AddCashFlow records a cash-flow record.
func (l *MemoryLedger) AddCashFlow(r model.CashFlowRecord) {
	l.cashFlows = append(l.cashFlows, r)
}

// Accounts returns all accounts in insertion order.
func (l *MemoryLedger) Accounts(ctx context.Context) ([]model.Account, error) {
	return l.accounts, nil
}

// CashFlows returns all cash-flow records in insertion order.
func (l *MemoryLedger) CashFlows(ctx context.Context) ([]model.CashFlowRecord, error) {
	return l.cashFlows, nil
}

// Currency returns the reporting currency.
func (l *MemoryLedger) Currency() string {
	return l.currency
}

// Get returns an account by ID.
func (l *MemoryLedger) Get(id string) (model.Account, bool) {
	a, ok := l.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (l *MemoryLedger) Exists(id string) bool {
	_, ok := l.byID[id]
	return ok
}

// ByType returns all accounts of the given type.
func (l *MemoryLedger) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range l.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}
