package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finrep-dev/finrep/internal/model"
)

// Accessor is the read contract the reporting core consumes. A single
// statement-generation call iterates accounts once; implementations must
// return a consistent snapshot for that call.
type Accessor interface {
	// Accounts returns all chart-of-accounts entries with their balances
	// and transactions.
	Accounts(ctx context.Context) ([]model.Account, error)

	// CashFlows returns all recorded cash-flow records.
	CashFlows(ctx context.Context) ([]model.CashFlowRecord, error)

	// Currency is the reporting currency tagged onto every statement.
	Currency() string

	// Round applies the ledger's rounding policy. Every published monetary
	// figure passes through it exactly once, immediately before being
	// placed on a statement.
	Round(d decimal.Decimal) decimal.Decimal
}

// Rounding is the single rounding policy: half away from zero to a fixed
// number of decimal places.
type Rounding struct {
	Places int32
}

// Round rounds d to the configured number of places.
func (r Rounding) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(r.Places)
}
