package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountSubType refines asset and liability accounts for statement bucketing.
type AccountSubType string

const (
	SubTypeCurrent  AccountSubType = "current"
	SubTypeFixed    AccountSubType = "fixed"
	SubTypeLongTerm AccountSubType = "long_term"
	SubTypeOther    AccountSubType = "other"
)

// EquityClass assigns an equity account to a balance-sheet equity line.
// It is set by chart-of-accounts configuration; an account with no class
// accumulates into reserves.
type EquityClass string

const (
	EquityCapital          EquityClass = "capital"
	EquityRetainedEarnings EquityClass = "retained_earnings"
	EquityReserve          EquityClass = "reserve"
)

// Account is a chart-of-accounts entry together with its current balance
// and recorded transactions. The reporting core treats accounts as read-only.
type Account struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Type         AccountType     `json:"type"`
	SubType      AccountSubType  `json:"subType,omitempty"`
	EquityClass  EquityClass     `json:"equityClass,omitempty"`
	Active       bool            `json:"active"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions,omitempty"`
}

// Transaction is a single signed movement on an account. Immutable once
// recorded.
type Transaction struct {
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"accountId"`
}
