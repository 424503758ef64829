package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementType identifies which financial statement a Statement carries.
type StatementType string

const (
	StatementBalanceSheet StatementType = "balance_sheet"
	StatementIncome       StatementType = "income_statement"
	StatementCashFlow     StatementType = "cash_flow"
)

// LineItem is one account's contribution to a statement section.
type LineItem struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Section is a list of line items with a running total.
type Section struct {
	Items []LineItem      `json:"items,omitempty"`
	Total decimal.Decimal `json:"total"`
}

// SubTypeBuckets splits an asset or liability side into current,
// fixed (including long-term) and other sections.
type SubTypeBuckets struct {
	Current Section         `json:"current"`
	Fixed   Section         `json:"fixed"`
	Other   Section         `json:"other"`
	Total   decimal.Decimal `json:"total"`
}

// EquitySection splits equity balances by their equity class.
type EquitySection struct {
	Capital          decimal.Decimal `json:"capital"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	Reserves         decimal.Decimal `json:"reserves"`
	Total            decimal.Decimal `json:"total"`
}

// BalanceSheet is the balance-sheet payload of a Statement.
type BalanceSheet struct {
	Assets      SubTypeBuckets `json:"assets"`
	Liabilities SubTypeBuckets `json:"liabilities"`
	Equity      EquitySection  `json:"equity"`
	IsBalanced  bool           `json:"isBalanced"`
}

// IncomeStatement is the income-statement payload of a Statement.
// NetIncome equals GrossProfit; taxes and other income are not modeled.
type IncomeStatement struct {
	Revenues      []LineItem      `json:"revenues,omitempty"`
	Expenses      []LineItem      `json:"expenses,omitempty"`
	TotalRevenues decimal.Decimal `json:"totalRevenues"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// CashFlowCategory accumulates inflows and outflows for one activity class.
type CashFlowCategory struct {
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Net      decimal.Decimal `json:"net"`
}

// CashFlowStatement is the cash-flow payload of a Statement.
type CashFlowStatement struct {
	Operating       CashFlowCategory `json:"operating"`
	Investing       CashFlowCategory `json:"investing"`
	Financing       CashFlowCategory `json:"financing"`
	NetChangeInCash decimal.Decimal  `json:"netChangeInCash"`
}

// Statement is a generated financial statement. Created once, immutable
// after insertion into the registry.
type Statement struct {
	ID          string        `json:"id"`
	Type        StatementType `json:"type"`
	AsOf        time.Time     `json:"asOf,omitempty"`
	PeriodStart time.Time     `json:"periodStart,omitempty"`
	PeriodEnd   time.Time     `json:"periodEnd,omitempty"`
	Currency    string        `json:"currency"`
	GeneratedAt time.Time     `json:"generatedAt"`

	BalanceSheet *BalanceSheet      `json:"balanceSheet,omitempty"`
	Income       *IncomeStatement   `json:"incomeStatement,omitempty"`
	CashFlow     *CashFlowStatement `json:"cashFlowStatement,omitempty"`
}

// Ratios groups derived financial ratios by concern. Ratios whose
// denominator was not positive are absent from their map. Ephemeral:
// never stored in the registry.
type Ratios struct {
	Profitability map[string]decimal.Decimal `json:"profitability"`
	Liquidity     map[string]decimal.Decimal `json:"liquidity"`
	Efficiency    map[string]decimal.Decimal `json:"efficiency"`
	Leverage      map[string]decimal.Decimal `json:"leverage"`
}
