package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsolidationMethod selects how a subsidiary's financials fold into the
// parent's: full consolidation at 50%+ ownership, equity method below.
type ConsolidationMethod string

const (
	MethodFull   ConsolidationMethod = "full"
	MethodEquity ConsolidationMethod = "equity"
)

// Subsidiary is a registered subsidiary entity. Ownership is a percentage
// clamped into [0,100] at registration; Method is derived from it and never
// independently settable.
type Subsidiary struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Code            string              `json:"code"`
	Ownership       decimal.Decimal     `json:"ownershipPercentage"`
	AcquisitionDate time.Time           `json:"acquisitionDate"`
	Method          ConsolidationMethod `json:"consolidationMethod"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// SubsidiaryMethod records, for one consolidated subsidiary, the method
// applied and the non-controlling-interest share (a fraction of 1).
type SubsidiaryMethod struct {
	SubsidiaryID  string              `json:"subsidiaryId"`
	Method        ConsolidationMethod `json:"method"`
	NCIPercentage decimal.Decimal     `json:"nciPercentage"`
}

// EliminationEntry removes an intercompany transaction from consolidated
// totals. No elimination rules are computed in this version; the list on a
// Consolidation is always empty.
type EliminationEntry struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ConsolidatedFinancials is the aggregate view of a consolidation. It is
// zero-initialized: line-by-line merging of subsidiary balances requires
// intercompany-elimination rules that are not defined here.
type ConsolidatedFinancials struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// Consolidation is the result of consolidating a set of subsidiaries into a
// parent view as of a date. Append-only; immutable once created.
type Consolidation struct {
	ID                 string                 `json:"id"`
	AsOf               time.Time              `json:"asOfDate"`
	ParentID           string                 `json:"parentId"`
	SubsidiaryIDs      []string               `json:"subsidiaryIds"`
	Methods            []SubsidiaryMethod     `json:"methods"`
	EliminationEntries []EliminationEntry     `json:"eliminationEntries"`
	Financials         ConsolidatedFinancials `json:"consolidatedFinancials"`
	CreatedAt          time.Time              `json:"createdAt"`
}
