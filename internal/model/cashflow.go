package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowDirection tells whether a cash-flow record moves money in or out.
type FlowDirection string

const (
	FlowInflow  FlowDirection = "inflow"
	FlowOutflow FlowDirection = "outflow"
)

// FlowStatus is the lifecycle state of a cash-flow record. Only completed
// records participate in cash-flow statements.
type FlowStatus string

const (
	FlowStatusPending   FlowStatus = "pending"
	FlowStatusCompleted FlowStatus = "completed"
	FlowStatusCancelled FlowStatus = "cancelled"
)

// CashFlowRecord is a single cash movement with its source and purpose
// categories. Read-only to the reporting core.
type CashFlowRecord struct {
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Direction FlowDirection   `json:"direction"`
	Source    string          `json:"source,omitempty"`
	Purpose   string          `json:"purpose,omitempty"`
	Status    FlowStatus      `json:"status"`
}
