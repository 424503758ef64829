// Package consolidation registers subsidiaries and consolidates their
// financials into a parent view with ownership-based method selection and
// non-controlling-interest accounting.
package consolidation

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/finrep-dev/finrep/internal/events"
	"github.com/finrep-dev/finrep/internal/id"
	"github.com/finrep-dev/finrep/internal/model"
	"github.com/finrep-dev/finrep/internal/registry"
)

var (
	zero    = decimal.Zero
	fifty   = decimal.NewFromInt(50)
	hundred = decimal.NewFromInt(100)
)

// Engine registers subsidiaries and produces consolidation records.
type Engine struct {
	registry *registry.Registry
	bus      *events.Bus
	log      *zap.Logger
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(reg *registry.Registry, bus *events.Bus, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{registry: reg, bus: bus, log: log}
}

// SubsidiaryParams holds registration input for a subsidiary.
type SubsidiaryParams struct {
	Name            string
	Code            string
	Ownership       decimal.Decimal // percentage, clamped into [0,100]
	AcquisitionDate time.Time
}

// RegisterSubsidiary stores a subsidiary and publishes a registration
// event. Out-of-range ownership percentages are clamped, not rejected: the
// consolidation method is derived from the clamped value.
func (e *Engine) RegisterSubsidiary(p SubsidiaryParams) model.Subsidiary {
	ownership := clamp(p.Ownership)

	sub := model.Subsidiary{
		ID:              id.New(id.PrefixSubsidiary),
		Name:            p.Name,
		Code:            p.Code,
		Ownership:       ownership,
		AcquisitionDate: p.AcquisitionDate,
		Method:          MethodFor(ownership),
		CreatedAt:       time.Now().UTC(),
	}

	e.registry.PutSubsidiary(sub)
	e.bus.Publish(events.TopicSubsidiaryRegistered, sub)
	e.log.Info("subsidiary registered",
		zap.String("id", sub.ID),
		zap.String("name", sub.Name),
		zap.String("ownership", sub.Ownership.String()),
		zap.String("method", string(sub.Method)))

	return sub
}

// Consolidate builds a consolidation record for the given subsidiaries as of
// a date. Subsidiary IDs not present in the registry are skipped without
// error. The consolidated financials aggregate stays zero-initialized and
// elimination entries stay empty: intercompany-elimination rules are not
// defined in this version.
func (e *Engine) Consolidate(parentID string, subsidiaryIDs []string, asOf time.Time) model.Consolidation {
	methods := make([]model.SubsidiaryMethod, 0, len(subsidiaryIDs))
	for _, subID := range subsidiaryIDs {
		sub, err := e.registry.Subsidiary(subID)
		if errors.Is(err, registry.ErrNotFound) {
			e.log.Warn("skipping unknown subsidiary", zap.String("id", subID))
			continue
		}
		methods = append(methods, model.SubsidiaryMethod{
			SubsidiaryID:  sub.ID,
			Method:        sub.Method,
			NCIPercentage: NCI(sub.Ownership),
		})
	}

	cons := model.Consolidation{
		ID:                 id.New(id.PrefixConsolidation),
		AsOf:               asOf,
		ParentID:           parentID,
		SubsidiaryIDs:      subsidiaryIDs,
		Methods:            methods,
		EliminationEntries: []model.EliminationEntry{},
		Financials:         model.ConsolidatedFinancials{},
		CreatedAt:          time.Now().UTC(),
	}

	e.registry.PutConsolidation(cons)
	e.bus.Publish(events.TopicConsolidationComplete, cons)
	e.log.Info("consolidation completed",
		zap.String("id", cons.ID),
		zap.String("parent", parentID),
		zap.Int("subsidiaries", len(methods)))

	return cons
}

// MethodFor derives the consolidation method from a clamped ownership
// percentage: full at 50% and above, equity below.
func MethodFor(ownership decimal.Decimal) model.ConsolidationMethod {
	if ownership.GreaterThanOrEqual(fifty) {
		return model.MethodFull
	}
	return model.MethodEquity
}

// NCI returns the non-controlling-interest share as a fraction of 1:
// (100 - ownership) / 100, or 0 at full ownership.
func NCI(ownership decimal.Decimal) decimal.Decimal {
	if ownership.GreaterThanOrEqual(hundred) {
		return zero
	}
	return hundred.Sub(ownership).Div(hundred)
}

// clamp forces an ownership percentage into [0, 100].
func clamp(ownership decimal.Decimal) decimal.Decimal {
	if ownership.LessThan(zero) {
		return zero
	}
	if ownership.GreaterThan(hundred) {
		return hundred
	}
	return ownership
}
