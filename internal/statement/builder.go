// Package statement assembles balance sheets, income statements, and
// cash-flow statements from a ledger accessor.
package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/finrep-dev/finrep/internal/events"
	"github.com/finrep-dev/finrep/internal/id"
	"github.com/finrep-dev/finrep/internal/ledger"
	"github.com/finrep-dev/finrep/internal/model"
	"github.com/finrep-dev/finrep/internal/registry"
)

// balanceTolerance is the accounting-equation tolerance for IsBalanced.
var balanceTolerance = decimal.NewFromFloat(0.01)

// Builder generates financial statements. Each generated statement is
// inserted into the registry and published on the bus only after its entire
// computation succeeds.
type Builder struct {
	ledger   ledger.Accessor
	registry *registry.Registry
	bus      *events.Bus
	log      *zap.Logger
}

// NewBuilder creates a Builder. A nil logger disables logging.
func NewBuilder(l ledger.Accessor, reg *registry.Registry, bus *events.Bus, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{ledger: l, registry: reg, bus: bus, log: log}
}

// BalanceSheet generates a balance sheet. Account balances are taken as-is;
// asOf is recorded on the statement but balances are not reconstructed to
// that date.
func (b *Builder) BalanceSheet(ctx context.Context, asOf time.Time) (model.Statement, error) {
	accounts, err := b.ledger.Accounts(ctx)
	if err != nil {
		return model.Statement{}, fmt.Errorf("reading accounts: %w", err)
	}

	var assets, liabilities sideAccumulator
	var capital, retained, reserves decimal.Decimal

	for _, a := range accounts {
		if !a.Active {
			continue
		}
		switch a.Type {
		case model.AccountTypeAsset:
			assets.add(a, b.ledger.Round(a.Balance))
		case model.AccountTypeLiability:
			liabilities.add(a, b.ledger.Round(a.Balance))
		case model.AccountTypeEquity:
			switch a.EquityClass {
			case model.EquityCapital:
				capital = capital.Add(a.Balance)
			case model.EquityRetainedEarnings:
				retained = retained.Add(a.Balance)
			default:
				reserves = reserves.Add(a.Balance)
			}
		}
	}

	sheet := model.BalanceSheet{
		Assets:      assets.buckets(b.ledger.Round),
		Liabilities: liabilities.buckets(b.ledger.Round),
		Equity: model.EquitySection{
			Capital:          b.ledger.Round(capital),
			RetainedEarnings: b.ledger.Round(retained),
			Reserves:         b.ledger.Round(reserves),
			Total:            b.ledger.Round(capital.Add(retained).Add(reserves)),
		},
	}

	diff := sheet.Assets.Total.Sub(sheet.Liabilities.Total.Add(sheet.Equity.Total))
	sheet.IsBalanced = diff.Abs().LessThan(balanceTolerance)

	stmt := model.Statement{
		ID:           id.New(id.PrefixBalanceSheet),
		Type:         model.StatementBalanceSheet,
		AsOf:         asOf,
		Currency:     b.ledger.Currency(),
		GeneratedAt:  time.Now().UTC(),
		BalanceSheet: &sheet,
	}

	b.registry.PutReport(stmt)
	b.bus.Publish(events.TopicReportGenerated, stmt)
	b.log.Info("balance sheet generated",
		zap.String("id", stmt.ID),
		zap.String("totalAssets", sheet.Assets.Total.String()),
		zap.Bool("balanced", sheet.IsBalanced))

	return stmt, nil
}

// IncomeStatement generates an income statement over [start, end] inclusive.
// Accounts whose transaction sum for the period is zero are omitted.
func (b *Builder) IncomeStatement(ctx context.Context, start, end time.Time) (model.Statement, error) {
	accounts, err := b.ledger.Accounts(ctx)
	if err != nil {
		return model.Statement{}, fmt.Errorf("reading accounts: %w", err)
	}

	var income model.IncomeStatement
	var totalRevenues, totalExpenses decimal.Decimal

	for _, a := range accounts {
		if !a.Active {
			continue
		}
		if a.Type != model.AccountTypeRevenue && a.Type != model.AccountTypeExpense {
			continue
		}

		sum := decimal.Zero
		for _, tx := range a.Transactions {
			if withinPeriod(tx.Date, start, end) {
				sum = sum.Add(tx.Amount)
			}
		}
		if sum.IsZero() {
			continue
		}

		item := model.LineItem{Code: a.Code, Name: a.Name, Amount: b.ledger.Round(sum)}
		if a.Type == model.AccountTypeRevenue {
			income.Revenues = append(income.Revenues, item)
			totalRevenues = totalRevenues.Add(sum)
		} else {
			income.Expenses = append(income.Expenses, item)
			totalExpenses = totalExpenses.Add(sum)
		}
	}

	income.TotalRevenues = b.ledger.Round(totalRevenues)
	income.TotalExpenses = b.ledger.Round(totalExpenses)
	income.GrossProfit = b.ledger.Round(totalRevenues.Sub(totalExpenses))
	// No tax or other-income adjustments are modeled.
	income.NetIncome = income.GrossProfit

	stmt := model.Statement{
		ID:          id.New(id.PrefixIncome),
		Type:        model.StatementIncome,
		PeriodStart: start,
		PeriodEnd:   end,
		Currency:    b.ledger.Currency(),
		GeneratedAt: time.Now().UTC(),
		Income:      &income,
	}

	b.registry.PutReport(stmt)
	b.bus.Publish(events.TopicReportGenerated, stmt)
	b.log.Info("income statement generated",
		zap.String("id", stmt.ID),
		zap.String("netIncome", income.NetIncome.String()))

	return stmt, nil
}

// CashFlowStatement generates a cash-flow statement over [start, end]
// inclusive. Only completed records participate; records whose source (or
// purpose, when source is empty) matches no activity class are dropped.
func (b *Builder) CashFlowStatement(ctx context.Context, start, end time.Time) (model.Statement, error) {
	records, err := b.ledger.CashFlows(ctx)
	if err != nil {
		return model.Statement{}, fmt.Errorf("reading cash flows: %w", err)
	}

	var operating, investing, financing categoryAccumulator
	for _, r := range records {
		if r.Status != model.FlowStatusCompleted {
			continue
		}
		if !withinPeriod(r.Date, start, end) {
			continue
		}

		token := r.Source
		if token == "" {
			token = r.Purpose
		}
		switch token {
		case "customer", "other":
			operating.add(r)
		case "investment":
			investing.add(r)
		case "loan", "dividend":
			financing.add(r)
		}
	}

	flow := model.CashFlowStatement{
		Operating: operating.category(b.ledger.Round),
		Investing: investing.category(b.ledger.Round),
		Financing: financing.category(b.ledger.Round),
		NetChangeInCash: b.ledger.Round(
			operating.net().Add(investing.net()).Add(financing.net())),
	}

	stmt := model.Statement{
		ID:          id.New(id.PrefixCashFlow),
		Type:        model.StatementCashFlow,
		PeriodStart: start,
		PeriodEnd:   end,
		Currency:    b.ledger.Currency(),
		GeneratedAt: time.Now().UTC(),
		CashFlow:    &flow,
	}

	b.registry.PutReport(stmt)
	b.bus.Publish(events.TopicReportGenerated, stmt)
	b.log.Info("cash-flow statement generated",
		zap.String("id", stmt.ID),
		zap.String("netChange", flow.NetChangeInCash.String()))

	return stmt, nil
}

// withinPeriod reports whether d falls in [start, end], boundaries included.
func withinPeriod(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// sideAccumulator buckets one balance-sheet side by account subtype.
type sideAccumulator struct {
	current, fixed, other          model.Section
	currentSum, fixedSum, otherSum decimal.Decimal
}

func (s *sideAccumulator) add(a model.Account, rounded decimal.Decimal) {
	item := model.LineItem{Code: a.Code, Name: a.Name, Amount: rounded}
	switch a.SubType {
	case model.SubTypeCurrent:
		s.current.Items = append(s.current.Items, item)
		s.currentSum = s.currentSum.Add(a.Balance)
	case model.SubTypeFixed, model.SubTypeLongTerm:
		s.fixed.Items = append(s.fixed.Items, item)
		s.fixedSum = s.fixedSum.Add(a.Balance)
	default:
		s.other.Items = append(s.other.Items, item)
		s.otherSum = s.otherSum.Add(a.Balance)
	}
}

// buckets finalizes the side, rounding each bucket total and the side total
// exactly once.
func (s *sideAccumulator) buckets(round func(decimal.Decimal) decimal.Decimal) model.SubTypeBuckets {
	s.current.Total = round(s.currentSum)
	s.fixed.Total = round(s.fixedSum)
	s.other.Total = round(s.otherSum)
	return model.SubTypeBuckets{
		Current: s.current,
		Fixed:   s.fixed,
		Other:   s.other,
		Total:   round(s.currentSum.Add(s.fixedSum).Add(s.otherSum)),
	}
}

// categoryAccumulator sums inflows and outflows for one activity class.
type categoryAccumulator struct {
	inflows, outflows decimal.Decimal
}

func (c *categoryAccumulator) add(r model.CashFlowRecord) {
	if r.Direction == model.FlowInflow {
		c.inflows = c.inflows.Add(r.Amount)
	} else {
		c.outflows = c.outflows.Add(r.Amount)
	}
}

func (c *categoryAccumulator) net() decimal.Decimal {
	return c.inflows.Sub(c.outflows)
}

func (c *categoryAccumulator) category(round func(decimal.Decimal) decimal.Decimal) model.CashFlowCategory {
	return model.CashFlowCategory{
		Inflows:  round(c.inflows),
		Outflows: round(c.outflows),
		Net:      round(c.net()),
	}
}
