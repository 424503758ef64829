package consolidation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finrep-dev/finrep/internal/events"
	"github.com/finrep-dev/finrep/internal/model"
	"github.com/finrep-dev/finrep/internal/registry"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestEngine() (*Engine, *registry.Registry, *events.Bus) {
	reg := registry.New()
	bus := events.NewBus()
	return NewEngine(reg, bus, nil), reg, bus
}

func TestRegisterSubsidiary_MethodAndClamping(t *testing.T) {
	tests := []struct {
		name          string
		ownership     string
		wantOwnership string
		wantMethod    model.ConsolidationMethod
		wantNCI       string
	}{
		{"majority", "60", "60", model.MethodFull, "0.4"},
		{"minority", "30", "30", model.MethodEquity, "0.7"},
		{"boundary", "50", "50", model.MethodFull, "0.5"},
		{"above range clamps to 100", "150", "100", model.MethodFull, "0"},
		{"below range clamps to 0", "-10", "0", model.MethodEquity, "1"},
		{"wholly owned", "100", "100", model.MethodFull, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _, _ := newTestEngine()

			sub := engine.RegisterSubsidiary(SubsidiaryParams{
				Name:            "Sub Co",
				Code:            "SUBCO",
				Ownership:       dec(tt.ownership),
				AcquisitionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			})

			assert.True(t, sub.Ownership.Equal(dec(tt.wantOwnership)),
				"ownership %s, want %s", sub.Ownership, tt.wantOwnership)
			assert.Equal(t, tt.wantMethod, sub.Method)
			assert.True(t, NCI(sub.Ownership).Equal(dec(tt.wantNCI)),
				"NCI %s, want %s", NCI(sub.Ownership), tt.wantNCI)
		})
	}
}

func TestRegisterSubsidiary_StoresAndPublishes(t *testing.T) {
	engine, reg, bus := newTestEngine()

	var got []events.Event
	bus.Subscribe(events.TopicSubsidiaryRegistered, func(e events.Event) {
		got = append(got, e)
	})

	sub := engine.RegisterSubsidiary(SubsidiaryParams{
		Name:            "Sub Co",
		Ownership:       dec("80"),
		AcquisitionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	stored, err := reg.Subsidiary(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())

	require.Len(t, got, 1)
	payload, ok := got[0].Payload.(model.Subsidiary)
	require.True(t, ok)
	assert.Equal(t, sub.ID, payload.ID)
}

func TestConsolidate_MethodsAndNCI(t *testing.T) {
	engine, _, _ := newTestEngine()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	majority := engine.RegisterSubsidiary(SubsidiaryParams{Name: "Majority", Ownership: dec("60")})
	minority := engine.RegisterSubsidiary(SubsidiaryParams{Name: "Minority", Ownership: dec("30")})

	cons := engine.Consolidate("parent-1", []string{majority.ID, minority.ID}, asOf)

	require.Len(t, cons.Methods, 2)
	assert.Equal(t, model.MethodFull, cons.Methods[0].Method)
	assert.True(t, cons.Methods[0].NCIPercentage.Equal(dec("0.4")))
	assert.Equal(t, model.MethodEquity, cons.Methods[1].Method)
	assert.True(t, cons.Methods[1].NCIPercentage.Equal(dec("0.7")))

	assert.Equal(t, "parent-1", cons.ParentID)
	assert.Equal(t, asOf, cons.AsOf)
}

func TestConsolidate_UnknownSubsidiariesSkipped(t *testing.T) {
	engine, reg, _ := newTestEngine()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	known := engine.RegisterSubsidiary(SubsidiaryParams{Name: "Known", Ownership: dec("70")})

	cons := engine.Consolidate("parent-1", []string{known.ID, "SUB_missing"}, asOf)

	// The unknown ID is skipped, not an error; the request list is kept.
	require.Len(t, cons.Methods, 1)
	assert.Equal(t, known.ID, cons.Methods[0].SubsidiaryID)
	assert.Equal(t, []string{known.ID, "SUB_missing"}, cons.SubsidiaryIDs)

	stored, err := reg.Consolidation(cons.ID)
	require.NoError(t, err)
	assert.Equal(t, cons.ID, stored.ID)
}

func TestConsolidate_FinancialsZeroAndEliminationsEmpty(t *testing.T) {
	engine, _, bus := newTestEngine()

	var got []events.Event
	bus.Subscribe(events.TopicConsolidationComplete, func(e events.Event) {
		got = append(got, e)
	})

	cons := engine.Consolidate("parent-1", nil, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))

	assert.True(t, cons.Financials.TotalAssets.IsZero())
	assert.True(t, cons.Financials.TotalLiabilities.IsZero())
	assert.True(t, cons.Financials.TotalEquity.IsZero())
	assert.Empty(t, cons.EliminationEntries)
	assert.NotNil(t, cons.EliminationEntries)

	require.Len(t, got, 1)
	payload, ok := got[0].Payload.(model.Consolidation)
	require.True(t, ok)
	assert.Equal(t, cons.ID, payload.ID)
}
