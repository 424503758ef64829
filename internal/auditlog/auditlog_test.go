package auditlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finrep-dev/finrep/internal/events"
	"github.com/finrep-dev/finrep/internal/model"
)

func TestAppendRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	entries := []Entry{
		{Timestamp: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC), Topic: "report:generated", ObjectID: "BS_1", Details: "type=balance_sheet currency=USD"},
		{Timestamp: time.Date(2025, 6, 30, 12, 1, 0, 0, time.UTC), Topic: "subsidiary:registered", ObjectID: "SUB_1", Details: "name=Sub Co"},
	}
	require.NoError(t, Append(dir, entries))

	got, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "BS_1", got[0].ObjectID)
	assert.Equal(t, "subsidiary:registered", got[1].Topic)
}

func TestAppend_AppendsAcrossCalls(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, []Entry{{Timestamp: time.Now().UTC(), Topic: "a", ObjectID: "1"}}))
	require.NoError(t, Append(dir, []Entry{{Timestamp: time.Now().UTC(), Topic: "b", ObjectID: "2"}}))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSubscriber_WritesEventEntries(t *testing.T) {
	dir := t.TempDir()
	bus := events.NewBus()
	bus.SubscribeAll(Subscriber(dir, func(err error) { t.Fatal(err) }))

	bus.Publish(events.TopicReportGenerated, model.Statement{
		ID: "IS_1", Type: model.StatementIncome, Currency: "USD",
	})
	bus.Publish(events.TopicConsolidationComplete, model.Consolidation{
		ID: "CONS_1", ParentID: "p1",
	})

	got, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, string(events.TopicReportGenerated), got[0].Topic)
	assert.Equal(t, "IS_1", got[0].ObjectID)
	assert.Contains(t, got[0].Details, "income_statement")

	assert.Equal(t, "CONS_1", got[1].ObjectID)
	assert.Contains(t, got[1].Details, "parent=p1")
}
