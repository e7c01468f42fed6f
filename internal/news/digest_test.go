package news

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/catalog"
	"github.com/talgya/tradewinds/internal/econ"
)

func testEconomy(t *testing.T) *econ.Economy {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := econ.New(logger, catalog.Default(), 42)
	e.SeedDefaultWorld()
	return e
}

func TestDigestQuietDay(t *testing.T) {
	e := testEconomy(t)

	out := Digest(e)

	assert.Contains(t, out, "Trade Gazette")
	assert.Contains(t, out, "1st day of spring")
	assert.Contains(t, out, "quiet day")
}

func TestDigestReportsEvents(t *testing.T) {
	e := testEconomy(t)
	festival, ok := e.CityEngine().TypeByKey("festival")
	require.True(t, ok)
	e.CityEngine().Trigger("riverwood", festival, e.Now())
	require.NoError(t, e.ScheduleGlobalEvent("merchant_caravan", 0, ""))
	e.GlobalEngine().RunScheduled(0)

	out := Digest(e)

	assert.Contains(t, out, "City Festival in Riverwood")
	assert.Contains(t, out, "Merchant Caravan across the realm")
	assert.Contains(t, out, "4 hours", "festival runs 240 minutes")
}

func TestDigestReportsTrends(t *testing.T) {
	e := testEconomy(t)
	for i, p := range []int{10, 12, 14, 16, 18} {
		e.History().Record("riverwood", "bread", int64(i), p)
	}

	out := Digest(e)

	assert.Contains(t, out, "rising in Riverwood")
	assert.NotContains(t, out, "quiet day")
}
