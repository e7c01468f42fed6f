package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.ItemDefinition{
		{ID: "bread", Category: catalog.CategoryConsumables, Rarity: catalog.RarityCommon, BasePrice: 10},
		{ID: "silk", Category: catalog.CategoryLuxury, Rarity: catalog.RarityRare, BasePrice: 40},
		{ID: "sword", Category: catalog.CategoryWeapons, Rarity: catalog.RarityUncommon, BasePrice: 30},
	})
}

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger(testCatalog())
	l.AddLocation(Location{ID: "riverwood", Name: "Riverwood", Kind: KindVillage})
	return l
}

func TestRecordTradePurchase(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 100)

	l.RecordTrade("riverwood", "bread", 4)

	e := l.Entry("riverwood", "bread")
	require.NotNil(t, e)
	assert.Equal(t, 6, e.Stock)
	assert.InDelta(t, 98.0, e.Supply, 1e-9)
	assert.InDelta(t, 101.2, e.Demand, 1e-9)
}

func TestRecordTradeSale(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 100)

	l.RecordTrade("riverwood", "bread", -6)

	e := l.Entry("riverwood", "bread")
	assert.Equal(t, 16, e.Stock)
	assert.InDelta(t, 103.0, e.Supply, 1e-9)
	assert.InDelta(t, 98.2, e.Demand, 1e-9)
}

func TestPressureNeverFallsBelowFloor(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 1000, 100, 100)

	l.RecordTrade("riverwood", "bread", 500)

	e := l.Entry("riverwood", "bread")
	assert.Equal(t, 10.0, e.Supply, "supply clamps at the floor")

	l.RecordTrade("riverwood", "bread", -900)
	assert.Equal(t, 10.0, e.Demand, "demand clamps at the floor")
}

func TestStockNeverGoesNegative(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 3, 100, 100)

	l.RecordTrade("riverwood", "bread", 10)

	assert.Equal(t, 0, l.Entry("riverwood", "bread").Stock)
}

func TestRelaxMovesTowardBase(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 100)
	e := l.Entry("riverwood", "bread")
	e.Supply = 50
	e.Demand = 150

	l.Relax()

	assert.InDelta(t, 51.0, e.Supply, 1e-9)
	assert.InDelta(t, 149.0, e.Demand, 1e-9)
}

func TestRelaxCapsOvershoot(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 100)
	e := l.Entry("riverwood", "bread")
	e.Supply = 400

	l.Relax()

	assert.Equal(t, 150.0, e.Supply, "recovery is capped at 1.5x base")
}

func TestSeedEntryIdempotent(t *testing.T) {
	l := testLedger(t)
	first := l.SeedEntry("riverwood", "bread", 10, 100, 100)
	first.Stock = 3

	again := l.SeedEntry("riverwood", "bread", 99, 200, 200)

	assert.Same(t, first, again)
	assert.Equal(t, 3, again.Stock, "existing entry is untouched")
}

func TestSeedEntryUnknown(t *testing.T) {
	l := testLedger(t)
	assert.Nil(t, l.SeedEntry("nowhere", "bread", 1, 100, 100))
	assert.Nil(t, l.SeedEntry("riverwood", "mystery", 1, 100, 100))
}

func TestRestoreEntryIsAuthoritative(t *testing.T) {
	l := testLedger(t)
	err := l.RestoreEntry("riverwood", Entry{
		Item: "bread", Price: 17, Stock: 4,
		Supply: 88, Demand: 120, BaseSupply: 100, BaseDemand: 100,
		EventModifier: 0.85, EventID: "ev-1", Saturation: 1.2, Ratio: 1.36,
	})
	require.NoError(t, err)

	e := l.Entry("riverwood", "bread")
	assert.Equal(t, 17, e.Price)
	assert.Equal(t, 0.85, e.EventModifier)
	assert.Equal(t, "ev-1", e.EventID)

	assert.Error(t, l.RestoreEntry("nowhere", Entry{Item: "bread"}))
	assert.Error(t, l.RestoreEntry("riverwood", Entry{Item: "mystery"}))
}

func TestRecomputeSaturation(t *testing.T) {
	e := &Entry{Stock: 60}
	RecomputeSaturation(e)
	assert.Equal(t, 0.9, e.Saturation)

	e.Stock = 3
	RecomputeSaturation(e)
	assert.Equal(t, 1.2, e.Saturation)

	e.Stock = 25
	RecomputeSaturation(e)
	assert.Equal(t, 1.0, e.Saturation)
}
