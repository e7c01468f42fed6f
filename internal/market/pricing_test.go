package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierMultiplierFirstMatch(t *testing.T) {
	cases := []struct {
		ratio float64
		want  float64
	}{
		{2.0, 1.3},
		{1.51, 1.3},
		{1.5, 1.15},
		{1.3, 1.15},
		{1.2, 1.0},
		{1.0, 1.0},
		{0.9, 1.0},
		{0.85, 0.9},
		{0.7, 0.9},
		{0.6, 0.8},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tierMultiplier(c.ratio), "ratio %v", c.ratio)
	}
}

func TestComputePriceNeutral(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 100)

	price := l.ComputePrice("riverwood", "bread", PriceContext{})

	assert.Equal(t, 10, price, "neutral entry prices at base")
	assert.Equal(t, 10, l.Entry("riverwood", "bread").Price)
}

func TestComputePriceAppliesRarity(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "silk", 10, 100, 100)

	assert.Equal(t, 100, l.ComputePrice("riverwood", "silk", PriceContext{}))
}

func TestComputePriceDemandTier(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 160)

	price := l.ComputePrice("riverwood", "bread", PriceContext{})

	e := l.Entry("riverwood", "bread")
	assert.InDelta(t, 1.6, e.Ratio, 1e-9)
	assert.Equal(t, 13, price)
}

func TestComputePriceSaturationDiscount(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 60, 100, 100)
	RecomputeSaturation(l.Entry("riverwood", "bread"))

	assert.Equal(t, 9, l.ComputePrice("riverwood", "bread", PriceContext{}))
}

func TestComputePriceMorningPremium(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 100)
	l.SeedEntry("riverwood", "sword", 10, 100, 100)

	morning := PriceContext{MinuteOfDay: 8 * 60}
	assert.Equal(t, 11, l.ComputePrice("riverwood", "bread", morning), "consumables cost more in the morning")
	assert.Equal(t, 45, l.ComputePrice("riverwood", "sword", morning), "premium only hits consumables")

	night := PriceContext{MinuteOfDay: 20 * 60}
	assert.Equal(t, 10, l.ComputePrice("riverwood", "bread", night))
}

func TestComputePriceEventModifier(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 100)
	e := l.Entry("riverwood", "bread")

	e.EventModifier = 1.25
	assert.Equal(t, 10, l.ComputePrice("riverwood", "bread", PriceContext{}),
		"a modifier without an owning event is ignored")

	e.EventID = "ev-1"
	assert.Equal(t, 13, l.ComputePrice("riverwood", "bread", PriceContext{}))
}

func TestComputePriceReputationAndGlobal(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 100)

	price := l.ComputePrice("riverwood", "bread", PriceContext{Reputation: 0.8, Global: 1.2})

	assert.Equal(t, 10, price, "0.8 x 1.2 cancels out")
}

func TestComputePriceNeverBelowOne(t *testing.T) {
	l := testLedger(t)
	l.SeedEntry("riverwood", "bread", 10, 100, 100)
	e := l.Entry("riverwood", "bread")
	e.EventModifier = 0.01
	e.EventID = "ev-1"

	assert.Equal(t, 1, l.ComputePrice("riverwood", "bread", PriceContext{Reputation: 0.7}))
}

func TestComputePriceUnknown(t *testing.T) {
	l := testLedger(t)
	assert.Equal(t, 0, l.ComputePrice("riverwood", "mystery", PriceContext{}))
	assert.Equal(t, 0, l.ComputePrice("nowhere", "bread", PriceContext{}))
}

func TestStageOrderIsFixed(t *testing.T) {
	require.Equal(t, []string{
		"base_rarity",
		"supply_demand",
		"reputation",
		"city_event",
		"global_event",
		"time_of_day",
		"saturation",
		"fluctuation",
	}, StageNames())
}
