package reputation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeAccumulatesFractions(t *testing.T) {
	tr := NewTracker(nil)

	for i := 0; i < 5; i++ {
		tr.Change("riverwood", 0.1)
	}

	r := tr.Record("riverwood")
	require.NotNil(t, r)
	assert.InDelta(t, 0.5, r.Standing, 1e-9)
	assert.Equal(t, 1, tr.Standing("riverwood"), "rounded for display")
}

func TestStandingClamps(t *testing.T) {
	tr := NewTracker(nil)

	tr.Change("riverwood", 500)
	assert.Equal(t, 100, tr.Standing("riverwood"))

	tr.Change("riverwood", -900)
	assert.Equal(t, -100, tr.Standing("riverwood"))
}

func TestAccessTiers(t *testing.T) {
	cases := []struct {
		standing float64
		level    int
		tier     string
		modifier float64
	}{
		{80, 3, "elite", 1.3},
		{75, 3, "elite", 1.3},
		{74, 2, "trusted", 1.2},
		{50, 2, "trusted", 1.2},
		{25, 1, "friendly", 1.1},
		{0, 0, "neutral", 1.0},
		{-1, -1, "suspicious", 0.9},
		{-25, -1, "suspicious", 0.9},
		{-26, -2, "untrusted", 0.8},
		{-50, -2, "untrusted", 0.8},
		{-51, -3, "hostile", 0.7},
	}
	for _, c := range cases {
		tr := NewTracker(nil)
		tr.Restore("riverwood", c.standing)
		assert.Equal(t, c.level, tr.AccessLevel("riverwood"), "standing %v", c.standing)
		assert.Equal(t, c.tier, TierName(tr.AccessLevel("riverwood")), "standing %v", c.standing)
		assert.InDelta(t, c.modifier, tr.PriceModifier("riverwood"), 1e-9, "standing %v", c.standing)
	}
}

func TestUnknownLocationDefaults(t *testing.T) {
	tr := NewTracker(nil)
	assert.Equal(t, 0, tr.Standing("nowhere"))
	assert.Equal(t, 0, tr.AccessLevel("nowhere"))
	assert.Equal(t, 1.0, tr.PriceModifier("nowhere"))
}

func TestOnChangeCallback(t *testing.T) {
	var got []Change
	tr := NewTracker(func(ch Change) { got = append(got, ch) })

	tr.Change("riverwood", 30)

	require.Len(t, got, 1)
	assert.Equal(t, "neutral", got[0].OldTier)
	assert.Equal(t, "friendly", got[0].NewTier)
	assert.Equal(t, 30.0, got[0].Standing)
}
