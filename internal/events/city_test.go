package events

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/catalog"
	"github.com/talgya/tradewinds/internal/market"
	"github.com/talgya/tradewinds/internal/reputation"
)

func cityFixture(t *testing.T) (*CityEngine, *market.Ledger, *reputation.Tracker) {
	t.Helper()
	ledger := market.NewLedger(catalog.Default())
	ledger.AddLocation(market.Location{ID: "riverwood", Name: "Riverwood", Kind: market.KindVillage})
	ledger.SeedEntry("riverwood", "bread", 10, 100, 100)
	ledger.SeedEntry("riverwood", "sword", 5, 100, 100)
	tracker := reputation.NewTracker(nil)
	tracker.Init("riverwood")
	engine := NewCityEngine(ledger, tracker, rand.New(rand.NewSource(7)))
	return engine, ledger, tracker
}

func TestTriggerAppliesEffects(t *testing.T) {
	engine, ledger, tracker := cityFixture(t)
	festival, ok := engine.TypeByKey("festival")
	require.True(t, ok)

	ev := engine.Trigger("riverwood", festival, 100)
	require.NotNil(t, ev)
	assert.Equal(t, int64(340), ev.Expires)
	assert.Same(t, ev, engine.Active("riverwood"))

	bread := ledger.Entry("riverwood", "bread")
	assert.InDelta(t, 0.85, bread.EventModifier, 1e-9)
	assert.Equal(t, ev.ID, bread.EventID)

	assert.Equal(t, 1, tracker.Standing("riverwood"))

	herbs := ledger.Entry("riverwood", "herbs")
	require.NotNil(t, herbs, "festival stocks village special goods")
	assert.Greater(t, herbs.Stock, 0)
	assert.Equal(t, ev.ID, herbs.EventID, "special goods carry the event discount too")
}

func TestCategoryScopedEffect(t *testing.T) {
	engine, ledger, _ := cityFixture(t)
	harvest, _ := engine.TypeByKey("harvest")

	engine.Trigger("riverwood", harvest, 0)

	assert.InDelta(t, 0.7, ledger.Entry("riverwood", "bread").EventModifier, 1e-9)
	assert.Empty(t, ledger.Entry("riverwood", "sword").EventID, "weapons are out of scope")
}

func TestSecondConcurrentEventPanics(t *testing.T) {
	engine, _, _ := cityFixture(t)
	festival, _ := engine.TypeByKey("festival")
	banditAttack, _ := engine.TypeByKey("bandit_attack")

	engine.Trigger("riverwood", festival, 0)

	assert.Panics(t, func() {
		engine.Trigger("riverwood", banditAttack, 0)
	})
}

func TestExpireReversesExactly(t *testing.T) {
	engine, ledger, _ := cityFixture(t)
	banditAttack, _ := engine.TypeByKey("bandit_attack")

	ev := engine.Trigger("riverwood", banditAttack, 0)
	require.InDelta(t, 1.25, ledger.Entry("riverwood", "bread").EventModifier, 1e-9)

	assert.Empty(t, engine.ExpireDue(ev.Expires-1), "not due yet")

	expired := engine.ExpireDue(ev.Expires)
	require.Len(t, expired, 1)
	assert.Equal(t, ev.ID, expired[0].ID)

	bread := ledger.Entry("riverwood", "bread")
	assert.Zero(t, bread.EventModifier)
	assert.Empty(t, bread.EventID)
	assert.Nil(t, engine.Active("riverwood"))
}

func TestExpireForeignModifierPanics(t *testing.T) {
	engine, ledger, _ := cityFixture(t)
	banditAttack, _ := engine.TypeByKey("bandit_attack")

	ev := engine.Trigger("riverwood", banditAttack, 0)
	ledger.Entry("riverwood", "bread").EventID = "someone-else"

	assert.Panics(t, func() {
		engine.ExpireDue(ev.Expires)
	})
}

func TestSeasonGating(t *testing.T) {
	engine, _, _ := cityFixture(t)

	seen := map[string]bool{}
	for i := 0; i < 20000; i++ {
		ev := engine.RollForEvent("riverwood", int64(i), SeasonSpring)
		if ev == nil {
			continue
		}
		seen[ev.Type.Key] = true
		engine.ExpireDue(ev.Expires)
	}

	assert.NotEmpty(t, seen, "rolls eventually trigger something")
	assert.False(t, seen["harvest"], "autumn event must not fire in spring")
	assert.False(t, seen["winter_storm"], "winter event must not fire in spring")
	assert.False(t, seen["drought"], "summer event must not fire in spring")
}

func TestRollSkipsOccupiedLocation(t *testing.T) {
	engine, _, _ := cityFixture(t)
	festival, _ := engine.TypeByKey("festival")
	engine.Trigger("riverwood", festival, 0)

	for i := 0; i < 1000; i++ {
		assert.Nil(t, engine.RollForEvent("riverwood", int64(i), SeasonSpring))
	}
}

func TestRestoreEvent(t *testing.T) {
	engine, _, _ := cityFixture(t)
	festival, _ := engine.TypeByKey("festival")

	ev := &CityEvent{ID: "saved", Type: festival, Location: "riverwood", Started: 10, Expires: 250}
	require.NoError(t, engine.RestoreEvent(ev))
	assert.Same(t, ev, engine.Active("riverwood"))

	assert.Error(t, engine.RestoreEvent(&CityEvent{ID: "dup", Type: festival, Location: "riverwood"}))
}

func TestSpecialGoodsByAccessLevel(t *testing.T) {
	engine, ledger, tracker := cityFixture(t)
	tracker.Restore("riverwood", 80)
	expedition, _ := engine.TypeByKey("trade_expedition")

	engine.Trigger("riverwood", expedition, 0)

	require.NotNil(t, ledger.Entry("riverwood", "dragon_scale"), "elite standing unlocks legendary wares")
	assert.Nil(t, ledger.Entry("riverwood", "gems"), "tiers are exact, not cumulative")
}
