package econ

import (
	"sort"

	"github.com/talgya/tradewinds/internal/catalog"
	"github.com/talgya/tradewinds/internal/clock"
	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/market"
	"github.com/talgya/tradewinds/internal/notify"
)

// SeasonAt maps an absolute minute to the calendar season. Seasons
// are four fixed 90-day quarters starting in spring.
func SeasonAt(minute int64) events.Season {
	seasons := [...]events.Season{
		events.SeasonSpring,
		events.SeasonSummer,
		events.SeasonAutumn,
		events.SeasonWinter,
	}
	day := minute / clock.MinutesPerDay
	return seasons[(day/clock.DaysPerSeason)%4]
}

// Season is the calendar season at the current minute.
func (e *Economy) Season() events.Season { return SeasonAt(e.now) }

// Tick advances the simulation by whole minutes. Each minute runs the
// same fixed sequence: expire timed-out events, relax supply and
// demand, refresh every price and its history, roll and fire new
// events, then check price alerts against the fresh prices.
func (e *Economy) Tick(elapsed int64) {
	for ; elapsed > 0; elapsed-- {
		e.step()
	}
}

func (e *Economy) step() {
	e.now++
	now := e.now

	for _, ev := range e.city.ExpireDue(now) {
		e.log.Debug("city event ended", "event", ev.Type.Key, "location", ev.Location)
		e.bus.Publish(notify.Notification{
			Kind:     notify.KindEventEnded,
			Location: ev.Location,
			Message:  ev.Type.Name + " has ended in " + string(ev.Location) + ".",
			Minute:   now,
		})
	}
	for _, ev := range e.global.ExpireDue(now) {
		e.log.Debug("global event ended", "event", ev.Type.Key)
		e.bus.Publish(notify.Notification{
			Kind:    notify.KindGlobalEventEnded,
			Message: ev.Type.Name + " has ended.",
			Minute:  now,
		})
	}

	e.ledger.Relax()

	ctx := market.PriceContext{
		Global:      e.global.PriceModifier(),
		MinuteOfDay: int(now % clock.MinutesPerDay),
	}
	for _, loc := range e.ledger.LocationIDs() {
		lm := e.ledger.Location(loc)
		ctx.Reputation = e.rep.PriceModifier(loc)
		for _, item := range sortedItems(lm) {
			entry := lm.Entries[item]
			market.RecomputeSaturation(entry)
			ctx.Fluctuation = 0.95 + e.rng.Float64()*0.1
			price := e.ledger.ComputePrice(loc, item, ctx)
			e.history.Record(loc, item, now, price)
		}
	}

	season := SeasonAt(now)
	for _, loc := range e.ledger.LocationIDs() {
		if ev := e.city.RollForEvent(loc, now, season); ev != nil {
			e.publishCityEvent(ev)
		}
	}
	if ev := e.global.Roll(now); ev != nil {
		e.publishGlobalEvent(ev)
	}
	for _, ev := range e.global.RunScheduled(now) {
		e.publishGlobalEvent(ev)
	}

	e.checkAlerts()
}

func (e *Economy) publishCityEvent(ev *events.CityEvent) {
	e.log.Info("city event", "event", ev.Type.Key, "location", ev.Location, "until", ev.Expires)
	e.bus.Publish(notify.Notification{
		Kind:     notify.KindEventStarted,
		Location: ev.Location,
		Message:  ev.Type.Name + ": " + ev.Type.Description,
		Minute:   ev.Started,
	})
}

func (e *Economy) publishGlobalEvent(ev *events.GlobalEvent) {
	e.log.Info("global event", "event", ev.Type.Key, "until", ev.Expires)
	e.bus.Publish(notify.Notification{
		Kind:    notify.KindGlobalEventStarted,
		Message: ev.Type.Name + ": " + ev.Type.Description,
		Minute:  ev.Started,
	})
}

func sortedItems(lm *market.LocationMarket) []catalog.ItemID {
	items := make([]catalog.ItemID, 0, len(lm.Entries))
	for id := range lm.Entries {
		items = append(items, id)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}
