package events

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/tradewinds/internal/market"
)

// Chance per tick that one global event is rolled.
const globalEventChance = 0.05

// GlobalEvent is a live world-scoped event.
type GlobalEvent struct {
	ID      string
	Type    GlobalEventType
	Payload string
	Started int64
	Expires int64
}

type ScheduledEvent struct {
	At      int64
	Key     string
	Payload string
}

// GlobalEngine rolls, schedules, and expires world-scoped events.
// Price and travel multipliers are tracked per event, so expiry
// removes exactly the contribution the event added.
type GlobalEngine struct {
	ledger    *market.Ledger
	types     []GlobalEventType
	active    map[string]*GlobalEvent
	scheduled []ScheduledEvent
	price     *ModifierSet
	travel    *ModifierSet
	rng       *rand.Rand
}

// NewGlobalEngine creates an engine over the default event table.
func NewGlobalEngine(ledger *market.Ledger, rng *rand.Rand) *GlobalEngine {
	return &GlobalEngine{
		ledger: ledger,
		types:  DefaultGlobalEventTypes(),
		active: make(map[string]*GlobalEvent),
		price:  NewModifierSet(),
		travel: NewModifierSet(),
		rng:    rng,
	}
}

// PriceModifier is the combined multiplier of every live global event.
func (g *GlobalEngine) PriceModifier() float64 { return g.price.Product() }

// TravelModifier is the combined travel-speed multiplier.
func (g *GlobalEngine) TravelModifier() float64 { return g.travel.Product() }

// ActiveEvents returns live global events, oldest first.
func (g *GlobalEngine) ActiveEvents() []*GlobalEvent {
	out := make([]*GlobalEvent, 0, len(g.active))
	for _, ev := range g.active {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Started < out[j].Started })
	return out
}

// TypeByKey looks up a registered event type.
func (g *GlobalEngine) TypeByKey(key string) (GlobalEventType, bool) {
	for _, t := range g.types {
		if t.Key == key {
			return t, true
		}
	}
	return GlobalEventType{}, false
}

// Roll gives the world one chance per tick at a random rollable event.
// Returns the triggered event, or nil.
func (g *GlobalEngine) Roll(now int64) *GlobalEvent {
	if g.rng.Float64() >= globalEventChance {
		return nil
	}
	var rollable []GlobalEventType
	for _, t := range g.types {
		if t.Rollable {
			rollable = append(rollable, t)
		}
	}
	if len(rollable) == 0 {
		return nil
	}
	return g.trigger(rollable[g.rng.Intn(len(rollable))], "", now)
}

// ScheduleEvent queues an event to fire at an absolute minute.
func (g *GlobalEngine) ScheduleEvent(key string, at int64, payload string) error {
	if _, ok := g.TypeByKey(key); !ok {
		return fmt.Errorf("events: schedule unknown global event %q", key)
	}
	g.scheduled = append(g.scheduled, ScheduledEvent{At: at, Key: key, Payload: payload})
	return nil
}

// RunScheduled fires every queued event whose time has come.
func (g *GlobalEngine) RunScheduled(now int64) []*GlobalEvent {
	var fired []*GlobalEvent
	remaining := g.scheduled[:0]
	for _, s := range g.scheduled {
		if s.At > now {
			remaining = append(remaining, s)
			continue
		}
		t, _ := g.TypeByKey(s.Key)
		fired = append(fired, g.trigger(t, s.Payload, now))
	}
	g.scheduled = remaining
	return fired
}

// Scheduled returns the pending queue, soonest first.
func (g *GlobalEngine) Scheduled() []ScheduledEvent {
	out := make([]ScheduledEvent, len(g.scheduled))
	copy(out, g.scheduled)
	sort.Slice(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out
}

func (g *GlobalEngine) trigger(t GlobalEventType, payload string, now int64) *GlobalEvent {
	ev := &GlobalEvent{
		ID:      uuid.NewString(),
		Type:    t,
		Payload: payload,
		Started: now,
		Expires: now + t.Duration,
	}
	g.active[ev.ID] = ev
	if mod, ok := foldDeltas(t.Effects, EffectPrice); ok {
		g.price.Set(ev.ID, mod)
	}
	if mod, ok := foldDeltas(t.Effects, EffectTravelSpeed); ok {
		g.travel.Set(ev.ID, mod)
	}
	for _, eff := range t.Effects {
		if eff.Kind == EffectRestock {
			g.restockAll()
		}
	}
	return ev
}

// ExpireDue removes every event whose timer has run out, withdrawing
// exactly the multiplier contributions it registered. Returns the
// expired events.
func (g *GlobalEngine) ExpireDue(now int64) []*GlobalEvent {
	var expired []*GlobalEvent
	for id, ev := range g.active {
		if now < ev.Expires {
			continue
		}
		if _, ok := foldDeltas(ev.Type.Effects, EffectPrice); ok {
			if !g.price.Remove(id) {
				panic(fmt.Sprintf("events: global event %s (%s) has no price contribution to withdraw", id, ev.Type.Key))
			}
		}
		if _, ok := foldDeltas(ev.Type.Effects, EffectTravelSpeed); ok {
			if !g.travel.Remove(id) {
				panic(fmt.Sprintf("events: global event %s (%s) has no travel contribution to withdraw", id, ev.Type.Key))
			}
		}
		delete(g.active, id)
		expired = append(expired, ev)
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].Started < expired[j].Started })
	return expired
}

// RestoreEvent re-registers a persisted live event, re-deriving its
// multiplier contributions from the type table. Stock effects already
// happened and are not replayed.
func (g *GlobalEngine) RestoreEvent(ev *GlobalEvent) error {
	if _, ok := g.active[ev.ID]; ok {
		return fmt.Errorf("events: global event %s already active", ev.ID)
	}
	g.active[ev.ID] = ev
	if mod, ok := foldDeltas(ev.Type.Effects, EffectPrice); ok {
		g.price.Set(ev.ID, mod)
	}
	if mod, ok := foldDeltas(ev.Type.Effects, EffectTravelSpeed); ok {
		g.travel.Set(ev.ID, mod)
	}
	return nil
}

// RestoreSchedule replaces the pending queue from persisted state.
func (g *GlobalEngine) RestoreSchedule(pending []ScheduledEvent) {
	g.scheduled = append(g.scheduled[:0], pending...)
}

// foldDeltas multiplies (1 + delta) over every effect of one kind.
func foldDeltas(effects []Effect, kind EffectKind) (float64, bool) {
	mod, matched := 1.0, false
	for _, eff := range effects {
		if eff.Kind == kind {
			mod *= 1 + eff.Value
			matched = true
		}
	}
	return mod, matched
}

// Fresh shipments top up thin shelves everywhere.
func (g *GlobalEngine) restockAll() {
	for _, id := range g.ledger.LocationIDs() {
		for _, e := range g.ledger.Location(id).Entries {
			if e.Stock < 20 {
				e.Stock += g.rng.Intn(11) + 5
			}
		}
	}
}
