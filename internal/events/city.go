package events

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/tradewinds/internal/catalog"
	"github.com/talgya/tradewinds/internal/market"
	"github.com/talgya/tradewinds/internal/reputation"
)

// CityEvent is a live local event at one settlement.
type CityEvent struct {
	ID       string
	Type     CityEventType
	Location catalog.LocationID
	Started  int64
	Expires  int64
}

// CityEngine rolls, applies, and expires settlement-scoped events. At
// most one event is active per location; the engine owns that
// invariant and panics if asked to violate it.
type CityEngine struct {
	ledger *market.Ledger
	rep    *reputation.Tracker
	types  []CityEventType
	active map[catalog.LocationID]*CityEvent
	rng    *rand.Rand
}

// NewCityEngine creates an engine over the default event table.
func NewCityEngine(ledger *market.Ledger, rep *reputation.Tracker, rng *rand.Rand) *CityEngine {
	return &CityEngine{
		ledger: ledger,
		rep:    rep,
		types:  DefaultCityEventTypes(),
		active: make(map[catalog.LocationID]*CityEvent),
		rng:    rng,
	}
}

// Active returns the live event at a location, or nil.
func (c *CityEngine) Active(loc catalog.LocationID) *CityEvent {
	return c.active[loc]
}

// ActiveEvents returns every live city event.
func (c *CityEngine) ActiveEvents() []*CityEvent {
	out := make([]*CityEvent, 0, len(c.active))
	for _, ev := range c.active {
		out = append(out, ev)
	}
	return out
}

// TypeByKey looks up a registered event type.
func (c *CityEngine) TypeByKey(key string) (CityEventType, bool) {
	for _, t := range c.types {
		if t.Key == key {
			return t, true
		}
	}
	return CityEventType{}, false
}

// RollForEvent gives each event type one independent chance, in table
// order, and triggers the first winner. A location with a live event
// never rolls. Returns the triggered event, or nil.
func (c *CityEngine) RollForEvent(loc catalog.LocationID, now int64, season Season) *CityEvent {
	if c.active[loc] != nil {
		return nil
	}
	for _, t := range c.types {
		if t.Season != "" && t.Season != season {
			continue
		}
		if c.rng.Float64() < t.Chance {
			return c.Trigger(loc, t, now)
		}
	}
	return nil
}

// Trigger starts an event at a location and applies its effects to the
// market and reputation state. Panics if the location already has a
// live event.
func (c *CityEngine) Trigger(loc catalog.LocationID, t CityEventType, now int64) *CityEvent {
	if prev := c.active[loc]; prev != nil {
		panic(fmt.Sprintf("events: second city event %q at %s while %q is active", t.Key, loc, prev.Type.Key))
	}
	lm := c.ledger.Location(loc)
	if lm == nil {
		return nil
	}
	ev := &CityEvent{
		ID:       uuid.NewString(),
		Type:     t,
		Location: loc,
		Started:  now,
		Expires:  now + t.Duration,
	}
	c.active[loc] = ev

	for _, eff := range t.Effects {
		switch eff.Kind {
		case EffectSpecialGoods:
			c.seedSpecialGoods(lm)
		case EffectReputation:
			c.rep.Change(loc, eff.Value)
		}
	}
	// Price modifiers go on last so goods the event introduced are
	// covered too.
	cat := c.ledger.Catalog()
	for _, e := range lm.Entries {
		def := cat.Item(e.Item)
		if def == nil {
			continue
		}
		if mod, ok := priceModifierFor(t.Effects, def); ok {
			e.EventModifier = mod
			e.EventID = ev.ID
		}
	}
	return ev
}

// ExpireDue removes every event whose timer has run out, reversing
// its price modifiers exactly. Returns the expired events.
func (c *CityEngine) ExpireDue(now int64) []*CityEvent {
	var expired []*CityEvent
	for loc, ev := range c.active {
		if now < ev.Expires {
			continue
		}
		lm := c.ledger.Location(loc)
		if lm != nil {
			for _, e := range lm.Entries {
				if e.EventID == "" {
					continue
				}
				if e.EventID != ev.ID {
					panic(fmt.Sprintf("events: entry %s at %s carries modifier for event %s, expiring %s", e.Item, loc, e.EventID, ev.ID))
				}
				e.EventModifier = 0
				e.EventID = ""
			}
		}
		delete(c.active, loc)
		expired = append(expired, ev)
	}
	return expired
}

// RestoreEvent re-registers a persisted live event without reapplying
// its effects; entry modifiers are restored by the persistence layer.
func (c *CityEngine) RestoreEvent(ev *CityEvent) error {
	if prev := c.active[ev.Location]; prev != nil {
		return fmt.Errorf("events: restore %q at %s: %q already active", ev.Type.Key, ev.Location, prev.Type.Key)
	}
	c.active[ev.Location] = ev
	return nil
}

// Special goods tiers. Each settlement kind stocks its own staples,
// and high standing unlocks rarer wares on top of them.
var (
	specialGoodsByKind = map[market.Kind][]catalog.ItemID{
		market.KindVillage: {"herbs", "seeds", "wool", "honey"},
		market.KindTown:    {"cheese", "ale", "tools", "arrows"},
		market.KindCity:    {"jewelry", "wine", "silk", "spices"},
	}
	specialGoodsByAccess = map[int][]catalog.ItemID{
		1: {"luck_charm", "strength_potion"},
		2: {"ancient_relic", "gems", "health_potion"},
		3: {"dragon_scale", "phoenix_feather", "unicorn_horn"},
	}
)

func (c *CityEngine) seedSpecialGoods(lm *market.LocationMarket) {
	items := append([]catalog.ItemID{}, specialGoodsByKind[lm.Kind]...)
	if tier, ok := specialGoodsByAccess[c.rep.AccessLevel(lm.ID)]; ok {
		items = append(items, tier...)
	}
	for _, item := range items {
		e := c.ledger.SeedEntry(lm.ID, item, 0, 0, 0)
		if e == nil {
			continue
		}
		if e.Stock < 1 {
			e.Stock = c.rng.Intn(5) + 1
		}
	}
}
