// Package econ is the engine root. It owns every subsystem, drives
// the simulation clock, and is the only package that publishes to the
// notification stream; the subsystems stay pure and return what
// happened.
package econ

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/tradewinds/internal/catalog"
	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/history"
	"github.com/talgya/tradewinds/internal/market"
	"github.com/talgya/tradewinds/internal/notify"
	"github.com/talgya/tradewinds/internal/reputation"
)

// Reputation gained per unit traded, either direction.
const tradeReputationPerUnit = 0.1

// Divisor turning an item's base price into gift reputation.
const giftReputationDivisor = 50.0

// Window for the news digest's average price, minutes.
const averageWindow = 24 * 60

// Direction says which way goods move in a trade.
type Direction int

const (
	Buy  Direction = iota // player buys, stock leaves the market
	Sell                  // player sells, stock enters the market
)

func (d Direction) String() string {
	if d == Buy {
		return "buy"
	}
	return "sell"
}

// TradeResult reports a completed trade.
type TradeResult struct {
	Location  catalog.LocationID
	Item      catalog.ItemID
	Direction Direction
	Quantity  int
	UnitPrice int
	Total     int
	Stock     int
}

// PriceAlert watches an item's price. A positive target fires when
// any settlement's price falls to it; a negative target fires when a
// price rises to its magnitude. Alerts fire once, then deactivate.
type PriceAlert struct {
	ID     string
	Item   catalog.ItemID
	Target int
	Active bool
}

// Economy is the simulation root. Not safe for concurrent use; the
// driver serializes all access.
type Economy struct {
	log     *slog.Logger
	catalog *catalog.Catalog
	ledger  *market.Ledger
	rep     *reputation.Tracker
	city    *events.CityEngine
	global  *events.GlobalEngine
	history *history.Ledger
	bus     *notify.Bus
	rng     *rand.Rand
	noise   opensimplex.Noise
	now     int64
	alerts  []*PriceAlert
}

// New builds an economy over a catalog. All randomness flows from the
// one seeded source, so equal seeds replay equal histories.
func New(log *slog.Logger, cat *catalog.Catalog, seed int64) *Economy {
	e := &Economy{
		log:     log,
		catalog: cat,
		ledger:  market.NewLedger(cat),
		history: history.NewLedger(),
		bus:     notify.NewBus(),
		rng:     rand.New(rand.NewSource(seed)),
		noise:   opensimplex.NewNormalized(seed),
	}
	e.rep = reputation.NewTracker(e.onReputationChange)
	e.city = events.NewCityEngine(e.ledger, e.rep, e.rng)
	e.global = events.NewGlobalEngine(e.ledger, e.rng)
	return e
}

// Subscribe registers a listener on the notification stream.
func (e *Economy) Subscribe(fn func(notify.Notification)) { e.bus.Subscribe(fn) }

// Now is the current simulation time in absolute minutes.
func (e *Economy) Now() int64 { return e.now }

// OnTrade executes a player trade and applies its market pressure.
// Buys larger than the shelf are rejected whole, never capped.
func (e *Economy) OnTrade(loc catalog.LocationID, item catalog.ItemID, qty int, dir Direction) (TradeResult, error) {
	if qty <= 0 {
		return TradeResult{}, fmt.Errorf("econ: trade quantity %d must be positive", qty)
	}
	entry := e.ledger.Entry(loc, item)
	if entry == nil {
		return TradeResult{}, fmt.Errorf("econ: %s does not trade %s", loc, item)
	}
	if dir == Buy && qty > entry.Stock {
		return TradeResult{}, fmt.Errorf("econ: %s has %d %s in stock, wanted %d", loc, entry.Stock, item, qty)
	}

	unit := entry.Price
	signed := qty
	if dir == Sell {
		signed = -qty
	}
	e.ledger.RecordTrade(loc, item, signed)
	e.rep.Change(loc, tradeReputationPerUnit*float64(qty))

	e.log.Debug("trade", "location", loc, "item", item, "qty", qty, "dir", dir, "unit_price", unit)
	return TradeResult{
		Location:  loc,
		Item:      item,
		Direction: dir,
		Quantity:  qty,
		UnitPrice: unit,
		Total:     unit * qty,
		Stock:     entry.Stock,
	}, nil
}

// OnGift donates an item to a settlement for standing. The gain
// scales with the item's base price, never below one point.
func (e *Economy) OnGift(loc catalog.LocationID, item catalog.ItemID) (float64, error) {
	def := e.catalog.Item(item)
	if def == nil {
		return 0, fmt.Errorf("econ: unknown item %s", item)
	}
	if e.ledger.Location(loc) == nil {
		return 0, fmt.Errorf("econ: unknown location %s", loc)
	}
	gain := float64(def.BasePrice) / giftReputationDivisor
	if gain < 1 {
		gain = 1
	}
	e.rep.Change(loc, gain)
	return gain, nil
}

// OnLocationVisited ensures a settlement is ready for the player:
// a standing record exists and the market has goods on its shelves.
func (e *Economy) OnLocationVisited(loc catalog.LocationID) (*market.Snapshot, error) {
	lm := e.ledger.Location(loc)
	if lm == nil {
		return nil, fmt.Errorf("econ: unknown location %s", loc)
	}
	e.rep.Init(loc)
	if len(lm.Entries) == 0 {
		e.seedLocationEntries(lm)
	}
	return e.ledger.Snapshot(loc), nil
}

// MarketSnapshot returns a defensive copy of a settlement's market.
func (e *Economy) MarketSnapshot(loc catalog.LocationID) *market.Snapshot {
	return e.ledger.Snapshot(loc)
}

// Reputation returns the rounded standing with a settlement.
func (e *Economy) Reputation(loc catalog.LocationID) int { return e.rep.Standing(loc) }

// AccessLevel returns the standing tier with a settlement.
func (e *Economy) AccessLevel(loc catalog.LocationID) int { return e.rep.AccessLevel(loc) }

// ActiveEvents returns the live city event at a settlement, if any.
func (e *Economy) ActiveEvents(loc catalog.LocationID) []*events.CityEvent {
	if ev := e.city.Active(loc); ev != nil {
		return []*events.CityEvent{ev}
	}
	return nil
}

// ActiveGlobalEvents returns live world-scoped events, oldest first.
func (e *Economy) ActiveGlobalEvents() []*events.GlobalEvent { return e.global.ActiveEvents() }

// TravelModifier is the current travel-speed multiplier.
func (e *Economy) TravelModifier() float64 { return e.global.TravelModifier() }

// PriceTrend classifies an item's recent movement at a settlement.
func (e *Economy) PriceTrend(loc catalog.LocationID, item catalog.ItemID) history.Trend {
	return e.history.GetTrend(loc, item)
}

// CompareAcrossLocations ranks settlements by an item's current
// price, cheapest first.
func (e *Economy) CompareAcrossLocations(item catalog.ItemID) []history.LocationPrice {
	return e.history.CompareAcrossLocations(item, e.now, averageWindow)
}

// ScheduleGlobalEvent queues a world event for an absolute minute.
func (e *Economy) ScheduleGlobalEvent(key string, at int64, payload string) error {
	return e.global.ScheduleEvent(key, at, payload)
}

// AddPriceAlert registers a watch on an item's price.
func (e *Economy) AddPriceAlert(item catalog.ItemID, target int) (string, error) {
	if !e.catalog.Has(item) {
		return "", fmt.Errorf("econ: unknown item %s", item)
	}
	if target == 0 {
		return "", fmt.Errorf("econ: alert target must be non-zero")
	}
	a := &PriceAlert{ID: uuid.NewString(), Item: item, Target: target, Active: true}
	e.alerts = append(e.alerts, a)
	return a.ID, nil
}

// RemovePriceAlert deletes an alert by id. Reports whether it existed.
func (e *Economy) RemovePriceAlert(id string) bool {
	for i, a := range e.alerts {
		if a.ID == id {
			e.alerts = append(e.alerts[:i], e.alerts[i+1:]...)
			return true
		}
	}
	return false
}

// Alerts returns a copy of the alert list.
func (e *Economy) Alerts() []PriceAlert {
	out := make([]PriceAlert, len(e.alerts))
	for i, a := range e.alerts {
		out[i] = *a
	}
	return out
}

func (e *Economy) onReputationChange(ch reputation.Change) {
	msg := fmt.Sprintf("Reputation in %s changed by %+.1f.", ch.Location, ch.Delta)
	if ch.OldTier != ch.NewTier {
		msg = fmt.Sprintf("Reputation in %s changed by %+.1f. Your standing is now %s.",
			ch.Location, ch.Delta, ch.NewTier)
	}
	e.bus.Publish(notify.Notification{
		Kind:     notify.KindReputationChanged,
		Location: ch.Location,
		Message:  msg,
		Minute:   e.now,
	})
}

func (e *Economy) checkAlerts() {
	for _, a := range e.alerts {
		if !a.Active {
			continue
		}
		for _, loc := range e.ledger.LocationIDs() {
			entry := e.ledger.Entry(loc, a.Item)
			if entry == nil {
				continue
			}
			fired := (a.Target > 0 && entry.Price <= a.Target) ||
				(a.Target < 0 && entry.Price >= -a.Target)
			if !fired {
				continue
			}
			a.Active = false
			e.bus.Publish(notify.Notification{
				Kind:     notify.KindPriceAlert,
				Location: loc,
				Item:     a.Item,
				Message:  fmt.Sprintf("%s is trading at %d in %s.", a.Item, entry.Price, loc),
				Minute:   e.now,
			})
			break
		}
	}
}
