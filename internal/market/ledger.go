// Package market owns per-settlement pricing state: stock, supply and
// demand pressure, and the ordered pipeline that composes the displayed
// price from its modifier sources.
package market

import (
	"fmt"

	"github.com/talgya/tradewinds/internal/catalog"
)

// Supply and demand never fall below this floor, so the ratio stays
// finite and a single trade spree cannot pin an entry at an extreme.
const pressureFloor = 10

// Per-tick recovery of supply/demand toward base, as a fraction of the
// remaining distance. Recovery overshoot is capped at 1.5x base.
const (
	recoveryRate = 0.02
	recoveryCap  = 1.5
)

// Kind classifies a settlement by size. It controls seeded stock and
// which special goods an event can introduce.
type Kind string

const (
	KindVillage Kind = "village"
	KindTown    Kind = "town"
	KindCity    Kind = "city"
)

// Location is the static description of a settlement.
type Location struct {
	ID          catalog.LocationID
	Name        string
	Kind        Kind
	Specialties []catalog.ItemID
}

// Entry is the mutable market record for one item at one location.
// Entries are created when a location is seeded or when an event or
// sale introduces a new item; they are never deleted.
type Entry struct {
	Item       catalog.ItemID
	Price      int
	Stock      int
	Supply     float64
	Demand     float64
	BaseSupply float64
	BaseDemand float64

	// EventModifier is a multiplicative price adjustment owned by the
	// city event EventID. Both fields are zero outside an event.
	EventModifier float64
	EventID       string

	// Derived each tick.
	Saturation float64
	Ratio      float64
}

// LocationMarket holds a settlement's metadata and its entry map.
type LocationMarket struct {
	Location
	Entries map[catalog.ItemID]*Entry
}

// Ledger is the economic memory of every settlement.
type Ledger struct {
	catalog   *catalog.Catalog
	locations map[catalog.LocationID]*LocationMarket
	order     []catalog.LocationID
}

// NewLedger creates an empty ledger over an item catalog.
func NewLedger(cat *catalog.Catalog) *Ledger {
	return &Ledger{
		catalog:   cat,
		locations: make(map[catalog.LocationID]*LocationMarket),
	}
}

// Catalog returns the item catalog the ledger prices against.
func (l *Ledger) Catalog() *catalog.Catalog { return l.catalog }

// AddLocation registers a settlement. Re-adding an existing ID returns
// the existing market untouched.
func (l *Ledger) AddLocation(loc Location) *LocationMarket {
	if lm, ok := l.locations[loc.ID]; ok {
		return lm
	}
	lm := &LocationMarket{
		Location: loc,
		Entries:  make(map[catalog.ItemID]*Entry),
	}
	l.locations[loc.ID] = lm
	l.order = append(l.order, loc.ID)
	return lm
}

// Location returns a settlement's market, or nil if unknown.
func (l *Ledger) Location(id catalog.LocationID) *LocationMarket {
	return l.locations[id]
}

// LocationIDs returns registered settlements in registration order.
func (l *Ledger) LocationIDs() []catalog.LocationID {
	out := make([]catalog.LocationID, len(l.order))
	copy(out, l.order)
	return out
}

// Entry returns the market record for (location, item), or nil.
func (l *Ledger) Entry(loc catalog.LocationID, item catalog.ItemID) *Entry {
	lm := l.locations[loc]
	if lm == nil {
		return nil
	}
	return lm.Entries[item]
}

// SeedEntry creates an entry if the location doesn't already stock the
// item, pricing it at base x rarity. Returns the (possibly existing)
// entry, or nil for an unknown location or item.
func (l *Ledger) SeedEntry(loc catalog.LocationID, item catalog.ItemID, stock int, baseSupply, baseDemand float64) *Entry {
	lm := l.locations[loc]
	if lm == nil || !l.catalog.Has(item) {
		return nil
	}
	if e, ok := lm.Entries[item]; ok {
		return e
	}
	if baseSupply < pressureFloor {
		baseSupply = pressureFloor
	}
	if baseDemand < pressureFloor {
		baseDemand = pressureFloor
	}
	price := int(l.catalog.BasePriceFor(item) + 0.5)
	if price < 1 {
		price = 1
	}
	e := &Entry{
		Item:       item,
		Price:      price,
		Stock:      max(stock, 0),
		Supply:     baseSupply,
		Demand:     baseDemand,
		BaseSupply: baseSupply,
		BaseDemand: baseDemand,
		Saturation: 1.0,
		Ratio:      baseDemand / baseSupply,
	}
	lm.Entries[item] = e
	return e
}

// RestoreEntry overwrites or creates an entry from persisted state.
// Nothing is recomputed; the stored values are authoritative.
func (l *Ledger) RestoreEntry(loc catalog.LocationID, e Entry) error {
	lm := l.locations[loc]
	if lm == nil {
		return fmt.Errorf("market: restore entry for unknown location %s", loc)
	}
	if !l.catalog.Has(e.Item) {
		return fmt.Errorf("market: restore entry for unknown item %s", e.Item)
	}
	stored := e
	lm.Entries[e.Item] = &stored
	return nil
}

// RecordTrade applies a trade's pressure to an entry. Positive
// quantity is a purchase (stock leaves the market), negative a sale.
// Unknown location/item is a no-op.
func (l *Ledger) RecordTrade(loc catalog.LocationID, item catalog.ItemID, signedQty int) {
	e := l.Entry(loc, item)
	if e == nil || signedQty == 0 {
		return
	}
	e.Stock -= signedQty
	if e.Stock < 0 {
		e.Stock = 0
	}
	q := float64(signedQty)
	e.Supply = maxf(pressureFloor, e.Supply-q*0.5)
	e.Demand = maxf(pressureFloor, e.Demand+q*0.3)
}

// Relax moves every entry's supply and demand a step toward base
// levels. Called once per tick.
func (l *Ledger) Relax() {
	for _, id := range l.order {
		for _, e := range l.locations[id].Entries {
			e.Supply = relaxToward(e.Supply, e.BaseSupply)
			e.Demand = relaxToward(e.Demand, e.BaseDemand)
		}
	}
}

func relaxToward(v, base float64) float64 {
	v += (base - v) * recoveryRate
	if cap := base * recoveryCap; v > cap {
		v = cap
	}
	return maxf(pressureFloor, v)
}

// RecomputeSaturation refreshes an entry's stock-level multiplier:
// oversupply above 50 units discounts, scarcity below 5 surcharges.
func RecomputeSaturation(e *Entry) {
	switch {
	case e.Stock > 50:
		e.Saturation = 0.9
	case e.Stock < 5:
		e.Saturation = 1.2
	default:
		e.Saturation = 1.0
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
