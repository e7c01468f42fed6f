package econ

import (
	"github.com/talgya/tradewinds/internal/catalog"
	"github.com/talgya/tradewinds/internal/market"
)

// Baseline supply and demand pressure for a freshly seeded entry.
const basePressure = 100.0

// Noise amplitude applied to seeded pressure, as a fraction of base.
const pressureJitter = 0.2

// Starting stock range by settlement size.
var stockRange = map[market.Kind][2]int{
	market.KindVillage: {8, 20},
	market.KindTown:    {15, 35},
	market.KindCity:    {25, 55},
}

// Goods stocked everywhere of a given size, before specialties.
var goodsByKind = map[market.Kind][]catalog.ItemID{
	market.KindVillage: {
		"water", "bread", "food", "meat", "wood", "rope", "seeds", "wool",
	},
	market.KindTown: {
		"water", "bread", "food", "meat", "wood", "rope", "stone",
		"tools", "ale", "cheese", "iron_ore", "copper_ore",
		"leather_armor", "arrows",
	},
	market.KindCity: {
		"water", "bread", "food", "meat", "wood", "rope", "stone",
		"tools", "ale", "cheese", "iron_ore", "copper_ore", "silver_ore",
		"leather_armor", "arrows", "sword", "jewelry", "wine", "silk",
		"spices", "honey", "herbs",
	},
}

// DefaultSettlements is the built-in world map.
func DefaultSettlements() []market.Location {
	return []market.Location{
		{ID: "riverwood", Name: "Riverwood", Kind: market.KindVillage, Specialties: []catalog.ItemID{"herbs", "wool"}},
		{ID: "oakvale", Name: "Oakvale", Kind: market.KindVillage, Specialties: []catalog.ItemID{"honey", "seeds"}},
		{ID: "millhaven", Name: "Millhaven", Kind: market.KindTown, Specialties: []catalog.ItemID{"bread", "ale"}},
		{ID: "stonebridge", Name: "Stonebridge", Kind: market.KindTown, Specialties: []catalog.ItemID{"tools", "iron_ore"}},
		{ID: "goldreach", Name: "Goldreach", Kind: market.KindCity, Specialties: []catalog.ItemID{"jewelry", "silk"}},
		{ID: "kingsport", Name: "Kingsport", Kind: market.KindCity, Specialties: []catalog.ItemID{"wine", "spices"}},
	}
}

// SeedDefaultWorld registers the built-in settlements and stocks each
// market. Pressure and stock vary per (settlement, item) through the
// seeded noise field, so the same seed always grows the same world.
func (e *Economy) SeedDefaultWorld() {
	for _, loc := range DefaultSettlements() {
		e.AddLocation(loc)
	}
	e.log.Info("world seeded", "locations", len(e.ledger.LocationIDs()), "items", e.catalog.Len())
}

// AddLocation registers and stocks one settlement.
func (e *Economy) AddLocation(loc market.Location) {
	lm := e.ledger.AddLocation(loc)
	e.rep.Init(loc.ID)
	if len(lm.Entries) == 0 {
		e.seedLocationEntries(lm)
	}
}

func (e *Economy) seedLocationEntries(lm *market.LocationMarket) {
	goods := append([]catalog.ItemID{}, goodsByKind[lm.Kind]...)
	goods = append(goods, lm.Specialties...)

	// Normalized noise is in [0,1]; recenter it for jitter.
	lx := float64(e.locationIndex(lm.ID))
	for _, item := range goods {
		ix := float64(e.itemIndex(item))
		supply := basePressure * (1 + pressureJitter*(e.noise.Eval2(lx, ix)*2-1))
		demand := basePressure * (1 + pressureJitter*(e.noise.Eval2(ix, lx)*2-1))

		r := stockRange[lm.Kind]
		span := float64(r[1] - r[0])
		stock := r[0] + int(span*e.noise.Eval2(lx+0.5, ix+0.5))

		e.ledger.SeedEntry(lm.ID, item, stock, supply, demand)
	}
}

func (e *Economy) locationIndex(loc catalog.LocationID) int {
	for i, id := range e.ledger.LocationIDs() {
		if id == loc {
			return i
		}
	}
	return 0
}

func (e *Economy) itemIndex(item catalog.ItemID) int {
	for i, id := range e.catalog.IDs() {
		if id == item {
			return i
		}
	}
	return 0
}
