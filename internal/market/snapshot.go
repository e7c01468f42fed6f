package market

import (
	"sort"

	"github.com/talgya/tradewinds/internal/catalog"
)

// EntrySnapshot is a read-only copy of one market row. The
// presentation layer gets copies, never the live entries.
type EntrySnapshot struct {
	Item       catalog.ItemID   `json:"item"`
	Name       string           `json:"name"`
	Category   catalog.Category `json:"category"`
	Rarity     string           `json:"rarity"`
	Price      int              `json:"price"`
	Stock      int              `json:"stock"`
	Ratio      float64          `json:"supply_demand_ratio"`
	Saturation float64          `json:"saturation"`
	EventBound bool             `json:"event_bound"`
}

// Snapshot is the read-only view of a settlement's market.
type Snapshot struct {
	Location catalog.LocationID `json:"location"`
	Name     string             `json:"name"`
	Kind     Kind               `json:"kind"`
	Entries  []EntrySnapshot    `json:"entries"`
}

// Snapshot returns a defensive copy of a location's market, entries
// sorted by item ID. Unknown locations return nil.
func (l *Ledger) Snapshot(loc catalog.LocationID) *Snapshot {
	lm := l.locations[loc]
	if lm == nil {
		return nil
	}
	snap := &Snapshot{
		Location: lm.ID,
		Name:     lm.Name,
		Kind:     lm.Kind,
		Entries:  make([]EntrySnapshot, 0, len(lm.Entries)),
	}
	for _, e := range lm.Entries {
		def := l.catalog.Item(e.Item)
		if def == nil {
			continue
		}
		snap.Entries = append(snap.Entries, EntrySnapshot{
			Item:       e.Item,
			Name:       def.Name,
			Category:   def.Category,
			Rarity:     def.Rarity.String(),
			Price:      e.Price,
			Stock:      e.Stock,
			Ratio:      e.Ratio,
			Saturation: e.Saturation,
			EventBound: e.EventID != "",
		})
	}
	sort.Slice(snap.Entries, func(i, j int) bool {
		return snap.Entries[i].Item < snap.Entries[j].Item
	})
	return snap
}
