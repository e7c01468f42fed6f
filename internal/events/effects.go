// Package events provides the city and global event engines: timed,
// stochastic disturbances that inject temporary price, reputation,
// and availability modifiers into the economy.
package events

import "github.com/talgya/tradewinds/internal/catalog"

// ScopeKind selects which items a price effect touches.
type ScopeKind uint8

const (
	ScopeAll ScopeKind = iota
	ScopeCategory
	ScopeItem
)

// Scope narrows a price effect to a category or a single item.
type Scope struct {
	Kind     ScopeKind        `json:"kind"`
	Category catalog.Category `json:"category,omitempty"`
	Item     catalog.ItemID   `json:"item,omitempty"`
}

// Matches reports whether an item falls inside the scope.
func (s Scope) Matches(def *catalog.ItemDefinition) bool {
	switch s.Kind {
	case ScopeCategory:
		return def.Category == s.Category
	case ScopeItem:
		return def.ID == s.Item
	default:
		return true
	}
}

// EffectKind tags an effect variant.
type EffectKind uint8

const (
	// EffectPrice multiplies matching items' prices by 1+Value for the
	// event's lifetime.
	EffectPrice EffectKind = iota
	// EffectReputation applies Value to the location's standing once,
	// at trigger.
	EffectReputation
	// EffectSpecialGoods introduces special goods appropriate to the
	// location and the player's access tier.
	EffectSpecialGoods
	// EffectTravelSpeed multiplies the global travel speed modifier by
	// 1+Value for the event's lifetime. Global events only.
	EffectTravelSpeed
	// EffectRestock replenishes market stock everywhere. Global events
	// only; applied once, at trigger.
	EffectRestock
)

// Effect is one tagged effect variant. Events carry a list of these;
// a single routine applies them, there is no per-name dispatch.
type Effect struct {
	Kind  EffectKind `json:"kind"`
	Scope Scope      `json:"scope,omitempty"`
	Value float64    `json:"value,omitempty"`
}

// Price builds a price effect over all items.
func Price(delta float64) Effect {
	return Effect{Kind: EffectPrice, Value: delta}
}

// CategoryPrice builds a price effect over one category.
func CategoryPrice(cat catalog.Category, delta float64) Effect {
	return Effect{Kind: EffectPrice, Scope: Scope{Kind: ScopeCategory, Category: cat}, Value: delta}
}

// ItemPrice builds a price effect over one item.
func ItemPrice(item catalog.ItemID, delta float64) Effect {
	return Effect{Kind: EffectPrice, Scope: Scope{Kind: ScopeItem, Item: item}, Value: delta}
}

// Reputation builds a one-shot reputation delta.
func Reputation(delta float64) Effect {
	return Effect{Kind: EffectReputation, Value: delta}
}

// SpecialGoods builds a special-goods unlock.
func SpecialGoods() Effect { return Effect{Kind: EffectSpecialGoods} }

// TravelSpeed builds a global travel speed effect.
func TravelSpeed(delta float64) Effect {
	return Effect{Kind: EffectTravelSpeed, Value: delta}
}

// Restock builds a global market restock.
func Restock() Effect { return Effect{Kind: EffectRestock} }

// priceModifierFor folds every matching price effect into one
// multiplier for an item. Effects stack multiplicatively, unlike the
// supply/demand tier which is first-match.
func priceModifierFor(effects []Effect, def *catalog.ItemDefinition) (float64, bool) {
	mod := 1.0
	matched := false
	for _, ef := range effects {
		if ef.Kind != EffectPrice || !ef.Scope.Matches(def) {
			continue
		}
		mod *= 1 + ef.Value
		matched = true
	}
	return mod, matched
}
