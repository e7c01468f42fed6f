// Package catalog provides the static registry of tradeable items.
// Definitions are loaded once and never mutated; every other package
// refers to items by ID.
package catalog

// ItemID identifies an item definition.
type ItemID string

// LocationID identifies a settlement. Defined here so the leaf
// packages can share it without importing the economy root.
type LocationID string

// Category groups items for category-scoped price effects.
type Category string

const (
	CategoryConsumables    Category = "consumables"
	CategoryBasicResources Category = "basic_resources"
	CategoryRawOres        Category = "raw_ores"
	CategoryTools          Category = "tools"
	CategoryWeapons        Category = "weapons"
	CategoryArmor          Category = "armor"
	CategoryLuxury         Category = "luxury"
	CategoryTreasure       Category = "treasure"
)

// Rarity is an item scarcity tier with an attached price multiplier.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

// PriceMultiplier returns the base-price multiplier for a rarity tier.
func (r Rarity) PriceMultiplier() float64 {
	switch r {
	case RarityUncommon:
		return 1.5
	case RarityRare:
		return 2.5
	case RarityEpic:
		return 4.0
	case RarityLegendary:
		return 8.0
	default:
		return 1.0
	}
}

// String returns the rarity name.
func (r Rarity) String() string {
	switch r {
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "common"
	}
}

// ItemDefinition describes one tradeable item. Immutable after load.
type ItemDefinition struct {
	ID        ItemID   `yaml:"id"`
	Name      string   `yaml:"name"`
	Category  Category `yaml:"category"`
	Rarity    Rarity   `yaml:"-"`
	BasePrice int      `yaml:"base_price"`
	Weight    float64  `yaml:"weight"`
	StackSize int      `yaml:"stack_size"`
}

// Catalog is the immutable item registry.
type Catalog struct {
	items map[ItemID]*ItemDefinition
	order []ItemID
}

// New builds a catalog from definitions. Later duplicates overwrite
// earlier ones. Zero stack sizes default to 1.
func New(defs []ItemDefinition) *Catalog {
	c := &Catalog{items: make(map[ItemID]*ItemDefinition, len(defs))}
	for i := range defs {
		d := defs[i]
		if d.StackSize <= 0 {
			d.StackSize = 1
		}
		if d.Weight <= 0 {
			d.Weight = 1
		}
		if _, seen := c.items[d.ID]; !seen {
			c.order = append(c.order, d.ID)
		}
		c.items[d.ID] = &d
	}
	return c
}

// Item returns the definition for id, or nil if unknown.
func (c *Catalog) Item(id ItemID) *ItemDefinition {
	return c.items[id]
}

// Has reports whether the catalog contains id.
func (c *Catalog) Has(id ItemID) bool {
	_, ok := c.items[id]
	return ok
}

// Len returns the number of registered items.
func (c *Catalog) Len() int { return len(c.items) }

// IDs returns item IDs in registration order.
func (c *Catalog) IDs() []ItemID {
	out := make([]ItemID, len(c.order))
	copy(out, c.order)
	return out
}

// ByCategory returns the IDs of all items in a category, in
// registration order.
func (c *Catalog) ByCategory(cat Category) []ItemID {
	var out []ItemID
	for _, id := range c.order {
		if c.items[id].Category == cat {
			out = append(out, id)
		}
	}
	return out
}

// BasePriceFor returns basePrice x rarity multiplier for an item,
// the first stage of every price computation. Unknown items price
// at 0.
func (c *Catalog) BasePriceFor(id ItemID) float64 {
	item := c.items[id]
	if item == nil {
		return 0
	}
	return float64(item.BasePrice) * item.Rarity.PriceMultiplier()
}
