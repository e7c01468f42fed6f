package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	data := []byte(`
items:
  - id: silk
    name: Fine Silk
    category: luxury
    rarity: rare
    base_price: 40
    weight: 0.5
    stack_size: 10
  - id: bread
    category: consumables
    base_price: 3
`)
	cat, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	silk := cat.Item("silk")
	require.NotNil(t, silk)
	assert.Equal(t, "Fine Silk", silk.Name)
	assert.Equal(t, CategoryLuxury, silk.Category)
	assert.Equal(t, RarityRare, silk.Rarity)
	assert.Equal(t, 40, silk.BasePrice)

	bread := cat.Item("bread")
	require.NotNil(t, bread)
	assert.Equal(t, "bread", bread.Name, "name defaults to id")
	assert.Equal(t, RarityCommon, bread.Rarity)
	assert.Equal(t, 1, bread.StackSize, "stack size defaults to 1")
}

func TestParseCatalogRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"no items":       `items: []`,
		"empty id":       "items:\n  - base_price: 5",
		"zero price":     "items:\n  - id: x\n    base_price: 0",
		"unknown rarity": "items:\n  - id: x\n    base_price: 5\n    rarity: mythic",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestRarityPriceMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, RarityCommon.PriceMultiplier())
	assert.Equal(t, 1.5, RarityUncommon.PriceMultiplier())
	assert.Equal(t, 2.5, RarityRare.PriceMultiplier())
	assert.Equal(t, 4.0, RarityEpic.PriceMultiplier())
	assert.Equal(t, 8.0, RarityLegendary.PriceMultiplier())
}

func TestBasePriceForAppliesRarity(t *testing.T) {
	cat := New([]ItemDefinition{
		{ID: "gem", Category: CategoryTreasure, Rarity: RarityRare, BasePrice: 20},
	})
	assert.Equal(t, 50.0, cat.BasePriceFor("gem"))
	assert.Equal(t, 0.0, cat.BasePriceFor("missing"))
}

func TestDefaultCatalogCoversSpecialGoods(t *testing.T) {
	cat := Default()
	for _, id := range []ItemID{
		"herbs", "seeds", "wool", "honey",
		"cheese", "ale", "tools", "arrows",
		"jewelry", "wine", "silk", "spices",
		"luck_charm", "strength_potion",
		"ancient_relic", "gems", "health_potion",
		"dragon_scale", "phoenix_feather", "unicorn_horn",
	} {
		assert.True(t, cat.Has(id), "missing %s", id)
	}
}

func TestByCategory(t *testing.T) {
	cat := Default()
	for _, id := range cat.ByCategory(CategoryConsumables) {
		assert.Equal(t, CategoryConsumables, cat.Item(id).Category)
	}
	assert.NotEmpty(t, cat.ByCategory(CategoryConsumables))
}
