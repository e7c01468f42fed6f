package catalog

// Default returns the built-in item registry. A YAML catalog file can
// replace or extend it via LoadFile.
func Default() *Catalog {
	return New([]ItemDefinition{
		// Consumables
		{ID: "food", Name: "Food", Category: CategoryConsumables, Rarity: RarityCommon, BasePrice: 5, Weight: 1, StackSize: 20},
		{ID: "water", Name: "Water", Category: CategoryConsumables, Rarity: RarityCommon, BasePrice: 2, Weight: 1, StackSize: 20},
		{ID: "bread", Name: "Bread", Category: CategoryConsumables, Rarity: RarityCommon, BasePrice: 4, Weight: 0.5, StackSize: 20},
		{ID: "meat", Name: "Meat", Category: CategoryConsumables, Rarity: RarityCommon, BasePrice: 8, Weight: 1, StackSize: 10},
		{ID: "ale", Name: "Ale", Category: CategoryConsumables, Rarity: RarityCommon, BasePrice: 6, Weight: 1, StackSize: 12},
		{ID: "cheese", Name: "Cheese", Category: CategoryConsumables, Rarity: RarityUncommon, BasePrice: 10, Weight: 0.5, StackSize: 12},
		{ID: "honey", Name: "Honey", Category: CategoryConsumables, Rarity: RarityUncommon, BasePrice: 12, Weight: 0.5, StackSize: 10},
		{ID: "health_potion", Name: "Health Potion", Category: CategoryConsumables, Rarity: RarityRare, BasePrice: 60, Weight: 0.3, StackSize: 5},
		{ID: "strength_potion", Name: "Strength Potion", Category: CategoryConsumables, Rarity: RarityRare, BasePrice: 75, Weight: 0.3, StackSize: 5},

		// Basic resources
		{ID: "wood", Name: "Wood", Category: CategoryBasicResources, Rarity: RarityCommon, BasePrice: 3, Weight: 2, StackSize: 50},
		{ID: "stone", Name: "Stone", Category: CategoryBasicResources, Rarity: RarityCommon, BasePrice: 3, Weight: 3, StackSize: 50},
		{ID: "wool", Name: "Wool", Category: CategoryBasicResources, Rarity: RarityCommon, BasePrice: 4, Weight: 0.5, StackSize: 30},
		{ID: "herbs", Name: "Herbs", Category: CategoryBasicResources, Rarity: RarityUncommon, BasePrice: 9, Weight: 0.2, StackSize: 20},
		{ID: "seeds", Name: "Seeds", Category: CategoryBasicResources, Rarity: RarityCommon, BasePrice: 2, Weight: 0.1, StackSize: 50},

		// Raw ores
		{ID: "iron_ore", Name: "Iron Ore", Category: CategoryRawOres, Rarity: RarityCommon, BasePrice: 7, Weight: 4, StackSize: 30},
		{ID: "copper_ore", Name: "Copper Ore", Category: CategoryRawOres, Rarity: RarityCommon, BasePrice: 6, Weight: 4, StackSize: 30},
		{ID: "silver_ore", Name: "Silver Ore", Category: CategoryRawOres, Rarity: RarityRare, BasePrice: 25, Weight: 4, StackSize: 20},

		// Tools
		{ID: "tools", Name: "Tools", Category: CategoryTools, Rarity: RarityUncommon, BasePrice: 20, Weight: 3, StackSize: 5},
		{ID: "rope", Name: "Rope", Category: CategoryTools, Rarity: RarityCommon, BasePrice: 5, Weight: 1, StackSize: 10},

		// Weapons and armor
		{ID: "arrows", Name: "Arrows", Category: CategoryWeapons, Rarity: RarityCommon, BasePrice: 8, Weight: 0.5, StackSize: 40},
		{ID: "sword", Name: "Sword", Category: CategoryWeapons, Rarity: RarityUncommon, BasePrice: 45, Weight: 4, StackSize: 1},
		{ID: "leather_armor", Name: "Leather Armor", Category: CategoryArmor, Rarity: RarityUncommon, BasePrice: 40, Weight: 6, StackSize: 1},

		// Luxury
		{ID: "wine", Name: "Wine", Category: CategoryLuxury, Rarity: RarityUncommon, BasePrice: 18, Weight: 1.5, StackSize: 8},
		{ID: "silk", Name: "Silk", Category: CategoryLuxury, Rarity: RarityRare, BasePrice: 35, Weight: 0.3, StackSize: 10},
		{ID: "spices", Name: "Spices", Category: CategoryLuxury, Rarity: RarityRare, BasePrice: 30, Weight: 0.2, StackSize: 15},
		{ID: "jewelry", Name: "Jewelry", Category: CategoryLuxury, Rarity: RarityEpic, BasePrice: 90, Weight: 0.2, StackSize: 5},
		{ID: "gems", Name: "Gems", Category: CategoryLuxury, Rarity: RarityEpic, BasePrice: 120, Weight: 0.1, StackSize: 10},

		// Treasure
		{ID: "luck_charm", Name: "Luck Charm", Category: CategoryTreasure, Rarity: RarityRare, BasePrice: 55, Weight: 0.1, StackSize: 3},
		{ID: "ancient_relic", Name: "Ancient Relic", Category: CategoryTreasure, Rarity: RarityEpic, BasePrice: 200, Weight: 2, StackSize: 1},
		{ID: "dragon_scale", Name: "Dragon Scale", Category: CategoryTreasure, Rarity: RarityLegendary, BasePrice: 500, Weight: 1, StackSize: 3},
		{ID: "phoenix_feather", Name: "Phoenix Feather", Category: CategoryTreasure, Rarity: RarityLegendary, BasePrice: 650, Weight: 0.1, StackSize: 3},
		{ID: "unicorn_horn", Name: "Unicorn Horn", Category: CategoryTreasure, Rarity: RarityLegendary, BasePrice: 800, Weight: 1.5, StackSize: 1},
	})
}
