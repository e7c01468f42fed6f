package events

import "github.com/talgya/tradewinds/internal/catalog"

// Season gates seasonal event types. The calendar that produces the
// current season lives with the clock; event tables only compare.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// CityEventType is a registered local event template. Chance is an
// independent per-tick trigger probability; Season of "" means any.
type CityEventType struct {
	Key         string
	Name        string
	Description string
	Chance      float64
	Duration    int64 // minutes
	Season      Season
	Effects     []Effect
}

// DefaultCityEventTypes returns the registered city event table.
// Roll order is table order: the first type whose roll succeeds wins.
func DefaultCityEventTypes() []CityEventType {
	return []CityEventType{
		{
			Key:         "festival",
			Name:        "City Festival",
			Description: "The city is celebrating! Prices are favorable and special goods are available.",
			Chance:      0.02,
			Duration:    240,
			Effects:     []Effect{Price(-0.15), SpecialGoods(), Reputation(1)},
		},
		{
			Key:         "bandit_attack",
			Name:        "Bandit Attack",
			Description: "Bandits are attacking trade routes! Prices are rising due to scarcity.",
			Chance:      0.015,
			Duration:    180,
			Effects:     []Effect{Price(0.25)},
		},
		{
			Key:         "merchant_guild",
			Name:        "Merchant Guild Meeting",
			Description: "The merchant guild is meeting, creating trading opportunities.",
			Chance:      0.01,
			Duration:    360,
			Effects:     []Effect{Price(-0.1), Reputation(2), SpecialGoods()},
		},
		{
			Key:         "harvest",
			Name:        "Bountiful Harvest",
			Description: "The harvest is abundant! Food prices are dropping.",
			Chance:      0.025,
			Duration:    300,
			Season:      SeasonAutumn,
			Effects:     []Effect{CategoryPrice(catalog.CategoryConsumables, -0.3), Reputation(1)},
		},
		{
			Key:         "winter_storm",
			Name:        "Winter Storm",
			Description: "A harsh winter storm is affecting supplies.",
			Chance:      0.02,
			Duration:    200,
			Season:      SeasonWinter,
			Effects:     []Effect{Price(0.2)},
		},
		{
			Key:         "drought",
			Name:        "Drought",
			Description: "A drought is affecting water and food supplies.",
			Chance:      0.015,
			Duration:    400,
			Season:      SeasonSummer,
			Effects:     []Effect{ItemPrice("water", 0.4), CategoryPrice(catalog.CategoryConsumables, 0.3)},
		},
		{
			Key:         "trade_expedition",
			Name:        "Trade Expedition",
			Description: "A trade expedition has arrived with exotic goods.",
			Chance:      0.03,
			Duration:    180,
			Effects:     []Effect{SpecialGoods()},
		},
		{
			Key:         "political_unrest",
			Name:        "Political Unrest",
			Description: "Political tensions are affecting trade.",
			Chance:      0.01,
			Duration:    250,
			Effects:     []Effect{Price(0.15), Reputation(-1)},
		},
	}
}

// GlobalEventType is a registered world-scoped event template.
// Rollable controls whether the type can come up on the single random
// roll; schedule-only types fire via ScheduleEvent alone.
type GlobalEventType struct {
	Key         string
	Name        string
	Description string
	Duration    int64 // minutes; 0 = fires and ends as a pure signal
	Rollable    bool
	Effects     []Effect
}

// DefaultGlobalEventTypes returns the registered global event table.
func DefaultGlobalEventTypes() []GlobalEventType {
	return []GlobalEventType{
		{
			Key:         "market_boom",
			Name:        "Market Boom",
			Description: "The merchant guild prospers! Prices are favorable.",
			Duration:    120,
			Rollable:    true,
			Effects:     []Effect{Price(0.2)},
		},
		{
			Key:         "market_crash",
			Name:        "Market Crash",
			Description: "The king imposes new taxes! Prices are falling.",
			Duration:    180,
			Rollable:    true,
			Effects:     []Effect{Price(-0.3)},
		},
		{
			Key:         "merchant_arrival",
			Name:        "Foreign Merchant",
			Description: "A merchant from distant kingdoms has arrived with exotic goods.",
			Duration:    240,
			Rollable:    true,
			Effects:     []Effect{Restock()},
		},
		{
			Key:         "rain_storm",
			Name:        "Rain Storm",
			Description: "Heavy rains turn the roads to mud, making travel difficult.",
			Duration:    90,
			Rollable:    true,
			Effects:     []Effect{TravelSpeed(-0.3)},
		},
		{
			Key:         "clear_skies",
			Name:        "Clear Skies",
			Description: "Perfect weather for travel and trade along the kingdom roads.",
			Duration:    180,
			Rollable:    true,
			Effects:     []Effect{TravelSpeed(0.2)},
		},
		{
			Key:         "weekly_market",
			Name:        "Weekly Market Day",
			Description: "The weekly gathering of merchants with rare goods from distant lands!",
			Duration:    240,
			Effects:     []Effect{Restock(), Price(0.1)},
		},
		{
			Key:         "merchant_caravan",
			Name:        "Merchant Caravan",
			Description: "A grand merchant caravan has arrived with exotic goods from the east.",
			Duration:    360,
			Effects:     []Effect{Restock()},
		},
		{
			// Non-economic signal that rides the same timer
			// infrastructure; carries its destination in the payload.
			Key:         "travel_complete",
			Name:        "Travel Complete",
			Description: "You have arrived at your destination.",
			Duration:    0,
		},
	}
}
