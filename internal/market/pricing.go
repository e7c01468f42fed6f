package market

import (
	"github.com/talgya/tradewinds/internal/catalog"
)

// PriceContext carries the modifier inputs the ledger does not own:
// the location's reputation modifier, the product of global event
// contributions, the minute of the simulated day, and this tick's
// random fluctuation (uniform in [0.95, 1.05], drawn fresh per tick).
type PriceContext struct {
	Reputation  float64
	Global      float64
	MinuteOfDay int
	Fluctuation float64
}

// Morning window for the consumables premium, minutes from midnight.
const (
	morningStart = 6 * 60
	morningEnd   = 12 * 60
)

// priceStage is one step of the composition pipeline. Stages run in
// slice order; adding or removing a modifier source means editing the
// pipeline, never reordering by accident.
type priceStage struct {
	name  string
	apply func(price float64, e *Entry, def *catalog.ItemDefinition, ctx PriceContext) float64
}

var pipeline = []priceStage{
	{"supply_demand", func(p float64, e *Entry, _ *catalog.ItemDefinition, _ PriceContext) float64 {
		return p * tierMultiplier(e.Ratio)
	}},
	{"reputation", func(p float64, _ *Entry, _ *catalog.ItemDefinition, ctx PriceContext) float64 {
		return p * ctx.Reputation
	}},
	{"city_event", func(p float64, e *Entry, _ *catalog.ItemDefinition, _ PriceContext) float64 {
		if e.EventID == "" {
			return p
		}
		return p * e.EventModifier
	}},
	{"global_event", func(p float64, _ *Entry, _ *catalog.ItemDefinition, ctx PriceContext) float64 {
		return p * ctx.Global
	}},
	// Morning premium on consumables is the one hard-coded time-of-day
	// rule. Treat it as a policy hook: new seasonal rules slot in here,
	// it is not a law of the pipeline.
	{"time_of_day", func(p float64, _ *Entry, def *catalog.ItemDefinition, ctx PriceContext) float64 {
		if def.Category == catalog.CategoryConsumables &&
			ctx.MinuteOfDay >= morningStart && ctx.MinuteOfDay < morningEnd {
			return p * 1.05
		}
		return p
	}},
	{"saturation", func(p float64, e *Entry, _ *catalog.ItemDefinition, _ PriceContext) float64 {
		return p * e.Saturation
	}},
	{"fluctuation", func(p float64, _ *Entry, _ *catalog.ItemDefinition, ctx PriceContext) float64 {
		return p * ctx.Fluctuation
	}},
}

// tierMultiplier maps a demand/supply ratio to its pricing tier.
// First match wins; the tiers are checked from most to least extreme.
func tierMultiplier(ratio float64) float64 {
	switch {
	case ratio > 1.5:
		return 1.3
	case ratio > 1.2:
		return 1.15
	case ratio < 0.7:
		return 0.8
	case ratio < 0.9:
		return 0.9
	default:
		return 1.0
	}
}

// ComputePrice runs the full pipeline for (location, item), refreshes
// the entry's stored price and ratio, and returns the new price.
// Unknown location or item returns 0 and touches nothing.
func (l *Ledger) ComputePrice(loc catalog.LocationID, item catalog.ItemID, ctx PriceContext) int {
	e := l.Entry(loc, item)
	def := l.catalog.Item(item)
	if e == nil || def == nil {
		return 0
	}
	defaultCtx(&ctx)

	e.Ratio = e.Demand / e.Supply

	price := l.catalog.BasePriceFor(item)
	for _, stage := range pipeline {
		price = stage.apply(price, e, def, ctx)
	}

	final := int(price + 0.5)
	if final < 1 {
		final = 1
	}
	e.Price = final
	return final
}

// StageNames returns the pipeline's stage order, for diagnostics and
// for tests pinning the composition sequence.
func StageNames() []string {
	names := make([]string, 0, len(pipeline)+1)
	names = append(names, "base_rarity")
	for _, s := range pipeline {
		names = append(names, s.name)
	}
	return names
}

func defaultCtx(ctx *PriceContext) {
	if ctx.Reputation == 0 {
		ctx.Reputation = 1
	}
	if ctx.Global == 0 {
		ctx.Global = 1
	}
	if ctx.Fluctuation == 0 {
		ctx.Fluctuation = 1
	}
}
