package econ

import (
	"github.com/talgya/tradewinds/internal/catalog"
	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/history"
	"github.com/talgya/tradewinds/internal/market"
	"github.com/talgya/tradewinds/internal/reputation"
)

// The persistence layer reads and restores engine state through these
// accessors. Nothing else should hold the live components.

// Catalog returns the item registry.
func (e *Economy) Catalog() *catalog.Catalog { return e.catalog }

// Ledger returns the live market ledger.
func (e *Economy) Ledger() *market.Ledger { return e.ledger }

// ReputationTracker returns the live standing records.
func (e *Economy) ReputationTracker() *reputation.Tracker { return e.rep }

// CityEngine returns the settlement event engine.
func (e *Economy) CityEngine() *events.CityEngine { return e.city }

// GlobalEngine returns the world event engine.
func (e *Economy) GlobalEngine() *events.GlobalEngine { return e.global }

// History returns the price history ledger.
func (e *Economy) History() *history.Ledger { return e.history }

// SetNow moves the clock to a persisted minute.
func (e *Economy) SetNow(minute int64) { e.now = minute }

// RestoreAlerts replaces the alert list from persisted state.
func (e *Economy) RestoreAlerts(alerts []PriceAlert) {
	e.alerts = e.alerts[:0]
	for i := range alerts {
		a := alerts[i]
		e.alerts = append(e.alerts, &a)
	}
}
