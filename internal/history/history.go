// Package history keeps a rolling window of observed prices per
// market entry and derives trends from it.
package history

import (
	"sort"

	"github.com/talgya/tradewinds/internal/catalog"
)

// Entries per (location, item) series. Oldest points fall off first.
const maxPoints = 50

// Points consulted when classifying a trend.
const trendWindow = 5

// Relative move between the window's ends that counts as a trend.
const trendThreshold = 0.10

// Trend classifies recent price movement.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// PricePoint is one observed price at an absolute game minute.
type PricePoint struct {
	Minute int64
	Price  int
}

type seriesKey struct {
	Location catalog.LocationID
	Item     catalog.ItemID
}

// Ledger stores bounded price series for every market entry.
type Ledger struct {
	series map[seriesKey][]PricePoint
}

// NewLedger creates an empty history ledger.
func NewLedger() *Ledger {
	return &Ledger{series: make(map[seriesKey][]PricePoint)}
}

// Record appends an observation, evicting the oldest point once the
// series is full.
func (l *Ledger) Record(loc catalog.LocationID, item catalog.ItemID, minute int64, price int) {
	k := seriesKey{loc, item}
	s := append(l.series[k], PricePoint{Minute: minute, Price: price})
	if len(s) > maxPoints {
		s = s[len(s)-maxPoints:]
	}
	l.series[k] = s
}

// History returns a copy of the series, oldest first.
func (l *Ledger) History(loc catalog.LocationID, item catalog.ItemID) []PricePoint {
	s := l.series[seriesKey{loc, item}]
	out := make([]PricePoint, len(s))
	copy(out, s)
	return out
}

// GetTrend classifies the last few observations. Fewer than two
// points is always stable.
func (l *Ledger) GetTrend(loc catalog.LocationID, item catalog.ItemID) Trend {
	s := l.series[seriesKey{loc, item}]
	if len(s) < 2 {
		return TrendStable
	}
	if len(s) > trendWindow {
		s = s[len(s)-trendWindow:]
	}
	first, last := float64(s[0].Price), float64(s[len(s)-1].Price)
	if first == 0 {
		return TrendStable
	}
	switch change := (last - first) / first; {
	case change > trendThreshold:
		return TrendRising
	case change < -trendThreshold:
		return TrendFalling
	default:
		return TrendStable
	}
}

// GetAverage is the mean price over the trailing window of minutes,
// or 0 when nothing was observed in it.
func (l *Ledger) GetAverage(loc catalog.LocationID, item catalog.ItemID, now, window int64) float64 {
	s := l.series[seriesKey{loc, item}]
	sum, n := 0, 0
	for _, p := range s {
		if p.Minute >= now-window {
			sum += p.Price
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// LocationPrice is one settlement's view of an item for comparison.
type LocationPrice struct {
	Location catalog.LocationID
	Price    int
	Trend    Trend
	Average  float64
}

// CompareAcrossLocations lists every settlement with history for the
// item, cheapest current price first.
func (l *Ledger) CompareAcrossLocations(item catalog.ItemID, now, window int64) []LocationPrice {
	var out []LocationPrice
	for k, s := range l.series {
		if k.Item != item || len(s) == 0 {
			continue
		}
		out = append(out, LocationPrice{
			Location: k.Location,
			Price:    s[len(s)-1].Price,
			Trend:    l.GetTrend(k.Location, item),
			Average:  l.GetAverage(k.Location, item, now, window),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].Location < out[j].Location
	})
	return out
}

// Restore replaces one series from persisted state, trimming to the
// retention cap.
func (l *Ledger) Restore(loc catalog.LocationID, item catalog.ItemID, points []PricePoint) {
	if len(points) > maxPoints {
		points = points[len(points)-maxPoints:]
	}
	s := make([]PricePoint, len(points))
	copy(s, points)
	l.series[seriesKey{loc, item}] = s
}

// Series enumerates every stored series for persistence.
func (l *Ledger) Series(fn func(loc catalog.LocationID, item catalog.ItemID, points []PricePoint)) {
	keys := make([]seriesKey, 0, len(l.series))
	for k := range l.series {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Location != keys[j].Location {
			return keys[i].Location < keys[j].Location
		}
		return keys[i].Item < keys[j].Item
	})
	for _, k := range keys {
		fn(k.Location, k.Item, l.series[k])
	}
}
