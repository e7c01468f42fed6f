// Package reputation tracks the player's standing with each
// settlement and the price modifier that standing earns.
package reputation

import (
	"math"

	"github.com/talgya/tradewinds/internal/catalog"
)

// Standing is clamped to this range.
const (
	MinStanding = -100.0
	MaxStanding = 100.0
)

// Record is the player's standing with one settlement. AccessLevel
// and PriceModifier are derived from Standing on every mutation.
//
// Access tiers (10% price change per level):
//
//	>=  75  +3  elite
//	>=  50  +2  trusted
//	>=  25  +1  friendly
//	>=   0   0  neutral
//	>= -25  -1  suspicious
//	>= -50  -2  untrusted
//	<  -50  -3  hostile
type Record struct {
	Standing      float64
	AccessLevel   int
	PriceModifier float64
}

// Change describes one reputation mutation, for the notification
// stream.
type Change struct {
	Location catalog.LocationID
	Delta    float64
	Standing float64
	OldTier  string
	NewTier  string
}

// Tracker holds a Record per settlement.
type Tracker struct {
	records  map[catalog.LocationID]*Record
	onChange func(Change)
}

// NewTracker creates an empty tracker. onChange, if non-nil, receives
// every applied mutation.
func NewTracker(onChange func(Change)) *Tracker {
	return &Tracker{
		records:  make(map[catalog.LocationID]*Record),
		onChange: onChange,
	}
}

// Init ensures a neutral record exists for a settlement.
func (t *Tracker) Init(loc catalog.LocationID) *Record {
	if r, ok := t.records[loc]; ok {
		return r
	}
	r := &Record{PriceModifier: 1.0}
	t.records[loc] = r
	return r
}

// Restore overwrites a settlement's record with persisted standing.
// Derived fields are recomputed from the stored value.
func (t *Tracker) Restore(loc catalog.LocationID, standing float64) {
	r := t.Init(loc)
	r.Standing = clamp(standing)
	derive(r)
}

// Change applies a signed delta to a settlement's standing, clamped
// to [-100, 100]. Unknown locations get a record lazily, so event
// effects and trades can never miss.
func (t *Tracker) Change(loc catalog.LocationID, delta float64) {
	r := t.Init(loc)
	oldTier := TierName(r.AccessLevel)
	r.Standing = clamp(r.Standing + delta)
	derive(r)
	if t.onChange != nil {
		t.onChange(Change{
			Location: loc,
			Delta:    delta,
			Standing: r.Standing,
			OldTier:  oldTier,
			NewTier:  TierName(r.AccessLevel),
		})
	}
}

// Standing returns the rounded standing for a settlement, 0 if
// unknown.
func (t *Tracker) Standing(loc catalog.LocationID) int {
	r := t.records[loc]
	if r == nil {
		return 0
	}
	return int(math.Round(r.Standing))
}

// AccessLevel returns the derived access tier, 0 if unknown.
func (t *Tracker) AccessLevel(loc catalog.LocationID) int {
	r := t.records[loc]
	if r == nil {
		return 0
	}
	return r.AccessLevel
}

// PriceModifier returns the standing-derived price multiplier, 1.0
// for unknown settlements.
func (t *Tracker) PriceModifier(loc catalog.LocationID) float64 {
	r := t.records[loc]
	if r == nil {
		return 1.0
	}
	return r.PriceModifier
}

// Record returns the live record for persistence, or nil.
func (t *Tracker) Record(loc catalog.LocationID) *Record {
	return t.records[loc]
}

// TierName maps an access level to its display name.
func TierName(level int) string {
	switch {
	case level >= 3:
		return "elite"
	case level == 2:
		return "trusted"
	case level == 1:
		return "friendly"
	case level == 0:
		return "neutral"
	case level == -1:
		return "suspicious"
	case level == -2:
		return "untrusted"
	default:
		return "hostile"
	}
}

func derive(r *Record) {
	s := r.Standing
	switch {
	case s >= 75:
		r.AccessLevel = 3
	case s >= 50:
		r.AccessLevel = 2
	case s >= 25:
		r.AccessLevel = 1
	case s >= 0:
		r.AccessLevel = 0
	case s >= -25:
		r.AccessLevel = -1
	case s >= -50:
		r.AccessLevel = -2
	default:
		r.AccessLevel = -3
	}
	r.PriceModifier = 1 + float64(r.AccessLevel)*0.1
}

func clamp(v float64) float64 {
	if v < MinStanding {
		return MinStanding
	}
	if v > MaxStanding {
		return MaxStanding
	}
	return v
}
