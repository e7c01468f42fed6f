package events

// ModifierSet is a multiset of named multiplicative contributions to
// one global modifier. Removing a contribution deletes it by key and
// the product is recomputed on read, so reversal never divides back
// out and never accumulates floating-point drift.
type ModifierSet struct {
	contributions map[string]float64
}

// NewModifierSet creates an empty set (product 1.0).
func NewModifierSet() *ModifierSet {
	return &ModifierSet{contributions: make(map[string]float64)}
}

// Set records a contribution under a key, replacing any previous
// value for that key.
func (m *ModifierSet) Set(key string, factor float64) {
	m.contributions[key] = factor
}

// Remove deletes a contribution. Returns false if the key was never
// set.
func (m *ModifierSet) Remove(key string) bool {
	if _, ok := m.contributions[key]; !ok {
		return false
	}
	delete(m.contributions, key)
	return true
}

// Product returns the combined multiplier of all contributions.
func (m *ModifierSet) Product() float64 {
	p := 1.0
	for _, f := range m.contributions {
		p *= f
	}
	return p
}

// Contributions returns a copy of the set, for persistence.
func (m *ModifierSet) Contributions() map[string]float64 {
	out := make(map[string]float64, len(m.contributions))
	for k, v := range m.contributions {
		out[k] = v
	}
	return out
}

// RestoreContributions replaces the set's contents from persisted
// state.
func (m *ModifierSet) RestoreContributions(c map[string]float64) {
	m.contributions = make(map[string]float64, len(c))
	for k, v := range c {
		m.contributions[k] = v
	}
}
