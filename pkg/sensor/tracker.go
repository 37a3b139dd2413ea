package sensor

import (
	"math"
	"strings"
)

// Change reports which bounds an observation moved.
type Change uint8

const (
	// ChangedMax means the maximum was raised.
	ChangedMax Change = 1 << iota

	// ChangedMin means the minimum was lowered.
	ChangedMin

	// NoChange means both bounds were left untouched.
	NoChange Change = 0
)

// Has returns true if all bits of f are set.
func (c Change) Has(f Change) bool {
	return c&f == f && f != 0
}

func (c Change) String() string {
	if c == NoChange {
		return "NONE"
	}
	var parts []string
	if c.Has(ChangedMax) {
		parts = append(parts, "MAX")
	}
	if c.Has(ChangedMin) {
		parts = append(parts, "MIN")
	}
	return strings.Join(parts, "|")
}

// Seed selects how a tracker starts.
type Seed uint8

const (
	// SeedSentinel starts with min at the largest and max at the smallest
	// representable value, so the first observation moves both bounds.
	SeedSentinel Seed = iota

	// SeedCurrent starts with min = max = the initial value.
	SeedCurrent
)

func (s Seed) String() string {
	switch s {
	case SeedSentinel:
		return "SENTINEL"
	case SeedCurrent:
		return "CURRENT"
	default:
		return "UNKNOWN"
	}
}

// Tracker holds the measured bounds of a value.
type Tracker struct {
	Min float64
	Max float64
}

// NewTracker returns a tracker seeded per seed.
func NewTracker(seed Seed, initial float64) Tracker {
	if seed == SeedCurrent {
		return Tracker{Min: initial, Max: initial}
	}
	return Tracker{Min: math.MaxFloat64, Max: -math.MaxFloat64}
}

// Observe updates the bounds with v. Only strict inequalities move a bound;
// NaN moves nothing. While Min <= Max at most one bound can move.
func (t *Tracker) Observe(v float64) Change {
	c := NoChange
	if v > t.Max {
		t.Max = v
		c |= ChangedMax
	}
	if v < t.Min {
		t.Min = v
		c |= ChangedMin
	}
	return c
}

// Reset collapses both bounds onto v.
func (t *Tracker) Reset(v float64) {
	t.Min = v
	t.Max = v
}
