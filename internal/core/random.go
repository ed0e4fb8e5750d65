package core

import "math/rand"

// Random is the source of all randomness in the simulation.
// *rand.Rand satisfies it; tests substitute scripted sequences.
type Random interface {
	Float64() float64 // in [0, 1)
}

// NewRandom returns a deterministic source for the given seed.
func NewRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed))
}

// Uniform draws a value uniformly from [lo, hi).
func Uniform(r Random, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Chance returns true with probability p.
func Chance(r Random, p float64) bool {
	return r.Float64() < p
}

// SequenceRandom replays a fixed list of values, cycling when exhausted.
// It is meant for tests and for reproducing a specific spawn.
type SequenceRandom struct {
	values []float64
	pos    int
}

// NewSequenceRandom creates a source that yields values in order.
func NewSequenceRandom(values ...float64) *SequenceRandom {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &SequenceRandom{values: values}
}

// Float64 returns the next scripted value.
func (s *SequenceRandom) Float64() float64 {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Draws returns how many values have been consumed.
func (s *SequenceRandom) Draws() int {
	return s.pos
}
