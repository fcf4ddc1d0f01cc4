package random

import (
	"math/rand/v2"
)

// Source is the single random stream a resolution pass draws from.
// One Source is shared by every stage of a resolution so that a fixed
// seed replays the same battle.
type Source interface {
	// Uniform01 returns a value in [0, 1)
	Uniform01() float64

	// UniformInt returns a value in [low, high]. Swapped bounds are tolerated.
	UniformInt(low, high int) int
}

// seededSource implements Source on top of a PCG generator
type seededSource struct {
	rng *rand.Rand
}

// NewSeeded creates a deterministic source for the given seed
func NewSeeded(seed uint64) Source {
	return &seededSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Uniform01 implements Source.Uniform01
func (s *seededSource) Uniform01() float64 {
	return s.rng.Float64()
}

// UniformInt implements Source.UniformInt
func (s *seededSource) UniformInt(low, high int) int {
	if high < low {
		low, high = high, low
	}
	if low == high {
		return low
	}
	return low + s.rng.IntN(high-low+1)
}
