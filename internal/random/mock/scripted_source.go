package mockrandom

import (
	"fmt"
	"sync"
)

// ScriptedSource implements random.Source with predetermined draws.
// Floats and ints are queued separately; running out of either panics
// because a test that draws more than it scripted is broken.
type ScriptedSource struct {
	mu       sync.Mutex
	floats   []float64
	ints     []int
	floatIdx int
	intIdx   int
}

// NewScriptedSource creates an empty scripted source
func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{}
}

// WithFloats queues values returned by Uniform01
func (s *ScriptedSource) WithFloats(values ...float64) *ScriptedSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = append(s.floats, values...)
	return s
}

// WithInts queues values returned by UniformInt
func (s *ScriptedSource) WithInts(values ...int) *ScriptedSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = append(s.ints, values...)
	return s
}

// Uniform01 implements random.Source.Uniform01
func (s *ScriptedSource) Uniform01() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.floatIdx >= len(s.floats) {
		panic(fmt.Sprintf("no more scripted floats available (used %d of %d)", s.floatIdx, len(s.floats)))
	}
	v := s.floats[s.floatIdx]
	s.floatIdx++
	return v
}

// UniformInt implements random.Source.UniformInt. The scripted value must lie in [low, high].
func (s *ScriptedSource) UniformInt(low, high int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.intIdx >= len(s.ints) {
		panic(fmt.Sprintf("no more scripted ints available (used %d of %d)", s.intIdx, len(s.ints)))
	}
	if high < low {
		low, high = high, low
	}
	v := s.ints[s.intIdx]
	if v < low || v > high {
		panic(fmt.Sprintf("scripted int %d outside [%d, %d]", v, low, high))
	}
	s.intIdx++
	return v
}

// FloatsUsed reports how many Uniform01 draws were consumed
func (s *ScriptedSource) FloatsUsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.floatIdx
}

// IntsUsed reports how many UniformInt draws were consumed
func (s *ScriptedSource) IntsUsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intIdx
}
