package damage

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KirkDiggler/creature-battler/internal/random"
)

// Type tags an amount of damage. Resistances and reductions are per type.
type Type string

const (
	TypePhysical  Type = "physical"
	TypeFire      Type = "fire"
	TypeCold      Type = "cold"
	TypeLightning Type = "lightning"
	TypePoison    Type = "poison"
	TypeMagic     Type = "magic"
)

var knownTypes = map[Type]bool{
	TypePhysical:  true,
	TypeFire:      true,
	TypeCold:      true,
	TypeLightning: true,
	TypePoison:    true,
	TypeMagic:     true,
}

// ParseType converts a content string into a Type
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !knownTypes[t] {
		return "", fmt.Errorf("unknown damage type %q", s)
	}
	return t, nil
}

// Bag maps damage types to integer amounts.
// Bags are treated as values: every method returns a new Bag and never
// mutates the receiver, so a stage can be re-evaluated safely.
type Bag map[Type]int

// NewBag creates a bag holding a single entry
func NewBag(t Type, amount int) Bag {
	return Bag{t: amount}
}

// Types returns the bag's damage types in a stable order
func (b Bag) Types() []Type {
	types := make([]Type, 0, len(b))
	for t := range b {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Get returns the amount for a type, zero when absent
func (b Bag) Get(t Type) int {
	return b[t]
}

// With returns a copy of the bag with t set to amount
func (b Bag) With(t Type, amount int) Bag {
	out := b.Clone()
	out[t] = amount
	return out
}

// Add returns the per-type sum of two bags
func (b Bag) Add(other Bag) Bag {
	out := b.Clone()
	for t, v := range other {
		out[t] += v
	}
	return out
}

// Multiply scales every entry by factor, rounding to nearest
func (b Bag) Multiply(factor float64) Bag {
	return b.Map(func(_ Type, amount int) int {
		return int(math.Round(float64(amount) * factor))
	})
}

// Map applies fn to every entry and returns the resulting bag
func (b Bag) Map(fn func(t Type, amount int) int) Bag {
	out := make(Bag, len(b))
	for t, v := range b {
		out[t] = fn(t, v)
	}
	return out
}

// Total sums all entries
func (b Bag) Total() int {
	total := 0
	for _, v := range b {
		total += v
	}
	return total
}

// Clone returns an independent copy
func (b Bag) Clone() Bag {
	out := make(Bag, len(b))
	for t, v := range b {
		out[t] = v
	}
	return out
}

// String renders the bag in type order, e.g. "fire:3 physical:10"
func (b Bag) String() string {
	parts := make([]string, 0, len(b))
	for _, t := range b.Types() {
		parts = append(parts, fmt.Sprintf("%s:%d", t, b[t]))
	}
	return strings.Join(parts, " ")
}

// Range is an inclusive [Low, High] damage roll
type Range struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

// Ranges is a skill's configured damage, keyed by type
type Ranges map[Type]Range

// Roll draws one uniform integer per entry. Entries are visited in type
// order so the same seed always consumes draws in the same sequence.
func (r Ranges) Roll(src random.Source) Bag {
	out := make(Bag, len(r))
	types := make([]Type, 0, len(r))
	for t := range r {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, t := range types {
		rng := r[t]
		out[t] = src.UniformInt(rng.Low, rng.High)
	}
	return out
}

// AllTypes returns every known damage type in stable order
func AllTypes() []Type {
	types := make([]Type, 0, len(knownTypes))
	for t := range knownTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
