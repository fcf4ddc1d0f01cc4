package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
)

// BasisPointsScale is 100% expressed in basis points
const BasisPointsScale = 10000

// BasisPoints is a percentage where 10000 means 100%
type BasisPoints int

// Fraction converts basis points to a float, 2500 -> 0.25
func (b BasisPoints) Fraction() float64 {
	return float64(b) / BasisPointsScale
}

func (b BasisPoints) String() string {
	return strconv.FormatFloat(float64(b)/100, 'f', -1, 64) + "%"
}

// Stat is a typed accessor bound to a registered stat ID
type Stat[T any] struct {
	def     Definition
	convert func(def Definition, mods []Modifier) T
	parse   func(text string) (T, error)
}

// ID returns the stat's identifier
func (s Stat[T]) ID() ID { return s.def.ID }

// Name returns the stat's registered name
func (s Stat[T]) Name() string { return s.def.Name }

// Get folds the table's currently valid modifiers into a typed value
func (s Stat[T]) Get(t *Table) T {
	return s.Fold(t.Modifiers(s.def.ID))
}

// Fold computes the typed value for an explicit modifier list
func (s Stat[T]) Fold(mods []Modifier) T {
	return s.convert(s.def, mods)
}

// Default is the value with no modifiers applied
func (s Stat[T]) Default() T {
	return s.convert(s.def, nil)
}

// Parse reads a typed value from content text
func (s Stat[T]) Parse(text string) (T, error) {
	return s.parse(text)
}

func newIntStat(id ID, name string, base int) Stat[int] {
	def := Definition{ID: id, Name: name, Kind: KindInt, Base: base}
	Register(def)
	return Stat[int]{
		def: def,
		convert: func(def Definition, mods []Modifier) int {
			return foldNumeric(def.Base, mods)
		},
		parse: parseInt,
	}
}

func newBasisPointsStat(id ID, name string, base BasisPoints) Stat[BasisPoints] {
	def := Definition{ID: id, Name: name, Kind: KindBasisPoints, Base: int(base)}
	Register(def)
	return Stat[BasisPoints]{
		def: def,
		convert: func(def Definition, mods []Modifier) BasisPoints {
			return BasisPoints(foldNumeric(def.Base, mods))
		},
		parse: func(text string) (BasisPoints, error) {
			v, err := parseBasisPoints(text)
			return BasisPoints(v), err
		},
	}
}

func newDurationStat(id ID, name string, base time.Duration) Stat[time.Duration] {
	def := Definition{ID: id, Name: name, Kind: KindDuration, Base: int(base.Milliseconds())}
	Register(def)
	return Stat[time.Duration]{
		def: def,
		convert: func(def Definition, mods []Modifier) time.Duration {
			return time.Duration(foldNumeric(def.Base, mods)) * time.Millisecond
		},
		parse: func(text string) (time.Duration, error) {
			ms, err := parseDurationMillis(text)
			return time.Duration(ms) * time.Millisecond, err
		},
	}
}

func newFlagStat(id ID, name string, base bool) Stat[bool] {
	b := 0
	if base {
		b = 1
	}
	def := Definition{ID: id, Name: name, Kind: KindFlag, Base: b}
	Register(def)
	return Stat[bool]{
		def:     def,
		convert: foldFlag,
		parse: func(text string) (bool, error) {
			return strconv.ParseBool(strings.TrimSpace(text))
		},
	}
}

func newTaggedStat(id ID, name string) Stat[damage.Bag] {
	def := Definition{ID: id, Name: name, Kind: KindTagged}
	Register(def)
	return Stat[damage.Bag]{
		def: def,
		convert: func(_ Definition, mods []Modifier) damage.Bag {
			return foldTagged(mods)
		},
		parse: parseTagged,
	}
}

// ParseBase turns content text into the modifiers that establish a base
// value for the stat: Add for numeric kinds, SetTrue/SetFalse for flags and
// one Add per damage type for tagged stats.
func ParseBase(id ID, text string) ([]Modifier, error) {
	def := Lookup(id)

	switch def.Kind {
	case KindInt:
		v, err := parseInt(text)
		if err != nil {
			return nil, err
		}
		return []Modifier{Add(v - def.Base)}, nil
	case KindBasisPoints:
		v, err := parseBasisPoints(text)
		if err != nil {
			return nil, err
		}
		return []Modifier{Add(v - def.Base)}, nil
	case KindDuration:
		v, err := parseDurationMillis(text)
		if err != nil {
			return nil, err
		}
		return []Modifier{Add(v - def.Base)}, nil
	case KindFlag:
		v, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("invalid flag %q: %w", text, err)
		}
		return []Modifier{SetFlag(v)}, nil
	case KindTagged:
		bag, err := parseTagged(text)
		if err != nil {
			return nil, err
		}
		mods := make([]Modifier, 0, len(bag))
		for _, t := range bag.Types() {
			mods = append(mods, Add(bag[t]).For(t))
		}
		return mods, nil
	default:
		return nil, fmt.Errorf("stat %s has unknown kind", def.Name)
	}
}

// ParseValue reads a single modifier amount for the stat's kind, e.g.
// "25%" for basis points or "1.5s" for durations
func ParseValue(id ID, text string) (int, error) {
	def := Lookup(id)

	switch def.Kind {
	case KindBasisPoints:
		return parseBasisPoints(text)
	case KindDuration:
		return parseDurationMillis(text)
	case KindFlag:
		v, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return 0, err
		}
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return parseInt(text)
	}
}

// ParseBasisPoints reads "12.5%" or a raw basis-point integer
func ParseBasisPoints(text string) (BasisPoints, error) {
	v, err := parseBasisPoints(text)
	return BasisPoints(v), err
}

func parseInt(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(text), "+"))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", text)
	}
	return v, nil
}

// parseBasisPoints accepts "12.5%" or a raw basis-point integer
func parseBasisPoints(text string) (int, error) {
	s := strings.TrimSpace(text)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q", text)
		}
		return int(math.Round(f * 100)), nil
	}
	return parseInt(s)
}

// parseDurationMillis accepts Go durations ("1.5s", "250ms") or plain milliseconds
func parseDurationMillis(text string) (int, error) {
	s := strings.TrimSpace(text)
	if d, err := time.ParseDuration(s); err == nil {
		return int(d.Milliseconds()), nil
	}
	v, err := parseInt(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", text)
	}
	return v, nil
}

// parseTagged reads "fire:10, physical:5"
func parseTagged(text string) (damage.Bag, error) {
	bag := damage.Bag{}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		typeText, amountText, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid tagged entry %q, expected type:amount", part)
		}
		t, err := damage.ParseType(typeText)
		if err != nil {
			return nil, err
		}
		amount, err := parseInt(amountText)
		if err != nil {
			return nil, err
		}
		bag[t] += amount
	}
	return bag, nil
}
