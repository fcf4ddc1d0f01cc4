package stats

import (
	"math"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
)

// foldNumeric computes round((base + sum Add) * (10000 + sum Increase) / 10000).
// The most recent Overwrite bypasses the fold entirely.
func foldNumeric(base int, mods []Modifier) int {
	sumAdd := base
	sumIncrease := 0
	overwritten := false
	overwrite := 0

	for _, m := range mods {
		switch m.Op {
		case OpAdd:
			sumAdd += m.Value
		case OpIncrease:
			sumIncrease += m.Value
		case OpOverwrite:
			overwritten = true
			overwrite = m.Value
		}
	}
	if overwritten {
		return overwrite
	}
	return int(math.Round(float64(sumAdd) * float64(BasisPointsScale+sumIncrease) / BasisPointsScale))
}

// foldFlag takes the most recent SetTrue, SetFalse or Overwrite
func foldFlag(def Definition, mods []Modifier) bool {
	value := def.Base != 0
	for _, m := range mods {
		switch m.Op {
		case OpSetTrue:
			value = true
		case OpSetFalse:
			value = false
		case OpOverwrite:
			value = m.Value != 0
		}
	}
	return value
}

// foldTagged folds each damage type independently. A modifier without a
// damage type applies to every type.
func foldTagged(mods []Modifier) damage.Bag {
	perType := make(map[damage.Type][]Modifier)
	for _, m := range mods {
		if m.DamageType == "" {
			for _, t := range damage.AllTypes() {
				perType[t] = append(perType[t], m)
			}
			continue
		}
		perType[m.DamageType] = append(perType[m.DamageType], m)
	}

	out := make(damage.Bag, len(perType))
	for t, typed := range perType {
		if v := foldNumeric(0, typed); v != 0 {
			out[t] = v
		}
	}
	return out
}
