package combat

import "math"

const (
	MinHitChance = 0.1
	MaxHitChance = 0.95
)

// HitChance is accuracy / (accuracy + (evasion/4)^0.8) clamped to
// [MinHitChance, MaxHitChance]. A zero denominator yields the maximum.
func HitChance(accuracy, evasion int) float64 {
	evasionTerm := math.Pow(math.Max(float64(evasion), 0)/4, 0.8)
	denominator := float64(accuracy) + evasionTerm
	if denominator <= 0 {
		return MaxHitChance
	}
	return clamp(float64(accuracy)/denominator, MinHitChance, MaxHitChance)
}

// StunChance is added + finalDamage/targetMaxHealth clamped to [0, maxStun]
func StunChance(added float64, finalDamage, targetMaxHealth int, maxStun float64) float64 {
	chance := added
	if targetMaxHealth > 0 {
		chance += float64(finalDamage) / float64(targetMaxHealth)
	}
	return clamp(chance, 0, math.Max(maxStun, 0))
}

// ReduceDamage applies flat reduction capped by maxReduction:
// max(damage * (1 - maxReduction), damage - flat)
func ReduceDamage(amount, flat int, maxReduction float64) int {
	if amount <= 0 {
		return 0
	}
	d := float64(amount)
	capped := d * (1 - clamp(maxReduction, 0, 1))
	return int(math.Round(math.Max(capped, d-float64(flat))))
}

// ResistDamage applies diminishing resistance capped by maxResistance:
// round(max(damage * (1 - maxResistance), clamp01(1 - r/(r + 2*damage)) * damage))
func ResistDamage(amount, resistance int, maxResistance float64) int {
	if amount <= 0 {
		return 0
	}
	d := float64(amount)
	r := float64(resistance)

	factor := 1.0
	if r+2*d > 0 {
		factor = clamp(1-r/(r+2*d), 0, 1)
	}
	capped := d * (1 - clamp(maxResistance, 0, 1))
	return int(math.Round(math.Max(capped, factor*d)))
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
