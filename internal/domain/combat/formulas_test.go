package combat_test

import (
	"testing"

	"github.com/KirkDiggler/creature-battler/internal/domain/combat"
	"github.com/stretchr/testify/assert"
)

func TestHitChanceBounds(t *testing.T) {
	values := []int{-50, 0, 1, 3, 10, 50, 100, 400, 1000, 100000}
	for _, accuracy := range values {
		for _, evasion := range values {
			chance := combat.HitChance(accuracy, evasion)
			assert.GreaterOrEqual(t, chance, combat.MinHitChance, "accuracy=%d evasion=%d", accuracy, evasion)
			assert.LessOrEqual(t, chance, combat.MaxHitChance, "accuracy=%d evasion=%d", accuracy, evasion)
		}
	}
}

func TestHitChanceWithoutEvasionIsCapped(t *testing.T) {
	assert.Equal(t, 0.95, combat.HitChance(100, 0))
	assert.Equal(t, 0.95, combat.HitChance(0, 0))
	assert.Equal(t, 0.1, combat.HitChance(0, 400))
}

func TestHitChanceFallsWithEvasion(t *testing.T) {
	// (400/4)^0.8 is roughly 39.81
	assert.InDelta(t, 100/(100+39.8107), combat.HitChance(100, 400), 1e-4)
	assert.Less(t, combat.HitChance(100, 800), combat.HitChance(100, 400))
}

func TestStunChanceBounds(t *testing.T) {
	for _, added := range []float64{-1, 0, 0.1, 0.9, 5} {
		for _, final := range []int{0, 1, 50, 1000} {
			for _, maxHealth := range []int{0, 1, 100} {
				for _, maxStun := range []float64{0, 0.25, 0.5, 1} {
					chance := combat.StunChance(added, final, maxHealth, maxStun)
					assert.GreaterOrEqual(t, chance, 0.0)
					assert.LessOrEqual(t, chance, maxStun)
				}
			}
		}
	}
}

func TestStunChance(t *testing.T) {
	assert.InDelta(t, 0.3, combat.StunChance(0.1, 20, 100, 0.5), 1e-9)
	assert.InDelta(t, 0.5, combat.StunChance(0.1, 90, 100, 0.5), 1e-9)
}

func TestReduceDamage(t *testing.T) {
	assert.Equal(t, 8, combat.ReduceDamage(10, 2, 0.5))
	assert.Equal(t, 5, combat.ReduceDamage(10, 20, 0.5))
	assert.Equal(t, 10, combat.ReduceDamage(10, 0, 0.5))
	assert.Equal(t, 0, combat.ReduceDamage(0, 5, 0.5))
}

func TestResistDamage(t *testing.T) {
	// 1 - 20/(20+20) = 0.5
	assert.Equal(t, 5, combat.ResistDamage(10, 20, 0.75))
	// capped by maxResistance: 10 * 0.25 beats 1 - 1000/1020
	assert.Equal(t, 3, combat.ResistDamage(10, 1000, 0.75))
	assert.Equal(t, 10, combat.ResistDamage(10, 0, 0.75))
	assert.Equal(t, 10, combat.ResistDamage(10, -5, 0.75))
}

func TestReductionThenResistanceOrder(t *testing.T) {
	reducedFirst := combat.ResistDamage(combat.ReduceDamage(10, 5, 0.5), 20, 0.75)
	resistedFirst := combat.ReduceDamage(combat.ResistDamage(10, 20, 0.75), 5, 0.5)

	assert.Equal(t, 2, reducedFirst)
	assert.Equal(t, 3, resistedFirst)
}
