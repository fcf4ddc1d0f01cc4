package combat

import (
	"math"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	"github.com/KirkDiggler/creature-battler/internal/domain/delegates"
	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
)

// DefaultCreatureDelegate terminates every creature chain
type DefaultCreatureDelegate struct{}

// Key implements delegates.Delegate
func (DefaultCreatureDelegate) Key() string { return "default_creature" }

func (DefaultCreatureDelegate) OnActivate(CreatureContext) ([]effects.Effect, delegates.Propagation) {
	return nil, delegates.Continue
}

func (DefaultCreatureDelegate) OnDeath(CreatureContext, *Creature) ([]effects.Effect, delegates.Propagation) {
	return nil, delegates.Continue
}

func (DefaultCreatureDelegate) OnKilledEnemy(CreatureContext, *Creature) ([]effects.Effect, delegates.Propagation) {
	return nil, delegates.Continue
}

// ChooseSkill picks the first skill whose cooldown has elapsed
func (DefaultCreatureDelegate) ChooseSkill(ctx CreatureContext) (*SkillInstance, bool) {
	for _, s := range ctx.Creature.Skills {
		if s.Ready(ctx.Now) {
			return s, true
		}
	}
	return nil, true
}

func (DefaultCreatureDelegate) TransformDamage(_ TargetContext, bag damage.Bag) (damage.Bag, delegates.Propagation) {
	return bag, delegates.Continue
}

// DefaultSkillDelegate terminates every skill chain and implements the
// standard resolution pipeline
type DefaultSkillDelegate struct{}

// Key implements delegates.Delegate
func (DefaultSkillDelegate) Key() string { return "default_skill" }

// OnUse plays the swing and resolves hits for melee and area skills. For
// projectile skills it fires at the nearest opponent, once per multi-shot,
// each shot delayed by ProjectileDelay plus its multi-shot offset.
func (DefaultSkillDelegate) OnUse(ctx SkillContext) ([]effects.Effect, delegates.Propagation) {
	caster := ctx.Creature
	table := ctx.Skill.Stats

	switch ctx.Skill.Category() {
	case CategoryMelee, CategoryArea:
		vfx := effects.VfxMelee
		if ctx.Skill.Category() == CategoryArea {
			vfx = effects.VfxArea
		}
		out := []effects.Effect{effects.PlayVfx{Vfx: vfx, At: caster.Position, Radius: stats.Radius.Get(table)}}
		return append(out, ctx.ResolveHits()...), delegates.Continue

	case CategoryProjectile:
		target, ok := ctx.NearestOpponent(caster.Position)
		if !ok {
			return nil, delegates.Continue
		}
		shots := max(stats.MultiShotCount.Get(table), 1)
		delay := stats.ProjectileDelay.Get(table)
		spacing := stats.MultiShotDelay.Get(table)
		chains := max(stats.ChainCount.Get(table), 0)

		out := make([]effects.Effect, 0, shots)
		for i := 0; i < shots; i++ {
			shot := effects.FireProjectile{
				Caster:     caster.ID(),
				Skill:      ctx.Skill.Key(),
				Origin:     caster.Position,
				Target:     target.Position,
				ChainsLeft: chains,
			}
			out = append(out, effects.After(delay+spacing*time.Duration(i), shot))
		}
		return out, delegates.Continue
	}
	return nil, delegates.Continue
}

// GetCollider uses the skill's Radius
func (DefaultSkillDelegate) GetCollider(ctx SkillContext) (Shape, bool) {
	return Shape{Radius: stats.Radius.Get(ctx.Skill.Stats)}, true
}

// FindTargets queries living opponents overlapping the collider
func (DefaultSkillDelegate) FindTargets(ctx SkillContext) ([]*Creature, bool) {
	shape := delegates.FirstMatch[GetColliderHandler, Shape](ctx.Skill.Chain, func(h GetColliderHandler) (Shape, bool) {
		return h.GetCollider(ctx)
	})

	var targets []*Creature
	for _, id := range ctx.Services.Collision.Query(ctx.Origin(), shape, ctx.Creature.Team) {
		target, ok := ctx.Services.Roster.Creature(id)
		if !ok || !target.IsAlive() || target.Team == ctx.Creature.Team {
			continue
		}
		if ctx.Projectile.excludes(id) {
			continue
		}
		targets = append(targets, target)
	}
	return targets, true
}

// FilterTargets caps melee skills at MaxMeleeAreaTargets when it is set
func (DefaultSkillDelegate) FilterTargets(ctx SkillContext, targets []*Creature) ([]*Creature, bool) {
	if ctx.Skill.Category() != CategoryMelee {
		return targets, true
	}
	limit := stats.MaxMeleeAreaTargets.Get(ctx.Skill.Stats)
	if limit > 0 && len(targets) > limit {
		return targets[:limit], true
	}
	return targets, true
}

// RollForHit draws once against HitChance. A roll that would have hit an
// unevasive target reports Evade, anything else Missed.
func (DefaultSkillDelegate) RollForHit(ctx TargetContext) (HitRoll, bool) {
	if !stats.UsesAccuracy.Get(ctx.Skill.Stats) {
		return HitRoll{Hit: true}, true
	}
	accuracy := stats.Accuracy.Get(ctx.Skill.Stats)
	evasion := stats.Evasion.Get(ctx.Target.Stats)

	roll := ctx.Random().Uniform01()
	if roll < HitChance(accuracy, evasion) {
		return HitRoll{Hit: true}, true
	}
	if evasion > 0 && roll < HitChance(accuracy, 0) {
		return HitRoll{Miss: effects.EventEvade}, true
	}
	return HitRoll{Miss: effects.EventMissed}, true
}

// RollForCrit draws once against CritChance plus the target's ReceiveCritsBonus
func (DefaultSkillDelegate) RollForCrit(ctx TargetContext) (bool, bool) {
	if !stats.CanCrit.Get(ctx.Skill.Stats) {
		return false, true
	}
	chance := stats.CritChance.Get(ctx.Skill.Stats).Fraction() +
		stats.ReceiveCritsBonus.Get(ctx.Target.Stats).Fraction()
	return ctx.Random().Uniform01() < chance, true
}

// RollForBaseDamage draws each configured range in damage type order
func (DefaultSkillDelegate) RollForBaseDamage(ctx TargetContext) (damage.Bag, bool) {
	return ctx.Skill.Definition.Damage.Roll(ctx.Random()), true
}

func (DefaultSkillDelegate) TransformDamage(_ TargetContext, bag damage.Bag) (damage.Bag, delegates.Propagation) {
	return bag, delegates.Continue
}

// ApplyDamageReduction uses the target's flat reduction per type
func (DefaultSkillDelegate) ApplyDamageReduction(ctx TargetContext, bag damage.Bag) (damage.Bag, bool) {
	if stats.IgnoresDamageReduction.Get(ctx.Skill.Stats) {
		return bag, true
	}
	flat := stats.DamageReduction.Get(ctx.Target.Stats)
	maxReduction := stats.MaxDamageReduction.Get(ctx.Target.Stats).Fraction()
	return bag.Map(func(t damage.Type, amount int) int {
		return ReduceDamage(amount, flat.Get(t), maxReduction)
	}), true
}

// ApplyDamageResistance uses the target's resistance per type
func (DefaultSkillDelegate) ApplyDamageResistance(ctx TargetContext, bag damage.Bag) (damage.Bag, bool) {
	if stats.IgnoresDamageResistance.Get(ctx.Skill.Stats) {
		return bag, true
	}
	resistance := stats.DamageResistance.Get(ctx.Target.Stats)
	maxResistance := stats.MaxDamageResistance.Get(ctx.Target.Stats).Fraction()
	return bag.Map(func(t damage.Type, amount int) int {
		return ResistDamage(amount, resistance.Get(t), maxResistance)
	}), true
}

// ComputeFinalDamage sums the bag and applies the crit and category multipliers
func (DefaultSkillDelegate) ComputeFinalDamage(ctx TargetContext, bag damage.Bag) (int, bool) {
	total := float64(bag.Total())
	if ctx.Crit {
		total *= stats.CritMultiplier.Get(ctx.Skill.Stats).Fraction()
	}
	switch ctx.Skill.Category() {
	case CategoryMelee:
		total *= stats.MeleeDamageMultiplier.Get(ctx.Skill.Stats).Fraction()
	case CategoryProjectile:
		total *= stats.ProjectileDamageMultiplier.Get(ctx.Skill.Stats).Fraction()
	}
	return max(int(math.Round(total)), 0), true
}

// OnHit knocks the target away from the impact when Knockback is set
func (DefaultSkillDelegate) OnHit(ctx TargetContext, _ int) ([]effects.Effect, delegates.Propagation) {
	distance := stats.Knockback.Get(ctx.Skill.Stats)
	if distance <= 0 {
		return nil, delegates.Continue
	}
	return []effects.Effect{effects.Knockback{Target: ctx.Target.ID(), From: ctx.Origin(), Distance: distance}}, delegates.Continue
}

// ComputeHealthDrain returns HealthDrain of the final damage for melee skills
func (DefaultSkillDelegate) ComputeHealthDrain(ctx TargetContext, finalDamage int) (int, bool) {
	if ctx.Skill.Category() != CategoryMelee {
		return 0, true
	}
	drain := stats.HealthDrain.Get(ctx.Skill.Stats).Fraction() * float64(finalDamage)
	return int(math.Round(drain)), true
}

// RollForStun draws once against StunChance when the skill can stun
func (DefaultSkillDelegate) RollForStun(ctx TargetContext, finalDamage int) (StunRoll, bool) {
	if !stats.CanStun.Get(ctx.Skill.Stats) {
		return StunRoll{}, true
	}
	chance := StunChance(
		stats.StunChance.Get(ctx.Skill.Stats).Fraction(),
		finalDamage,
		ctx.Target.MaxHealth(),
		stats.MaxStunChance.Get(ctx.Skill.Stats).Fraction(),
	)
	if ctx.Random().Uniform01() < chance {
		return StunRoll{Stunned: true, Duration: stats.StunDuration.Get(ctx.Skill.Stats)}, true
	}
	return StunRoll{}, true
}
