package combat

import (
	"log"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	"github.com/KirkDiggler/creature-battler/internal/domain/delegates"
	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
)

// ResolverConfig holds the resolver's dependencies
type ResolverConfig struct {
	Services Services
}

// Resolver turns creature and skill events into effect lists. It never
// mutates the world; callers hand the returned effects to an Applier.
type Resolver struct {
	services Services
}

// NewResolver creates a resolver
func NewResolver(cfg *ResolverConfig) *Resolver {
	if cfg.Services.Collision == nil {
		panic("collision query is required")
	}
	if cfg.Services.Random == nil {
		panic("random source is required")
	}
	if cfg.Services.Roster == nil {
		panic("roster is required")
	}
	if cfg.Services.Clock == nil {
		panic("clock is required")
	}
	return &Resolver{services: cfg.Services}
}

// StatProvider exposes read-only stat access for the resolver's roster
func (r *Resolver) StatProvider() StatProvider {
	return RosterStats{Roster: r.services.Roster}
}

func (r *Resolver) creatureContext(c *Creature) CreatureContext {
	return CreatureContext{
		Creature: c,
		Services: r.services,
		Now:      r.services.Clock.Now(),
	}
}

func (r *Resolver) skillContext(c *Creature, skill *SkillInstance, projectile *Projectile) SkillContext {
	return SkillContext{
		CreatureContext: r.creatureContext(c),
		Skill:           skill,
		Projectile:      projectile,
		resolver:        r,
	}
}

// Activate broadcasts OnActivate over the creature's chain
func (r *Resolver) Activate(c *Creature) []effects.Effect {
	ctx := r.creatureContext(c)
	return delegates.Broadcast[OnActivateHandler, effects.Effect](c.Chain, func(h OnActivateHandler) ([]effects.Effect, delegates.Propagation) {
		return h.OnActivate(ctx)
	})
}

// ChooseSkill asks the creature's chain which skill to use next. It
// returns false when nothing should be used.
func (r *Resolver) ChooseSkill(c *Creature) (*SkillInstance, bool) {
	ctx := r.creatureContext(c)
	skill := delegates.FirstMatch[ChooseSkillHandler, *SkillInstance](c.Chain, func(h ChooseSkillHandler) (*SkillInstance, bool) {
		return h.ChooseSkill(ctx)
	})
	return skill, skill != nil
}

// UseSkill marks the skill used and broadcasts OnUse over its chain
func (r *Resolver) UseSkill(c *Creature, skill *SkillInstance) []effects.Effect {
	ctx := r.skillContext(c, skill, nil)
	skill.MarkUsed(ctx.Now)

	return delegates.Broadcast[OnUseHandler, effects.Effect](skill.Chain, func(h OnUseHandler) ([]effects.Effect, delegates.Propagation) {
		return h.OnUse(ctx)
	})
}

// ResolveProjectileHit resolves a projectile that reached its impact point.
// A chaining projectile that hit something fires again from the impact
// point at the nearest opponent it has not touched yet.
func (r *Resolver) ResolveProjectileHit(c *Creature, skill *SkillInstance, p *Projectile) []effects.Effect {
	ctx := r.skillContext(c, skill, p)

	out := []effects.Effect{effects.PlayVfx{Vfx: effects.VfxProjectileImpact, At: p.Position}}
	hits, targets := r.resolveHits(ctx)
	out = append(out, hits...)

	if p.ChainsLeft <= 0 || len(targets) == 0 {
		return out
	}

	exclude := make([]shared.EntityID, 0, len(p.Exclude)+len(targets))
	exclude = append(exclude, p.Exclude...)
	for _, t := range targets {
		exclude = append(exclude, t.ID())
	}
	next, ok := ctx.NearestOpponent(p.Position, exclude...)
	if !ok {
		return out
	}
	return append(out, effects.FireProjectile{
		Caster:     c.ID(),
		Skill:      skill.Key(),
		Origin:     p.Position,
		Target:     next.Position,
		ChainsLeft: p.ChainsLeft - 1,
		Exclude:    exclude,
	})
}

// HandleDeath broadcasts OnDeath on the victim and OnKilledEnemy on the killer
func (r *Resolver) HandleDeath(victim, killer *Creature) []effects.Effect {
	victimCtx := r.creatureContext(victim)
	out := delegates.Broadcast[OnDeathHandler, effects.Effect](victim.Chain, func(h OnDeathHandler) ([]effects.Effect, delegates.Propagation) {
		return h.OnDeath(victimCtx, killer)
	})

	if killer == nil {
		log.Printf("Resolver: %s died", victim.ID())
		return out
	}
	log.Printf("Resolver: %s killed %s", killer.ID(), victim.ID())

	killerCtx := r.creatureContext(killer)
	return append(out, delegates.Broadcast[OnKilledEnemyHandler, effects.Effect](killer.Chain, func(h OnKilledEnemyHandler) ([]effects.Effect, delegates.Propagation) {
		return h.OnKilledEnemy(killerCtx, victim)
	})...)
}

// resolveHits runs FindTargets and FilterTargets, then resolves each target
// independently in discovery order
func (r *Resolver) resolveHits(ctx SkillContext) ([]effects.Effect, []*Creature) {
	chain := ctx.Skill.Chain

	targets := delegates.FirstMatch[FindTargetsHandler, []*Creature](chain, func(h FindTargetsHandler) ([]*Creature, bool) {
		return h.FindTargets(ctx)
	})
	targets = delegates.FirstMatch[FilterTargetsHandler, []*Creature](chain, func(h FilterTargetsHandler) ([]*Creature, bool) {
		return h.FilterTargets(ctx, targets)
	})

	var out []effects.Effect
	for _, target := range targets {
		out = append(out, r.resolveTarget(TargetContext{SkillContext: ctx, Target: target})...)
	}
	return out, targets
}

// resolveTarget runs stage three for one target in its fixed order
func (r *Resolver) resolveTarget(ctx TargetContext) []effects.Effect {
	chain := ctx.Skill.Chain
	target := ctx.Target

	hit := delegates.FirstMatch[RollForHitHandler, HitRoll](chain, func(h RollForHitHandler) (HitRoll, bool) {
		return h.RollForHit(ctx)
	})
	if !hit.Hit {
		return []effects.Effect{effects.PlayEvent{Event: hit.Miss, At: target.Position}}
	}

	var out []effects.Effect
	ctx.Crit = delegates.FirstMatch[RollForCritHandler, bool](chain, func(h RollForCritHandler) (bool, bool) {
		return h.RollForCrit(ctx)
	})
	if ctx.Crit {
		out = append(out, effects.PlayEvent{Event: effects.EventCrit, At: target.Position})
	}

	bag := delegates.FirstMatch[RollForBaseDamageHandler, damage.Bag](chain, func(h RollForBaseDamageHandler) (damage.Bag, bool) {
		return h.RollForBaseDamage(ctx)
	})
	bag = delegates.FoldChains(bag, func(h TransformDamageHandler, acc damage.Bag) (damage.Bag, delegates.Propagation) {
		return h.TransformDamage(ctx, acc)
	}, chain, ctx.Creature.Chain)
	bag = delegates.FirstMatch[ApplyDamageReductionHandler, damage.Bag](chain, func(h ApplyDamageReductionHandler) (damage.Bag, bool) {
		return h.ApplyDamageReduction(ctx, bag)
	})
	bag = delegates.FirstMatch[ApplyDamageResistanceHandler, damage.Bag](chain, func(h ApplyDamageResistanceHandler) (damage.Bag, bool) {
		return h.ApplyDamageResistance(ctx, bag)
	})
	final := delegates.FirstMatch[ComputeFinalDamageHandler, int](chain, func(h ComputeFinalDamageHandler) (int, bool) {
		return h.ComputeFinalDamage(ctx, bag)
	})
	if final <= 0 {
		return out
	}

	out = append(out,
		effects.ApplyDamage{Source: ctx.Creature.ID(), Target: target.ID(), Amount: final},
		effects.DamageText{Target: target.ID(), Amount: final, Crit: ctx.Crit},
	)
	out = append(out, delegates.Broadcast[OnHitHandler, effects.Effect](chain, func(h OnHitHandler) ([]effects.Effect, delegates.Propagation) {
		return h.OnHit(ctx, final)
	})...)

	drain := delegates.FirstMatch[ComputeHealthDrainHandler, int](chain, func(h ComputeHealthDrainHandler) (int, bool) {
		return h.ComputeHealthDrain(ctx, final)
	})
	if drain > 0 {
		out = append(out, effects.Heal{Target: ctx.Creature.ID(), Amount: drain})
	}

	stun := delegates.FirstMatch[RollForStunHandler, StunRoll](chain, func(h RollForStunHandler) (StunRoll, bool) {
		return h.RollForStun(ctx, final)
	})
	if stun.Stunned {
		out = append(out,
			effects.Stun{Target: target.ID(), Duration: stun.Duration},
			effects.PlayEvent{Event: effects.EventStun, At: target.Position},
		)
	}
	return out
}
