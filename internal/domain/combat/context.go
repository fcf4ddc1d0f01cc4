package combat

import (
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/random"
)

// CreatureContext is the read-only view handed to creature handlers.
// It is built fresh for every event.
type CreatureContext struct {
	Creature *Creature
	Services Services
	Now      time.Time
}

// Random returns the resolution's shared source
func (c CreatureContext) Random() random.Source {
	return c.Services.Random
}

// Opponents lists living creatures on other teams
func (c CreatureContext) Opponents() []*Creature {
	var out []*Creature
	for _, o := range c.Services.Roster.Opponents(c.Creature.Team) {
		if o.IsAlive() {
			out = append(out, o)
		}
	}
	return out
}

// NearestOpponent returns the closest living opponent to from, skipping
// the given IDs. Ties keep roster order.
func (c CreatureContext) NearestOpponent(from shared.Point, skip ...shared.EntityID) (*Creature, bool) {
	var (
		best     *Creature
		bestDist float64
	)
	for _, o := range c.Opponents() {
		if containsID(skip, o.ID()) {
			continue
		}
		d := from.DistanceTo(o.Position)
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, best != nil
}

// SkillContext binds a creature to the skill it is using and, for ranged
// skills, the projectile being resolved
type SkillContext struct {
	CreatureContext
	Skill      *SkillInstance
	Projectile *Projectile

	resolver *Resolver
}

// Origin is where targeting is centered: the projectile's impact point or
// the caster's position
func (c SkillContext) Origin() shared.Point {
	if c.Projectile != nil {
		return c.Projectile.Position
	}
	return c.Creature.Position
}

// ResolveHits runs target acquisition and per-target resolution for this
// context and returns the produced effects
func (c SkillContext) ResolveHits() []effects.Effect {
	out, _ := c.resolver.resolveHits(c)
	return out
}

// TargetContext is the per-target view used by stage three. Targets never
// share a TargetContext.
type TargetContext struct {
	SkillContext
	Target *Creature
	Crit   bool
}

func containsID(ids []shared.EntityID, id shared.EntityID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
