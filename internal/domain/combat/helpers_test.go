package combat_test

import (
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/combat"
	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// battlefield is a minimal Roster and CollisionQuery over a creature list
type battlefield struct {
	creatures []*combat.Creature
}

func (b *battlefield) add(c *combat.Creature) {
	b.creatures = append(b.creatures, c)
}

func (b *battlefield) Creature(id shared.EntityID) (*combat.Creature, bool) {
	for _, c := range b.creatures {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

func (b *battlefield) Opponents(team shared.TeamID) []*combat.Creature {
	var out []*combat.Creature
	for _, c := range b.creatures {
		if c.Team != team {
			out = append(out, c)
		}
	}
	return out
}

func (b *battlefield) Query(origin shared.Point, shape combat.Shape, excludeTeam shared.TeamID) []shared.EntityID {
	var out []shared.EntityID
	for _, c := range b.creatures {
		if c.Team == excludeTeam || !c.IsAlive() {
			continue
		}
		if origin.DistanceTo(c.Position) <= float64(shape.Radius) {
			out = append(out, c.ID())
		}
	}
	return out
}

func ofKind(list []effects.Effect, kind effects.Kind) []effects.Effect {
	var out []effects.Effect
	for _, e := range list {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}
