package events

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
)

// BattleStartedEvent opens a battle
type BattleStartedEvent struct {
	BaseEvent
	Seed uint64
}

// CreatureSpawnedEvent announces a creature entering play
type CreatureSpawnedEvent struct {
	BaseEvent
	Template string
	Team     shared.TeamID
}

// SkillUsedEvent records a creature using a skill
type SkillUsedEvent struct {
	BaseEvent
	Skill   string
	Effects int
}

// ProjectileHitEvent records a projectile reaching its impact point
type ProjectileHitEvent struct {
	BaseEvent
	Skill string
	At    shared.Point
}

// DamageDealtEvent records health lost by Target
type DamageDealtEvent struct {
	BaseEvent
	Amount int
}

// HealedEvent records health restored to Target
type HealedEvent struct {
	BaseEvent
	Amount int
}

// StunnedEvent records a stun landing on Target
type StunnedEvent struct {
	BaseEvent
	Duration time.Duration
}

// StatusAppliedEvent records a status added to Target
type StatusAppliedEvent struct {
	BaseEvent
	Status string
}

// StatusExpiredEvent records a status running out on Target
type StatusExpiredEvent struct {
	BaseEvent
	Status string
}

// CombatFeedbackEvent mirrors a PlayEvent effect
type CombatFeedbackEvent struct {
	BaseEvent
	Kind effects.EventKind
	At   shared.Point
}

// CreatureDiedEvent records a death; Actor is the killer when known
type CreatureDiedEvent struct {
	BaseEvent
	Team shared.TeamID
}

// BattleEndedEvent closes a battle
type BattleEndedEvent struct {
	BaseEvent
	Winner shared.TeamID
	Ticks  int
}

// Describe renders an event as one combat log line
func Describe(e Event) string {
	prefix := fmt.Sprintf("[%04d] ", e.GetTick())
	switch ev := e.(type) {
	case *BattleStartedEvent:
		return prefix + fmt.Sprintf("battle started (seed %d)", ev.Seed)
	case *CreatureSpawnedEvent:
		return prefix + fmt.Sprintf("%s joins team %s", ev.Target, ev.Team)
	case *SkillUsedEvent:
		return prefix + fmt.Sprintf("%s uses %s", ev.Actor, ev.Skill)
	case *ProjectileHitEvent:
		return prefix + fmt.Sprintf("%s's %s lands at (%g,%g)", ev.Actor, ev.Skill, ev.At.X, ev.At.Y)
	case *DamageDealtEvent:
		return prefix + fmt.Sprintf("%s hits %s for %d", ev.Actor, ev.Target, ev.Amount)
	case *HealedEvent:
		return prefix + fmt.Sprintf("%s heals %d", ev.Target, ev.Amount)
	case *StunnedEvent:
		return prefix + fmt.Sprintf("%s is stunned for %s", ev.Target, ev.Duration)
	case *StatusAppliedEvent:
		return prefix + fmt.Sprintf("%s gains %s", ev.Target, ev.Status)
	case *StatusExpiredEvent:
		return prefix + fmt.Sprintf("%s loses %s", ev.Target, ev.Status)
	case *CombatFeedbackEvent:
		return prefix + fmt.Sprintf("%s at (%g,%g)", ev.Kind, ev.At.X, ev.At.Y)
	case *CreatureDiedEvent:
		if ev.Actor == "" {
			return prefix + fmt.Sprintf("%s dies", ev.Target)
		}
		return prefix + fmt.Sprintf("%s is slain by %s", ev.Target, ev.Actor)
	case *BattleEndedEvent:
		if ev.Winner == "" {
			return prefix + fmt.Sprintf("battle ends in a draw after %d ticks", ev.Ticks)
		}
		return prefix + fmt.Sprintf("team %s wins after %d ticks", ev.Winner, ev.Ticks)
	default:
		return prefix + string(e.GetType())
	}
}
