package sim

import (
	"sort"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/uuid"
)

// flight is a fired projectile travelling to its impact point
type flight struct {
	Caster     shared.EntityID
	Skill      string
	Origin     shared.Point
	Target     shared.Point
	ChainsLeft int
	Exclude    []shared.EntityID
}

// timer is one pending entry: either a delayed effect or a landing flight
type timer struct {
	token  effects.TimerToken
	due    time.Time
	seq    int
	effect effects.Effect
	flight *flight

	// shooter is set for shots not yet fired; aim is the creature a shot
	// was aimed at, if any
	shooter shared.EntityID
	aim     shared.EntityID
}

// Scheduler holds delayed effects and in-flight projectiles until they are due
type Scheduler struct {
	ids    uuid.Generator
	timers []*timer
	seq    int
}

// NewScheduler creates a scheduler issuing tokens from ids
func NewScheduler(ids uuid.Generator) *Scheduler {
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}
	return &Scheduler{ids: ids}
}

func (s *Scheduler) add(t *timer) effects.TimerToken {
	s.seq++
	t.seq = s.seq
	t.token = effects.TimerToken(s.ids.New())
	s.timers = append(s.timers, t)
	return t.token
}

// Cancel drops a pending timer. It reports whether the token was pending.
func (s *Scheduler) Cancel(token effects.TimerToken) bool {
	for i, t := range s.timers {
		if t.token == token {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// CancelFor drops every shot aimed at id and every shot id has not fired yet
func (s *Scheduler) CancelFor(id shared.EntityID) int {
	kept := s.timers[:0]
	cancelled := 0
	for _, t := range s.timers {
		if t.aim == id || t.shooter == id {
			cancelled++
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
	return cancelled
}

// popDue removes and returns timers due at or before now, earliest first.
// Timers due at the same instant keep scheduling order.
func (s *Scheduler) popDue(now time.Time) []*timer {
	var due, pending []*timer
	for _, t := range s.timers {
		if t.due.After(now) {
			pending = append(pending, t)
		} else {
			due = append(due, t)
		}
	}
	s.timers = pending

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	return due
}

// Pending reports how many timers are waiting
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// SpawnPending reports whether a delayed creature spawn is waiting
func (s *Scheduler) SpawnPending() bool {
	for _, t := range s.timers {
		if t.effect != nil && t.effect.Kind() == effects.KindCreateCreature {
			return true
		}
	}
	return false
}
