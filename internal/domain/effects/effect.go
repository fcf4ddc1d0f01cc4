// Package effects holds the declarative world mutations produced by combat
// resolution and the thin layer that applies them to a world.
package effects

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
)

// Kind discriminates the Effect union
type Kind string

const (
	KindApplyDamage       Kind = "apply_damage"
	KindDamageText        Kind = "damage_text"
	KindHeal              Kind = "heal"
	KindStun              Kind = "stun"
	KindKnockback         Kind = "knockback"
	KindFireProjectile    Kind = "fire_projectile"
	KindCreateCreature    Kind = "create_creature"
	KindApplyModifier     Kind = "apply_modifier"
	KindPlayEvent         Kind = "play_event"
	KindPlayVfx           Kind = "play_vfx"
	KindSpawnStatusEffect Kind = "spawn_status_effect"
	KindDelayed           Kind = "delayed"
)

// EventKind is a combat feedback event shown to the player
type EventKind string

const (
	EventMissed EventKind = "missed"
	EventEvade  EventKind = "evade"
	EventCrit   EventKind = "crit"
	EventStun   EventKind = "stun"
)

// VfxKind selects a visual played at a point
type VfxKind string

const (
	VfxMelee            VfxKind = "melee"
	VfxArea             VfxKind = "area"
	VfxProjectileImpact VfxKind = "projectile_impact"
)

// Effect is a data-only request for a single world mutation.
// Effects are created during resolution and consumed exactly once.
type Effect interface {
	Kind() Kind
	Execute(w WorldMutator) error
}

// ApplyDamage subtracts health from Target
type ApplyDamage struct {
	Source shared.EntityID
	Target shared.EntityID
	Amount int
}

func (e ApplyDamage) Kind() Kind { return KindApplyDamage }

func (e ApplyDamage) Execute(w WorldMutator) error {
	return w.ApplyDamage(e.Source, e.Target, e.Amount)
}

// DamageText shows a floating number over Target
type DamageText struct {
	Target shared.EntityID
	Amount int
	Crit   bool
}

func (e DamageText) Kind() Kind { return KindDamageText }

func (e DamageText) Execute(w WorldMutator) error {
	return w.ShowDamageText(e.Target, e.Amount, e.Crit)
}

// Heal restores health to Target
type Heal struct {
	Target shared.EntityID
	Amount int
}

func (e Heal) Kind() Kind { return KindHeal }

func (e Heal) Execute(w WorldMutator) error {
	return w.Heal(e.Target, e.Amount)
}

// Stun disables Target for Duration
type Stun struct {
	Target   shared.EntityID
	Duration time.Duration
}

func (e Stun) Kind() Kind { return KindStun }

func (e Stun) Execute(w WorldMutator) error {
	return w.Stun(e.Target, e.Duration)
}

// Knockback pushes Target away from From
type Knockback struct {
	Target   shared.EntityID
	From     shared.Point
	Distance int
}

func (e Knockback) Kind() Kind { return KindKnockback }

func (e Knockback) Execute(w WorldMutator) error {
	return w.Knockback(e.Target, e.From, e.Distance)
}

// FireProjectile launches a projectile for a skill. ChainsLeft counts the
// remaining bounces and Exclude lists creatures already hit by the chain.
type FireProjectile struct {
	Caster     shared.EntityID
	Skill      string
	Origin     shared.Point
	Target     shared.Point
	ChainsLeft int
	Exclude    []shared.EntityID
}

func (e FireProjectile) Kind() Kind { return KindFireProjectile }

func (e FireProjectile) Execute(w WorldMutator) error {
	return w.FireProjectile(e)
}

// CreateCreature spawns a creature from a content template
type CreateCreature struct {
	Template string
	Team     shared.TeamID
	At       shared.Point
	Owner    shared.EntityID
}

func (e CreateCreature) Kind() Kind { return KindCreateCreature }

func (e CreateCreature) Execute(w WorldMutator) error {
	_, err := w.SpawnCreature(e.Template, e.Team, e.At, e.Owner)
	return err
}

// ApplyModifier inserts a modifier into an entity's stat table
type ApplyModifier struct {
	Target   shared.EntityID
	Stat     stats.ID
	Modifier stats.Modifier
}

func (e ApplyModifier) Kind() Kind { return KindApplyModifier }

func (e ApplyModifier) Execute(w WorldMutator) error {
	return w.SetStatModifier(e.Target, e.Stat, e.Modifier)
}

// PlayEvent shows combat feedback at a point
type PlayEvent struct {
	Event EventKind
	At    shared.Point
}

func (e PlayEvent) Kind() Kind { return KindPlayEvent }

func (e PlayEvent) Execute(w WorldMutator) error {
	return w.PlayEvent(e.Event, e.At)
}

// PlayVfx plays a visual at a point
type PlayVfx struct {
	Vfx    VfxKind
	At     shared.Point
	Radius int
}

func (e PlayVfx) Kind() Kind { return KindPlayVfx }

func (e PlayVfx) Execute(w WorldMutator) error {
	return w.PlayVfx(e.Vfx, e.At)
}

// StackingRule decides what happens when a status with the same name is
// already active on the target
type StackingRule string

const (
	StackingReplace StackingRule = "replace"
	StackingStack   StackingRule = "stack"
	StackingRefresh StackingRule = "refresh"
	StackingIgnore  StackingRule = "ignore"
)

// StatChange is one modifier a status holds on its target while active
type StatChange struct {
	Stat     stats.ID
	Modifier stats.Modifier
}

// Status describes a named, timed bundle of stat changes
type Status struct {
	Name     string
	Source   shared.EntityID
	Duration time.Duration
	Changes  []StatChange
	Stacking StackingRule
}

// SpawnStatusEffect attaches a status to Target
type SpawnStatusEffect struct {
	Target shared.EntityID
	Status Status
}

func (e SpawnStatusEffect) Kind() Kind { return KindSpawnStatusEffect }

func (e SpawnStatusEffect) Execute(w WorldMutator) error {
	return w.AddStatus(e.Target, e.Status)
}

// Delayed defers Effect by Delay using the world's scheduler
type Delayed struct {
	Effect Effect
	Delay  time.Duration
}

// After wraps e in a Delayed when delay is positive
func After(delay time.Duration, e Effect) Effect {
	if delay <= 0 {
		return e
	}
	return Delayed{Effect: e, Delay: delay}
}

func (e Delayed) Kind() Kind { return KindDelayed }

func (e Delayed) Execute(w WorldMutator) error {
	_, err := w.ScheduleDelayed(e.Effect, e.Delay)
	return err
}

// Describe renders an effect for combat logs
func Describe(e Effect) string {
	switch v := e.(type) {
	case ApplyDamage:
		return fmt.Sprintf("%s deals %d to %s", v.Source, v.Amount, v.Target)
	case Heal:
		return fmt.Sprintf("%s heals %d", v.Target, v.Amount)
	case Stun:
		return fmt.Sprintf("%s stunned for %s", v.Target, v.Duration)
	case Knockback:
		return fmt.Sprintf("%s knocked back %d", v.Target, v.Distance)
	case FireProjectile:
		return fmt.Sprintf("%s fires %s toward (%g,%g)", v.Caster, v.Skill, v.Target.X, v.Target.Y)
	case CreateCreature:
		return fmt.Sprintf("spawn %s for team %s", v.Template, v.Team)
	case ApplyModifier:
		return fmt.Sprintf("%s %s %s %d", v.Target, v.Stat, v.Modifier.Op, v.Modifier.Value)
	case PlayEvent:
		return fmt.Sprintf("event %s", v.Event)
	case SpawnStatusEffect:
		return fmt.Sprintf("%s gains %s", v.Target, v.Status.Name)
	case Delayed:
		return fmt.Sprintf("after %s: %s", v.Delay, Describe(v.Effect))
	default:
		return string(e.Kind())
	}
}
