package sim

import (
	"log"
	"sort"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/content"
	"github.com/KirkDiggler/creature-battler/internal/domain/combat"
	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	effectManager "github.com/KirkDiggler/creature-battler/internal/effects"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/KirkDiggler/creature-battler/internal/events"
	"github.com/KirkDiggler/creature-battler/internal/uuid"
)

const (
	// DefaultProjectileSpeed is in units per second
	DefaultProjectileSpeed = 25.0

	// overlap tolerance for collision and aim checks
	epsilon = 1e-6
)

// WorldConfig holds what NewWorld needs
type WorldConfig struct {
	Pack  *content.Pack
	Clock *Clock
	Bus   *events.Bus

	// TimerIDs issues scheduler tokens. Defaults to Google UUIDs.
	TimerIDs uuid.Generator

	// ProjectileSpeed in units per second. Zero means DefaultProjectileSpeed.
	ProjectileSpeed float64
}

type death struct {
	victim *combat.Creature
	killer shared.EntityID
}

// World is the in-memory battlefield. It implements effects.WorldMutator,
// combat.CollisionQuery and combat.Roster. Deaths and spawns are queued for
// the battle loop to settle.
type World struct {
	pack            *content.Pack
	clock           *Clock
	bus             *events.Bus
	scheduler       *Scheduler
	projectileSpeed float64

	creatures   []*combat.Creature
	byID        map[shared.EntityID]*combat.Creature
	statuses    map[shared.EntityID]*effectManager.Manager
	creatureIDs map[string]uuid.Generator

	deaths []death
	spawns []*combat.Creature
	tick   int
}

// NewWorld creates an empty world
func NewWorld(cfg *WorldConfig) *World {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.Pack == nil {
		panic("content pack is required")
	}
	if cfg.Clock == nil {
		panic("clock is required")
	}
	if cfg.Bus == nil {
		panic("event bus is required")
	}
	speed := cfg.ProjectileSpeed
	if speed <= 0 {
		speed = DefaultProjectileSpeed
	}

	return &World{
		pack:            cfg.Pack,
		clock:           cfg.Clock,
		bus:             cfg.Bus,
		scheduler:       NewScheduler(cfg.TimerIDs),
		projectileSpeed: speed,
		byID:            make(map[shared.EntityID]*combat.Creature),
		statuses:        make(map[shared.EntityID]*effectManager.Manager),
		creatureIDs:     make(map[string]uuid.Generator),
	}
}

// Scheduler exposes the pending timers
func (w *World) Scheduler() *Scheduler {
	return w.scheduler
}

// Creature implements combat.Roster
func (w *World) Creature(id shared.EntityID) (*combat.Creature, bool) {
	c, ok := w.byID[id]
	return c, ok
}

// Opponents implements combat.Roster. Dead creatures are included; callers
// filter on IsAlive.
func (w *World) Opponents(team shared.TeamID) []*combat.Creature {
	var out []*combat.Creature
	for _, c := range w.creatures {
		if c.Team != team {
			out = append(out, c)
		}
	}
	return out
}

// Creatures lists every creature in spawn order
func (w *World) Creatures() []*combat.Creature {
	out := make([]*combat.Creature, len(w.creatures))
	copy(out, w.creatures)
	return out
}

// AliveTeams lists teams with at least one living creature, sorted
func (w *World) AliveTeams() []shared.TeamID {
	seen := make(map[shared.TeamID]bool)
	var teams []shared.TeamID
	for _, c := range w.creatures {
		if c.IsAlive() && !seen[c.Team] {
			seen[c.Team] = true
			teams = append(teams, c.Team)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })
	return teams
}

// Query implements combat.CollisionQuery. Creatures are points; a creature
// overlaps when it lies within the shape's radius of origin.
func (w *World) Query(origin shared.Point, shape combat.Shape, excludeTeam shared.TeamID) []shared.EntityID {
	var out []shared.EntityID
	for _, c := range w.creatures {
		if !c.IsAlive() || c.Team == excludeTeam {
			continue
		}
		if origin.DistanceTo(c.Position) <= float64(shape.Radius)+epsilon {
			out = append(out, c.ID())
		}
	}
	return out
}

// Stats gives read-only stat access to the roster
func (w *World) Stats() combat.StatProvider {
	return combat.RosterStats{Roster: w}
}

// Statuses returns the status manager of a creature
func (w *World) Statuses(id shared.EntityID) (*effectManager.Manager, bool) {
	m, ok := w.statuses[id]
	return m, ok
}

// ResolveOwner maps a creature or status instance ID to a live stat owner.
// It is the resolver handed to stats.Restore.
func (w *World) ResolveOwner(id shared.EntityID) (stats.Owner, bool) {
	if c, ok := w.byID[id]; ok {
		return c, true
	}
	for _, c := range w.creatures {
		if owner, ok := w.statuses[c.ID()].Owner(id); ok {
			return owner, true
		}
	}
	return nil, false
}

func (w *World) lookup(id shared.EntityID) (*combat.Creature, error) {
	c, ok := w.byID[id]
	if !ok {
		return nil, battleErr.NotFoundf("creature %s not found", id).
			WithMeta("entity", string(id))
	}
	return c, nil
}

// SpawnCreature implements effects.WorldMutator. IDs are "<template>-<n>".
func (w *World) SpawnCreature(template string, team shared.TeamID, at shared.Point, owner shared.EntityID) (shared.EntityID, error) {
	ids, ok := w.creatureIDs[template]
	if !ok {
		ids = uuid.NewSequentialGenerator(template)
		w.creatureIDs[template] = ids
	}

	id := shared.EntityID(ids.New())
	c, err := w.pack.Spawn(template, &content.SpawnConfig{
		ID:       id,
		Team:     team,
		Position: at,
		Owner:    owner,
		Clock:    w.clock,
	})
	if err != nil {
		return "", battleErr.Wrapf(err, "failed to spawn %s", template)
	}

	w.creatures = append(w.creatures, c)
	w.byID[id] = c
	w.statuses[id] = effectManager.NewManager(&effectManager.ManagerConfig{
		Table:       c.Stats,
		Clock:       w.clock,
		IDGenerator: uuid.NewSequentialGenerator(string(id) + "-status"),
	})
	w.spawns = append(w.spawns, c)
	return id, nil
}

// ApplyDamage implements effects.WorldMutator. Damage to the dead is ignored.
func (w *World) ApplyDamage(source, target shared.EntityID, amount int) error {
	c, err := w.lookup(target)
	if err != nil {
		return err
	}
	lost := c.TakeDamage(amount)
	if lost == 0 {
		return nil
	}

	if err := w.emit(&events.DamageDealtEvent{
		BaseEvent: w.base(events.EventTypeDamageDealt, source, target),
		Amount:    lost,
	}); err != nil {
		return err
	}

	if !c.IsAlive() {
		w.deaths = append(w.deaths, death{victim: c, killer: source})
	}
	return nil
}

// Heal implements effects.WorldMutator
func (w *World) Heal(target shared.EntityID, amount int) error {
	c, err := w.lookup(target)
	if err != nil {
		return err
	}
	restored := c.Heal(amount)
	if restored == 0 {
		return nil
	}
	return w.emit(&events.HealedEvent{
		BaseEvent: w.base(events.EventTypeHealed, target, target),
		Amount:    restored,
	})
}

// Stun implements effects.WorldMutator
func (w *World) Stun(target shared.EntityID, duration time.Duration) error {
	c, err := w.lookup(target)
	if err != nil {
		return err
	}
	if !c.IsAlive() || duration <= 0 {
		return nil
	}
	c.Stun(w.clock.Now(), duration)
	return w.emit(&events.StunnedEvent{
		BaseEvent: w.base(events.EventTypeStunned, "", target),
		Duration:  duration,
	})
}

// Knockback implements effects.WorldMutator by pushing target directly
// away from from. A target standing on from does not move.
func (w *World) Knockback(target shared.EntityID, from shared.Point, distance int) error {
	c, err := w.lookup(target)
	if err != nil {
		return err
	}
	if !c.IsAlive() || distance <= 0 {
		return nil
	}
	pos := c.Position
	away := shared.Point{X: 2*pos.X - from.X, Y: 2*pos.Y - from.Y}
	c.Position = pos.Toward(away, float64(distance))
	return nil
}

// FireProjectile implements effects.WorldMutator. The shot lands after
// travelling from Origin to Target at the world's projectile speed.
func (w *World) FireProjectile(p effects.FireProjectile) error {
	caster, err := w.lookup(p.Caster)
	if err != nil {
		return err
	}
	travel := time.Duration(p.Origin.DistanceTo(p.Target) / w.projectileSpeed * float64(time.Second))

	w.scheduler.add(&timer{
		due: w.clock.Now().Add(travel),
		flight: &flight{
			Caster:     p.Caster,
			Skill:      p.Skill,
			Origin:     p.Origin,
			Target:     p.Target,
			ChainsLeft: p.ChainsLeft,
			Exclude:    p.Exclude,
		},
		aim: w.aimedAt(p.Target, caster.Team),
	})
	return nil
}

// ScheduleDelayed implements effects.WorldMutator
func (w *World) ScheduleDelayed(effect effects.Effect, delay time.Duration) (effects.TimerToken, error) {
	if effect == nil {
		return "", battleErr.InvalidArgumentf("delayed effect is required")
	}
	t := &timer{
		due:    w.clock.Now().Add(max(delay, 0)),
		effect: effect,
	}
	if shot, ok := effect.(effects.FireProjectile); ok {
		t.shooter = shot.Caster
		if caster, found := w.byID[shot.Caster]; found {
			t.aim = w.aimedAt(shot.Target, caster.Team)
		}
	}
	return w.scheduler.add(t), nil
}

// CancelScheduled implements effects.WorldMutator
func (w *World) CancelScheduled(token effects.TimerToken) bool {
	return w.scheduler.Cancel(token)
}

// PlayEvent implements effects.WorldMutator
func (w *World) PlayEvent(kind effects.EventKind, at shared.Point) error {
	return w.emit(&events.CombatFeedbackEvent{
		BaseEvent: w.base(events.EventTypeCombatFeedback, "", ""),
		Kind:      kind,
		At:        at,
	})
}

// PlayVfx implements effects.WorldMutator. There is nothing to render.
func (w *World) PlayVfx(effects.VfxKind, shared.Point) error {
	return nil
}

// SetStatModifier implements effects.WorldMutator
func (w *World) SetStatModifier(target shared.EntityID, stat stats.ID, modifier stats.Modifier) error {
	c, err := w.lookup(target)
	if err != nil {
		return err
	}
	if !stats.Registered(stat) {
		return battleErr.InvalidArgumentf("stat %d is not registered", stat).
			WithMeta("entity", string(target))
	}
	c.Stats.InsertModifier(stat, modifier)
	return nil
}

// ShowDamageText implements effects.WorldMutator. Damage numbers reach the
// log through ApplyDamage, so only the target is checked.
func (w *World) ShowDamageText(target shared.EntityID, _ int, _ bool) error {
	_, err := w.lookup(target)
	return err
}

// AddStatus implements effects.WorldMutator
func (w *World) AddStatus(target shared.EntityID, status effects.Status) error {
	c, err := w.lookup(target)
	if err != nil {
		return err
	}
	if !c.IsAlive() {
		return nil
	}
	if _, err := w.statuses[target].AddEffect(status); err != nil {
		return battleErr.Wrapf(err, "failed to add %s to %s", status.Name, target)
	}
	return w.emit(&events.StatusAppliedEvent{
		BaseEvent: w.base(events.EventTypeStatusApplied, status.Source, target),
		Status:    status.Name,
	})
}

// aimedAt finds the living non-ally standing on point
func (w *World) aimedAt(point shared.Point, casterTeam shared.TeamID) shared.EntityID {
	for _, c := range w.creatures {
		if c.IsAlive() && c.Team != casterTeam && c.Position.DistanceTo(point) <= epsilon {
			return c.ID()
		}
	}
	return ""
}

// stale reports whether a timer already taken off the schedule belongs to a
// creature that died since, the same shots CancelFor drops
func (w *World) stale(t *timer) bool {
	for _, id := range []shared.EntityID{t.shooter, t.aim} {
		if id == "" {
			continue
		}
		if c, ok := w.byID[id]; !ok || !c.IsAlive() {
			return true
		}
	}
	return false
}

// removeFromPlay clears a dead creature's statuses and pending shots
func (w *World) removeFromPlay(c *combat.Creature) {
	w.statuses[c.ID()].Clear()
	if n := w.scheduler.CancelFor(c.ID()); n > 0 {
		log.Printf("World: cancelled %d pending shots for %s", n, c.ID())
	}
}

// expireStatuses drops finished statuses and publishes their expiry
func (w *World) expireStatuses() error {
	for _, c := range w.creatures {
		for _, expired := range w.statuses[c.ID()].ProcessExpired() {
			if err := w.emit(&events.StatusExpiredEvent{
				BaseEvent: w.base(events.EventTypeStatusExpired, expired.Source, c.ID()),
				Status:    expired.Name,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *World) popDeath() (death, bool) {
	if len(w.deaths) == 0 {
		return death{}, false
	}
	d := w.deaths[0]
	w.deaths = w.deaths[1:]
	return d, true
}

func (w *World) popSpawn() (*combat.Creature, bool) {
	if len(w.spawns) == 0 {
		return nil, false
	}
	c := w.spawns[0]
	w.spawns = w.spawns[1:]
	return c, true
}

func (w *World) base(t events.EventType, actor, target shared.EntityID) events.BaseEvent {
	return events.BaseEvent{Type: t, Tick: w.tick, Actor: actor, Target: target}
}

func (w *World) emit(e events.Event) error {
	return w.bus.Emit(e)
}
