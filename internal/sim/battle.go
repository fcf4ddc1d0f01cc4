package sim

import (
	"context"
	"log"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/content"
	"github.com/KirkDiggler/creature-battler/internal/domain/combat"
	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/rules"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/KirkDiggler/creature-battler/internal/events"
	"github.com/KirkDiggler/creature-battler/internal/random"
	"github.com/KirkDiggler/creature-battler/internal/uuid"
)

const (
	DefaultTick      = 100 * time.Millisecond
	DefaultMaxTicks  = 3000
	DefaultMoveSpeed = 4.0
)

// BattleConfig holds what NewBattle needs
type BattleConfig struct {
	Pack *content.Pack
	Seed uint64

	// Tick is the simulated time per Step
	Tick time.Duration

	// MaxTicks ends the battle in a draw once reached
	MaxTicks int

	// MoveSpeed in units per second for creatures closing on a target
	MoveSpeed float64

	ProjectileSpeed float64

	// Bus receives every battle event. A private bus is created when nil.
	Bus *events.Bus

	TimerIDs uuid.Generator

	// Random replaces the seeded source
	Random random.Source
}

// Placement puts a creature on the field
type Placement struct {
	Template string
	Team     shared.TeamID
	At       shared.Point
}

// Result summarizes a finished battle. Winner is empty on a draw.
type Result struct {
	Seed      uint64
	Winner    shared.TeamID
	Ticks     int
	Survivors []shared.EntityID
}

// Battle runs one fight on a single goroutine
type Battle struct {
	seed      uint64
	tick      time.Duration
	maxTicks  int
	moveSpeed float64

	clock    *Clock
	bus      *events.Bus
	world    *World
	resolver *combat.Resolver
	applier  *effects.Applier
	rules    *rules.Table

	ticks   int
	started bool
	ended   bool
	winner  shared.TeamID
}

// NewBattle wires a world, resolver, applier and rule table for one fight
func NewBattle(cfg *BattleConfig) (*Battle, error) {
	if cfg == nil {
		return nil, battleErr.InvalidArgumentf("battle config is required")
	}
	if cfg.Pack == nil {
		return nil, battleErr.InvalidArgumentf("content pack is required")
	}

	tick := cfg.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	maxTicks := cfg.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	moveSpeed := cfg.MoveSpeed
	if moveSpeed <= 0 {
		moveSpeed = DefaultMoveSpeed
	}
	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus()
	}
	src := cfg.Random
	if src == nil {
		src = random.NewSeeded(cfg.Seed)
	}

	clock := NewClock(Epoch)
	world := NewWorld(&WorldConfig{
		Pack:            cfg.Pack,
		Clock:           clock,
		Bus:             bus,
		TimerIDs:        cfg.TimerIDs,
		ProjectileSpeed: cfg.ProjectileSpeed,
	})
	resolver := combat.NewResolver(&combat.ResolverConfig{
		Services: combat.Services{
			Collision: world,
			Random:    src,
			Roster:    world,
			Clock:     clock,
		},
	})
	applier := effects.NewApplier(world)

	table, err := cfg.Pack.RuleTable(applier, src)
	if err != nil {
		return nil, battleErr.Wrap(err, "failed to build rule table")
	}

	return &Battle{
		seed:      cfg.Seed,
		tick:      tick,
		maxTicks:  maxTicks,
		moveSpeed: moveSpeed,
		clock:     clock,
		bus:       bus,
		world:     world,
		resolver:  resolver,
		applier:   applier,
		rules:     table,
	}, nil
}

// World returns the battlefield
func (b *Battle) World() *World { return b.world }

// Bus returns the event bus
func (b *Battle) Bus() *events.Bus { return b.bus }

// Rules returns this battle's rule table
func (b *Battle) Rules() *rules.Table { return b.rules }

// Clock returns the simulation clock
func (b *Battle) Clock() *Clock { return b.clock }

// Ticks returns the number of completed steps
func (b *Battle) Ticks() int { return b.ticks }

// Ended reports whether the battle is over
func (b *Battle) Ended() bool { return b.ended }

// Spawn places a creature and settles its activation
func (b *Battle) Spawn(ctx context.Context, p Placement) (*combat.Creature, error) {
	if b.ended {
		return nil, battleErr.Validationf("battle has ended")
	}
	id, err := b.world.SpawnCreature(p.Template, p.Team, p.At, "")
	if err != nil {
		return nil, err
	}
	if err := b.settle(ctx); err != nil {
		return nil, err
	}
	c, _ := b.world.Creature(id)
	return c, nil
}

// Start opens the battle
func (b *Battle) Start(ctx context.Context) error {
	if b.started {
		return battleErr.Validationf("battle already started")
	}
	b.started = true
	log.Printf("Battle: starting with seed %d", b.seed)

	if err := b.bus.Emit(&events.BattleStartedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeBattleStarted},
		Seed:      b.seed,
	}); err != nil {
		return err
	}
	if err := b.dispatch(ctx, rules.EventBattleStarted, map[string]any{"tick": 0}); err != nil {
		return err
	}
	return b.settle(ctx)
}

// Step advances the battle by one tick: statuses expire, due timers fire,
// then every living creature acts in spawn order. It reports whether the
// battle ended.
func (b *Battle) Step(ctx context.Context) (bool, error) {
	if !b.started {
		return false, battleErr.Validationf("battle not started")
	}
	if b.ended {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, battleErr.Wrap(err, "step interrupted")
	}

	b.ticks++
	b.world.tick = b.ticks
	now := b.clock.Advance(b.tick)

	if err := b.world.expireStatuses(); err != nil {
		return false, err
	}

	for _, t := range b.world.scheduler.popDue(now) {
		// an earlier timer in this batch may have killed the shooter or target
		if b.world.stale(t) {
			continue
		}
		if err := b.fire(ctx, t); err != nil {
			return false, err
		}
		if err := b.settle(ctx); err != nil {
			return false, err
		}
	}

	for _, c := range b.world.Creatures() {
		if err := b.act(ctx, c); err != nil {
			return false, err
		}
		if err := b.settle(ctx); err != nil {
			return false, err
		}
	}

	if err := b.dispatch(ctx, rules.EventTick, map[string]any{"tick": b.ticks}); err != nil {
		return false, err
	}
	if err := b.settle(ctx); err != nil {
		return false, err
	}

	return b.checkEnd(ctx)
}

// Run starts the battle if needed and steps until it ends
func (b *Battle) Run(ctx context.Context) (*Result, error) {
	if !b.started {
		if err := b.Start(ctx); err != nil {
			return nil, err
		}
	}
	for {
		done, err := b.Step(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			return b.Result(), nil
		}
	}
}

// Result reports the outcome so far
func (b *Battle) Result() *Result {
	result := &Result{
		Seed:   b.seed,
		Winner: b.winner,
		Ticks:  b.ticks,
	}
	for _, c := range b.world.creatures {
		if c.IsAlive() {
			result.Survivors = append(result.Survivors, c.ID())
		}
	}
	return result
}

func (b *Battle) fire(ctx context.Context, t *timer) error {
	if t.effect != nil {
		return b.apply(ctx, []effects.Effect{t.effect})
	}

	f := t.flight
	caster, ok := b.world.Creature(f.Caster)
	if !ok {
		return nil
	}
	skill, ok := caster.Skill(f.Skill)
	if !ok {
		return nil
	}

	if err := b.bus.Emit(&events.ProjectileHitEvent{
		BaseEvent: b.world.base(events.EventTypeProjectileHit, caster.ID(), t.aim),
		Skill:     f.Skill,
		At:        f.Target,
	}); err != nil {
		return err
	}

	return b.apply(ctx, b.resolver.ResolveProjectileHit(caster, skill, &combat.Projectile{
		Skill:      f.Skill,
		Origin:     f.Origin,
		Position:   f.Target,
		ChainsLeft: f.ChainsLeft,
		Exclude:    f.Exclude,
	}))
}

// act lets one creature close distance and use a skill
func (b *Battle) act(ctx context.Context, c *combat.Creature) error {
	if !c.IsAlive() || c.IsStunned(b.clock.Now()) {
		return nil
	}
	b.approach(c)

	skill, ok := b.resolver.ChooseSkill(c)
	if !ok || !b.inReach(c, skill) {
		return nil
	}

	out := b.resolver.UseSkill(c, skill)
	if err := b.bus.Emit(&events.SkillUsedEvent{
		BaseEvent: b.world.base(events.EventTypeSkillUsed, c.ID(), ""),
		Skill:     skill.Key(),
		Effects:   len(out),
	}); err != nil {
		return err
	}
	return b.apply(ctx, out)
}

// approach moves a creature with only melee or area skills toward the
// nearest opponent until its longest reach covers it
func (b *Battle) approach(c *combat.Creature) {
	if len(c.Skills) == 0 {
		return
	}
	reach := 0
	for _, s := range c.Skills {
		if s.Category() == combat.CategoryProjectile {
			return
		}
		reach = max(reach, stats.Radius.Get(s.Stats))
	}

	target, ok := b.nearestOpponent(c)
	if !ok {
		return
	}
	gap := c.Position.DistanceTo(target.Position) - float64(reach)
	if gap <= epsilon {
		return
	}
	step := b.moveSpeed * b.tick.Seconds()
	c.Position = c.Position.Toward(target.Position, min(step, gap))
}

func (b *Battle) inReach(c *combat.Creature, skill *combat.SkillInstance) bool {
	target, ok := b.nearestOpponent(c)
	if !ok {
		return false
	}
	if skill.Category() == combat.CategoryProjectile {
		return true
	}
	return c.Position.DistanceTo(target.Position) <= float64(stats.Radius.Get(skill.Stats))+epsilon
}

func (b *Battle) nearestOpponent(c *combat.Creature) (*combat.Creature, bool) {
	var (
		best     *combat.Creature
		bestDist float64
	)
	for _, o := range b.world.Opponents(c.Team) {
		if !o.IsAlive() {
			continue
		}
		if d := c.Position.DistanceTo(o.Position); best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, best != nil
}

// settle handles queued deaths and spawns until none are left. Handling one
// may queue more.
func (b *Battle) settle(ctx context.Context) error {
	for {
		if d, ok := b.world.popDeath(); ok {
			if err := b.handleDeath(ctx, d); err != nil {
				return err
			}
			continue
		}
		if c, ok := b.world.popSpawn(); ok {
			if err := b.handleSpawn(ctx, c); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

func (b *Battle) handleDeath(ctx context.Context, d death) error {
	victim := d.victim
	b.world.removeFromPlay(victim)

	if err := b.bus.Emit(&events.CreatureDiedEvent{
		BaseEvent: b.world.base(events.EventTypeCreatureDied, d.killer, victim.ID()),
		Team:      victim.Team,
	}); err != nil {
		return err
	}

	var killer *combat.Creature
	if k, ok := b.world.Creature(d.killer); ok && k != victim && k.IsAlive() {
		killer = k
	}
	if err := b.apply(ctx, b.resolver.HandleDeath(victim, killer)); err != nil {
		return err
	}

	return b.dispatch(ctx, rules.EventCreatureDied, map[string]any{
		"creature": string(victim.ID()),
		"template": victim.Template,
		"team":     string(victim.Team),
		"killer":   string(d.killer),
	})
}

func (b *Battle) handleSpawn(ctx context.Context, c *combat.Creature) error {
	if err := b.bus.Emit(&events.CreatureSpawnedEvent{
		BaseEvent: b.world.base(events.EventTypeCreatureSpawned, c.Owner, c.ID()),
		Template:  c.Template,
		Team:      c.Team,
	}); err != nil {
		return err
	}
	if err := b.apply(ctx, b.resolver.Activate(c)); err != nil {
		return err
	}
	return b.dispatch(ctx, rules.EventCreatureSpawned, map[string]any{
		"creature": string(c.ID()),
		"template": c.Template,
		"team":     string(c.Team),
		"owner":    string(c.Owner),
	})
}

// checkEnd closes the battle when at most one team is standing and no
// spawn is pending, or when the tick limit is reached
func (b *Battle) checkEnd(ctx context.Context) (bool, error) {
	teams := b.world.AliveTeams()
	switch {
	case len(teams) <= 1 && !b.world.scheduler.SpawnPending():
		if len(teams) == 1 {
			b.winner = teams[0]
		}
	case b.ticks >= b.maxTicks:
	default:
		return false, nil
	}

	b.ended = true
	log.Printf("Battle: ended after %d ticks, winner %q", b.ticks, b.winner)

	if err := b.bus.Emit(&events.BattleEndedEvent{
		BaseEvent: b.world.base(events.EventTypeBattleEnded, "", ""),
		Winner:    b.winner,
		Ticks:     b.ticks,
	}); err != nil {
		return true, err
	}
	if err := b.dispatch(ctx, rules.EventBattleEnded, map[string]any{
		"winner": string(b.winner),
		"ticks":  b.ticks,
	}); err != nil {
		return true, err
	}
	return true, b.settle(ctx)
}

func (b *Battle) apply(ctx context.Context, list []effects.Effect) error {
	if len(list) == 0 {
		return nil
	}
	_, err := b.applier.Apply(ctx, list)
	return err
}

func (b *Battle) dispatch(ctx context.Context, event rules.Event, facts map[string]any) error {
	if _, err := b.rules.Dispatch(ctx, event, facts); err != nil {
		return battleErr.Wrapf(err, "rules failed on %s", event)
	}
	return nil
}
