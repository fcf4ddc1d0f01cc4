package sim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/creature-battler/internal/domain/combat"
	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/KirkDiggler/creature-battler/internal/events"
	"github.com/KirkDiggler/creature-battler/internal/sim"
	"github.com/KirkDiggler/creature-battler/internal/uuid"
)

type WorldTestSuite struct {
	suite.Suite
	clock    *sim.Clock
	world    *sim.World
	recorder *recorder
}

func TestWorldSuite(t *testing.T) {
	suite.Run(t, new(WorldTestSuite))
}

func (s *WorldTestSuite) SetupTest() {
	bus := events.NewBus()
	s.recorder = &recorder{}
	bus.SubscribeAll(s.recorder)

	s.clock = sim.NewClock(sim.Epoch)
	s.world = sim.NewWorld(&sim.WorldConfig{
		Pack:     loadPack(s.T(), ""),
		Clock:    s.clock,
		Bus:      bus,
		TimerIDs: uuid.NewSequentialGenerator("timer"),
	})
}

func (s *WorldTestSuite) spawn(template string, team shared.TeamID, at shared.Point) *combat.Creature {
	id, err := s.world.SpawnCreature(template, team, at, "")
	s.Require().NoError(err)
	c, ok := s.world.Creature(id)
	s.Require().True(ok)
	return c
}

func (s *WorldTestSuite) TestSpawnCreatureAssignsSequentialIDs() {
	a := s.spawn("post", "red", shared.Point{})
	b := s.spawn("post", "blue", shared.Point{})
	c := s.spawn("brute", "blue", shared.Point{})

	s.Equal(shared.EntityID("post-1"), a.ID())
	s.Equal(shared.EntityID("post-2"), b.ID())
	s.Equal(shared.EntityID("brute-1"), c.ID())
	s.Equal(25, a.Health)

	_, ok := s.world.Statuses("brute-1")
	s.True(ok)
}

func (s *WorldTestSuite) TestSpawnUnknownTemplate() {
	_, err := s.world.SpawnCreature("dragon", "red", shared.Point{}, "")
	s.Error(err)
	s.True(battleErr.IsNotFound(err))
}

func (s *WorldTestSuite) TestQuery() {
	s.spawn("post", "red", shared.Point{})
	s.spawn("post", "blue", shared.Point{X: 2})
	far := s.spawn("dummy", "blue", shared.Point{X: 5})
	dead := s.spawn("dummy", "blue", shared.Point{X: 1})
	dead.TakeDamage(100)

	s.Equal([]shared.EntityID{"post-2"}, s.world.Query(shared.Point{}, combat.Shape{Radius: 2}, "red"))
	s.Equal([]shared.EntityID{"post-1"}, s.world.Query(shared.Point{}, combat.Shape{Radius: 2}, "blue"))
	s.Equal([]shared.EntityID{"post-2", far.ID()}, s.world.Query(shared.Point{}, combat.Shape{Radius: 5}, "red"))
}

func (s *WorldTestSuite) TestRoster() {
	s.spawn("post", "red", shared.Point{})
	s.spawn("post", "blue", shared.Point{})
	s.spawn("dummy", "green", shared.Point{})

	opponents := s.world.Opponents("red")
	s.Len(opponents, 2)
	s.Equal(shared.EntityID("post-2"), opponents[0].ID())
	s.Equal([]shared.TeamID{"blue", "green", "red"}, s.world.AliveTeams())

	value, err := s.world.Stats().Get("post-1", stats.IDMaxHealth)
	s.NoError(err)
	s.Equal(25, value)

	_, err = s.world.Stats().Get("ghost-1", stats.IDMaxHealth)
	s.True(battleErr.IsNotFound(err))
}

func (s *WorldTestSuite) TestApplyDamage() {
	s.spawn("brute", "red", shared.Point{})
	post := s.spawn("post", "blue", shared.Point{})

	s.NoError(s.world.ApplyDamage("brute-1", post.ID(), 40))
	s.Equal(0, post.Health)
	s.False(post.IsAlive())

	dealt := s.recorder.ofType(events.EventTypeDamageDealt)
	s.Require().Len(dealt, 1)
	s.Equal(25, dealt[0].(*events.DamageDealtEvent).Amount)
	s.Equal(shared.EntityID("brute-1"), dealt[0].GetActor())

	// Damage to the dead is ignored
	s.NoError(s.world.ApplyDamage("brute-1", post.ID(), 10))
	s.Len(s.recorder.ofType(events.EventTypeDamageDealt), 1)

	err := s.world.ApplyDamage("brute-1", "ghost-1", 10)
	s.True(battleErr.IsNotFound(err))
}

func (s *WorldTestSuite) TestHeal() {
	post := s.spawn("post", "blue", shared.Point{})

	s.NoError(s.world.Heal(post.ID(), 5))
	s.Empty(s.recorder.ofType(events.EventTypeHealed))

	post.TakeDamage(10)
	s.NoError(s.world.Heal(post.ID(), 50))
	s.Equal(25, post.Health)

	healed := s.recorder.ofType(events.EventTypeHealed)
	s.Require().Len(healed, 1)
	s.Equal(10, healed[0].(*events.HealedEvent).Amount)
}

func (s *WorldTestSuite) TestStun() {
	post := s.spawn("post", "blue", shared.Point{})

	s.NoError(s.world.Stun(post.ID(), 300*time.Millisecond))
	s.True(post.IsStunned(s.clock.Now()))
	s.False(post.IsStunned(s.clock.Now().Add(300 * time.Millisecond)))
	s.Len(s.recorder.ofType(events.EventTypeStunned), 1)
}

func (s *WorldTestSuite) TestKnockback() {
	post := s.spawn("post", "blue", shared.Point{X: 1})

	s.NoError(s.world.Knockback(post.ID(), shared.Point{}, 2))
	s.InDelta(3.0, post.Position.X, 1e-9)
	s.InDelta(0.0, post.Position.Y, 1e-9)

	// Standing on the origin there is no direction to push
	s.NoError(s.world.Knockback(post.ID(), post.Position, 2))
	s.InDelta(3.0, post.Position.X, 1e-9)
}

func (s *WorldTestSuite) TestSetStatModifier() {
	post := s.spawn("post", "blue", shared.Point{})

	s.NoError(s.world.SetStatModifier(post.ID(), stats.IDMaxHealth, stats.Add(15)))
	s.Equal(40, post.MaxHealth())

	err := s.world.SetStatModifier(post.ID(), stats.ID(9999), stats.Add(1))
	s.True(battleErr.IsInvalidArgument(err))
}

func (s *WorldTestSuite) TestScheduleAndCancel() {
	post := s.spawn("post", "blue", shared.Point{})

	token, err := s.world.ScheduleDelayed(effects.Heal{Target: post.ID(), Amount: 1}, time.Second)
	s.NoError(err)
	s.Equal(effects.TimerToken("timer-1"), token)
	s.Equal(1, s.world.Scheduler().Pending())

	s.True(s.world.CancelScheduled(token))
	s.False(s.world.CancelScheduled(token))
	s.Zero(s.world.Scheduler().Pending())

	_, err = s.world.ScheduleDelayed(nil, time.Second)
	s.True(battleErr.IsInvalidArgument(err))
}

func (s *WorldTestSuite) TestFireProjectileRequiresCaster() {
	err := s.world.FireProjectile(effects.FireProjectile{Caster: "ghost-1", Skill: "dart"})
	s.True(battleErr.IsNotFound(err))
}

func (s *WorldTestSuite) TestPlayEventPublishesFeedback() {
	s.NoError(s.world.PlayEvent(effects.EventEvade, shared.Point{X: 2, Y: 3}))
	s.NoError(s.world.PlayVfx(effects.VfxArea, shared.Point{}))

	feedback := s.recorder.ofType(events.EventTypeCombatFeedback)
	s.Require().Len(feedback, 1)
	s.Equal(effects.EventEvade, feedback[0].(*events.CombatFeedbackEvent).Kind)
}

func (s *WorldTestSuite) TestAddStatus() {
	post := s.spawn("post", "blue", shared.Point{})

	err := s.world.AddStatus(post.ID(), effects.Status{
		Name:   "Fortified",
		Source: "brute-1",
		Changes: []effects.StatChange{
			{Stat: stats.IDMaxHealth, Modifier: stats.Add(10)},
		},
	})
	s.NoError(err)
	s.Equal(35, post.MaxHealth())

	applied := s.recorder.ofType(events.EventTypeStatusApplied)
	s.Require().Len(applied, 1)
	s.Equal("Fortified", applied[0].(*events.StatusAppliedEvent).Status)
	s.Equal(shared.EntityID("brute-1"), applied[0].GetActor())

	err = s.world.AddStatus(post.ID(), effects.Status{})
	s.True(battleErr.IsInvalidArgument(err))
}

func (s *WorldTestSuite) TestSnapshotRestoreResolvesStatusOwners() {
	post := s.spawn("post", "blue", shared.Point{})
	s.Require().NoError(s.world.AddStatus(post.ID(), effects.Status{
		Name: "Fortified",
		Changes: []effects.StatChange{
			{Stat: stats.IDMaxHealth, Modifier: stats.Add(10)},
		},
	}))

	snap := post.Stats.Snapshot(post.ID())

	restored, err := stats.Restore(snap, s.clock, s.world.ResolveOwner)
	s.Require().NoError(err)
	s.Equal(35, stats.MaxHealth.Get(restored))

	manager, _ := s.world.Statuses(post.ID())
	manager.Clear()

	restored, err = stats.Restore(snap, s.clock, s.world.ResolveOwner)
	s.Require().NoError(err)
	s.Equal(25, stats.MaxHealth.Get(restored))
}
