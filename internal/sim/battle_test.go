package sim_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/creature-battler/internal/content"
	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/KirkDiggler/creature-battler/internal/events"
	"github.com/KirkDiggler/creature-battler/internal/sim"
	"github.com/KirkDiggler/creature-battler/internal/testutils"
	"github.com/KirkDiggler/creature-battler/internal/uuid"
)

type BattleTestSuite struct {
	suite.Suite
	ctx      context.Context
	bus      *events.Bus
	recorder *recorder
	tally    *events.Tally
	log      *events.CombatLog
}

func TestBattleSuite(t *testing.T) {
	suite.Run(t, new(BattleTestSuite))
}

func (s *BattleTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.bus = events.NewBus()
	s.recorder = &recorder{}
	s.tally = events.NewTally()
	s.log = events.NewCombatLog(io.Discard)
	s.bus.SubscribeAll(s.recorder)
	s.bus.SubscribeAll(s.tally)
	s.bus.SubscribeAll(s.log)
}

func (s *BattleTestSuite) newBattle(pack *content.Pack, opts ...func(*sim.BattleConfig)) *sim.Battle {
	cfg := &sim.BattleConfig{
		Pack:     pack,
		Seed:     7,
		Bus:      s.bus,
		TimerIDs: uuid.NewSequentialGenerator("timer"),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	battle, err := sim.NewBattle(cfg)
	s.Require().NoError(err)
	return battle
}

func (s *BattleTestSuite) place(b *sim.Battle, template string, team shared.TeamID, x float64) shared.EntityID {
	c, err := b.Spawn(s.ctx, sim.Placement{Template: template, Team: team, At: shared.Point{X: x}})
	s.Require().NoError(err)
	return c.ID()
}

func (s *BattleTestSuite) step(b *sim.Battle, n int) {
	for i := 0; i < n; i++ {
		_, err := b.Step(s.ctx)
		s.Require().NoError(err)
	}
}

func (s *BattleTestSuite) TestMeleeBattleRunsToVictory() {
	battle := s.newBattle(loadPack(s.T(), countDeaths))
	s.place(battle, "brute", "red", 0)
	s.place(battle, "post", "blue", 1)

	result, err := battle.Run(s.ctx)
	s.Require().NoError(err)

	// Jab lands on ticks 1, 6 and 11 with a 500ms cooldown
	s.Equal(shared.TeamID("red"), result.Winner)
	s.Equal(11, result.Ticks)
	s.Equal([]shared.EntityID{"brute-1"}, result.Survivors)
	s.True(battle.Ended())

	s.Equal(25, s.tally.Damage["brute-1"])
	s.Equal(1, s.tally.Kills["brute-1"])
	s.Equal(3, s.tally.Skills["jab"])

	deaths, _ := battle.Rules().Variable("deaths")
	s.Equal(1, deaths)

	lines := s.log.Lines()
	s.Contains(lines, "[0011] post-1 is slain by brute-1")
	s.Equal("[0011] team red wins after 11 ticks", lines[len(lines)-1])
}

func (s *BattleTestSuite) TestSummonOnDeathJoinsTheFight() {
	battle := s.newBattle(loadPack(s.T(), countDeaths))
	s.place(battle, "brute", "red", 0)
	s.place(battle, "egg", "blue", 1)

	result, err := battle.Run(s.ctx)
	s.Require().NoError(err)

	creatures := battle.World().Creatures()
	s.Require().Len(creatures, 4)
	s.Equal(shared.EntityID("hatchling-1"), creatures[2].ID())
	s.Equal(shared.EntityID("egg-1"), creatures[2].Owner)
	s.Equal(shared.Point{X: 1}, creatures[2].Position)
	s.Equal(shared.Point{X: 2}, creatures[3].Position)

	// The second jab reaches both hatchlings
	s.Equal(shared.TeamID("red"), result.Winner)
	s.Equal(6, result.Ticks)

	deaths, _ := battle.Rules().Variable("deaths")
	s.Equal(3, deaths)

	spawned := s.recorder.ofType(events.EventTypeCreatureSpawned)
	s.Require().Len(spawned, 4)
	s.Equal(shared.EntityID("egg-1"), spawned[2].GetActor())
}

func (s *BattleTestSuite) TestDelayedRuleSpawnKeepsBattleOpen() {
	battle := s.newBattle(loadPack(s.T(), blueRevenge))
	s.place(battle, "brute", "red", 0)
	s.place(battle, "dummy", "blue", 1)
	s.Require().NoError(battle.Start(s.ctx))

	done, err := battle.Step(s.ctx)
	s.Require().NoError(err)
	s.False(done)
	s.True(battle.World().Scheduler().SpawnPending())

	s.step(battle, 3)
	_, ok := battle.World().Creature("dummy-2")
	s.True(ok)

	result, err := battle.Run(s.ctx)
	s.Require().NoError(err)
	s.Equal(shared.TeamID("red"), result.Winner)
	s.Equal(6, result.Ticks)

	rule, _ := battle.Rules().Rule("blue_revenge")
	s.True(rule.Disabled)
}

func (s *BattleTestSuite) TestProjectileLandsAfterDelayAndTravel() {
	battle := s.newBattle(loadPack(s.T(), ""), func(cfg *sim.BattleConfig) {
		cfg.ProjectileSpeed = 100
	})
	s.place(battle, "archer", "red", 0)
	post := s.place(battle, "post", "blue", 5)
	s.Require().NoError(battle.Start(s.ctx))

	target, _ := battle.World().Creature(post)

	// Fired on tick 1, released at 400ms, lands 50ms later
	s.step(battle, 4)
	s.Equal(25, target.Health)
	s.Empty(s.recorder.ofType(events.EventTypeProjectileHit))

	s.step(battle, 1)
	s.Equal(20, target.Health)

	hits := s.recorder.ofType(events.EventTypeProjectileHit)
	s.Require().Len(hits, 1)
	s.Equal(5, hits[0].GetTick())
	s.Equal(post, hits[0].GetTarget())
}

func (s *BattleTestSuite) TestShotIntoDeadTargetIsCancelled() {
	battle := s.newBattle(loadPack(s.T(), ""))
	s.place(battle, "archer", "red", 0)
	s.place(battle, "brute", "red", 0)
	s.place(battle, "dummy", "blue", 1)

	result, err := battle.Run(s.ctx)
	s.Require().NoError(err)

	s.Equal(1, result.Ticks)
	s.Zero(battle.World().Scheduler().Pending())
	s.Equal(1, s.tally.Skills["dart"])
	s.Empty(s.recorder.ofType(events.EventTypeProjectileHit))
}

func (s *BattleTestSuite) TestShotLandingOnSameTickAsKillIsDropped() {
	battle := s.newBattle(loadPack(s.T(), ""), func(cfg *sim.BattleConfig) {
		cfg.ProjectileSpeed = 100
	})
	s.place(battle, "archer", "red", 0)
	s.place(battle, "archer", "red", 0)
	hatchling := s.place(battle, "hatchling", "blue", 5)

	result, err := battle.Run(s.ctx)
	s.Require().NoError(err)

	// Both darts land on tick 5; the first one kills
	s.Equal(shared.TeamID("red"), result.Winner)
	s.Equal(5, result.Ticks)
	s.Equal(2, s.tally.Skills["dart"])
	s.Equal(5, s.tally.Damage["archer-1"])
	s.Zero(s.tally.Damage["archer-2"])

	hits := s.recorder.ofType(events.EventTypeProjectileHit)
	s.Require().Len(hits, 1)
	s.Equal(hatchling, hits[0].GetTarget())
	s.Equal(shared.EntityID("archer-1"), hits[0].GetActor())
	s.Zero(battle.World().Scheduler().Pending())
}

func (s *BattleTestSuite) TestStunnedCreatureWaits() {
	battle := s.newBattle(loadPack(s.T(), ""))
	brute := s.place(battle, "brute", "red", 0)
	post := s.place(battle, "post", "blue", 1)
	s.Require().NoError(battle.Start(s.ctx))
	s.Require().NoError(battle.World().Stun(brute, 300*time.Millisecond))

	target, _ := battle.World().Creature(post)
	s.step(battle, 2)
	s.Equal(25, target.Health)

	s.step(battle, 1)
	s.Equal(15, target.Health)
}

func (s *BattleTestSuite) TestStatusExpiresOnSchedule() {
	battle := s.newBattle(loadPack(s.T(), ""))
	s.place(battle, "post", "red", 0)
	post := s.place(battle, "post", "blue", 10)
	s.Require().NoError(battle.Start(s.ctx))

	s.Require().NoError(battle.World().AddStatus(post, effects.Status{
		Name:     "Fortified",
		Duration: 250 * time.Millisecond,
		Changes:  []effects.StatChange{{Stat: stats.IDMaxHealth, Modifier: stats.Add(10)}},
	}))
	target, _ := battle.World().Creature(post)
	s.Equal(35, target.MaxHealth())

	s.step(battle, 3)
	s.Equal(25, target.MaxHealth())

	expired := s.recorder.ofType(events.EventTypeStatusExpired)
	s.Require().Len(expired, 1)
	s.Equal(3, expired[0].GetTick())
	s.Equal("Fortified", expired[0].(*events.StatusExpiredEvent).Status)
}

func (s *BattleTestSuite) TestTickLimitEndsInDraw() {
	battle := s.newBattle(loadPack(s.T(), ""), func(cfg *sim.BattleConfig) {
		cfg.MaxTicks = 5
	})
	s.place(battle, "post", "red", 0)
	s.place(battle, "post", "blue", 10)

	result, err := battle.Run(s.ctx)
	s.Require().NoError(err)

	s.Empty(result.Winner)
	s.Equal(5, result.Ticks)
	s.Len(result.Survivors, 2)

	lines := s.log.Lines()
	s.Equal("[0005] battle ends in a draw after 5 ticks", lines[len(lines)-1])

	done, err := battle.Step(s.ctx)
	s.NoError(err)
	s.True(done)
	s.Equal(5, battle.Ticks())
}

func (s *BattleTestSuite) TestRecordsCaptureEveryCreature() {
	battle := s.newBattle(loadPack(s.T(), ""))
	s.place(battle, "brute", "red", 0)
	s.place(battle, "post", "blue", 1)

	records := battle.Records("battle-1")
	s.Require().Len(records, 2)
	s.Equal("battle-1", records[0].BattleID)
	s.Equal(shared.EntityID("brute-1"), records[0].EntityID)
	s.Equal("brute", records[0].Template)
	s.Equal(shared.TeamID("red"), records[0].Team)
	s.Equal(30, records[0].Health)
	s.Equal(shared.EntityID("brute-1"), records[0].Snapshot.OwnerID)
	s.NotEmpty(records[0].Snapshot.Modifiers)
}

func (s *BattleTestSuite) TestLifecycleErrors() {
	battle := s.newBattle(loadPack(s.T(), ""))

	_, err := battle.Step(s.ctx)
	s.True(battleErr.IsValidation(err))

	_, err = battle.Spawn(s.ctx, sim.Placement{Template: "dragon", Team: "red"})
	s.True(battleErr.IsNotFound(err))

	s.Require().NoError(battle.Start(s.ctx))
	s.True(battleErr.IsValidation(battle.Start(s.ctx)))
}

func TestNewBattle_RequiresPack(t *testing.T) {
	_, err := sim.NewBattle(nil)
	assert.True(t, battleErr.IsInvalidArgument(err))

	_, err = sim.NewBattle(&sim.BattleConfig{})
	assert.True(t, battleErr.IsInvalidArgument(err))
}

func TestBattle_SeededArenaReplays(t *testing.T) {
	pack := testutils.LoadArena(t)

	run := func(seed uint64) (*sim.Result, []string) {
		bus := events.NewBus()
		combatLog := events.NewCombatLog(io.Discard)
		bus.SubscribeAll(combatLog)

		battle := testutils.CreateTestBattle(t, pack, seed, bus, testutils.ArenaLineup()...)
		result, err := battle.Run(context.Background())
		require.NoError(t, err)
		return result, combatLog.Lines()
	}

	first, firstLog := run(2024)
	second, secondLog := run(2024)

	assert.Equal(t, first, second)
	assert.Equal(t, firstLog, secondLog)
	assert.Positive(t, first.Ticks)
	assert.Equal(t, uint64(2024), first.Seed)
}

func TestBattle_RuleRollsFollowTheSeed(t *testing.T) {
	pack := loadPack(t, `
rules:
  - id: lucky_start
    event: battle_started
    when:
      - expr: 'rng.roll(1, 1000) > 500'
    then:
      - set:
          name: lucky
          value: true
`)

	lucky := func(seed uint64) bool {
		battle, err := sim.NewBattle(&sim.BattleConfig{
			Pack:     pack,
			Seed:     seed,
			Bus:      events.NewBus(),
			TimerIDs: uuid.NewSequentialGenerator("timer"),
		})
		require.NoError(t, err)
		require.NoError(t, battle.Start(context.Background()))
		_, ok := battle.Rules().Variable("lucky")
		return ok
	}

	outcomes := map[bool]int{}
	for seed := uint64(1); seed <= 32; seed++ {
		got := lucky(seed)
		assert.Equal(t, got, lucky(seed), "seed %d should replay", seed)
		outcomes[got]++
	}
	assert.Positive(t, outcomes[true], "no seed rolled high")
	assert.Positive(t, outcomes[false], "no seed rolled low")
}
