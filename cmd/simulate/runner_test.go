package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/creature-battler/internal/config"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/events"
	"github.com/KirkDiggler/creature-battler/internal/repositories/stattables"
	"github.com/KirkDiggler/creature-battler/internal/sim"
	"github.com/KirkDiggler/creature-battler/internal/testutils"
)

func newTestRunner(t *testing.T, runs int, repo stattables.Repository) *runner {
	t.Helper()
	return &runner{
		pack: testutils.LoadArena(t),
		cfg: config.BattleConfig{
			Seed:     40,
			Tick:     100 * time.Millisecond,
			MaxTicks: 3000,
			Runs:     runs,
		},
		lineup: testutils.ArenaLineup(),
		repo:   repo,
	}
}

func TestRunner_RunAll(t *testing.T) {
	repo := stattables.NewInMemoryRepository()
	r := newTestRunner(t, 3, repo)

	outcomes, err := r.runAll(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	for i, o := range outcomes {
		assert.Equal(t, uint64(40+i), o.Result.Seed)
		assert.Equal(t, o.Result.Seed, mustSeed(t, o.BattleID))
		assert.NotEmpty(t, o.Log)

		records, err := repo.ListByBattle(context.Background(), o.BattleID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(records), len(r.lineup))
	}
}

func TestRunner_SameSeedSameOutcome(t *testing.T) {
	r := newTestRunner(t, 1, nil)

	first, err := r.runOne(context.Background(), 7)
	require.NoError(t, err)
	second, err := r.runOne(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, first.Log, second.Log)
}

func TestRunner_UnknownTemplate(t *testing.T) {
	r := newTestRunner(t, 1, nil)
	r.lineup = append(r.lineup, sim.Placement{Template: "dragon", Team: "red"})

	_, err := r.runAll(context.Background())
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	tally := func(damage map[shared.EntityID]int, kills map[shared.EntityID]int) *events.Tally {
		out := events.NewTally()
		for k, v := range damage {
			out.Damage[k] = v
		}
		for k, v := range kills {
			out.Kills[k] = v
		}
		return out
	}

	outcomes := []*outcome{
		{BattleID: "seed-1", Result: &sim.Result{Seed: 1, Winner: "red"}, Tally: tally(
			map[shared.EntityID]int{"wolf-1": 30, "spitter-1": 12},
			map[shared.EntityID]int{"wolf-1": 2},
		)},
		{BattleID: "seed-2", Result: &sim.Result{Seed: 2, Winner: "red"}, Tally: tally(
			map[shared.EntityID]int{"wolf-1": 10, "wolf-2": 5},
			nil,
		)},
		{BattleID: "seed-3", Result: &sim.Result{Seed: 3}, Tally: tally(nil, nil)},
	}

	s := summarize(outcomes)
	assert.Equal(t, 3, s.Runs)
	assert.Equal(t, 1, s.Draws)
	assert.Equal(t, map[shared.TeamID]int{"red": 2}, s.Wins)
	assert.Equal(t, map[string]int{"wolf": 45, "spitter": 12}, s.Damage)
	assert.Equal(t, map[string]int{"wolf": 2}, s.Kills)

	var buf bytes.Buffer
	s.write(&buf)
	assert.Contains(t, buf.String(), "3 battles, 1 draws")
	assert.Contains(t, buf.String(), "red won 2")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("wolf")), bytes.Index(buf.Bytes(), []byte("spitter")))
}

func TestWriteOutcome(t *testing.T) {
	o := &outcome{
		BattleID: "seed-5",
		Result:   &sim.Result{Seed: 5, Ticks: 12},
		Log:      []string{"battle started"},
	}

	var buf bytes.Buffer
	writeOutcome(&buf, o, true)
	assert.Contains(t, buf.String(), "seed-5: nobody (draw) won after 12 ticks")
	assert.Contains(t, buf.String(), "  battle started\n")
}

func mustSeed(t *testing.T, battleID string) uint64 {
	t.Helper()
	var seed uint64
	_, err := fmt.Sscanf(battleID, "seed-%d", &seed)
	require.NoError(t, err)
	return seed
}
