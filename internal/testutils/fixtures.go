package testutils

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/creature-battler/internal/content"
	"github.com/KirkDiggler/creature-battler/internal/domain/rules"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/events"
	"github.com/KirkDiggler/creature-battler/internal/sim"
	"github.com/KirkDiggler/creature-battler/internal/uuid"
)

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

// Now implements stats.Clock
func (c FixedClock) Now() time.Time { return c.At }

// ArenaPath returns the absolute path of the stock arena content
func ArenaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "content", "arena.yaml")
}

// LoadArena loads the stock arena pack
func LoadArena(t *testing.T) *content.Pack {
	t.Helper()
	registry, err := rules.NewRegistry()
	require.NoError(t, err)

	pack, err := content.NewLoader(&content.LoaderConfig{Registry: registry}).LoadFile(ArenaPath())
	require.NoError(t, err, "Failed to load arena content")
	return pack
}

// ArenaLineup is a balanced two team placement for the arena pack
func ArenaLineup() []sim.Placement {
	return []sim.Placement{
		{Template: "wolf", Team: "red", At: shared.Point{X: 0, Y: 0}},
		{Template: "ogre", Team: "red", At: shared.Point{X: 0, Y: 2}},
		{Template: "spitter", Team: "blue", At: shared.Point{X: 12, Y: 0}},
		{Template: "shaman", Team: "blue", At: shared.Point{X: 12, Y: 2}},
	}
}

// CreateTestBattle builds a seeded battle with the lineup already placed.
// Timer tokens are sequential so runs compare equal.
func CreateTestBattle(t *testing.T, pack *content.Pack, seed uint64, bus *events.Bus, lineup ...sim.Placement) *sim.Battle {
	t.Helper()

	battle, err := sim.NewBattle(&sim.BattleConfig{
		Pack:     pack,
		Seed:     seed,
		Bus:      bus,
		TimerIDs: uuid.NewSequentialGenerator("timer"),
	})
	require.NoError(t, err)

	for i, p := range lineup {
		_, err := battle.Spawn(context.Background(), p)
		require.NoError(t, err, "placement %d", i)
	}
	return battle
}
