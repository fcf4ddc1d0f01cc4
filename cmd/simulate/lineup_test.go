package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/sim"
	"github.com/KirkDiggler/creature-battler/internal/testutils"
)

func TestParsePlacement(t *testing.T) {
	p, err := parsePlacement(" blue:spitter@12, -2.5 ")
	require.NoError(t, err)
	assert.Equal(t, sim.Placement{Template: "spitter", Team: "blue", At: shared.Point{X: 12, Y: -2.5}}, p)

	for _, bad := range []string{"", "wolf@0,0", ":wolf@0,0", "red:wolf", "red:@0,0", "red:wolf@0", "red:wolf@x,0", "red:wolf@0,y"} {
		_, err := parsePlacement(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefaultLineupMatchesArena(t *testing.T) {
	lineup, err := parseLineup(defaultLineup)
	require.NoError(t, err)
	assert.Equal(t, testutils.ArenaLineup(), lineup)

	_, err = parseLineup(nil)
	assert.Error(t, err)
}
