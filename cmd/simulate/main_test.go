package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/creature-battler/internal/config"
)

func battleFlags() *cobra.Command {
	cmd := &cobra.Command{Use: "simulate"}
	cmd.Flags().StringSlice("content", nil, "")
	cmd.Flags().Uint64("seed", 0, "")
	cmd.Flags().Int("runs", 0, "")
	cmd.Flags().Duration("tick", 0, "")
	cmd.Flags().Int("max-ticks", 0, "")
	return cmd
}

func TestApplyFlags_OverridesOnlyWhatWasSet(t *testing.T) {
	cmd := battleFlags()
	require.NoError(t, cmd.Flags().Parse([]string{"--seed", "42", "--tick", "50ms", "--content", "a.yaml,b.yaml"}))

	battle := config.BattleConfig{Runs: 3, MaxTicks: 100}
	require.NoError(t, applyFlags(cmd, &battle))

	assert.Equal(t, config.BattleConfig{
		ContentPaths: []string{"a.yaml", "b.yaml"},
		Seed:         42,
		Tick:         50 * time.Millisecond,
		MaxTicks:     100,
		Runs:         3,
	}, battle)
}

func TestApplyFlags_ReportsUnreadableFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "simulate"}
	cmd.Flags().String("seed", "", "")
	cmd.Flags().Int("runs", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--seed", "lots", "--runs", "2"}))

	battle := config.BattleConfig{Seed: 9}
	err := applyFlags(cmd, &battle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading --seed")
	assert.Equal(t, config.BattleConfig{Seed: 9}, battle)
}
