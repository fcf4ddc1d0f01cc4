package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"BATTLER_CONTENT_PATH", "BATTLER_SEED", "BATTLER_TICK_MS", "BATTLER_MAX_TICKS", "BATTLER_RUNS",
		"REDIS_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"content/arena.yaml"}, cfg.Battle.ContentPaths)
	assert.Equal(t, uint64(1), cfg.Battle.Seed)
	assert.Equal(t, 100*time.Millisecond, cfg.Battle.Tick)
	assert.Equal(t, 3000, cfg.Battle.MaxTicks)
	assert.Equal(t, 1, cfg.Battle.Runs)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BATTLER_CONTENT_PATH", "content/arena.yaml, content/extra.yaml,")
	t.Setenv("BATTLER_SEED", "18446744073709551615")
	t.Setenv("BATTLER_TICK_MS", "50")
	t.Setenv("BATTLER_MAX_TICKS", "200")
	t.Setenv("BATTLER_RUNS", "8")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"content/arena.yaml", "content/extra.yaml"}, cfg.Battle.ContentPaths)
	assert.Equal(t, uint64(18446744073709551615), cfg.Battle.Seed)
	assert.Equal(t, 50*time.Millisecond, cfg.Battle.Tick)
	assert.Equal(t, 200, cfg.Battle.MaxTicks)
	assert.Equal(t, 8, cfg.Battle.Runs)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("BATTLER_SEED", "lucky")
	t.Setenv("BATTLER_RUNS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.Battle.Seed)
	assert.Equal(t, 1, cfg.Battle.Runs)
}

func TestLoad_RejectsNonPositiveValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"BATTLER_TICK_MS", "0"},
		{"BATTLER_MAX_TICKS", "-5"},
		{"BATTLER_RUNS", "0"},
		{"BATTLER_CONTENT_PATH", " , "},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestRedisConfig_Options(t *testing.T) {
	t.Run("url wins", func(t *testing.T) {
		opts, err := RedisConfig{URL: "redis://:secret@cache:6380/2", Addr: "ignored:1"}.Options()
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", opts.Addr)
		assert.Equal(t, "secret", opts.Password)
		assert.Equal(t, 2, opts.DB)
	})

	t.Run("address", func(t *testing.T) {
		opts, err := RedisConfig{Addr: "localhost:6379", DB: 4}.Options()
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", opts.Addr)
		assert.Equal(t, 4, opts.DB)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := RedisConfig{URL: "http://nope"}.Options()
		assert.Error(t, err)
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := RedisConfig{}.Options()
		assert.Error(t, err)
	})
}
