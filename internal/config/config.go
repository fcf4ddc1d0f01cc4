package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds all configuration for the application
type Config struct {
	Battle BattleConfig
	Redis  RedisConfig
}

// BattleConfig holds simulation settings
type BattleConfig struct {
	ContentPaths []string
	Seed         uint64
	Tick         time.Duration
	MaxTicks     int
	Runs         int
}

// RedisConfig holds Redis-specific configuration. Persistence is off when
// neither URL nor Addr is set.
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether snapshots should be persisted
func (c RedisConfig) Enabled() bool {
	return c.URL != "" || c.Addr != ""
}

// Options builds client options, preferring URL over Addr
func (c RedisConfig) Options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return opts, nil
	}
	if c.Addr == "" {
		return nil, fmt.Errorf("redis is not configured")
	}
	return &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Battle: BattleConfig{
			ContentPaths: splitList(getEnvOrDefault("BATTLER_CONTENT_PATH", "content/arena.yaml")),
			Seed:         getEnvAsUint64OrDefault("BATTLER_SEED", 1),
			Tick:         time.Duration(getEnvAsIntOrDefault("BATTLER_TICK_MS", 100)) * time.Millisecond,
			MaxTicks:     getEnvAsIntOrDefault("BATTLER_MAX_TICKS", 3000),
			Runs:         getEnvAsIntOrDefault("BATTLER_RUNS", 1),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
	}

	if err := cfg.Battle.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings a battle cannot run without
func (c BattleConfig) Validate() error {
	if len(c.ContentPaths) == 0 {
		return fmt.Errorf("BATTLER_CONTENT_PATH is required")
	}
	if c.Tick <= 0 {
		return fmt.Errorf("BATTLER_TICK_MS must be positive")
	}
	if c.MaxTicks <= 0 {
		return fmt.Errorf("BATTLER_MAX_TICKS must be positive")
	}
	if c.Runs <= 0 {
		return fmt.Errorf("BATTLER_RUNS must be positive")
	}
	return nil
}

// splitList splits a comma separated list, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsUint64OrDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}
