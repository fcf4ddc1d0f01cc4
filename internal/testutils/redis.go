package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ContainersEnv opts tests into starting a throwaway Redis container when no
// local server answers
const ContainersEnv = "BATTLER_TEST_CONTAINERS"

// TestRedisConfig holds configuration for test Redis instances
type TestRedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DefaultTestRedisConfig returns the default test Redis configuration
func DefaultTestRedisConfig() *TestRedisConfig {
	return &TestRedisConfig{
		Addr: "localhost:6379",
		DB:   15, // Use DB 15 for tests to avoid conflicts
	}
}

// CreateTestRedisClient connects to a local Redis, or to a container when
// ContainersEnv is set, and skips the test otherwise. The database is
// flushed before and after.
func CreateTestRedisClient(t *testing.T, cfg *TestRedisConfig) redis.UniversalClient {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Redis test in short mode")
	}
	if cfg == nil {
		cfg = DefaultTestRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if os.Getenv(ContainersEnv) == "" {
			t.Skipf("Redis not available for testing: %v", err)
		}
		client = redis.NewClient(&redis.Options{
			Addr: StartRedisContainer(t),
			DB:   cfg.DB,
		})
	}

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err(), "Failed to reach test Redis")
	require.NoError(t, client.FlushDB(ctx).Err(), "Failed to flush test Redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}

// StartRedisContainer runs redis in a container for the test's lifetime and
// returns its host:port
func StartRedisContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")

	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}
