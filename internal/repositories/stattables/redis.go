package stattables

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
)

const (
	// Key patterns
	recordKey       = "stattable:%s:%s"
	battleRecordKey = "battle:%s:stattables"

	// TTL for records (1 day)
	recordTTL = 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
	TTL          time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client redis.UniversalClient
	clock  TimeProvider
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed stat table repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = recordTTL
	}
	clock := cfg.TimeProvider
	if clock == nil {
		clock = systemTime{}
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  clock,
		ttl:    ttl,
	}
}

// NewRedis creates a Redis-backed repository with default configuration
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// Save stores the record and indexes it under its battle
func (r *redisRepository) Save(ctx context.Context, record *Record) error {
	if err := validate(record); err != nil {
		return err
	}

	stored := *record
	if stored.SavedAt.IsZero() {
		stored.SavedAt = r.clock.Now()
	}

	data, err := json.Marshal(&stored)
	if err != nil {
		return battleErr.Wrap(err, "failed to serialize stat table")
	}

	key := fmt.Sprintf(recordKey, record.BattleID, record.EntityID)
	if err := r.client.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		return battleErr.Wrap(err, "failed to save stat table")
	}

	indexKey := fmt.Sprintf(battleRecordKey, record.BattleID)
	if err := r.client.SAdd(ctx, indexKey, string(record.EntityID)).Err(); err != nil {
		return battleErr.Wrap(err, "failed to index stat table")
	}
	if err := r.client.Expire(ctx, indexKey, r.ttl).Err(); err != nil {
		return battleErr.Wrap(err, "failed to refresh battle index")
	}

	return nil
}

// Get retrieves one record
func (r *redisRepository) Get(ctx context.Context, battleID string, entityID shared.EntityID) (*Record, error) {
	key := fmt.Sprintf(recordKey, battleID, entityID)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(battleID, entityID)
		}
		return nil, battleErr.Wrap(err, "failed to get stat table")
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, battleErr.Wrap(err, "failed to deserialize stat table")
	}
	return &record, nil
}

// ListByBattle reads every indexed record. Index entries whose record has
// expired are skipped.
func (r *redisRepository) ListByBattle(ctx context.Context, battleID string) ([]*Record, error) {
	ids, err := r.client.SMembers(ctx, fmt.Sprintf(battleRecordKey, battleID)).Result()
	if err != nil {
		return nil, battleErr.Wrap(err, "failed to list battle stat tables")
	}
	if len(ids) == 0 {
		return []*Record{}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf(recordKey, battleID, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, battleErr.Wrap(err, "failed to get battle stat tables")
	}

	records := make([]*Record, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var record Record
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, battleErr.Wrapf(err, "failed to deserialize stat table %s", keys[i])
		}
		records = append(records, &record)
	}
	return records, nil
}

// DeleteBattle removes the records and the index
func (r *redisRepository) DeleteBattle(ctx context.Context, battleID string) error {
	indexKey := fmt.Sprintf(battleRecordKey, battleID)

	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return battleErr.Wrap(err, "failed to list battle stat tables")
	}
	sort.Strings(ids)

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf(recordKey, battleID, id))
	}
	keys = append(keys, indexKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return battleErr.Wrap(err, "failed to delete battle stat tables")
	}
	return nil
}
