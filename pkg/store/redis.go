package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// redisKeyPrefix namespaces map records inside a shared Redis.
	redisKeyPrefix = "mindmap:map:"
	// redisIndexKey is the set of all stored map IDs, kept so List does
	// not need SCAN.
	redisIndexKey = "mindmap:maps"
)

// RedisStore persists maps as JSON values in Redis, with a set of IDs as
// the listing index. Suitable for multi-instance deployments where several
// API servers share one map collection.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string // host:port
	Password string // optional
	DB       int    // database number
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// List returns all maps ordered by creation time.
func (s *RedisStore) List(ctx context.Context) ([]*Map, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list map ids: %w", err)
	}

	out := make([]*Map, 0, len(ids))
	for _, id := range ids {
		m, err := s.Get(ctx, id)
		if err == ErrNotFound {
			// Index entry without a record: drop it and move on.
			_ = s.client.SRem(ctx, redisIndexKey, id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	sortByCreation(out)
	return out, nil
}

// Get retrieves a map by ID.
func (s *RedisStore) Get(ctx context.Context, id string) (*Map, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get map %s: %w", id, err)
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode map %s: %w", id, err)
	}
	return &m, nil
}

// Save inserts or replaces a map and registers it in the index set.
func (s *RedisStore) Save(ctx context.Context, m *Map) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal map %s: %w", m.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+m.ID, data, 0)
	pipe.SAdd(ctx, redisIndexKey, m.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save map %s: %w", m.ID, err)
	}
	return nil
}

// Delete removes a map and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete map %s: %w", id, err)
	}
	if err := s.client.SRem(ctx, redisIndexKey, id).Err(); err != nil {
		return fmt.Errorf("deindex map %s: %w", id, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
