package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gridboard/gridboard/pkg/grid"
	"github.com/gridboard/gridboard/pkg/observability"
)

// defaultRedisPrefix namespaces layout keys in a shared Redis instance.
const defaultRedisPrefix = "gridboard:layout:"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix for layout keys; defaults to "gridboard:layout:".
	Prefix string
}

// RedisStore persists layouts in Redis, one key per tab. Intended for
// production multi-instance deployments where several dashboard servers
// share state.
type RedisStore struct {
	client *redis.Client
	prefix string
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

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(tab string) string {
	return s.prefix + tab
}

// Save writes the snapshot for a tab. Transient network failures are
// retried with backoff.
func (s *RedisStore) Save(ctx context.Context, tab string, snap grid.Snapshot) error {
	start := time.Now()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	err = RetryWithBackoff(ctx, func() error {
		if err := s.client.Set(ctx, s.key(tab), data, 0).Err(); err != nil {
			return Retryable(err)
		}
		return nil
	})
	if err != nil {
		observability.Store().OnError(ctx, "redis", "save", tab, err)
		return fmt.Errorf("redis set %s: %w", tab, err)
	}

	observability.Store().OnSave(ctx, "redis", tab, len(snap), time.Since(start))
	return nil
}

// Load reads the snapshot for a tab, returning fallback when the key is
// missing or holds data that does not parse as a snapshot array.
func (s *RedisStore) Load(ctx context.Context, tab string, fallback grid.Snapshot) (grid.Snapshot, error) {
	start := time.Now()

	data, err := s.client.Get(ctx, s.key(tab)).Bytes()
	if err == redis.Nil {
		observability.Store().OnLoad(ctx, "redis", tab, true, time.Since(start))
		return fallback, nil
	}
	if err != nil {
		observability.Store().OnError(ctx, "redis", "load", tab, err)
		return fallback, fmt.Errorf("redis get %s: %w", tab, err)
	}

	var snap grid.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		observability.Store().OnLoad(ctx, "redis", tab, true, time.Since(start))
		return fallback, nil
	}

	observability.Store().OnLoad(ctx, "redis", tab, false, time.Since(start))
	return snap, nil
}

// Delete removes the stored snapshot for a tab.
func (s *RedisStore) Delete(ctx context.Context, tab string) error {
	if err := s.client.Del(ctx, s.key(tab)).Err(); err != nil {
		observability.Store().OnError(ctx, "redis", "delete", tab, err)
		return fmt.Errorf("redis del %s: %w", tab, err)
	}
	return nil
}

// Tabs lists all stored tab ids by scanning the key prefix.
func (s *RedisStore) Tabs(ctx context.Context) ([]string, error) {
	var tabs []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		tabs = append(tabs, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return tabs, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
