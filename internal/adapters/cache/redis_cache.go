package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares cached values between service instances.
// Values are stored as JSON under prefix+key and expire after ttl.
type RedisCache[V any] struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisCache[V any](rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisCache[V] {
	return &RedisCache[V]{rdb: rdb, prefix: prefix, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis cache: parse url: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis cache: ping: %w", err)
	}

	return rdb, nil
}

func (r *RedisCache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	if r.rdb == nil {
		return zero, false, errors.New("redis cache: client is nil")
	}

	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		recordLookup(r.name(), false)
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("redis cache get %q: %w", key, err)
	}

	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, false, fmt.Errorf("redis cache decode %q: %w", key, err)
	}

	recordLookup(r.name(), true)
	return v, true, nil
}

func (r *RedisCache[V]) Put(ctx context.Context, key string, value V) error {
	if r.rdb == nil {
		return errors.New("redis cache: client is nil")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis cache encode %q: %w", key, err)
	}

	if err := r.rdb.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis cache set %q: %w", key, err)
	}
	return nil
}

func (r *RedisCache[V]) name() string { return "redis:" + r.prefix }
