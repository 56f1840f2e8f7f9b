// Package store provides implementations of ports.Store, the persisted
// key/value holder for the token and the serialized dashboard user.
package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

var _ ports.Store = (*redisStore)(nil)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a Store backed by a shared Redis instance.
// Keys are namespaced with prefix so several gateways can share one
// Redis without stepping on each other.
func NewRedisStore(addr, prefix string) ports.Store {
	return &redisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (r *redisStore) key(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", ports.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (r *redisStore) Set(ctx context.Context, key, value string) error {
	// Persisted state, not a cache: no TTL. The token lives until logout
	// or until the profile fetch on startup rejects it.
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
