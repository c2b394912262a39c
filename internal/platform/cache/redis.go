// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements [Store] on top of a shared Redis deployment.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (store *RedisStore) Get(context context.Context, key string) ([]byte, error) {
	payload, err := store.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis_cache_get_failed: %w", err)
	}
	return payload, nil
}

func (store *RedisStore) Set(context context.Context, key string, value []byte, ttl time.Duration) error {
	if err := store.client.Set(context, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}
	return nil
}

func (store *RedisStore) Remove(context context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := store.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_cache_remove_failed: %w", err)
	}
	return nil
}

func (store *RedisStore) Ping(context context.Context) error {
	if err := store.client.Ping(context).Err(); err != nil {
		return fmt.Errorf("redis_cache_ping_failed: %w", err)
	}
	return nil
}
