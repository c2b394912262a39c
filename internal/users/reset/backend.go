// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viccon/sturdyc"
)

// Backend stores token records. Take must be an atomic read-and-delete so a
// token can be consumed at most once.
type Backend interface {
	Put(context context.Context, key string, value []byte, ttl time.Duration) error
	Take(context context.Context, key string) ([]byte, bool, error)
}

// # Redis

// RedisBackend keeps token records in Redis and consumes them with GETDEL.
type RedisBackend struct {
	client redis.Cmdable
}

// NewRedisBackend wraps a connected Redis client.
func NewRedisBackend(client redis.Cmdable) *RedisBackend {
	return &RedisBackend{client: client}
}

func (backend *RedisBackend) Put(context context.Context, key string, value []byte, ttl time.Duration) error {
	if err := backend.client.Set(context, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

func (backend *RedisBackend) Take(context context.Context, key string) ([]byte, bool, error) {
	payload, err := backend.client.GetDel(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_reset_token_take_failed: %w", err)
	}
	return payload, true, nil
}

// # In-process

// MemoryBackend keeps token records in a single-instance sturdyc cache.
// All records share the TTL given at construction.
type MemoryBackend struct {
	mu     sync.Mutex
	client *sturdyc.Client[[]byte]
}

// NewMemoryBackend creates an in-process backend holding up to capacity tokens.
func NewMemoryBackend(capacity int, ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{
		client: sturdyc.New[[]byte](capacity, 1, ttl, 10),
	}
}

func (backend *MemoryBackend) Put(_ context.Context, key string, value []byte, _ time.Duration) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	backend.client.Set(key, value)
	return nil
}

func (backend *MemoryBackend) Take(_ context.Context, key string) ([]byte, bool, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	payload, ok := backend.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	backend.client.Delete(key)
	return payload, true, nil
}
