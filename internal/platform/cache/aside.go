// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"
)

// # Outcomes

// Outcome classifies a best-effort cache operation. Callers may ignore it.
type Outcome int

const (
	// Hit means a value was read, written or removed as requested.
	Hit Outcome = iota

	// Miss means the key was absent.
	Miss

	// Failed means the backend errored, timed out or held an undecodable value.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	default:
		return "failed"
	}
}

// # Cache-Aside Accessor

// Cache is the typed, failure-tolerant front of a [Store].
//
// Every store call runs under its own timeout derived from the caller's
// context. Errors never escape: they are logged at WARN and reported as [Failed].
type Cache struct {
	store   Store
	ttl     time.Duration
	timeout time.Duration
	logger  *slog.Logger
	flight  singleflight.Group
}

// New creates a Cache writing entries with ttl and bounding each store call by timeout.
func New(store Store, ttl, timeout time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		store:   store,
		ttl:     ttl,
		timeout: timeout,
		logger:  logger,
	}
}

// Ping forwards a readiness probe to the backend.
func (c *Cache) Ping(context context.Context) error {
	return c.store.Ping(context)
}

// Prime encodes value and stores it under key.
func (c *Cache) Prime(ctx context.Context, key string, value any) Outcome {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		c.warn(ctx, "cache_encode_failed", key, err)
		return Failed
	}

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.Set(opCtx, key, payload, c.ttl); err != nil {
		c.warn(ctx, "cache_set_failed", key, err)
		return Failed
	}
	return Hit
}

// Invalidate removes keys. It must only be called after the durable write committed.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) Outcome {
	if len(keys) == 0 {
		return Hit
	}

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.Remove(opCtx, keys...); err != nil {
		c.logger.WarnContext(ctx, "cache_invalidate_failed",
			slog.Any("keys", keys),
			slog.Any("error", err),
		)
		return Failed
	}
	return Hit
}

// lookup reads key and decodes it into target.
func (c *Cache) lookup(ctx context.Context, key string, target any) Outcome {
	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := c.store.Get(opCtx, key)
	if err != nil {
		if errors.Is(err, ErrMiss) {
			return Miss
		}
		c.warn(ctx, "cache_get_failed", key, err)
		return Failed
	}

	if err := msgpack.Unmarshal(payload, target); err != nil {
		c.warn(ctx, "cache_decode_failed", key, err)
		return Failed
	}
	return Hit
}

func (c *Cache) warn(ctx context.Context, event, key string, err error) {
	c.logger.WarnContext(ctx, event,
		slog.String("key", key),
		slog.Any("error", err),
	)
}

// Loader reads the authoritative value on a cache miss. found=false means the
// record does not exist; such absence is never cached.
type Loader[T any] func(context context.Context) (value T, found bool, err error)

type loaded[T any] struct {
	value T
	found bool
}

/*
Fetch is the single cache-aside read path.

A hit returns the decoded value. A miss, a backend failure or an undecodable
entry falls through to load; a found result is then written back. Concurrent
misses on the same key share one load.

Returns:
  - T: The value, cached or loaded
  - bool: Whether the record exists
  - error: Only errors from load
*/
func Fetch[T any](ctx context.Context, c *Cache, key string, load Loader[T]) (T, bool, error) {
	var cached T
	if c.lookup(ctx, key, &cached) == Hit {
		return cached, true, nil
	}

	result, err, _ := c.flight.Do(key, func() (any, error) {
		value, found, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if found {
			c.Prime(ctx, key, value)
		}
		return loaded[T]{value: value, found: found}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	out := result.(loaded[T])
	return out.value, out.found, nil
}
