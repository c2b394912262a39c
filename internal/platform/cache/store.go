// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache provides the volatile key-value layer that fronts the durable stores.

Two backends implement [Store]:

  - [RedisStore]: shared across instances, backed by go-redis.
  - [MemoryStore]: in-process, sharded and bounded, backed by sturdyc.

Repositories never talk to a Store directly. They go through [Cache] and
[Fetch], which bound every call with a timeout, encode values with msgpack,
coalesce concurrent misses per key and swallow backend failures.
*/
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by [Store.Get] when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the raw byte-oriented contract a cache backend fulfils.
type Store interface {

	/*
		Get returns the bytes stored under key.

		Returns:
		  - []byte: The stored payload
		  - error: [ErrMiss] when absent, any other error on backend failure
	*/
	Get(context context.Context, key string) ([]byte, error)

	// Set writes value under key. Backends that only support a global expiry ignore ttl.
	Set(context context.Context, key string, value []byte, ttl time.Duration) error

	// Remove deletes every listed key. Absent keys are not an error.
	Remove(context context.Context, keys ...string) error

	// Ping reports backend health for readiness probes.
	Ping(context context.Context) error
}
