// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

const (
	defaultNumShards          = 64
	defaultEvictionPercentage = 10
)

// MemoryStore implements [Store] with an in-process sturdyc client.
//
// Every entry shares the TTL given at construction; the per-call ttl of
// [MemoryStore.Set] is ignored.
type MemoryStore struct {
	client *sturdyc.Client[[]byte]
}

// NewMemoryStore builds a bounded in-process store holding at most capacity entries.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	numShards := defaultNumShards
	if capacity < numShards {
		numShards = 1
	}

	client := sturdyc.New[[]byte](capacity, numShards, ttl, defaultEvictionPercentage)
	return &MemoryStore{client: client}
}

func (store *MemoryStore) Get(context context.Context, key string) ([]byte, error) {
	if err := context.Err(); err != nil {
		return nil, err
	}
	payload, ok := store.client.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return payload, nil
}

func (store *MemoryStore) Set(context context.Context, key string, value []byte, _ time.Duration) error {
	if err := context.Err(); err != nil {
		return err
	}
	store.client.Set(key, value)
	return nil
}

func (store *MemoryStore) Remove(context context.Context, keys ...string) error {
	for _, key := range keys {
		store.client.Delete(key)
	}
	return nil
}

func (store *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len reports the number of live entries.
func (store *MemoryStore) Len() int {
	return len(store.client.ScanKeys())
}
