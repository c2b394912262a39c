// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reset_test

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/addressbook/internal/platform/constants"
	"github.com/taibuivan/addressbook/internal/users/reset"
)

// recordingBackend wraps a backend and remembers every key written.
type recordingBackend struct {
	reset.Backend
	keys []string
}

func (b *recordingBackend) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	b.keys = append(b.keys, key)
	return b.Backend.Put(ctx, key, value, ttl)
}

func newService() *reset.Service {
	return reset.NewService(reset.NewMemoryBackend(100, time.Hour), time.Hour)
}

func TestIssueAndValidate(t *testing.T) {
	service := newService()
	ctx := context.Background()

	token, err := service.Issue(ctx, 1, "john@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	result, err := service.Validate(ctx, token)
	require.NoError(t, err)

	email, ok := result.Email()
	assert.True(t, ok)
	assert.Equal(t, "john@example.com", email)
	assert.Equal(t, int64(1), result.UserID())
}

func TestValidate_SingleUse(t *testing.T) {
	service := newService()
	ctx := context.Background()

	token, err := service.Issue(ctx, 1, "john@example.com")
	require.NoError(t, err)

	first, err := service.Validate(ctx, token)
	require.NoError(t, err)
	assert.True(t, first.IsValid())

	second, err := service.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, reset.Invalid, second)
}

func TestValidate_ConcurrentRedemptionSucceedsOnce(t *testing.T) {
	service := newService()
	ctx := context.Background()

	token, err := service.Issue(ctx, 1, "john@example.com")
	require.NoError(t, err)

	var valid atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := service.Validate(ctx, token)
			assert.NoError(t, err)
			if result.IsValid() {
				valid.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), valid.Load())
}

func TestValidate_UnknownAndEmpty(t *testing.T) {
	service := newService()
	ctx := context.Background()

	for _, token := range []string{"", "invalid-token"} {
		result, err := service.Validate(ctx, token)
		require.NoError(t, err)
		_, ok := result.Email()
		assert.False(t, ok)
	}
}

func TestIssue_StoresDigestOnly(t *testing.T) {
	backend := &recordingBackend{Backend: reset.NewMemoryBackend(10, time.Hour)}
	service := reset.NewService(backend, time.Hour)

	token, err := service.Issue(context.Background(), 1, "john@example.com")
	require.NoError(t, err)

	require.Len(t, backend.keys, 1)
	assert.True(t, strings.HasPrefix(backend.keys[0], constants.RedisPrefixResetToken))
	assert.NotContains(t, backend.keys[0], token)
}

func TestIssue_TokensAreUnique(t *testing.T) {
	service := newService()
	ctx := context.Background()

	first, err := service.Issue(ctx, 1, "john@example.com")
	require.NoError(t, err)
	second, err := service.Issue(ctx, 1, "john@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRedisBackend_StorageFailurePropagates(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:       "redis.invalid:6379",
		MaxRetries: -1,
		Dialer: func(context.Context, string, string) (net.Conn, error) {
			return nil, errors.New("connection refused")
		},
	})
	t.Cleanup(func() { _ = client.Close() })

	service := reset.NewService(reset.NewRedisBackend(client), time.Hour)
	ctx := context.Background()

	_, err := service.Issue(ctx, 1, "john@example.com")
	assert.Error(t, err)

	result, err := service.Validate(ctx, "some-token")
	assert.Error(t, err)
	assert.False(t, result.IsValid())
}
