// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gamelibrary/internal/platform/lock"
)

// newTestLocker connects to TEST_REDIS_URL or skips.
func newTestLocker(t *testing.T) *Locker {
	t.Helper()

	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	client, err := NewClient(context.Background(), redisURL, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewLocker(client, slog.Default())
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "http://not-redis", slog.Default())
	assert.ErrorContains(t, err, "invalid URL")
}

func TestLocker_ExclusiveUntilReleased(t *testing.T) {
	locker := newTestLocker(t)
	key := "user:test-" + uuid.NewString()

	release, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, key)
	assert.ErrorIs(t, err, lock.ErrNotAcquired)

	release()

	release, err = locker.Acquire(context.Background(), key)
	require.NoError(t, err)
	release()
}

func TestLocker_ReleaseKeepsForeignToken(t *testing.T) {
	locker := newTestLocker(t)
	locker.ttl = 50 * time.Millisecond
	key := "user:test-" + uuid.NewString()

	staleRelease, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	locker.ttl = time.Second
	freshRelease, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)
	defer freshRelease()

	staleRelease()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, key)
	assert.ErrorIs(t, err, lock.ErrNotAcquired)
}
