// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/gamelibrary/internal/platform/constants"
	"github.com/taibuivan/gamelibrary/internal/platform/lock"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired holder never frees a lock re-acquired by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a distributed [lock.Locker] backed by SET NX PX.
type Locker struct {
	client redis.UniversalClient
	logger *slog.Logger
	ttl    time.Duration
	retry  time.Duration
}

// NewLocker builds a Locker with the platform default TTL and retry interval.
func NewLocker(client redis.UniversalClient, logger *slog.Logger) *Locker {
	return &Locker{
		client: client,
		logger: logger,
		ttl:    constants.UserLockTTL,
		retry:  constants.UserLockRetryInterval,
	}
}

// Acquire polls until the key is set by this caller or ctx is done.
func (locker *Locker) Acquire(ctx context.Context, key string) (lock.Release, error) {
	redisKey := constants.RedisPrefixLock + key
	token := uuid.NewString()

	ticker := time.NewTicker(locker.retry)
	defer ticker.Stop()

	for {
		acquired, err := locker.client.SetNX(ctx, redisKey, token, locker.ttl).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return nil, errors.Join(lock.ErrNotAcquired, ctx.Err())
			}
			return nil, fmt.Errorf("redis: lock %s: %w", key, err)
		}
		if acquired {
			return locker.releaser(redisKey, token), nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, errors.Join(lock.ErrNotAcquired, ctx.Err())
		}
	}
}

func (locker *Locker) releaser(redisKey, token string) lock.Release {
	released := false
	return func() {
		if released {
			return
		}
		released = true

		// The request context may already be cancelled by the time we unlock.
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := releaseScript.Run(ctx, locker.client, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			locker.logger.WarnContext(ctx, "redis_lock_release_failed",
				slog.String("key", redisKey),
				slog.Any("error", err),
			)
		}
	}
}
