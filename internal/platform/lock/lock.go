// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lock serializes critical sections that share a key.

Library and review mutations run check-then-act sequences per user; holding
the user's lock for the duration keeps two concurrent requests from both
passing the same precondition.

Implementations:

  - [Local]: in-process, for the memory store and single-instance deployments.
  - redis.Locker: distributed, used whenever REDIS_URL is configured.
*/
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrNotAcquired is returned when the context ends before the lock is obtained.
var ErrNotAcquired = errors.New("lock: not acquired")

// Release ends a critical section. It is safe to call once.
type Release func()

// Locker grants exclusive access to a named key.
type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}

type localEntry struct {
	slot chan struct{}
	refs int
}

// Local is a keyed mutex. Entries are dropped once no goroutine holds or
// waits for them.
type Local struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

// NewLocal returns an empty in-process locker.
func NewLocal() *Local {
	return &Local{entries: make(map[string]*localEntry)}
}

// Acquire blocks until key is free or ctx is done.
func (local *Local) Acquire(ctx context.Context, key string) (Release, error) {
	local.mu.Lock()
	entry, ok := local.entries[key]
	if !ok {
		entry = &localEntry{slot: make(chan struct{}, 1)}
		local.entries[key] = entry
	}
	entry.refs++
	local.mu.Unlock()

	select {
	case entry.slot <- struct{}{}:
	case <-ctx.Done():
		local.forget(key, entry)
		return nil, errors.Join(ErrNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.slot
			local.forget(key, entry)
		})
	}, nil
}

func (local *Local) forget(key string, entry *localEntry) {
	local.mu.Lock()
	defer local.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(local.entries, key)
	}
}

// size reports the number of live keys.
func (local *Local) size() int {
	local.mu.Lock()
	defer local.mu.Unlock()
	return len(local.entries)
}
