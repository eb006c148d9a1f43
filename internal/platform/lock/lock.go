// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lock serializes registration commits per person identity.

Two concurrent submissions for the same person (a double-click edit, or the
same email posted twice) could both pass the uniqueness and already-registered
checks before either commits, or both rewrite the same unpaid invoice's items.
Acquiring the person's lock for the duration of validation-through-invoice-commit
removes that hazard. No cross-person locking exists; unrelated registrations
never contend.

Implementations:

  - RedisLocker: SET NX PX with an ownership token, correct across multiple
    server instances.
  - MemoryLocker: in-process equivalent for tests and single-node development.
*/
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/rookery/internal/platform/apperr"
	"github.com/taibuivan/rookery/internal/platform/constants"
	"github.com/taibuivan/rookery/internal/platform/sec"
)

// ErrContended is returned when a lock could not be acquired within the
// configured wait window. Mapped to HTTP 423 at the delivery layer.
var ErrContended = apperr.Locked("Another submission for this person is in progress")

// Locker grants exclusive ownership of a person-identity key.
//
// Acquire blocks until the lock is held, the context is cancelled, or the
// acquire window elapses. The returned release function is idempotent and
// must be called exactly when the commit sequence finishes (success or not).
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// # Redis Implementation

// RedisLocker implements [Locker] using SET NX PX.
//
// # Ownership
//
// Each acquisition stores a random token as the value, and release deletes
// the key only if the token still matches. A lock that expired and was
// re-acquired by another instance is therefore never released by the
// original holder.
type RedisLocker struct {
	client *redis.Client
}

// releaseScript deletes the lock key only when the caller still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewRedisLocker creates a Redis-backed [Locker].
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

// Acquire polls SET NX until the lock is granted or the wait window closes.
func (locker *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := constants.RedisPrefixPersonLock + key

	token, err := sec.GenerateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("lock_token_generation_failed: %w", err)
	}

	deadline := time.Now().Add(constants.PersonLockAcquireTimeout)

	for {
		acquired, err := locker.client.SetNX(ctx, redisKey, token, constants.PersonLockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("lock_acquire_failed: %w", err)
		}

		if acquired {
			release := func() {
				// Release must survive request-context cancellation, so it
				// runs on a short background deadline of its own.
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, locker.client, []string{redisKey}, token).Err()
			}
			return release, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrContended
		}

		select {
		case <-time.After(constants.PersonLockRetryInterval):
		case <-ctx.Done():
			return nil, ErrContended
		}
	}
}

// # In-Process Implementation

// MemoryLocker implements [Locker] with per-key channels. Suitable for tests
// and single-instance deployments only.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewMemoryLocker creates an in-process [Locker].
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]chan struct{})}
}

// Acquire blocks until the key is free or the context is cancelled.
func (locker *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	for {
		locker.mu.Lock()
		holder, held := locker.locks[key]
		if !held {
			freed := make(chan struct{})
			locker.locks[key] = freed

			var once sync.Once
			release := func() {
				once.Do(func() {
					locker.mu.Lock()
					delete(locker.locks, key)
					locker.mu.Unlock()
					close(freed)
				})
			}
			locker.mu.Unlock()
			return release, nil
		}
		locker.mu.Unlock()

		select {
		case <-holder:
			// Lock was released; retry.
		case <-ctx.Done():
			return nil, ErrContended
		}
	}
}
