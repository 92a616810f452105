/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package locker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "vcs-issuance-lock-"

	defaultExpiry      = 30 * time.Second
	defaultWaitTimeout = 30 * time.Second
	initialRetryDelay  = 20 * time.Millisecond
	maxRetryDelay      = 500 * time.Millisecond
)

// ErrNotAcquired is returned when the lock is still held by someone else
// once the caller stops waiting.
var ErrNotAcquired = errors.New("lock not acquired")

// RedisLocker hands out redsync mutexes so that instances sharing a redis
// deployment serialize on the same keys.
type RedisLocker struct {
	rs          *redsync.Redsync
	expiry      time.Duration
	waitTimeout time.Duration
}

// RedisOpt configures RedisLocker.
type RedisOpt func(l *RedisLocker)

// WithExpiry sets how long a lock is held before redis releases it.
func WithExpiry(expiry time.Duration) RedisOpt {
	return func(l *RedisLocker) {
		l.expiry = expiry
	}
}

// WithWaitTimeout bounds the wait for a lock when the caller's context has no deadline.
func WithWaitTimeout(timeout time.Duration) RedisOpt {
	return func(l *RedisLocker) {
		l.waitTimeout = timeout
	}
}

// NewRedisLocker returns distributed locker backed by the given redis client.
func NewRedisLocker(client redis.UniversalClient, opts ...RedisOpt) *RedisLocker {
	l := &RedisLocker{
		rs:          redsync.New(goredis.NewPool(client)),
		expiry:      defaultExpiry,
		waitTimeout: defaultWaitTimeout,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewMutex creates a new distributed mutex. Acquisition retries with jittered
// backoff until the context passed to LockContext is done.
func (l *RedisLocker) NewMutex(key string) Lock {
	delay := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(initialRetryDelay),
		backoff.WithMaxInterval(maxRetryDelay),
		backoff.WithMaxElapsedTime(0),
	)

	return &redisMutex{
		Mutex: l.rs.NewMutex(keyPrefix+key,
			redsync.WithExpiry(l.expiry),
			redsync.WithTries(math.MaxInt32),
			redsync.WithRetryDelayFunc(func(int) time.Duration { return delay.NextBackOff() }),
		),
		waitTimeout: l.waitTimeout,
	}
}

type redisMutex struct {
	*redsync.Mutex
	waitTimeout time.Duration
}

func (m *redisMutex) LockContext(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, m.waitTimeout)
		defer cancel()
	}

	err := m.Mutex.LockContext(ctx)

	var (
		taken     *redsync.ErrTaken
		nodeTaken *redsync.ErrNodeTaken
	)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, redsync.ErrFailed), errors.As(err, &taken), errors.As(err, &nodeTaken):
		return fmt.Errorf("%w %s: %w", ErrNotAcquired, m.Name(), err)
	default:
		return err
	}
}
