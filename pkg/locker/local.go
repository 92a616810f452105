/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package locker

import (
	"context"
	"sync"
)

// Lock is a mutex that locks based on a key.
type Lock interface {
	LockContext(ctx context.Context) error
	UnlockContext(ctx context.Context) (bool, error)
	Unlock() (bool, error)
}

// Locker hands out per-key mutexes.
type Locker interface {
	NewMutex(key string) Lock
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutexLocker is a mutex locker that locks based on a key. Entries are
// reference counted and removed once no holder or waiter remains, so the map
// does not grow with the number of distinct keys ever seen.
type KeyedMutexLocker struct {
	mu      sync.Mutex
	mutexes map[string]*keyedEntry
}

// NewKeyedMutex creates a new mutex locker.
func NewKeyedMutex() *KeyedMutexLocker {
	return &KeyedMutexLocker{
		mutexes: make(map[string]*keyedEntry),
	}
}

// NewMutex creates a new mutex.
func (k *KeyedMutexLocker) NewMutex(key string) Lock {
	return &KeyedMutex{
		key:    key,
		locker: k,
	}
}

func (k *KeyedMutexLocker) acquire(key string) *keyedEntry {
	k.mu.Lock()

	e, ok := k.mutexes[key]
	if !ok {
		e = &keyedEntry{}
		k.mutexes[key] = e
	}

	e.refs++
	k.mu.Unlock()

	return e
}

func (k *KeyedMutexLocker) release(key string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(k.mutexes, key)
	}
}

// Len returns the number of keys currently held or awaited.
func (k *KeyedMutexLocker) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.mutexes)
}

// KeyedMutex is a mutex that locks based on a key.
type KeyedMutex struct {
	key    string
	locker *KeyedMutexLocker
	entry  *keyedEntry
}

// LockContext locks the mutex. The lock is acquired even if ctx is done.
func (k *KeyedMutex) LockContext(_ context.Context) error {
	e := k.locker.acquire(k.key)
	e.mu.Lock()

	k.entry = e

	return nil
}

// UnlockContext unlocks the mutex.
func (k *KeyedMutex) UnlockContext(_ context.Context) (bool, error) {
	return k.Unlock()
}

// Unlock unlocks the mutex.
func (k *KeyedMutex) Unlock() (bool, error) {
	e := k.entry
	if e == nil {
		return false, nil
	}

	k.entry = nil

	e.mu.Unlock()
	k.locker.release(k.key, e)

	return true, nil
}
