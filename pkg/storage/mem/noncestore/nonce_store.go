/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noncestore

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trustbloc/vcs-issuance/pkg/service/nonce"
)

type entry struct {
	nonce    nonce.Nonce
	consumed atomic.Bool
}

// Store keeps nonces in process memory. Consumed entries stay until they
// expire so that reuse is reported as nonce.ErrNonceConsumed.
type Store struct {
	entries sync.Map // value -> *entry
}

// NewStore returns empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Create saves the nonce.
func (s *Store) Create(_ context.Context, n *nonce.Nonce) error {
	e := &entry{nonce: *n}

	if _, loaded := s.entries.LoadOrStore(n.Value, e); loaded {
		return nonce.ErrDuplicateNonce
	}

	return nil
}

// Consume marks the nonce used. Only one caller can win the compare-and-swap.
func (s *Store) Consume(_ context.Context, tenantID, value string, now time.Time) (*nonce.Nonce, error) {
	v, ok := s.entries.Load(value)
	if !ok {
		return nil, nonce.ErrNonceNotFound
	}

	e := v.(*entry) //nolint:errcheck

	if e.nonce.TenantID != tenantID {
		return nil, nonce.ErrNonceNotFound
	}

	if !now.Before(e.nonce.ExpiresAt) {
		if e.consumed.Load() {
			return nil, nonce.ErrNonceConsumed
		}

		return nil, nonce.ErrNonceExpired
	}

	if !e.consumed.CompareAndSwap(false, true) {
		return nil, nonce.ErrNonceConsumed
	}

	n := e.nonce

	return &n, nil
}

// DeleteExpired removes expired entries, consumed or not.
func (s *Store) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	count := 0

	s.entries.Range(func(key, value any) bool {
		if !now.Before(value.(*entry).nonce.ExpiresAt) { //nolint:errcheck
			s.entries.Delete(key)
			count++
		}

		return true
	})

	return count, nil
}

// DeleteTenant removes every nonce of the tenant.
func (s *Store) DeleteTenant(_ context.Context, tenantID string) error {
	s.entries.Range(func(key, value any) bool {
		if value.(*entry).nonce.TenantID == tenantID { //nolint:errcheck
			s.entries.Delete(key)
		}

		return true
	})

	return nil
}
