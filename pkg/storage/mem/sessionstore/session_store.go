/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sessionstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
)

var ErrDuplicateTransaction = errors.New("transaction already exists")

// Store keeps deferred issuance sessions in process memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[oidc4ci.TxID]oidc4ci.Session
}

// NewStore returns empty in-memory store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[oidc4ci.TxID]oidc4ci.Session),
	}
}

// Create saves a new session.
func (s *Store) Create(_ context.Context, session *oidc4ci.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.TransactionID]; ok {
		return ErrDuplicateTransaction
	}

	s.sessions[session.TransactionID] = *session

	return nil
}

// Get returns a copy of the session.
func (s *Store) Get(_ context.Context, txID oidc4ci.TxID) (*oidc4ci.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[txID]
	if !ok {
		return nil, oidc4ci.ErrDataNotFound
	}

	return &session, nil
}

// Update replaces an existing session.
func (s *Store) Update(_ context.Context, session *oidc4ci.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.TransactionID]; !ok {
		return oidc4ci.ErrDataNotFound
	}

	s.sessions[session.TransactionID] = *session

	return nil
}

// Delete removes the session.
func (s *Store) Delete(_ context.Context, txID oidc4ci.TxID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[txID]; !ok {
		return oidc4ci.ErrDataNotFound
	}

	delete(s.sessions, txID)

	return nil
}

// DeleteExpired removes sessions whose lifetime ended before now.
func (s *Store) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for id, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.sessions, id)
			count++
		}
	}

	return count, nil
}

// DeleteTenant removes every session of the tenant.
func (s *Store) DeleteTenant(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if session.TenantID == tenantID {
			delete(s.sessions, id)
		}
	}

	return nil
}
