/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statusliststore

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
)

// Store keeps status lists in process memory.
type Store struct {
	mu      sync.RWMutex
	lists   map[string]*statuslist.StatusList
	current map[string]*statuslist.StatusList
}

// NewStore returns empty in-memory store.
func NewStore() *Store {
	return &Store{
		lists:   map[string]*statuslist.StatusList{},
		current: map[string]*statuslist.StatusList{},
	}
}

func currentKey(tenantID string, bitsPerEntry int) string {
	return tenantID + "/" + strconv.Itoa(bitsPerEntry)
}

func clone(l *statuslist.StatusList) *statuslist.StatusList {
	c := *l
	c.Bits = bytes.Clone(l.Bits)

	return &c
}

// Create inserts a new list.
func (s *Store) Create(_ context.Context, list *statuslist.StatusList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := currentKey(list.TenantID, list.BitsPerEntry)

	for _, l := range s.lists {
		if l.TenantID == list.TenantID && l.BitsPerEntry == list.BitsPerEntry && l.Sequence == list.Sequence {
			return statuslist.ErrListExists
		}
	}

	stored := clone(list)
	s.lists[list.ID] = stored

	if cur, ok := s.current[key]; !ok || cur.Sequence < stored.Sequence {
		s.current[key] = stored
	}

	return nil
}

// Get returns the list by id.
func (s *Store) Get(_ context.Context, listID string) (*statuslist.StatusList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[listID]
	if !ok {
		return nil, statuslist.ErrDataNotFound
	}

	return clone(l), nil
}

// Current returns the list with the highest sequence for the tenant and width.
func (s *Store) Current(_ context.Context, tenantID string, bitsPerEntry int) (*statuslist.StatusList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.current[currentKey(tenantID, bitsPerEntry)]
	if !ok {
		return nil, statuslist.ErrDataNotFound
	}

	return clone(l), nil
}

// ReserveIndex hands out the next index of the list.
func (s *Store) ReserveIndex(_ context.Context, listID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[listID]
	if !ok {
		return 0, statuslist.ErrDataNotFound
	}

	if l.NextIndex >= l.Size {
		return 0, statuslist.ErrListExhausted
	}

	idx := l.NextIndex
	l.NextIndex++

	return idx, nil
}

// UpdateBits replaces the packed bytes of the list.
func (s *Store) UpdateBits(_ context.Context, listID string, bits []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[listID]
	if !ok {
		return statuslist.ErrDataNotFound
	}

	l.Bits = bytes.Clone(bits)

	return nil
}

// FindByTenant returns all lists of the tenant ordered by creation.
func (s *Store) FindByTenant(_ context.Context, tenantID string) ([]*statuslist.StatusList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lists []*statuslist.StatusList

	for _, l := range s.lists {
		if l.TenantID == tenantID {
			lists = append(lists, clone(l))
		}
	}

	slices.SortFunc(lists, func(a, b *statuslist.StatusList) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.Sequence, b.Sequence)
	})

	return lists, nil
}

// DeleteTenant removes all lists of the tenant.
func (s *Store) DeleteTenant(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, l := range s.lists {
		if l.TenantID == tenantID {
			delete(s.lists, id)
			delete(s.current, currentKey(tenantID, l.BitsPerEntry))
		}
	}

	return nil
}
