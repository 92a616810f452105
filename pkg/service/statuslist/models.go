/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statuslist

import (
	"context"
	"time"
)

// StatusList is a tenant owned, fixed capacity list of packed status entries.
type StatusList struct {
	ID           string
	TenantID     string
	Sequence     int
	BitsPerEntry int
	Size         int
	// NextIndex is the first index not yet handed out. It never decreases.
	NextIndex int
	Bits      []byte
	CreatedAt time.Time
}

// IndexReference points a credential at its entry. Immutable once issued.
type IndexReference struct {
	ListID       string `json:"list_id"`
	Index        int    `json:"index"`
	URI          string `json:"uri"`
	BitsPerEntry int    `json:"bits"`
}

// EncodedList is the publication payload of a status list.
type EncodedList struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	URI          string    `json:"uri"`
	BitsPerEntry int       `json:"bits"`
	Size         int       `json:"size"`
	EncodedList  string    `json:"lst"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store persists status lists.
type Store interface {
	// Create inserts a new list. Returns ErrListExists when a list for the same
	// tenant, bits per entry and sequence is already present.
	Create(ctx context.Context, list *StatusList) error
	// Get returns the list by id or ErrDataNotFound.
	Get(ctx context.Context, listID string) (*StatusList, error)
	// Current returns the list with the highest sequence for the tenant and width, or ErrDataNotFound.
	Current(ctx context.Context, tenantID string, bitsPerEntry int) (*StatusList, error)
	// ReserveIndex atomically hands out NextIndex and increments it.
	// Returns ErrListExhausted when NextIndex == Size.
	ReserveIndex(ctx context.Context, listID string) (int, error)
	// UpdateBits replaces the packed bytes of the list.
	UpdateBits(ctx context.Context, listID string, bits []byte) error
	// FindByTenant returns all lists of the tenant ordered by creation.
	FindByTenant(ctx context.Context, tenantID string) ([]*StatusList, error)
	// DeleteTenant removes all lists of the tenant.
	DeleteTenant(ctx context.Context, tenantID string) error
}

// Publisher pushes the encoded list to a public location.
type Publisher interface {
	Publish(ctx context.Context, list *EncodedList) error
}
