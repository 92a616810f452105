/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nonce

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidNonce is the parent of every validation failure.
	ErrInvalidNonce = errors.New("invalid nonce")

	ErrNonceNotFound = fmt.Errorf("%w: not found", ErrInvalidNonce)
	ErrNonceExpired  = fmt.Errorf("%w: expired", ErrInvalidNonce)
	ErrNonceConsumed = fmt.Errorf("%w: already consumed", ErrInvalidNonce)

	// ErrDuplicateNonce is returned by Store.Create when the value is already taken.
	ErrDuplicateNonce = errors.New("duplicate nonce")
)

// Nonce is a single-use, tenant scoped value proving key possession freshness.
type Nonce struct {
	Value     string    `json:"value"`
	TenantID  string    `json:"tenant_id"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiresIn returns the remaining lifetime in whole seconds.
func (n *Nonce) ExpiresIn(now time.Time) int {
	d := n.ExpiresAt.Sub(now)
	if d <= 0 {
		return 0
	}

	return int(d.Round(time.Second) / time.Second)
}

// Store persists nonces.
type Store interface {
	// Create saves the nonce. Returns ErrDuplicateNonce if the value is taken.
	Create(ctx context.Context, n *Nonce) error
	// Consume looks the nonce up within the tenant and marks it used in one atomic step.
	// Returns ErrNonceNotFound, ErrNonceExpired or ErrNonceConsumed.
	Consume(ctx context.Context, tenantID, value string, now time.Time) (*Nonce, error)
	// DeleteExpired removes entries that expired before now and returns their count.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	// DeleteTenant removes every nonce of the tenant.
	DeleteTenant(ctx context.Context, tenantID string) error
}
