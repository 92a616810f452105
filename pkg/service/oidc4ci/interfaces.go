/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination interfaces_mocks_test.go -self_package mocks -package oidc4ci_test -source=interfaces.go -mock_names ClaimsResolver=MockClaimsResolver,Signer=MockSigner,ProofChecker=MockProofChecker,SessionStore=MockSessionStore

package oidc4ci

import (
	"context"
	"time"
)

// ClaimsResolver resolves credential claims for an authorized holder.
type ClaimsResolver interface {
	ResolveClaims(
		ctx context.Context,
		tenantID string,
		credentialConfigurationID string,
		authorizationIdentity string,
	) (*ClaimsResult, error)
}

// Signer signs credentials. Key management lives behind it.
type Signer interface {
	Sign(ctx context.Context, req *SignRequest) (*SignedCredential, error)
}

// ProofChecker validates a key proof. Every rejection wraps ErrInvalidProof.
type ProofChecker interface {
	CheckProof(ctx context.Context, proof *Proof, expectedAudience string) (*ProofClaims, error)
}

// SessionStore persists deferred issuance sessions.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, txID TxID) (*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, txID TxID) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	DeleteTenant(ctx context.Context, tenantID string) error
}
