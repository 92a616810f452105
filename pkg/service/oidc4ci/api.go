/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"context"
)

// ServiceInterface defines the issuance engine operations exposed to the REST layer.
type ServiceInterface interface {
	RequestCredential(ctx context.Context, req *CredentialRequest) (*CredentialResult, error)
	PollDeferred(ctx context.Context, tenantID string, txID TxID) (*CredentialResult, error)
	ResolveDeferred(ctx context.Context, tenantID string, txID TxID, claims map[string]interface{}) error
	DenyDeferred(ctx context.Context, tenantID string, txID TxID, reason string) error
	UpdateCredentialStatus(ctx context.Context, tenantID, listID string, index int, value uint8) error
	IssueNonce(ctx context.Context, tenantID, sessionID string) (*NonceResult, error)
}

var _ ServiceInterface = (*Service)(nil)
