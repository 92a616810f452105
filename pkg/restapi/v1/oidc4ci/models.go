/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	oidc4cisrv "github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
)

// CredentialRequest is the body of the credential endpoint.
type CredentialRequest struct {
	CredentialConfigurationID    string                                   `json:"credential_configuration_id,omitempty"`
	CredentialIdentifier         string                                   `json:"credential_identifier,omitempty"`
	Proof                        *oidc4cisrv.Proof                        `json:"proof,omitempty"`
	CredentialResponseEncryption *oidc4cisrv.CredentialResponseEncryption `json:"credential_response_encryption,omitempty"`
}

// DeferredCredentialRequest is the body of the deferred credential endpoint.
type DeferredCredentialRequest struct {
	TransactionID string `json:"transaction_id"`
}

// IssuedCredential is a single entry of the credentials array.
type IssuedCredential struct {
	Credential string `json:"credential"`
}

// CredentialResponse is returned when a credential is issued.
type CredentialResponse struct {
	Credentials     []IssuedCredential `json:"credentials"`
	CNonce          string             `json:"c_nonce,omitempty"`
	CNonceExpiresIn int                `json:"c_nonce_expires_in,omitempty"`
}

// DeferredResponse is returned with HTTP 202 when issuance is deferred.
type DeferredResponse struct {
	TransactionID string `json:"transaction_id"`
	Interval      int    `json:"interval"`
}

// NonceResponse is the body of the nonce endpoint.
type NonceResponse struct {
	CNonce          string `json:"c_nonce"`
	CNonceExpiresIn int    `json:"c_nonce_expires_in"`
}

// DeferredClaimsRequest delivers claims for a pending transaction, or refuses it.
type DeferredClaimsRequest struct {
	Claims map[string]interface{} `json:"claims,omitempty"`
	Denied bool                   `json:"denied,omitempty"`
	Reason string                 `json:"reason,omitempty"`
}

// UpdateCredentialStatusRequest changes the status entry of an issued credential.
type UpdateCredentialStatusRequest struct {
	ListID string `json:"list_id"`
	Index  *int   `json:"index"`
	Status *uint8 `json:"status"`
}

// StatusListsResponse lists the public locations of the tenant status lists.
type StatusListsResponse struct {
	StatusLists []string `json:"status_lists"`
}
