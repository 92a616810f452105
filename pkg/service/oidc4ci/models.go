/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"time"

	"github.com/go-jose/go-jose/v3"

	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
)

// TxID is the deferred issuance transaction id.
type TxID string

// SessionState is the persisted state of a deferred issuance session.
type SessionState string

const (
	SessionStatePending SessionState = "pending"
	SessionStateReady   SessionState = "ready"
	SessionStateDenied  SessionState = "denied"
	SessionStateIssued  SessionState = "issued"
	SessionStateExpired SessionState = "expired"
)

// RequestState is the furthest state reached by a credential request.
type RequestState string

const (
	RequestStateReceived        RequestState = "received"
	RequestStateNonceValidated  RequestState = "nonce_validated"
	RequestStateClaimsResolving RequestState = "claims_resolving"
	RequestStateIssued          RequestState = "issued"
	RequestStateDeferred        RequestState = "deferred"
	RequestStateDenied          RequestState = "denied"
	RequestStatePolling         RequestState = "polling"
	RequestStateExpired         RequestState = "expired"
)

// Proof types.
const (
	ProofTypeJWT = "jwt"
)

// Session is a deferred issuance transaction.
type Session struct {
	TransactionID             TxID                          `json:"transactionId"`
	TenantID                  string                        `json:"tenantId"`
	CredentialConfigurationID string                        `json:"credentialConfigurationId"`
	AuthorizationIdentity     string                        `json:"authorizationIdentity"`
	SessionID                 string                        `json:"sessionId,omitempty"`
	HolderKeyID               string                        `json:"holderKeyId,omitempty"`
	HolderJWK                 *jose.JSONWebKey              `json:"holderJwk,omitempty"`
	CreatedAt                 time.Time                     `json:"createdAt"`
	ExpiresAt                 time.Time                     `json:"expiresAt"`
	LastPolledAt              time.Time                     `json:"lastPolledAt"`
	State                     SessionState                  `json:"state"`
	Interval                  int                           `json:"interval"`
	Claims                    map[string]interface{}        `json:"claims,omitempty"`
	DenyReason                string                        `json:"denyReason,omitempty"`
	ResponseEncryption        *CredentialResponseEncryption `json:"responseEncryption,omitempty"`
}

// Proof is the key proof sent by the wallet.
type Proof struct {
	ProofType string `json:"proof_type"`
	JWT       string `json:"jwt,omitempty"`
}

// ProofClaims is the validated content of a key proof.
type ProofClaims struct {
	Nonce       string
	Issuer      string
	HolderKeyID string
	HolderJWK   *jose.JSONWebKey
}

// CredentialResponseEncryption holds the wallet's response encryption parameters.
type CredentialResponseEncryption struct {
	JWK *jose.JSONWebKey `json:"jwk"`
	Alg string           `json:"alg"`
	Enc string           `json:"enc"`
}

// AccessGrant is what the authorization server granted to the wallet. It is
// resolved from the access token outside the engine.
type AccessGrant struct {
	Subject   string
	SessionID string
	// CredentialIdentifiers maps an authorized credential_identifier to its
	// credential configuration id.
	CredentialIdentifiers map[string]string
}

// CredentialRequest is a validated-for-syntax credential endpoint request.
type CredentialRequest struct {
	TenantID                     string
	CredentialConfigurationID    string
	CredentialIdentifier         string
	Proof                        *Proof
	CredentialResponseEncryption *CredentialResponseEncryption
	Grant                        *AccessGrant
}

// ClaimsResult is returned by the claims resolver. Either Claims is set or
// Deferred is true.
type ClaimsResult struct {
	Claims   map[string]interface{}
	Deferred bool
	// Interval is the recommended poll interval in seconds.
	Interval int
}

// SignRequest is handed to the external credential signer.
type SignRequest struct {
	TenantID                  string
	Issuer                    string
	KeyID                     string
	Format                    string
	CredentialConfigurationID string
	VCT                       string
	Types                     []string
	Subject                   string
	Claims                    map[string]interface{}
	Status                    *statuslist.IndexReference
	HolderKeyID               string
	HolderJWK                 *jose.JSONWebKey
}

// SignedCredential is the signer output.
type SignedCredential struct {
	Format     string
	Credential string
}

// CredentialResult is the outcome of a credential or deferred credential request.
// Exactly one of Credential and TransactionID is set.
type CredentialResult struct {
	Credential    *SignedCredential
	Status        *statuslist.IndexReference
	TransactionID TxID
	Interval      int
	CNonce        string
	CNonceExpires int
	Encryption    *CredentialResponseEncryption
}

// NonceResult is returned by the c_nonce endpoint.
type NonceResult struct {
	CNonce    string
	ExpiresIn int
}
