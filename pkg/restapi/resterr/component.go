/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

type Component string

//nolint:gosec
const (
	IssuerOIDC4ciSvcComponent Component = "issuer.oidc4ci-service"
	NonceSvcComponent         Component = "issuer.nonce-service"
	StatusListSvcComponent    Component = "issuer.status-list-registry"
	ClaimsResolverComponent   Component = "issuer.claims-resolver"
	CredentialSignerComponent Component = "issuer.credential-signer"
	ProofCheckerComponent     Component = "issuer.proof-checker"
	TenantSvcComponent        Component = "issuer.tenant-service"
)
