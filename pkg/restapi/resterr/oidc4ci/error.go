/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"github.com/trustbloc/vcs-issuance/pkg/restapi/resterr"
)

// oidc4ciErrorCode is an error code of the Credential and Deferred Credential endpoints.
type oidc4ciErrorCode string

const (
	// invalidCredentialRequest - the Credential Request is missing a required parameter,
	// includes an unsupported parameter or parameter value, repeats the same parameter,
	// or is otherwise malformed.
	invalidCredentialRequest oidc4ciErrorCode = "invalid_credential_request" //nolint:gosec

	// unknownCredentialConfiguration - requested credential_configuration_id is unknown.
	unknownCredentialConfiguration oidc4ciErrorCode = "unknown_credential_configuration"

	// unknownCredentialIdentifier - requested credential_identifier is unknown or
	// was not authorized by the access token.
	unknownCredentialIdentifier oidc4ciErrorCode = "unknown_credential_identifier"

	// invalidProof - the proof is not present, malformed, or its signature or audience is invalid.
	invalidProof oidc4ciErrorCode = "invalid_proof"

	// invalidNonce - the proof is not bound to a fresh c_nonce.
	invalidNonce oidc4ciErrorCode = "invalid_nonce"

	// invalidEncryptionParameters - the encryption parameters are invalid or missing
	// while the issuer requires encrypted responses.
	invalidEncryptionParameters oidc4ciErrorCode = "invalid_encryption_parameters"

	// credentialRequestDenied - the issuer will not issue the credential.
	credentialRequestDenied oidc4ciErrorCode = "credential_request_denied"

	// issuancePending - the deferred credential is not ready yet. Carries interval.
	issuancePending oidc4ciErrorCode = "issuance_pending"

	// invalidTransactionID - the transaction_id is unknown, expired or already used.
	invalidTransactionID oidc4ciErrorCode = "invalid_transaction_id"

	// badRequest proprietary error code for malformed administrative requests.
	badRequest oidc4ciErrorCode = "bad_request"

	// notFound proprietary error code for unknown administrative resources.
	notFound oidc4ciErrorCode = "not_found"
)

// Error represents OIDC4CI error.
type Error = resterr.RFCError[oidc4ciErrorCode]
