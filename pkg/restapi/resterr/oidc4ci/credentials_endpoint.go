/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"net/http"
)

func newError(code oidc4ciErrorCode, status int, err error) *Error {
	return &Error{
		ErrorCode:  code,
		Err:        err,
		HTTPStatus: status,
	}
}

func NewInvalidCredentialRequestError(err error) *Error {
	return newError(invalidCredentialRequest, http.StatusBadRequest, err)
}

func NewUnknownCredentialConfigurationError(err error) *Error {
	return newError(unknownCredentialConfiguration, http.StatusBadRequest, err)
}

func NewUnknownCredentialIdentifierError(err error) *Error {
	return newError(unknownCredentialIdentifier, http.StatusBadRequest, err)
}

func NewInvalidProofError(err error) *Error {
	return newError(invalidProof, http.StatusBadRequest, err)
}

func NewInvalidNonceError(err error) *Error {
	return newError(invalidNonce, http.StatusBadRequest, err)
}

func NewInvalidEncryptionParametersError(err error) *Error {
	return newError(invalidEncryptionParameters, http.StatusBadRequest, err)
}

// NewCredentialRequestDeniedError is terminal: the wallet must not retry.
func NewCredentialRequestDeniedError(err error) *Error {
	return newError(credentialRequestDenied, http.StatusBadRequest, err)
}
