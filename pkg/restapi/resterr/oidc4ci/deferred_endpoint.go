/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"net/http"
)

// NewIssuancePendingError returns issuance_pending carrying the poll interval in seconds.
func NewIssuancePendingError(err error, interval int) *Error {
	return newError(issuancePending, http.StatusBadRequest, err).WithInterval(interval)
}

// NewInvalidTransactionIDError never carries an interval.
func NewInvalidTransactionIDError(err error) *Error {
	return newError(invalidTransactionID, http.StatusBadRequest, err)
}

func NewBadRequestError(err error) *Error {
	return newError(badRequest, http.StatusBadRequest, err)
}

func NewNotFoundError(err error) *Error {
	return newError(notFound, http.StatusNotFound, err)
}
