/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import "errors"

var (
	// ErrDataNotFound is returned by session stores for unknown transactions.
	ErrDataNotFound = errors.New("data not found")
	// ErrClaimsDenied is returned by claims resolvers that refuse issuance.
	ErrClaimsDenied = errors.New("claims resolution denied")
	// ErrInvalidProof is returned by proof checkers for any rejected proof.
	ErrInvalidProof = errors.New("invalid proof")
)
