/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package kms

import (
	"context"
	"errors"

	"github.com/go-jose/go-jose/v3"
)

type Type string

const (
	Local Type = "local"
)

// ErrKeyNotFound is returned when a key id is unknown to the key manager.
var ErrKeyNotFound = errors.New("key not found")

// Config configure kms that stores signing keys.
type Config struct {
	KMSType Type `json:"kmsType"`
	// MasterKey seeds the local key derivation. Keys are stable across restarts
	// for the same master key.
	MasterKey string `json:"masterKey"`
}

// KeyManager hands out signing keys by id.
type KeyManager interface {
	// SigningKey returns the private key as a JWK whose KeyID is the key id.
	SigningKey(ctx context.Context, keyID string) (*jose.JSONWebKey, error)
}
