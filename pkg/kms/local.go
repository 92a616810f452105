/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package kms

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/go-jose/go-jose/v3"
)

const derivationLabel = "vcs-issuance/signing-key/"

// LocalKeyManager derives Ed25519 signing keys from a master key.
type LocalKeyManager struct {
	masterKey []byte

	mu   sync.RWMutex
	keys map[string]*jose.JSONWebKey
}

func NewLocalKeyManager(cfg *Config) (*LocalKeyManager, error) {
	if cfg.MasterKey == "" {
		return nil, errors.New("master key is required for local kms")
	}

	return &LocalKeyManager{
		masterKey: []byte(cfg.MasterKey),
		keys:      make(map[string]*jose.JSONWebKey),
	}, nil
}

func (m *LocalKeyManager) SigningKey(_ context.Context, keyID string) (*jose.JSONWebKey, error) {
	if keyID == "" {
		return nil, fmt.Errorf("%w: empty key id", ErrKeyNotFound)
	}

	m.mu.RLock()
	k, ok := m.keys[keyID]
	m.mu.RUnlock()

	if ok {
		return k, nil
	}

	h := sha256.New()
	h.Write(m.masterKey)
	h.Write([]byte(derivationLabel + keyID))

	k = &jose.JSONWebKey{
		Key:       ed25519.NewKeyFromSeed(h.Sum(nil)),
		KeyID:     keyID,
		Algorithm: string(jose.EdDSA),
		Use:       "sig",
	}

	m.mu.Lock()
	m.keys[keyID] = k
	m.mu.Unlock()

	return k, nil
}
