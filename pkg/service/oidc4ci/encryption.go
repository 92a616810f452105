/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-jose/go-jose/v3"

	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
)

func validateEncryption(cfg *profileapi.EncryptionConfig, enc *CredentialResponseEncryption) error {
	if enc == nil {
		if cfg != nil && cfg.Required {
			return errors.New("credential response encryption is required")
		}

		return nil
	}

	if cfg == nil || len(cfg.AlgValuesSupported) == 0 {
		return errors.New("credential response encryption is not supported")
	}

	if enc.JWK == nil || !enc.JWK.Valid() {
		return errors.New("invalid encryption jwk")
	}

	if !enc.JWK.IsPublic() {
		return errors.New("encryption jwk must be a public key")
	}

	if !slices.Contains(cfg.AlgValuesSupported, enc.Alg) {
		return fmt.Errorf("unsupported alg %q", enc.Alg)
	}

	if !slices.Contains(cfg.EncValuesSupported, enc.Enc) {
		return fmt.Errorf("unsupported enc %q", enc.Enc)
	}

	return nil
}

// EncryptResponse returns payload as a compact JWE for the wallet key.
func EncryptResponse(payload []byte, enc *CredentialResponseEncryption) (string, error) {
	encrypter, err := jose.NewEncrypter(
		jose.ContentEncryption(enc.Enc),
		jose.Recipient{
			Algorithm: jose.KeyAlgorithm(enc.Alg),
			Key:       enc.JWK.Key,
			KeyID:     enc.JWK.KeyID,
		},
		(&jose.EncrypterOptions{}).WithContentType("json"),
	)
	if err != nil {
		return "", fmt.Errorf("create encrypter: %w", err)
	}

	jwe, err := encrypter.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("encrypt response: %w", err)
	}

	return jwe.CompactSerialize()
}
