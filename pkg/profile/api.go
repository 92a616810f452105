/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package profile

import (
	"errors"
	"fmt"
	"slices"
)

type ID = string

// Credential formats.
const (
	FormatJWTVCJSON = "jwt_vc_json"
	FormatSDJWTVC   = "dc+sd-jwt"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrInvalidProfile = errors.New("invalid profile")
)

// Tenant is the issuance configuration of one tenant.
type Tenant struct {
	ID     ID     `json:"id"`
	Name   string `json:"name,omitempty"`
	Active bool   `json:"active"`
	// URL is the credential issuer identifier. Wallet proofs must use it as audience.
	URL string `json:"url"`
	// SigningKeyID selects the signing key used for the tenant's credentials.
	SigningKeyID             string                              `json:"signingKeyID"`
	CredentialConfigurations map[string]*CredentialConfiguration `json:"credentialConfigurations"`
	StatusList               *StatusListConfig                   `json:"statusList,omitempty"`
	Deferred                 *DeferredConfig                     `json:"deferred,omitempty"`
	Claims                   *ClaimsConfig                       `json:"claims,omitempty"`
	Encryption               *EncryptionConfig                   `json:"encryption,omitempty"`
}

// CredentialConfiguration describes one credential the tenant can issue.
type CredentialConfiguration struct {
	Format string   `json:"format"`
	VCT    string   `json:"vct,omitempty"`
	Types  []string `json:"types,omitempty"`
	// Claims are issued as-is when the tenant has no claims webhook.
	Claims map[string]interface{} `json:"claims,omitempty"`
	// Deferred makes the static resolver always defer.
	Deferred bool `json:"deferred,omitempty"`
}

// StatusListConfig holds status list parameters for the tenant.
type StatusListConfig struct {
	BitsPerEntry int `json:"bitsPerEntry"`
	Size         int `json:"size"`
}

// DeferredConfig holds deferred issuance parameters.
type DeferredConfig struct {
	// Interval is the minimum poll interval in seconds.
	Interval int `json:"interval"`
	// Lifetime is the maximum session lifetime in seconds.
	Lifetime int `json:"lifetime"`
}

// ClaimsConfig points at the external claims webhook.
type ClaimsConfig struct {
	WebhookURL string `json:"webhookURL"`
}

// EncryptionConfig lists supported credential response encryption parameters.
type EncryptionConfig struct {
	Required           bool     `json:"required"`
	AlgValuesSupported []string `json:"algValuesSupported"`
	EncValuesSupported []string `json:"encValuesSupported"`
}

// Validate checks the tenant configuration.
func (t *Tenant) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProfile)
	}

	if t.URL == "" {
		return fmt.Errorf("%w: tenant %s: url is required", ErrInvalidProfile, t.ID)
	}

	if len(t.CredentialConfigurations) == 0 {
		return fmt.Errorf("%w: tenant %s: no credential configurations", ErrInvalidProfile, t.ID)
	}

	for id, cc := range t.CredentialConfigurations {
		if cc == nil {
			return fmt.Errorf("%w: tenant %s: credential configuration %s is empty", ErrInvalidProfile, t.ID, id)
		}

		if cc.Format != FormatJWTVCJSON && cc.Format != FormatSDJWTVC {
			return fmt.Errorf("%w: tenant %s: credential configuration %s: unsupported format %q",
				ErrInvalidProfile, t.ID, id, cc.Format)
		}
	}

	if t.StatusList != nil {
		if !slices.Contains([]int{1, 2, 4, 8}, t.StatusList.BitsPerEntry) {
			return fmt.Errorf("%w: tenant %s: bitsPerEntry must be one of 1, 2, 4, 8", ErrInvalidProfile, t.ID)
		}

		if t.StatusList.Size < 0 {
			return fmt.Errorf("%w: tenant %s: negative status list size", ErrInvalidProfile, t.ID)
		}
	}

	if t.Deferred != nil && (t.Deferred.Interval < 0 || t.Deferred.Lifetime < 0) {
		return fmt.Errorf("%w: tenant %s: negative deferred parameters", ErrInvalidProfile, t.ID)
	}

	if t.Encryption != nil && t.Encryption.Required &&
		(len(t.Encryption.AlgValuesSupported) == 0 || len(t.Encryption.EncValuesSupported) == 0) {
		return fmt.Errorf("%w: tenant %s: encryption required without supported algorithms",
			ErrInvalidProfile, t.ID)
	}

	return nil
}

// CredentialConfiguration returns the configuration with the given id.
func (t *Tenant) CredentialConfiguration(id string) (*CredentialConfiguration, bool) {
	cc, ok := t.CredentialConfigurations[id]

	return cc, ok && cc != nil
}
