/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwtproof

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/samber/lo"

	"github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
)

const (
	// ProofJWTType is the mandatory typ header of a key proof.
	ProofJWTType = "openid4vci-proof+jwt"

	didJWKPrefix = "did:jwk:"

	defaultLeeway = time.Minute
	defaultMaxAge = 5 * time.Minute
)

var allowedAlgorithms = []string{
	string(jose.EdDSA),
	string(jose.ES256),
	string(jose.ES384),
	string(jose.ES512),
	string(jose.PS256),
	string(jose.PS384),
	string(jose.PS512),
	string(jose.RS256),
	string(jose.RS384),
	string(jose.RS512),
}

// Config defines configuration for Checker.
type Config struct {
	Clock clock.Clock
	// Leeway is the tolerated clock skew for iat.
	Leeway time.Duration
	// MaxAge rejects proofs issued longer ago.
	MaxAge time.Duration
}

// Checker validates openid4vci-proof+jwt key proofs. The holder key is taken
// from the jwk header or from a did:jwk kid.
type Checker struct {
	clock  clock.Clock
	leeway time.Duration
	maxAge time.Duration
}

// New returns a new Checker.
func New(config *Config) *Checker {
	c := &Checker{
		clock:  config.Clock,
		leeway: config.Leeway,
		maxAge: config.MaxAge,
	}

	if c.clock == nil {
		c.clock = clock.New()
	}

	if c.leeway <= 0 {
		c.leeway = defaultLeeway
	}

	if c.maxAge <= 0 {
		c.maxAge = defaultMaxAge
	}

	return c
}

var _ oidc4ci.ProofChecker = (*Checker)(nil)

type proofClaims struct {
	jwt.Claims

	Nonce string `json:"nonce,omitempty"`
}

func invalidProof(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", oidc4ci.ErrInvalidProof, fmt.Sprintf(format, args...))
}

// CheckProof verifies the proof signature, audience, and freshness, and returns
// the nonce and holder key it carries.
func (c *Checker) CheckProof(
	_ context.Context,
	proof *oidc4ci.Proof,
	expectedAudience string,
) (*oidc4ci.ProofClaims, error) {
	if proof == nil {
		return nil, invalidProof("proof is missing")
	}

	if proof.ProofType != oidc4ci.ProofTypeJWT {
		return nil, invalidProof("unsupported proof_type %q", proof.ProofType)
	}

	if proof.JWT == "" {
		return nil, invalidProof("jwt is missing")
	}

	token, err := jwt.ParseSigned(proof.JWT)
	if err != nil {
		return nil, invalidProof("parse jwt: %s", err)
	}

	if len(token.Headers) != 1 {
		return nil, invalidProof("jwt expected to have exactly one signature")
	}

	headers := token.Headers[0]

	if typ, _ := headers.ExtraHeaders[jose.HeaderType].(string); typ != ProofJWTType {
		return nil, invalidProof("typ must be %q", ProofJWTType)
	}

	if !lo.Contains(allowedAlgorithms, headers.Algorithm) {
		return nil, invalidProof("alg %q is not allowed", headers.Algorithm)
	}

	key, err := holderKey(&headers)
	if err != nil {
		return nil, err
	}

	var claims proofClaims

	if err = token.Claims(key.Key, &claims); err != nil {
		return nil, invalidProof("verify signature: %s", err)
	}

	if err = c.validateClaims(&claims, expectedAudience); err != nil {
		return nil, err
	}

	return &oidc4ci.ProofClaims{
		Nonce:       claims.Nonce,
		Issuer:      claims.Issuer,
		HolderKeyID: headers.KeyID,
		HolderJWK:   key,
	}, nil
}

func (c *Checker) validateClaims(claims *proofClaims, expectedAudience string) error {
	if claims.IssuedAt == nil {
		return invalidProof("iat is missing")
	}

	now := c.clock.Now()

	err := claims.Claims.ValidateWithLeeway(jwt.Expected{
		Audience: jwt.Audience{expectedAudience},
		Time:     now,
	}, c.leeway)
	if err != nil {
		return invalidProof("validate claims: %s", err)
	}

	if now.Sub(claims.IssuedAt.Time()) > c.maxAge+c.leeway {
		return invalidProof("proof is too old")
	}

	return nil
}

// holderKey returns the public key the proof is signed with. Exactly one of
// jwk and kid identifies it.
func holderKey(headers *jose.Header) (*jose.JSONWebKey, error) {
	switch {
	case headers.JSONWebKey != nil && headers.KeyID != "" && !strings.HasPrefix(headers.KeyID, didJWKPrefix):
		return nil, invalidProof("kid and jwk must not both be present")
	case headers.JSONWebKey != nil:
		if !headers.JSONWebKey.IsPublic() {
			return nil, invalidProof("jwk must be a public key")
		}

		return headers.JSONWebKey, nil
	case strings.HasPrefix(headers.KeyID, didJWKPrefix):
		return resolveDIDJWK(headers.KeyID)
	case headers.KeyID != "":
		return nil, invalidProof("kid %q cannot be resolved", headers.KeyID)
	default:
		return nil, invalidProof("either jwk or kid must be present")
	}
}

func resolveDIDJWK(kid string) (*jose.JSONWebKey, error) {
	did, _, _ := strings.Cut(kid, "#")

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(did, didJWKPrefix))
	if err != nil {
		return nil, invalidProof("decode did:jwk: %s", err)
	}

	var key jose.JSONWebKey

	if err = key.UnmarshalJSON(raw); err != nil {
		return nil, invalidProof("parse did:jwk: %s", err)
	}

	if !key.IsPublic() {
		return nil, invalidProof("did:jwk must be a public key")
	}

	return &key, nil
}
