/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package accesstoken

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"

	"github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
)

const (
	authorizationDetailsType = "openid_credential"
	bearerPrefix             = "bearer "
	defaultLeeway            = 30 * time.Second
)

var (
	// ErrMissingToken is returned when the request carries no bearer token.
	ErrMissingToken = errors.New("missing access token")
	// ErrInvalidToken is returned for any token that fails verification.
	ErrInvalidToken = errors.New("invalid access token")
)

// AuthorizationDetails is an openid_credential authorization details entry.
type AuthorizationDetails struct {
	Type                      string   `json:"type"`
	CredentialConfigurationID string   `json:"credential_configuration_id"`
	CredentialIdentifiers     []string `json:"credential_identifiers,omitempty"`
}

// Claims is the payload of an access token minted by the authorization server.
type Claims struct {
	jwt.Claims

	SessionID            string                  `json:"sid"`
	AuthorizationDetails []*AuthorizationDetails `json:"authorization_details,omitempty"`
}

// Config defines configuration for Validator.
type Config struct {
	// Secret is the HMAC key shared with the authorization server.
	Secret []byte
	// Issuer, when set, must match the iss claim.
	Issuer string
	Clock  clock.Clock
}

// Validator verifies HS256 access tokens and turns them into access grants.
type Validator struct {
	secret []byte
	issuer string
	clock  clock.Clock
}

// New returns a new Validator.
func New(config *Config) *Validator {
	v := &Validator{
		secret: config.Secret,
		issuer: config.Issuer,
		clock:  config.Clock,
	}

	if v.clock == nil {
		v.clock = clock.New()
	}

	return v
}

// FromRequest reads the bearer token of the request.
func FromRequest(req *http.Request) (string, error) {
	auth := req.Header.Get("Authorization")

	if len(auth) <= len(bearerPrefix) || !strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
		return "", ErrMissingToken
	}

	return strings.TrimSpace(auth[len(bearerPrefix):]), nil
}

// Grant validates the token and returns the access grant it carries.
func (v *Validator) Grant(token string) (*oidc4ci.AccessGrant, error) {
	parsed, err := jwt.ParseSigned(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if len(parsed.Headers) != 1 || parsed.Headers[0].Algorithm != string(jose.HS256) {
		return nil, fmt.Errorf("%w: unexpected signing algorithm", ErrInvalidToken)
	}

	var claims Claims

	if err = parsed.Claims(v.secret, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Expiry == nil {
		return nil, fmt.Errorf("%w: exp is missing", ErrInvalidToken)
	}

	if err = claims.Claims.ValidateWithLeeway(jwt.Expected{
		Issuer: v.issuer,
		Time:   v.clock.Now(),
	}, defaultLeeway); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: sub is missing", ErrInvalidToken)
	}

	grant := &oidc4ci.AccessGrant{
		Subject:               claims.Subject,
		SessionID:             claims.SessionID,
		CredentialIdentifiers: map[string]string{},
	}

	for _, ad := range claims.AuthorizationDetails {
		if ad == nil || ad.Type != authorizationDetailsType {
			continue
		}

		for _, id := range ad.CredentialIdentifiers {
			grant.CredentialIdentifiers[id] = ad.CredentialConfigurationID
		}
	}

	return grant, nil
}

// Mint signs claims with the shared secret. The authorization server side of
// the contract, used by tests and local tooling.
func Mint(secret []byte, claims *Claims) (string, error) {
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: secret},
		(&jose.SignerOptions{}).WithType("at+jwt"))
	if err != nil {
		return "", fmt.Errorf("create signer: %w", err)
	}

	token, err := jwt.Signed(signer).Claims(claims).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return token, nil
}
