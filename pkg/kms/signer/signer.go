/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"context"
	"crypto"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/google/uuid"
	afjose "github.com/hyperledger/aries-framework-go/component/kmscrypto/doc/jose"
	afjwt "github.com/hyperledger/aries-framework-go/component/models/jwt"
	"github.com/hyperledger/aries-framework-go/component/models/sdjwt/common"
	"github.com/hyperledger/aries-framework-go/component/models/sdjwt/issuer"
	"github.com/samber/lo"

	"github.com/trustbloc/vcs-issuance/pkg/kms"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
	"github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
)

const (
	sdJWTType  = "dc+sd-jwt"
	jwtVCType  = "JWT"
	saltLength = 16

	vcContext         = "https://www.w3.org/ns/credentials/v2"
	vcBaseType        = "VerifiableCredential"
	statusEntryType   = "BitstringStatusListEntry"
	statusPurposeType = "revocation"
)

type keyManager interface {
	SigningKey(ctx context.Context, keyID string) (*jose.JSONWebKey, error)
}

// Config defines configuration for Signer.
type Config struct {
	KeyManager keyManager
	Clock      clock.Clock
	// Random is the salt source for selective disclosures.
	Random io.Reader
}

// Signer produces compact JWS credentials (jwt_vc_json) and SD-JWT VCs
// (dc+sd-jwt) signed with EdDSA keys from the key manager.
type Signer struct {
	keys   keyManager
	clock  clock.Clock
	random io.Reader
}

// New returns a new Signer.
func New(config *Config) *Signer {
	s := &Signer{
		keys:   config.KeyManager,
		clock:  config.Clock,
		random: config.Random,
	}

	if s.clock == nil {
		s.clock = clock.New()
	}

	if s.random == nil {
		s.random = rand.Reader
	}

	return s
}

var (
	_ oidc4ci.Signer = (*Signer)(nil)
	_ keyManager     = (kms.KeyManager)(nil)
)

// Sign signs the credential described by req. The tenant id is the key id when
// the tenant has no dedicated signing key.
func (s *Signer) Sign(ctx context.Context, req *oidc4ci.SignRequest) (*oidc4ci.SignedCredential, error) {
	keyID := lo.Ternary(req.KeyID != "", req.KeyID, req.TenantID)

	key, err := s.keys.SigningKey(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("get signing key %s: %w", keyID, err)
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	var credential string

	switch req.Format {
	case profileapi.FormatSDJWTVC:
		credential, err = s.signSDJWT(key, req)
	case profileapi.FormatJWTVCJSON:
		credential, err = s.signJWTVC(key, req)
	default:
		return nil, fmt.Errorf("unsupported credential format %q", req.Format)
	}

	if err != nil {
		return nil, err
	}

	return &oidc4ci.SignedCredential{
		Format:     req.Format,
		Credential: credential,
	}, nil
}

func (s *Signer) newJWTSigner(key *jose.JSONWebKey, typ string) (jose.Signer, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.EdDSA, Key: key},
		(&jose.SignerOptions{}).WithType(jose.ContentType(typ)),
	)
	if err != nil {
		return nil, fmt.Errorf("create jws signer: %w", err)
	}

	return signer, nil
}

func (s *Signer) registeredClaims(req *oidc4ci.SignRequest) jwt.Claims {
	now := jwt.NewNumericDate(s.clock.Now())

	return jwt.Claims{
		Issuer:    req.Issuer,
		Subject:   req.Subject,
		IssuedAt:  now,
		NotBefore: now,
		ID:        "urn:uuid:" + uuid.NewString(),
	}
}

func confirmation(req *oidc4ci.SignRequest) map[string]interface{} {
	switch {
	case req.HolderJWK != nil:
		return map[string]interface{}{"jwk": req.HolderJWK}
	case req.HolderKeyID != "":
		return map[string]interface{}{"kid": req.HolderKeyID}
	default:
		return nil
	}
}

// selectiveDisclosures computes the disclosures of the credential claims. Only
// the digests are taken from the returned token, so it is not signed.
func (s *Signer) selectiveDisclosures(req *oidc4ci.SignRequest) (*issuer.SelectiveDisclosureJWT, error) {
	token, err := issuer.New(
		req.Issuer,
		lo.Assign(req.Claims),
		nil,
		&unsecuredJWTSigner{},
		issuer.WithHashAlgorithm(crypto.SHA256),
		issuer.WithSaltFnc(s.newSalt),
	)
	if err != nil {
		return nil, fmt.Errorf("create sd-jwt disclosures: %w", err)
	}

	return token, nil
}

func (s *Signer) signSDJWT(key *jose.JSONWebKey, req *oidc4ci.SignRequest) (string, error) {
	sd, err := s.selectiveDisclosures(req)
	if err != nil {
		return "", err
	}

	custom := map[string]interface{}{
		"vct":                 lo.Ternary(req.VCT != "", req.VCT, req.CredentialConfigurationID),
		common.SDAlgorithmKey: sd.SignedJWT.Payload[common.SDAlgorithmKey],
	}

	if digests, ok := sd.SignedJWT.Payload[common.SDKey]; ok {
		custom[common.SDKey] = digests
	}

	if cnf := confirmation(req); cnf != nil {
		custom["cnf"] = cnf
	}

	if req.Status != nil {
		custom["status"] = map[string]interface{}{
			"status_list": map[string]interface{}{
				"idx": req.Status.Index,
				"uri": req.Status.URI,
			},
		}
	}

	signer, err := s.newJWTSigner(key, sdJWTType)
	if err != nil {
		return "", err
	}

	token, err := jwt.Signed(signer).Claims(s.registeredClaims(req)).Claims(custom).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("sign sd-jwt: %w", err)
	}

	return strings.Join(append([]string{token}, sd.Disclosures...), common.CombinedFormatSeparator) +
		common.CombinedFormatSeparator, nil
}

func (s *Signer) newSalt() (string, error) {
	salt := make([]byte, saltLength)

	if _, err := io.ReadFull(s.random, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(salt), nil
}

type unsecuredJWTSigner struct{}

func (unsecuredJWTSigner) Sign(_ []byte) ([]byte, error) {
	return []byte(""), nil
}

func (unsecuredJWTSigner) Headers() afjose.Headers {
	return afjose.Headers{
		afjose.HeaderAlgorithm: afjwt.AlgorithmNone,
	}
}

func (s *Signer) signJWTVC(key *jose.JSONWebKey, req *oidc4ci.SignRequest) (string, error) {
	subject := make(map[string]interface{}, len(req.Claims)+1)
	for k, v := range req.Claims {
		subject[k] = v
	}

	if req.Subject != "" {
		subject["id"] = req.Subject
	}

	vc := map[string]interface{}{
		"@context":          []string{vcContext},
		"type":              append([]string{vcBaseType}, lo.Without(req.Types, vcBaseType)...),
		"issuer":            req.Issuer,
		"validFrom":         s.clock.Now().UTC().Format("2006-01-02T15:04:05Z"),
		"credentialSubject": subject,
	}

	if req.Status != nil {
		vc["credentialStatus"] = statusEntry(req.Status)
	}

	custom := map[string]interface{}{"vc": vc}

	if cnf := confirmation(req); cnf != nil {
		custom["cnf"] = cnf
	}

	signer, err := s.newJWTSigner(key, jwtVCType)
	if err != nil {
		return "", err
	}

	token, err := jwt.Signed(signer).Claims(s.registeredClaims(req)).Claims(custom).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("sign jwt vc: %w", err)
	}

	return token, nil
}

func statusEntry(ref *statuslist.IndexReference) map[string]interface{} {
	index := strconv.Itoa(ref.Index)

	return map[string]interface{}{
		"id":                   ref.URI + "#" + index,
		"type":                 statusEntryType,
		"statusPurpose":        statusPurposeType,
		"statusListIndex":      index,
		"statusListCredential": ref.URI,
	}
}
