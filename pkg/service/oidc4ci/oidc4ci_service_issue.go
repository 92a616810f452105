/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v3"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
)

var errSigningTimeout = errors.New("credential signing timed out")

type issueParams struct {
	tenant      *profileapi.Tenant
	configID    string
	config      *profileapi.CredentialConfiguration
	subject     string
	claims      map[string]interface{}
	holderKeyID string
	holderJWK   *jose.JSONWebKey
}

func (s *Service) statusListParams(tenant *profileapi.Tenant) (int, int) {
	bits, size := s.defaultBitsPerEntry, s.defaultListSize

	if tenant.StatusList != nil {
		if tenant.StatusList.BitsPerEntry > 0 {
			bits = tenant.StatusList.BitsPerEntry
		}

		if tenant.StatusList.Size > 0 {
			size = tenant.StatusList.Size
		}
	}

	return bits, size
}

// issue allocates a status index and signs the credential. The index is
// allocated before signing and is never released; a signing failure leaves
// it orphaned and logged.
func (s *Service) issue(ctx context.Context, p *issueParams) (*CredentialResult, error) {
	bits, size := s.statusListParams(p.tenant)

	ref, err := s.statusLists.Allocate(context.WithoutCancel(ctx), p.tenant.ID, bits, size)
	if err != nil {
		return nil, fmt.Errorf("allocate status index: %w", err)
	}

	signCtx, cancel := context.WithTimeout(ctx, s.signingTimeout)
	defer cancel()

	start := s.clock.Now()

	cred, err := s.signer.Sign(signCtx, &SignRequest{
		TenantID:                  p.tenant.ID,
		Issuer:                    p.tenant.URL,
		KeyID:                     p.tenant.SigningKeyID,
		Format:                    p.config.Format,
		CredentialConfigurationID: p.configID,
		VCT:                       p.config.VCT,
		Types:                     p.config.Types,
		Subject:                   p.subject,
		Claims:                    p.claims,
		Status:                    ref,
		HolderKeyID:               p.holderKeyID,
		HolderJWK:                 p.holderJWK,
	})

	s.metrics.SignTime(s.clock.Since(start))

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warnc(ctx, "Credential signing timed out, status index orphaned",
				logfields.WithTenantID(p.tenant.ID), logfields.WithListID(ref.ListID),
				logfields.WithIndex(ref.Index), log.WithError(err))

			return nil, fmt.Errorf("%w: %w", errSigningTimeout, err)
		}

		logger.Errorc(ctx, "Credential signing failed, status index orphaned",
			logfields.WithTenantID(p.tenant.ID), logfields.WithListID(ref.ListID),
			logfields.WithIndex(ref.Index), log.WithError(err))

		return nil, fmt.Errorf("sign credential: %w", err)
	}

	return &CredentialResult{
		Credential: cred,
		Status:     ref,
	}, nil
}
