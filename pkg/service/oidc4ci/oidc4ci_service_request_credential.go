/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.uber.org/zap"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	"github.com/trustbloc/vcs-issuance/pkg/event/spi"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/resterr"
	oidc4cierr "github.com/trustbloc/vcs-issuance/pkg/restapi/resterr/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/service/nonce"
)

const (
	outcomeIssued   = "issued"
	outcomeDeferred = "deferred"
	outcomeInternal = "internal_error"
)

type protocolError interface {
	error
	Code() string
}

// RequestCredential runs a credential endpoint request through the issuance
// state machine. Protocol outcomes are returned as *oidc4cierr.Error; any other
// error is an internal fault.
func (s *Service) RequestCredential(ctx context.Context, req *CredentialRequest) (*CredentialResult, error) {
	res, state, err := s.requestCredential(ctx, req)

	outcome := requestOutcome(res, err)
	s.metrics.CredentialRequest(outcome)

	fields := []zap.Field{
		logfields.WithTenantID(req.TenantID),
		logfields.WithRequestState(string(state)),
		logfields.WithErrorCode(outcome),
	}

	if err != nil && outcome == outcomeInternal {
		logger.Errorc(ctx, "Credential request failed", append(fields, log.WithError(err))...)
	} else {
		logger.Debugc(ctx, "Credential request processed", fields...)
	}

	return res, err
}

func requestOutcome(res *CredentialResult, err error) string {
	if err != nil {
		var pe protocolError
		if errors.As(err, &pe) {
			return pe.Code()
		}

		return outcomeInternal
	}

	if res.TransactionID != "" {
		return outcomeDeferred
	}

	return outcomeIssued
}

//nolint:funlen,gocyclo
func (s *Service) requestCredential(
	ctx context.Context,
	req *CredentialRequest,
) (*CredentialResult, RequestState, error) {
	grant := req.Grant
	if grant == nil {
		grant = &AccessGrant{}
	}

	tenant, configID, cc, err := s.validateRequest(ctx, req, grant)
	if err != nil {
		return nil, RequestStateReceived, err
	}

	proofClaims, err := s.checkProof(ctx, req.Proof, tenant.URL)
	if err != nil {
		return nil, RequestStateDenied, err
	}

	// Consumption must complete even if the caller goes away.
	consumed, err := s.nonces.ValidateAndConsume(context.WithoutCancel(ctx), tenant.ID, proofClaims.Nonce)
	if err != nil {
		if errors.Is(err, nonce.ErrInvalidNonce) {
			return nil, RequestStateDenied, oidc4cierr.NewInvalidNonceError(err).
				WithComponent(resterr.NonceSvcComponent).
				WithOperation("ValidateAndConsume")
		}

		return nil, RequestStateReceived, fmt.Errorf("consume nonce: %w", err)
	}

	if consumed.SessionID != "" && consumed.SessionID != grant.SessionID {
		return nil, RequestStateDenied, oidc4cierr.NewInvalidNonceError(
			errors.New("nonce was issued to another session")).
			WithComponent(resterr.NonceSvcComponent).
			WithOperation("ValidateAndConsume")
	}

	claims, err := s.resolveClaims(ctx, tenant.ID, configID, grant.Subject)

	var deferInterval int

	switch {
	case errors.Is(err, ErrClaimsDenied):
		s.sendFailedEvent(ctx, tenant.ID, configID, "", err)

		return nil, RequestStateDenied, oidc4cierr.NewCredentialRequestDeniedError(err).
			WithComponent(resterr.ClaimsResolverComponent).
			WithOperation("ResolveClaims")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warnc(ctx, "Claims resolution timed out, deferring issuance",
			logfields.WithTenantID(tenant.ID), logfields.WithCredentialConfigurationID(configID))

		deferInterval = s.interval(tenant, 0)
	case err != nil:
		logger.Warnc(ctx, "Claims resolution failed", logfields.WithTenantID(tenant.ID),
			logfields.WithCredentialConfigurationID(configID), log.WithError(err))

		s.sendFailedEvent(ctx, tenant.ID, configID, "", err)

		return nil, RequestStateDenied, oidc4cierr.NewCredentialRequestDeniedError(
			errors.New("claims could not be resolved")).
			WithComponent(resterr.ClaimsResolverComponent).
			WithOperation("ResolveClaims")
	case claims.Deferred:
		deferInterval = s.interval(tenant, claims.Interval)
	}

	if deferInterval > 0 {
		return s.deferIssuance(ctx, req, tenant, configID, grant, proofClaims, deferInterval)
	}

	res, err := s.issue(ctx, &issueParams{
		tenant:      tenant,
		configID:    configID,
		config:      cc,
		subject:     grant.Subject,
		claims:      claims.Claims,
		holderKeyID: proofClaims.HolderKeyID,
		holderJWK:   proofClaims.HolderJWK,
	})
	if err != nil {
		if errors.Is(err, errSigningTimeout) {
			s.sendFailedEvent(ctx, tenant.ID, configID, "", err)

			return nil, RequestStateDenied, oidc4cierr.NewCredentialRequestDeniedError(err).
				WithComponent(resterr.CredentialSignerComponent).
				WithOperation("Sign")
		}

		return nil, RequestStateClaimsResolving, err
	}

	res.Encryption = req.CredentialResponseEncryption
	s.attachNonce(ctx, res, tenant.ID, grant.SessionID)

	s.sendIssuedEvent(ctx, tenant.ID, configID, "", res)

	return res, RequestStateIssued, nil
}

func (s *Service) validateRequest(
	ctx context.Context,
	req *CredentialRequest,
	grant *AccessGrant,
) (*profileapi.Tenant, string, *profileapi.CredentialConfiguration, error) {
	tenant, err := s.profiles.GetTenant(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, profileapi.ErrTenantNotFound) {
			return nil, "", nil, oidc4cierr.NewInvalidCredentialRequestError(err).
				WithComponent(resterr.TenantSvcComponent).
				WithIncorrectValue("tenant")
		}

		return nil, "", nil, fmt.Errorf("get tenant: %w", err)
	}

	if !tenant.Active {
		return nil, "", nil, oidc4cierr.NewInvalidCredentialRequestError(
			fmt.Errorf("tenant %s is not active", tenant.ID)).
			WithComponent(resterr.TenantSvcComponent).
			WithIncorrectValue("tenant")
	}

	hasConfigID := req.CredentialConfigurationID != ""
	hasIdentifier := req.CredentialIdentifier != ""

	if hasConfigID == hasIdentifier {
		return nil, "", nil, oidc4cierr.NewInvalidCredentialRequestError(
			errors.New("exactly one of credential_configuration_id and credential_identifier is required")).
			WithComponent(resterr.IssuerOIDC4ciSvcComponent)
	}

	configID := req.CredentialConfigurationID

	if hasIdentifier {
		var ok bool

		configID, ok = grant.CredentialIdentifiers[req.CredentialIdentifier]
		if !ok {
			return nil, "", nil, oidc4cierr.NewUnknownCredentialIdentifierError(
				fmt.Errorf("credential identifier %s is not authorized", req.CredentialIdentifier)).
				WithComponent(resterr.IssuerOIDC4ciSvcComponent).
				WithIncorrectValue("credential_identifier")
		}
	}

	cc, ok := tenant.CredentialConfiguration(configID)
	if !ok {
		if hasIdentifier {
			return nil, "", nil, oidc4cierr.NewUnknownCredentialIdentifierError(
				fmt.Errorf("credential identifier %s refers to an unknown configuration", req.CredentialIdentifier)).
				WithComponent(resterr.IssuerOIDC4ciSvcComponent).
				WithIncorrectValue("credential_identifier")
		}

		return nil, "", nil, oidc4cierr.NewUnknownCredentialConfigurationError(
			fmt.Errorf("credential configuration %s is not supported", configID)).
			WithComponent(resterr.IssuerOIDC4ciSvcComponent).
			WithIncorrectValue("credential_configuration_id")
	}

	if err = validateEncryption(tenant.Encryption, req.CredentialResponseEncryption); err != nil {
		return nil, "", nil, oidc4cierr.NewInvalidEncryptionParametersError(err).
			WithComponent(resterr.IssuerOIDC4ciSvcComponent).
			WithIncorrectValue("credential_response_encryption")
	}

	return tenant, configID, cc, nil
}

func (s *Service) checkProof(ctx context.Context, proof *Proof, audience string) (*ProofClaims, error) {
	if proof == nil {
		return nil, oidc4cierr.NewInvalidProofError(errors.New("proof is missing")).
			WithComponent(resterr.ProofCheckerComponent)
	}

	claims, err := s.proofChecker.CheckProof(ctx, proof, audience)
	if err != nil {
		if errors.Is(err, ErrInvalidProof) {
			return nil, oidc4cierr.NewInvalidProofError(err).
				WithComponent(resterr.ProofCheckerComponent).
				WithOperation("CheckProof")
		}

		return nil, fmt.Errorf("check proof: %w", err)
	}

	return claims, nil
}

func (s *Service) resolveClaims(
	ctx context.Context,
	tenantID, configID, subject string,
) (*ClaimsResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.claimsTimeout)
	defer cancel()

	start := s.clock.Now()

	res, err := s.claimsResolver.ResolveClaims(ctx, tenantID, configID, subject)

	s.metrics.ClaimsResolveTime(s.clock.Since(start))

	if err != nil {
		return nil, err
	}

	if res == nil || (!res.Deferred && res.Claims == nil) {
		return nil, errors.New("claims resolver returned neither claims nor a deferral")
	}

	return res, nil
}

func (s *Service) interval(tenant *profileapi.Tenant, recommended int) int {
	if recommended > 0 {
		return recommended
	}

	if tenant.Deferred != nil && tenant.Deferred.Interval > 0 {
		return tenant.Deferred.Interval
	}

	return s.defaultInterval
}

func (s *Service) lifetime(tenant *profileapi.Tenant) time.Duration {
	if tenant.Deferred != nil && tenant.Deferred.Lifetime > 0 {
		return time.Duration(tenant.Deferred.Lifetime) * time.Second
	}

	return s.sessionLifetime
}

func (s *Service) deferIssuance(
	ctx context.Context,
	req *CredentialRequest,
	tenant *profileapi.Tenant,
	configID string,
	grant *AccessGrant,
	proofClaims *ProofClaims,
	interval int,
) (*CredentialResult, RequestState, error) {
	now := s.now()

	session := &Session{
		TransactionID:             TxID(uuid.NewString()),
		TenantID:                  tenant.ID,
		CredentialConfigurationID: configID,
		AuthorizationIdentity:     grant.Subject,
		SessionID:                 grant.SessionID,
		HolderKeyID:               proofClaims.HolderKeyID,
		HolderJWK:                 proofClaims.HolderJWK,
		CreatedAt:                 now,
		ExpiresAt:                 now.Add(s.lifetime(tenant)),
		LastPolledAt:              now,
		State:                     SessionStatePending,
		Interval:                  interval,
		ResponseEncryption:        req.CredentialResponseEncryption,
	}

	if err := s.sessions.Create(context.WithoutCancel(ctx), session); err != nil {
		return nil, RequestStateClaimsResolving, fmt.Errorf("create deferred session: %w", err)
	}

	logger.Debugc(ctx, "Issuance deferred", logfields.WithTenantID(tenant.ID),
		logfields.WithTransactionID(string(session.TransactionID)), logfields.WithInterval(interval))

	res := &CredentialResult{
		TransactionID: session.TransactionID,
		Interval:      interval,
		Encryption:    req.CredentialResponseEncryption,
	}

	s.attachNonce(ctx, res, tenant.ID, grant.SessionID)

	s.sendEvent(ctx, spi.IssuerOIDCInteractionDeferred, session.TransactionID, &eventPayload{
		TenantID:                  tenant.ID,
		CredentialConfigurationID: configID,
		Interval:                  interval,
	})

	return res, RequestStateDeferred, nil
}

// attachNonce adds a fresh c_nonce for the same session. The credential has
// already been produced at this point, so a failure only drops the c_nonce.
func (s *Service) attachNonce(ctx context.Context, res *CredentialResult, tenantID, sessionID string) {
	n, err := s.nonces.Issue(ctx, tenantID, sessionID, 0)
	if err != nil {
		logger.Warnc(ctx, "Failed to issue fresh c_nonce", logfields.WithTenantID(tenantID), log.WithError(err))

		return
	}

	s.metrics.NonceIssued()

	res.CNonce = n.Value
	res.CNonceExpires = n.ExpiresIn(s.now())
}
