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

	"github.com/trustbloc/logutil-go/pkg/log"
	"go.uber.org/zap"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	"github.com/trustbloc/vcs-issuance/pkg/event/spi"
	"github.com/trustbloc/vcs-issuance/pkg/locker"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/resterr"
	oidc4cierr "github.com/trustbloc/vcs-issuance/pkg/restapi/resterr/oidc4ci"
)

func sessionLockKey(txID TxID) string {
	return "issuance-session/" + string(txID)
}

func invalidTransactionID(msg string) error {
	return oidc4cierr.NewInvalidTransactionIDError(errors.New(msg)).
		WithComponent(resterr.IssuerOIDC4ciSvcComponent).
		WithIncorrectValue("transaction_id")
}

func issuancePending(interval int) error {
	return oidc4cierr.NewIssuancePendingError(errors.New("credential is not ready yet"), interval).
		WithComponent(resterr.IssuerOIDC4ciSvcComponent)
}

func (s *Service) lockSession(ctx context.Context, txID TxID) (locker.Lock, error) {
	mu := s.locker.NewMutex(sessionLockKey(txID))

	if err := mu.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}

	return mu, nil
}

func unlockSession(ctx context.Context, mu locker.Lock) {
	if _, err := mu.Unlock(); err != nil {
		logger.Warnc(ctx, "Failed to release session lock", log.WithError(err))
	}
}

// PollDeferred serves a deferred credential request.
func (s *Service) PollDeferred(ctx context.Context, tenantID string, txID TxID) (*CredentialResult, error) {
	res, state, err := s.pollDeferred(ctx, tenantID, txID)

	outcome := requestOutcome(res, err)
	s.metrics.DeferredPoll(outcome)

	fields := []zap.Field{
		logfields.WithTenantID(tenantID),
		logfields.WithTransactionID(string(txID)),
		logfields.WithRequestState(string(state)),
		logfields.WithErrorCode(outcome),
	}

	if err != nil && outcome == outcomeInternal {
		logger.Errorc(ctx, "Deferred credential request failed", append(fields, log.WithError(err))...)
	} else {
		logger.Debugc(ctx, "Deferred credential request processed", fields...)
	}

	return res, err
}

//nolint:funlen,gocyclo
func (s *Service) pollDeferred(
	ctx context.Context,
	tenantID string,
	txID TxID,
) (*CredentialResult, RequestState, error) {
	if txID == "" {
		return nil, RequestStatePolling, invalidTransactionID("transaction_id is required")
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.pollLockWait)
	mu, err := s.lockSession(lockCtx, txID)

	cancel()

	if err != nil {
		if errors.Is(err, locker.ErrNotAcquired) {
			// Another request is working on the session.
			return nil, RequestStatePolling, issuancePending(s.pendingInterval(ctx, tenantID, txID))
		}

		return nil, RequestStatePolling, err
	}

	defer unlockSession(ctx, mu)

	session, err := s.getSession(ctx, tenantID, txID)
	if err != nil {
		return nil, RequestStatePolling, err
	}

	now := s.now()

	if !now.Before(session.ExpiresAt) {
		s.deleteSession(ctx, session)

		return nil, RequestStateExpired, invalidTransactionID("transaction has expired")
	}

	switch session.State {
	case SessionStateIssued, SessionStateExpired:
		return nil, RequestStatePolling, invalidTransactionID("transaction is no longer active")
	case SessionStateDenied:
		s.deleteSession(ctx, session)

		return nil, RequestStateDenied, oidc4cierr.NewCredentialRequestDeniedError(
			fmt.Errorf("%w: %s", ErrClaimsDenied, session.DenyReason)).
			WithComponent(resterr.ClaimsResolverComponent)
	}

	early := !session.LastPolledAt.IsZero() &&
		now.Sub(session.LastPolledAt) < time.Duration(session.Interval)*time.Second

	session.LastPolledAt = now

	if early {
		if err = s.sessions.Update(ctx, session); err != nil {
			return nil, RequestStatePolling, fmt.Errorf("update session: %w", err)
		}

		return nil, RequestStatePolling, issuancePending(session.Interval)
	}

	if session.State == SessionStatePending {
		if err = s.refreshClaims(ctx, session); err != nil {
			return nil, RequestStateDenied, err
		}
	}

	if session.State != SessionStateReady {
		if err = s.sessions.Update(ctx, session); err != nil {
			return nil, RequestStatePolling, fmt.Errorf("update session: %w", err)
		}

		return nil, RequestStatePolling, issuancePending(session.Interval)
	}

	tenant, err := s.profiles.GetTenant(ctx, session.TenantID)
	if err != nil {
		if errors.Is(err, profileapi.ErrTenantNotFound) {
			s.deleteSession(ctx, session)

			return nil, RequestStatePolling, invalidTransactionID("tenant no longer exists")
		}

		return nil, RequestStatePolling, fmt.Errorf("get tenant: %w", err)
	}

	cc, ok := tenant.CredentialConfiguration(session.CredentialConfigurationID)
	if !ok {
		s.deleteSession(ctx, session)

		return nil, RequestStatePolling, invalidTransactionID("credential configuration no longer exists")
	}

	res, err := s.issue(ctx, &issueParams{
		tenant:      tenant,
		configID:    session.CredentialConfigurationID,
		config:      cc,
		subject:     session.AuthorizationIdentity,
		claims:      session.Claims,
		holderKeyID: session.HolderKeyID,
		holderJWK:   session.HolderJWK,
	})
	if err != nil {
		if updateErr := s.sessions.Update(ctx, session); updateErr != nil {
			logger.Warnc(ctx, "Failed to update session", logfields.WithTransactionID(string(txID)),
				log.WithError(updateErr))
		}

		if errors.Is(err, errSigningTimeout) {
			return nil, RequestStatePolling, issuancePending(session.Interval)
		}

		return nil, RequestStatePolling, err
	}

	session.State = SessionStateIssued

	if err = s.sessions.Update(context.WithoutCancel(ctx), session); err != nil {
		logger.Warnc(ctx, "Failed to mark session issued", logfields.WithTransactionID(string(txID)),
			log.WithError(err))
	}

	s.deleteSession(ctx, session)

	res.Encryption = session.ResponseEncryption
	s.attachNonce(ctx, res, session.TenantID, session.SessionID)

	s.sendIssuedEvent(ctx, session.TenantID, session.CredentialConfigurationID, txID, res)

	return res, RequestStateIssued, nil
}

// pendingInterval reads the poll interval of a session without holding its lock.
func (s *Service) pendingInterval(ctx context.Context, tenantID string, txID TxID) int {
	session, err := s.sessions.Get(ctx, txID)
	if err == nil && session.TenantID == tenantID && session.Interval > 0 {
		return session.Interval
	}

	tenant, err := s.profiles.GetTenant(ctx, tenantID)
	if err != nil {
		return s.defaultInterval
	}

	return s.interval(tenant, 0)
}

// refreshClaims asks the resolver again for a pending session. Only an
// explicit denial ends the session; any other failure keeps it pending.
func (s *Service) refreshClaims(ctx context.Context, session *Session) error {
	claims, err := s.resolveClaims(ctx, session.TenantID, session.CredentialConfigurationID,
		session.AuthorizationIdentity)

	switch {
	case errors.Is(err, ErrClaimsDenied):
		s.deleteSession(ctx, session)
		s.sendFailedEvent(ctx, session.TenantID, session.CredentialConfigurationID, session.TransactionID, err)

		return oidc4cierr.NewCredentialRequestDeniedError(err).
			WithComponent(resterr.ClaimsResolverComponent).
			WithOperation("ResolveClaims")
	case err != nil:
		logger.Warnc(ctx, "Claims still unavailable", logfields.WithTenantID(session.TenantID),
			logfields.WithTransactionID(string(session.TransactionID)), log.WithError(err))
	case !claims.Deferred:
		session.Claims = claims.Claims
		session.State = SessionStateReady
	}

	return nil
}

func (s *Service) getSession(ctx context.Context, tenantID string, txID TxID) (*Session, error) {
	session, err := s.sessions.Get(ctx, txID)
	if err != nil {
		if errors.Is(err, ErrDataNotFound) {
			return nil, invalidTransactionID("unknown transaction")
		}

		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.TenantID != tenantID {
		return nil, invalidTransactionID("unknown transaction")
	}

	return session, nil
}

func (s *Service) deleteSession(ctx context.Context, session *Session) {
	if err := s.sessions.Delete(context.WithoutCancel(ctx), session.TransactionID); err != nil &&
		!errors.Is(err, ErrDataNotFound) {
		logger.Warnc(ctx, "Failed to delete session", logfields.WithTenantID(session.TenantID),
			logfields.WithTransactionID(string(session.TransactionID)), log.WithError(err))
	}
}

// ResolveDeferred stores claims delivered asynchronously for a pending session.
// The next poll after the interval returns the credential.
func (s *Service) ResolveDeferred(
	ctx context.Context,
	tenantID string,
	txID TxID,
	claims map[string]interface{},
) error {
	if claims == nil {
		return oidc4cierr.NewBadRequestError(errors.New("claims are required")).
			WithComponent(resterr.IssuerOIDC4ciSvcComponent).
			WithIncorrectValue("claims")
	}

	return s.updatePending(ctx, tenantID, txID, func(session *Session) {
		session.Claims = claims
		session.State = SessionStateReady
	}, spi.IssuerOIDCInteractionDeferredResolved)
}

// DenyDeferred marks a pending session as refused. The next poll returns
// credential_request_denied.
func (s *Service) DenyDeferred(ctx context.Context, tenantID string, txID TxID, reason string) error {
	return s.updatePending(ctx, tenantID, txID, func(session *Session) {
		session.DenyReason = reason
		session.State = SessionStateDenied
	}, spi.IssuerOIDCInteractionFailed)
}

func (s *Service) updatePending(
	ctx context.Context,
	tenantID string,
	txID TxID,
	mutate func(session *Session),
	eventType spi.EventType,
) error {
	mu, err := s.lockSession(ctx, txID)
	if err != nil {
		return err
	}

	defer unlockSession(ctx, mu)

	session, err := s.sessions.Get(ctx, txID)
	if err != nil {
		if errors.Is(err, ErrDataNotFound) {
			return oidc4cierr.NewNotFoundError(fmt.Errorf("transaction %s not found", txID)).
				WithComponent(resterr.IssuerOIDC4ciSvcComponent)
		}

		return fmt.Errorf("get session: %w", err)
	}

	if session.TenantID != tenantID || !s.now().Before(session.ExpiresAt) {
		return oidc4cierr.NewNotFoundError(fmt.Errorf("transaction %s not found", txID)).
			WithComponent(resterr.IssuerOIDC4ciSvcComponent)
	}

	if session.State != SessionStatePending {
		return oidc4cierr.NewBadRequestError(fmt.Errorf("transaction %s is %s", txID, session.State)).
			WithComponent(resterr.IssuerOIDC4ciSvcComponent)
	}

	mutate(session)

	if err = s.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	logger.Debugc(ctx, "Deferred session updated", logfields.WithTenantID(tenantID),
		logfields.WithTransactionID(string(txID)), logfields.WithSessionState(string(session.State)))

	payload := &eventPayload{
		TenantID:                  tenantID,
		CredentialConfigurationID: session.CredentialConfigurationID,
		Error:                     session.DenyReason,
	}

	if session.State == SessionStateDenied {
		payload.ErrorCode = "credential_request_denied"
	}

	s.sendEvent(ctx, eventType, txID, payload)

	return nil
}

// Sweep removes expired sessions once.
func (s *Service) Sweep(ctx context.Context) {
	count, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		logger.Warnc(ctx, "Session sweep failed", log.WithError(err))

		return
	}

	if count > 0 {
		logger.Debugc(ctx, "Expired sessions removed", logfields.WithCount(count))
	}
}

// Run sweeps expired sessions on every tick until ctx is done.
func (s *Service) Run(ctx context.Context) {
	ticker := s.clock.Ticker(s.sweepInterval)
	defer ticker.Stop()

	logger.Infoc(ctx, "Session sweeper started", logfields.WithSleep(s.sweepInterval))

	for {
		select {
		case <-ctx.Done():
			logger.Infoc(context.WithoutCancel(ctx), "Session sweeper stopped")

			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}
