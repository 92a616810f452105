/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"context"
	"errors"
	"fmt"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	"github.com/trustbloc/vcs-issuance/pkg/event/spi"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/resterr"
	oidc4cierr "github.com/trustbloc/vcs-issuance/pkg/restapi/resterr/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
)

// Credential status values.
const (
	StatusValid     uint8 = 0
	StatusRevoked   uint8 = 1
	StatusSuspended uint8 = 2
)

func (s *Service) getTenant(ctx context.Context, tenantID string) (*profileapi.Tenant, error) {
	tenant, err := s.profiles.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, profileapi.ErrTenantNotFound) {
			return nil, oidc4cierr.NewNotFoundError(err).
				WithComponent(resterr.TenantSvcComponent).
				WithIncorrectValue("tenant")
		}

		return nil, fmt.Errorf("get tenant: %w", err)
	}

	return tenant, nil
}

// UpdateCredentialStatus writes value into the entry at index of a list owned
// by the tenant.
func (s *Service) UpdateCredentialStatus(
	ctx context.Context,
	tenantID, listID string,
	index int,
	value uint8,
) error {
	if _, err := s.getTenant(ctx, tenantID); err != nil {
		return err
	}

	list, err := s.statusLists.Get(ctx, listID)
	if err != nil {
		if errors.Is(err, statuslist.ErrDataNotFound) {
			return oidc4cierr.NewNotFoundError(fmt.Errorf("status list %s not found", listID)).
				WithComponent(resterr.StatusListSvcComponent).
				WithIncorrectValue("list_id")
		}

		return fmt.Errorf("get status list: %w", err)
	}

	if list.TenantID != tenantID {
		return oidc4cierr.NewNotFoundError(fmt.Errorf("status list %s not found", listID)).
			WithComponent(resterr.StatusListSvcComponent).
			WithIncorrectValue("list_id")
	}

	if err = s.statusLists.SetStatus(ctx, listID, index, value); err != nil {
		switch {
		case errors.Is(err, statuslist.ErrInvalidStatusValue):
			return oidc4cierr.NewBadRequestError(err).
				WithComponent(resterr.StatusListSvcComponent).
				WithOperation("SetStatus").
				WithIncorrectValue("status")
		case errors.Is(err, statuslist.ErrIndexOutOfRange), errors.Is(err, statuslist.ErrIndexNotAllocated):
			return oidc4cierr.NewBadRequestError(err).
				WithComponent(resterr.StatusListSvcComponent).
				WithOperation("SetStatus").
				WithIncorrectValue("index")
		default:
			return fmt.Errorf("set status: %w", err)
		}
	}

	s.metrics.StatusUpdated()

	logger.Debugc(ctx, "Credential status updated", logfields.WithTenantID(tenantID),
		logfields.WithListID(listID), logfields.WithIndex(index))

	s.publish(ctx, spi.CredentialStatusEventTopic, spi.CredentialStatusStatusUpdated, "", &eventPayload{
		TenantID: tenantID,
		ListID:   listID,
		Index:    &index,
		Status:   &value,
	})

	return nil
}

// IssueNonce returns a fresh c_nonce for the session.
func (s *Service) IssueNonce(ctx context.Context, tenantID, sessionID string) (*NonceResult, error) {
	tenant, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if !tenant.Active {
		return nil, oidc4cierr.NewBadRequestError(fmt.Errorf("tenant %s is not active", tenantID)).
			WithComponent(resterr.TenantSvcComponent).
			WithIncorrectValue("tenant")
	}

	n, err := s.nonces.Issue(ctx, tenantID, sessionID, 0)
	if err != nil {
		return nil, fmt.Errorf("issue nonce: %w", err)
	}

	s.metrics.NonceIssued()

	return &NonceResult{
		CNonce:    n.Value,
		ExpiresIn: n.ExpiresIn(s.now()),
	}, nil
}

// DeleteTenant removes every deferred session of the tenant.
func (s *Service) DeleteTenant(ctx context.Context, tenantID string) error {
	if err := s.sessions.DeleteTenant(ctx, tenantID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}

	return nil
}
