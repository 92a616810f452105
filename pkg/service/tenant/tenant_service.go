/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination tenant_service_mocks_test.go -self_package mocks -package tenant_test -source=tenant_service.go -mock_names nonceService=MockNonceService,sessionService=MockSessionService,statusRegistry=MockStatusRegistry,profileService=MockProfileService,eventService=MockEventService

package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	"github.com/trustbloc/vcs-issuance/pkg/event/spi"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
)

var logger = log.New("tenant-service")

const eventSource = "source://vcs-issuance/tenants"

type nonceService interface {
	DeleteTenant(ctx context.Context, tenantID string) error
}

type sessionService interface {
	DeleteTenant(ctx context.Context, tenantID string) error
}

type statusRegistry interface {
	DeleteTenant(ctx context.Context, tenantID string) error
}

type profileService interface {
	GetTenant(ctx context.Context, tenantID profileapi.ID) (*profileapi.Tenant, error)
	DeleteTenant(ctx context.Context, tenantID profileapi.ID) error
}

type eventService interface {
	Publish(ctx context.Context, topic string, messages ...*spi.Event) error
}

// Config defines configuration for Service.
type Config struct {
	Nonces      nonceService
	Sessions    sessionService
	StatusLists statusRegistry
	Profiles    profileService
	EventSvc    eventService
	EventTopic  string
	Now         func() time.Time
}

// Service removes everything a tenant owns.
type Service struct {
	nonces      nonceService
	sessions    sessionService
	statusLists statusRegistry
	profiles    profileService
	eventSvc    eventService
	eventTopic  string
	now         func() time.Time
}

// NewService returns a new Service instance.
func NewService(config *Config) *Service {
	s := &Service{
		nonces:      config.Nonces,
		sessions:    config.Sessions,
		statusLists: config.StatusLists,
		profiles:    config.Profiles,
		eventSvc:    config.EventSvc,
		eventTopic:  config.EventTopic,
		now:         config.Now,
	}

	if s.eventTopic == "" {
		s.eventTopic = spi.IssuerEventTopic
	}

	if s.now == nil {
		s.now = time.Now
	}

	return s
}

type purgedPayload struct {
	TenantID string `json:"tenantID"`
}

// Delete purges the nonces, deferred sessions and status lists of the tenant,
// then drops its profile. Every step runs even when an earlier one fails and
// the failures are returned together.
func (s *Service) Delete(ctx context.Context, tenantID string) error {
	if _, err := s.profiles.GetTenant(ctx, tenantID); err != nil {
		return fmt.Errorf("get tenant: %w", err)
	}

	// A disconnected caller must not leave the tenant half purged.
	ctx = context.WithoutCancel(ctx)

	var errs []error

	if err := s.nonces.DeleteTenant(ctx, tenantID); err != nil {
		errs = append(errs, fmt.Errorf("delete nonces: %w", err))
	}

	if err := s.sessions.DeleteTenant(ctx, tenantID); err != nil {
		errs = append(errs, fmt.Errorf("delete sessions: %w", err))
	}

	if err := s.statusLists.DeleteTenant(ctx, tenantID); err != nil {
		errs = append(errs, fmt.Errorf("delete status lists: %w", err))
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)

		logger.Errorc(ctx, "Tenant purge incomplete", logfields.WithTenantID(tenantID), log.WithError(err))

		return err
	}

	if err := s.profiles.DeleteTenant(ctx, tenantID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	logger.Infoc(ctx, "Tenant purged", logfields.WithTenantID(tenantID))

	s.sendPurgedEvent(ctx, tenantID)

	return nil
}

func (s *Service) sendPurgedEvent(ctx context.Context, tenantID string) {
	if s.eventSvc == nil {
		return
	}

	data, err := json.Marshal(&purgedPayload{TenantID: tenantID})
	if err != nil {
		logger.Warnc(ctx, "Failed to marshal event payload", log.WithError(err))

		return
	}

	event := spi.NewEvent(uuid.NewString(), eventSource, spi.TenantPurged,
		spi.WithData(data),
		spi.WithTime(s.now()),
		spi.WithTenantID(tenantID),
	)

	if err = s.eventSvc.Publish(ctx, s.eventTopic, event); err != nil {
		logger.Warnc(ctx, "Failed to publish event", log.WithTopic(s.eventTopic),
			logfields.WithEvent(event), log.WithError(err))
	}
}
