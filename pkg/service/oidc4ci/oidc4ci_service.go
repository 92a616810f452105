/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination oidc4ci_service_mocks_test.go -self_package mocks -package oidc4ci_test -source=oidc4ci_service.go -mock_names nonceService=MockNonceService,statusRegistry=MockStatusRegistry,profileService=MockProfileService,eventService=MockEventService,metricsProvider=MockMetricsProvider

package oidc4ci

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/pkg/event/spi"
	"github.com/trustbloc/vcs-issuance/pkg/locker"
	"github.com/trustbloc/vcs-issuance/pkg/observability/metrics/noop"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
	"github.com/trustbloc/vcs-issuance/pkg/service/nonce"
	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
)

var logger = log.New("oidc4ci")

const (
	DefaultClaimsTimeout   = 10 * time.Second
	DefaultSigningTimeout  = 10 * time.Second
	DefaultInterval        = 5
	DefaultSessionLifetime = 24 * time.Hour
	DefaultSweepInterval   = time.Minute
	DefaultPollLockWait    = 2 * time.Second
)

type nonceService interface {
	Issue(ctx context.Context, tenantID, sessionID string, ttl time.Duration) (*nonce.Nonce, error)
	ValidateAndConsume(ctx context.Context, tenantID, value string) (*nonce.Nonce, error)
}

type statusRegistry interface {
	Allocate(ctx context.Context, tenantID string, bitsPerEntry int, size int) (*statuslist.IndexReference, error)
	Get(ctx context.Context, listID string) (*statuslist.StatusList, error)
	SetStatus(ctx context.Context, listID string, index int, value uint8) error
}

type profileService interface {
	GetTenant(ctx context.Context, tenantID profileapi.ID) (*profileapi.Tenant, error)
}

type eventService interface {
	Publish(ctx context.Context, topic string, messages ...*spi.Event) error
}

type metricsProvider interface {
	SignTime(value time.Duration)
	ClaimsResolveTime(value time.Duration)
	CredentialRequest(outcome string)
	DeferredPoll(outcome string)
	StatusUpdated()
	NonceIssued()
}

// Config holds configuration options and dependencies for Service.
type Config struct {
	Nonces         nonceService
	StatusLists    statusRegistry
	Sessions       SessionStore
	Profiles       profileService
	ClaimsResolver ClaimsResolver
	Signer         Signer
	ProofChecker   ProofChecker
	Locker         locker.Locker
	EventService   eventService
	EventTopic     string
	Metrics        metricsProvider
	Clock          clock.Clock

	ClaimsTimeout   time.Duration
	SigningTimeout  time.Duration
	SessionLifetime time.Duration
	SweepInterval   time.Duration
	// PollLockWait bounds how long a deferred poll waits for a session held
	// by a concurrent request before answering issuance_pending.
	PollLockWait time.Duration
	// DefaultInterval is the deferred poll interval in seconds when neither
	// the resolver nor the tenant recommends one.
	DefaultInterval     int
	DefaultBitsPerEntry int
	DefaultListSize     int
}

// Service is the credential issuance engine.
type Service struct {
	nonces         nonceService
	statusLists    statusRegistry
	sessions       SessionStore
	profiles       profileService
	claimsResolver ClaimsResolver
	signer         Signer
	proofChecker   ProofChecker
	locker         locker.Locker
	eventSvc       eventService
	eventTopic     string
	metrics        metricsProvider
	clock          clock.Clock

	claimsTimeout       time.Duration
	signingTimeout      time.Duration
	sessionLifetime     time.Duration
	sweepInterval       time.Duration
	pollLockWait        time.Duration
	defaultInterval     int
	defaultBitsPerEntry int
	defaultListSize     int
}

// NewService returns a new Service instance.
func NewService(config *Config) *Service {
	s := &Service{
		nonces:              config.Nonces,
		statusLists:         config.StatusLists,
		sessions:            config.Sessions,
		profiles:            config.Profiles,
		claimsResolver:      config.ClaimsResolver,
		signer:              config.Signer,
		proofChecker:        config.ProofChecker,
		locker:              config.Locker,
		eventSvc:            config.EventService,
		eventTopic:          config.EventTopic,
		metrics:             config.Metrics,
		clock:               config.Clock,
		claimsTimeout:       config.ClaimsTimeout,
		signingTimeout:      config.SigningTimeout,
		sessionLifetime:     config.SessionLifetime,
		sweepInterval:       config.SweepInterval,
		pollLockWait:        config.PollLockWait,
		defaultInterval:     config.DefaultInterval,
		defaultBitsPerEntry: config.DefaultBitsPerEntry,
		defaultListSize:     config.DefaultListSize,
	}

	if s.locker == nil {
		s.locker = locker.NewKeyedMutex()
	}

	if s.metrics == nil {
		s.metrics = noop.GetMetrics()
	}

	if s.clock == nil {
		s.clock = clock.New()
	}

	if s.eventTopic == "" {
		s.eventTopic = spi.IssuerEventTopic
	}

	if s.claimsTimeout <= 0 {
		s.claimsTimeout = DefaultClaimsTimeout
	}

	if s.signingTimeout <= 0 {
		s.signingTimeout = DefaultSigningTimeout
	}

	if s.sessionLifetime <= 0 {
		s.sessionLifetime = DefaultSessionLifetime
	}

	if s.sweepInterval <= 0 {
		s.sweepInterval = DefaultSweepInterval
	}

	if s.pollLockWait <= 0 {
		s.pollLockWait = DefaultPollLockWait
	}

	if s.defaultInterval <= 0 {
		s.defaultInterval = DefaultInterval
	}

	if s.defaultBitsPerEntry <= 0 {
		s.defaultBitsPerEntry = statuslist.DefaultBitsPerEntry
	}

	return s
}

func (s *Service) now() time.Time {
	return s.clock.Now().UTC()
}
