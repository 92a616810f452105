/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nonce

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
)

var logger = log.New("nonce-service")

const (
	DefaultTTL           = 5 * time.Minute
	DefaultSweepInterval = time.Minute

	nonceBytes   = 32
	issueRetries = 3
)

// Config holds the configuration for the nonce Service.
type Config struct {
	Store         Store
	Clock         clock.Clock
	TTL           time.Duration
	SweepInterval time.Duration
	// Random is the entropy source. Defaults to crypto/rand.
	Random func(b []byte) (int, error)
}

// Service issues and consumes c_nonce values.
type Service struct {
	store         Store
	clock         clock.Clock
	ttl           time.Duration
	sweepInterval time.Duration
	random        func(b []byte) (int, error)
}

// New returns new nonce Service.
func New(config *Config) *Service {
	s := &Service{
		store:         config.Store,
		clock:         config.Clock,
		ttl:           config.TTL,
		sweepInterval: config.SweepInterval,
		random:        config.Random,
	}

	if s.clock == nil {
		s.clock = clock.New()
	}

	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}

	if s.sweepInterval <= 0 {
		s.sweepInterval = DefaultSweepInterval
	}

	if s.random == nil {
		s.random = rand.Read
	}

	return s
}

// TTL returns the default nonce lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a fresh nonce bound to the tenant and session. A non-positive
// ttl selects the configured default.
func (s *Service) Issue(ctx context.Context, tenantID, sessionID string, ttl time.Duration) (*Nonce, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	for attempt := 0; ; attempt++ {
		value, err := s.newValue()
		if err != nil {
			return nil, err
		}

		n := &Nonce{
			Value:     value,
			TenantID:  tenantID,
			SessionID: sessionID,
			ExpiresAt: s.clock.Now().UTC().Add(ttl),
		}

		err = s.store.Create(ctx, n)
		if err == nil {
			return n, nil
		}

		if !errors.Is(err, ErrDuplicateNonce) || attempt+1 >= issueRetries {
			return nil, fmt.Errorf("store nonce: %w", err)
		}

		logger.Warnc(ctx, "Nonce collision, regenerating", logfields.WithTenantID(tenantID))
	}
}

func (s *Service) newValue() (string, error) {
	b := make([]byte, nonceBytes)

	if _, err := s.random(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateAndConsume succeeds at most once per nonce. The returned error
// matches ErrInvalidNonce for every validation failure.
func (s *Service) ValidateAndConsume(ctx context.Context, tenantID, value string) (*Nonce, error) {
	if value == "" {
		return nil, ErrNonceNotFound
	}

	n, err := s.store.Consume(ctx, tenantID, value, s.clock.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrInvalidNonce) {
			logger.Debugc(ctx, "Nonce rejected", logfields.WithTenantID(tenantID), log.WithError(err))

			return nil, err
		}

		return nil, fmt.Errorf("consume nonce: %w", err)
	}

	return n, nil
}

// DeleteTenant removes all nonces of the tenant.
func (s *Service) DeleteTenant(ctx context.Context, tenantID string) error {
	if err := s.store.DeleteTenant(ctx, tenantID); err != nil {
		return fmt.Errorf("delete nonces: %w", err)
	}

	return nil
}

// Sweep removes expired nonces once.
func (s *Service) Sweep(ctx context.Context) {
	count, err := s.store.DeleteExpired(ctx, s.clock.Now().UTC())
	if err != nil {
		logger.Warnc(ctx, "Nonce sweep failed", log.WithError(err))

		return
	}

	if count > 0 {
		logger.Debugc(ctx, "Expired nonces removed", logfields.WithCount(count))
	}
}

// Run sweeps expired nonces on every tick until ctx is done.
func (s *Service) Run(ctx context.Context) {
	ticker := s.clock.Ticker(s.sweepInterval)
	defer ticker.Stop()

	logger.Infoc(ctx, "Nonce sweeper started", logfields.WithSleep(s.sweepInterval))

	for {
		select {
		case <-ctx.Done():
			logger.Infoc(context.WithoutCancel(ctx), "Nonce sweeper stopped")

			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}
