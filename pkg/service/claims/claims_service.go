/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package claims

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
	"github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
)

var logger = log.New("claims-resolver")

const (
	DefaultMaxRetries    = 3
	DefaultRetryInterval = 200 * time.Millisecond
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type profileService interface {
	GetTenant(ctx context.Context, tenantID profileapi.ID) (*profileapi.Tenant, error)
}

// Config defines configuration for Service.
type Config struct {
	HTTPClient    httpClient
	Profiles      profileService
	MaxRetries    uint64
	RetryInterval time.Duration
}

// Service resolves claims through the tenant webhook, or from the credential
// configuration when the tenant has none.
type Service struct {
	httpClient    httpClient
	profiles      profileService
	maxRetries    uint64
	retryInterval time.Duration
}

// NewService returns a new Service instance.
func NewService(config *Config) *Service {
	s := &Service{
		httpClient:    config.HTTPClient,
		profiles:      config.Profiles,
		maxRetries:    config.MaxRetries,
		retryInterval: config.RetryInterval,
	}

	if s.httpClient == nil {
		s.httpClient = http.DefaultClient
	}

	if s.maxRetries == 0 {
		s.maxRetries = DefaultMaxRetries
	}

	if s.retryInterval <= 0 {
		s.retryInterval = DefaultRetryInterval
	}

	return s
}

var _ oidc4ci.ClaimsResolver = (*Service)(nil)

// ResolveClaims returns claims, a deferral, or oidc4ci.ErrClaimsDenied.
func (s *Service) ResolveClaims(
	ctx context.Context,
	tenantID string,
	credentialConfigurationID string,
	authorizationIdentity string,
) (*oidc4ci.ClaimsResult, error) {
	tenant, err := s.profiles.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}

	if tenant.Claims == nil || tenant.Claims.WebhookURL == "" {
		return resolveStatic(tenant, credentialConfigurationID)
	}

	return s.resolveWebhook(ctx, tenant.Claims.WebhookURL, &WebhookRequest{
		TenantID:                  tenantID,
		CredentialConfigurationID: credentialConfigurationID,
		AuthorizationIdentity:     authorizationIdentity,
	})
}

func resolveStatic(tenant *profileapi.Tenant, configID string) (*oidc4ci.ClaimsResult, error) {
	cc, ok := tenant.CredentialConfiguration(configID)
	if !ok {
		return nil, fmt.Errorf("credential configuration %s not found", configID)
	}

	if cc.Deferred {
		return &oidc4ci.ClaimsResult{Deferred: true}, nil
	}

	claims := maps.Clone(cc.Claims)
	if claims == nil {
		claims = map[string]interface{}{}
	}

	return &oidc4ci.ClaimsResult{Claims: claims}, nil
}

func (s *Service) resolveWebhook(
	ctx context.Context,
	webhookURL string,
	request *WebhookRequest,
) (*oidc4ci.ClaimsResult, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var result *oidc4ci.ClaimsResult

	err = backoff.RetryNotify(
		func() error {
			var callErr error

			result, callErr = s.call(ctx, webhookURL, payload)

			return callErr
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryInterval), s.maxRetries), ctx),
		func(retryErr error, t time.Duration) {
			logger.Warnc(ctx, "Claims webhook call failed, will sleep before trying again",
				logfields.WithTenantID(request.TenantID), log.WithURL(webhookURL),
				logfields.WithSleep(t), log.WithError(retryErr))
		},
	)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// call returns a permanent error for every answer that a retry cannot change.
func (s *Service) call(ctx context.Context, webhookURL string, payload []byte) (*oidc4ci.ClaimsResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}

	req.Header.Add("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fmt.Errorf("send request: %w", err))
		}

		return nil, fmt.Errorf("send request: %w", err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warnc(ctx, "Failed to close response body", log.WithError(closeErr))
		}
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		var body WebhookResponse

		if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}

		if body.Claims == nil {
			return nil, backoff.Permanent(errors.New("webhook returned no claims"))
		}

		return &oidc4ci.ClaimsResult{Claims: body.Claims}, nil
	case resp.StatusCode == http.StatusAccepted:
		var body WebhookResponse

		// The deferral body is optional.
		if b, _ := io.ReadAll(resp.Body); len(b) > 0 {
			if err = json.Unmarshal(b, &body); err != nil {
				return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
			}
		}

		return &oidc4ci.ClaimsResult{Deferred: true, Interval: body.Interval}, nil
	case resp.StatusCode == http.StatusForbidden:
		return nil, backoff.Permanent(oidc4ci.ErrClaimsDenied)
	case resp.StatusCode >= http.StatusInternalServerError:
		b, _ := io.ReadAll(resp.Body)

		return nil, fmt.Errorf("status code: %d, msg: %s", resp.StatusCode, string(b))
	default:
		b, _ := io.ReadAll(resp.Body)

		return nil, backoff.Permanent(fmt.Errorf("status code: %d, msg: %s", resp.StatusCode, string(b)))
	}
}
