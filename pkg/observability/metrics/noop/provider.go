/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noop

import (
	"time"

	"github.com/trustbloc/vcs-issuance/pkg/observability/metrics"
)

type noMetricsProvider struct{}

// NewNoMetricsProvider returns a provider that records nothing.
func NewNoMetricsProvider() metrics.Provider {
	return &noMetricsProvider{}
}

func (p *noMetricsProvider) Create() error            { return nil }
func (p *noMetricsProvider) Destroy() error           { return nil }
func (p *noMetricsProvider) Metrics() metrics.Metrics { return GetMetrics() }

// NoMetrics provides default no operation implementation for the Metrics interface.
type NoMetrics struct{}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	return &NoMetrics{}
}

func (n *NoMetrics) SignTime(_ time.Duration)          {}
func (n *NoMetrics) ClaimsResolveTime(_ time.Duration) {}
func (n *NoMetrics) CredentialRequest(_ string)        {}
func (n *NoMetrics) DeferredPoll(_ string)             {}
func (n *NoMetrics) StatusUpdated()                    {}
func (n *NoMetrics) NonceIssued()                      {}
func (n *NoMetrics) StatusListCreated(_ int)           {}
