/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/pkg/observability/metrics"
)

var logger = metrics.Logger

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

type promProvider struct {
	httpServer *http.Server
}

// NewPrometheusProvider creates new instance of Prometheus Metrics Provider. A nil
// server means the /metrics handler is mounted on the main API server.
func NewPrometheusProvider(httpServer *http.Server) metrics.Provider {
	return &promProvider{httpServer: httpServer}
}

// Create starts the dedicated metrics HTTP server, if any.
func (pp *promProvider) Create() error {
	if pp.httpServer == nil {
		return nil
	}

	go func() {
		if err := pp.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics HTTP server stopped", log.WithError(err))
		}
	}()

	return nil
}

// Metrics returns supported metrics.
func (pp *promProvider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// Destroy destroys the prometheus metrics provider.
func (pp *promProvider) Destroy() error {
	if pp.httpServer == nil {
		return nil
	}

	if err := pp.httpServer.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("shutdown metrics HTTP server: %w", err)
	}

	return nil
}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics(prometheus.DefaultRegisterer)
	})

	return instance
}

// PromMetrics manages the metrics for the issuance service.
type PromMetrics struct {
	signTime           prometheus.Histogram
	claimsResolveTime  prometheus.Histogram
	credentialRequests *prometheus.CounterVec
	deferredPolls      *prometheus.CounterVec
	statusUpdates      prometheus.Counter
	noncesIssued       prometheus.Counter
	statusListsCreated *prometheus.CounterVec
}

// NewMetrics creates instance of prometheus metrics registered with reg.
func NewMetrics(reg prometheus.Registerer) *PromMetrics {
	pm := &PromMetrics{
		signTime: newHistogram(metrics.Signer, metrics.SignerSignTimeMetric,
			"The time (in seconds) it takes to sign a credential.", nil),
		claimsResolveTime: newHistogram(metrics.Claims, metrics.ClaimsResolveTimeMetric,
			"The time (in seconds) it takes to resolve credential claims.", nil),
		credentialRequests: newCounterVec(metrics.Service, metrics.CredentialRequestsMetric,
			"The number of credential requests by outcome.", metrics.OutcomeLabel),
		deferredPolls: newCounterVec(metrics.Service, metrics.DeferredPollsMetric,
			"The number of deferred credential polls by outcome.", metrics.OutcomeLabel),
		statusUpdates: newCounter(metrics.Service, metrics.StatusUpdatesMetric,
			"The number of credential status updates.", nil),
		noncesIssued: newCounter(metrics.Service, metrics.NoncesIssuedMetric,
			"The number of issued c_nonce values.", nil),
		statusListsCreated: newCounterVec(metrics.Service, metrics.StatusListsCreatedMetric,
			"The number of status lists created by entry width.", metrics.BitsPerEntryLabel),
	}

	reg.MustRegister(
		pm.signTime, pm.claimsResolveTime, pm.credentialRequests, pm.deferredPolls,
		pm.statusUpdates, pm.noncesIssued, pm.statusListsCreated,
	)

	return pm
}

// SignTime records the time for sign.
func (pm *PromMetrics) SignTime(value time.Duration) {
	pm.signTime.Observe(value.Seconds())

	logger.Debug("Credential sign time", log.WithDuration(value))
}

// ClaimsResolveTime records the time for claims resolution.
func (pm *PromMetrics) ClaimsResolveTime(value time.Duration) {
	pm.claimsResolveTime.Observe(value.Seconds())

	logger.Debug("Claims resolve time", log.WithDuration(value))
}

func (pm *PromMetrics) CredentialRequest(outcome string) {
	pm.credentialRequests.WithLabelValues(outcome).Inc()
}

func (pm *PromMetrics) DeferredPoll(outcome string) {
	pm.deferredPolls.WithLabelValues(outcome).Inc()
}

func (pm *PromMetrics) StatusUpdated() {
	pm.statusUpdates.Inc()
}

func (pm *PromMetrics) NonceIssued() {
	pm.noncesIssued.Inc()
}

func (pm *PromMetrics) StatusListCreated(bitsPerEntry int) {
	pm.statusListsCreated.WithLabelValues(strconv.Itoa(bitsPerEntry)).Inc()
}

func newCounter(subsystem, name, help string, labels prometheus.Labels) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newCounterVec(subsystem, name, help string, labelNames ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labelNames)
}

func newHistogram(subsystem, name, help string, labels prometheus.Labels) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}
