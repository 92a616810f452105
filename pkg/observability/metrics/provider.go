/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"
)

// Logger used by different metrics provider.
var Logger = log.New("metrics-provider")

// Constants used by different metrics provider.
const (
	// Namespace Organization namespace.
	Namespace = "vcs_issuance"

	// Signer external credential signing.
	Signer               = "signer"
	SignerSignTimeMetric = "sign_seconds"

	// Claims external claims resolution.
	Claims                  = "claims"
	ClaimsResolveTimeMetric = "resolve_seconds"

	// Service operations.
	Service                  = "service"
	CredentialRequestsMetric = "credential_requests_total"
	DeferredPollsMetric      = "deferred_polls_total"
	StatusUpdatesMetric      = "status_updates_total"
	NoncesIssuedMetric       = "nonces_issued_total"
	StatusListsCreatedMetric = "status_lists_created_total"
	OutcomeLabel             = "outcome"
	BitsPerEntryLabel        = "bits"
)

// Provider is an interface for metrics provider.
type Provider interface {
	// Create creates a metrics provider instance
	Create() error
	// Destroy destroys the metrics provider instance
	Destroy() error
	// Metrics providers metrics
	Metrics() Metrics
}

// Metrics is an interface for the metrics to be supported by the provider.
//
//nolint:interfacebloat
type Metrics interface {
	SignTime(value time.Duration)
	ClaimsResolveTime(value time.Duration)
	CredentialRequest(outcome string)
	DeferredPoll(outcome string)
	StatusUpdated()
	NonceIssued()
	StatusListCreated(bitsPerEntry int)
}
