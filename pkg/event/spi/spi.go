/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package spi

import (
	"bytes"
	"time"
)

const (
	// IssuerEventTopic carries issuance interaction events.
	IssuerEventTopic = "vcs-issuer"
	// CredentialStatusEventTopic carries status list events.
	CredentialStatusEventTopic = "vcs-credentialstatus"
)

// EventType event type.
type EventType string

const (
	IssuerOIDCInteractionSucceeded        = EventType("oidc_interaction_succeeded")
	IssuerOIDCInteractionDeferred         = EventType("oidc_interaction_deferred")
	IssuerOIDCInteractionDeferredResolved = EventType("oidc_interaction_deferred_resolved")
	IssuerOIDCInteractionFailed           = EventType("oidc_interaction_failed")

	CredentialStatusStatusUpdated = EventType("credentialstatus_status_updated")
	CredentialStatusListCreated   = EventType("credentialstatus_list_created")

	TenantPurged = EventType("tenant_purged")
)

const (
	specVersion     = "1.0"
	jsonContentType = "application/json"
)

// Event is a CloudEvents style envelope. Data is always JSON.
type Event struct {
	SpecVersion     string    `json:"specVersion"`
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	Type            EventType `json:"type"`
	Time            time.Time `json:"time"`
	DataContentType string    `json:"dataContentType,omitempty"`
	Data            []byte    `json:"data,omitempty"`
	TransactionID   string    `json:"txnId,omitempty"`
	TenantID        string    `json:"tenantId,omitempty"`
}

// EventOpt sets an optional Event field.
type EventOpt func(e *Event)

// WithData attaches a JSON payload.
func WithData(data []byte) EventOpt {
	return func(e *Event) {
		e.Data = data
		e.DataContentType = jsonContentType
	}
}

// WithTime overrides the occurrence time.
func WithTime(t time.Time) EventOpt {
	return func(e *Event) {
		e.Time = t.UTC()
	}
}

// WithTransactionID sets the deferred transaction the event belongs to.
func WithTransactionID(txID string) EventOpt {
	return func(e *Event) {
		e.TransactionID = txID
	}
}

// WithTenantID sets the owning tenant.
func WithTenantID(tenantID string) EventOpt {
	return func(e *Event) {
		e.TenantID = tenantID
	}
}

// NewEvent creates an event stamped with the current time unless WithTime is given.
func NewEvent(id, source string, eventType EventType, opts ...EventOpt) *Event {
	e := &Event{
		SpecVersion: specVersion,
		ID:          id,
		Source:      source,
		Type:        eventType,
		Time:        time.Now().UTC(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Copy returns a copy that shares no memory with m.
func (m *Event) Copy() *Event {
	c := *m

	if m.Data != nil {
		c.Data = bytes.Clone(m.Data)
	}

	return &c
}
