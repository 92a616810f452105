/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	"github.com/trustbloc/vcs-issuance/pkg/event/spi"
)

const eventSourcePrefix = "source://vcs-issuance/"

type eventPayload struct {
	TenantID                  string `json:"tenantID"`
	CredentialConfigurationID string `json:"credentialConfigurationID,omitempty"`
	Interval                  int    `json:"interval,omitempty"`
	ListID                    string `json:"listID,omitempty"`
	Index                     *int   `json:"index,omitempty"`
	Status                    *uint8 `json:"status,omitempty"`
	ErrorCode                 string `json:"errorCode,omitempty"`
	Error                     string `json:"error,omitempty"`
}

func (s *Service) sendEvent(ctx context.Context, eventType spi.EventType, txID TxID, payload *eventPayload) {
	s.publish(ctx, s.eventTopic, eventType, txID, payload)
}

func (s *Service) publish(
	ctx context.Context,
	topic string,
	eventType spi.EventType,
	txID TxID,
	payload *eventPayload,
) {
	if s.eventSvc == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warnc(ctx, "Failed to marshal event payload", log.WithError(err))

		return
	}

	event := spi.NewEvent(uuid.NewString(), eventSourcePrefix+payload.TenantID, eventType,
		spi.WithData(data),
		spi.WithTime(s.now()),
		spi.WithTransactionID(string(txID)),
		spi.WithTenantID(payload.TenantID),
	)

	// Delivery is best effort. The issuance outcome does not depend on it.
	if err = s.eventSvc.Publish(ctx, topic, event); err != nil {
		logger.Warnc(ctx, "Failed to publish event", log.WithTopic(topic),
			logfields.WithEvent(event), log.WithError(err))
	}
}

func (s *Service) sendFailedEvent(ctx context.Context, tenantID, configID string, txID TxID, e error) {
	payload := &eventPayload{
		TenantID:                  tenantID,
		CredentialConfigurationID: configID,
		Error:                     e.Error(),
	}

	var pe protocolError
	if errors.As(e, &pe) {
		payload.ErrorCode = pe.Code()
	}

	s.sendEvent(ctx, spi.IssuerOIDCInteractionFailed, txID, payload)
}

func (s *Service) sendIssuedEvent(
	ctx context.Context,
	tenantID, configID string,
	txID TxID,
	res *CredentialResult,
) {
	payload := &eventPayload{
		TenantID:                  tenantID,
		CredentialConfigurationID: configID,
	}

	if res.Status != nil {
		index := res.Status.Index

		payload.ListID = res.Status.ListID
		payload.Index = &index
	}

	s.sendEvent(ctx, spi.IssuerOIDCInteractionSucceeded, txID, payload)
}
