/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package oidc4ci . Service

package oidc4ci

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/vcs-issuance/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
)

type Service oidc4ci.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

var _ oidc4ci.ServiceInterface = (*Wrapper)(nil)

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

func (w *Wrapper) RequestCredential(
	ctx context.Context,
	req *oidc4ci.CredentialRequest,
) (res *oidc4ci.CredentialResult, err error) {
	ctx, span := w.tracer.Start(ctx, "oidc4ci.RequestCredential")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(
		attribute.String("tenant_id", req.TenantID),
		attribute.String("credential_configuration_id", req.CredentialConfigurationID),
		attribute.String("credential_identifier", req.CredentialIdentifier),
		attribute.Bool("encrypted_response", req.CredentialResponseEncryption != nil),
	)

	if req.Proof != nil {
		span.SetAttributes(attributeutil.JSON("proof", req.Proof, attributeutil.WithRedacted("jwt")))
	}

	res, err = w.svc.RequestCredential(ctx, req)
	if err != nil {
		return nil, err
	}

	if res.TransactionID != "" {
		span.SetAttributes(attribute.String("tx_id", string(res.TransactionID)))
	}

	if res.Status != nil {
		span.SetAttributes(attributeutil.JSON("status", res.Status))
	}

	return res, nil
}

func (w *Wrapper) PollDeferred(
	ctx context.Context,
	tenantID string,
	txID oidc4ci.TxID,
) (res *oidc4ci.CredentialResult, err error) {
	ctx, span := w.tracer.Start(ctx, "oidc4ci.PollDeferred")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("tenant_id", tenantID), attribute.String("tx_id", string(txID)))

	return w.svc.PollDeferred(ctx, tenantID, txID)
}

func (w *Wrapper) ResolveDeferred(
	ctx context.Context,
	tenantID string,
	txID oidc4ci.TxID,
	claims map[string]interface{},
) (err error) {
	ctx, span := w.tracer.Start(ctx, "oidc4ci.ResolveDeferred")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(
		attribute.String("tenant_id", tenantID),
		attribute.String("tx_id", string(txID)),
		attributeutil.Keys("claim_fields", claims),
	)

	return w.svc.ResolveDeferred(ctx, tenantID, txID, claims)
}

func (w *Wrapper) DenyDeferred(ctx context.Context, tenantID string, txID oidc4ci.TxID, reason string) (err error) {
	ctx, span := w.tracer.Start(ctx, "oidc4ci.DenyDeferred")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("tenant_id", tenantID), attribute.String("tx_id", string(txID)))

	return w.svc.DenyDeferred(ctx, tenantID, txID, reason)
}

func (w *Wrapper) UpdateCredentialStatus(
	ctx context.Context,
	tenantID, listID string,
	index int,
	value uint8,
) (err error) {
	ctx, span := w.tracer.Start(ctx, "oidc4ci.UpdateCredentialStatus")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(
		attribute.String("tenant_id", tenantID),
		attribute.String("list_id", listID),
		attribute.Int("index", index),
		attribute.Int("status", int(value)),
	)

	return w.svc.UpdateCredentialStatus(ctx, tenantID, listID, index, value)
}

func (w *Wrapper) IssueNonce(ctx context.Context, tenantID, sessionID string) (res *oidc4ci.NonceResult, err error) {
	ctx, span := w.tracer.Start(ctx, "oidc4ci.IssueNonce")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("tenant_id", tenantID))

	return w.svc.IssueNonce(ctx, tenantID, sessionID)
}
