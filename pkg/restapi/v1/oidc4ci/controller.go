/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination controller_mocks_test.go -self_package mocks -package oidc4ci_test -source=controller.go -mock_names issuanceService=MockIssuanceService,statusListService=MockStatusListService,tenantService=MockTenantService,profileService=MockProfileService,accessTokenValidator=MockAccessTokenValidator

package oidc4ci

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	"github.com/trustbloc/vcs-issuance/pkg/oauth2/accesstoken"
	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/resterr"
	oidc4cierr "github.com/trustbloc/vcs-issuance/pkg/restapi/resterr/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/v1/mw"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/v1/util"
	oidc4cisrv "github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
)

var logger = log.New("restapi-oidc4ci")

const (
	tenantIDPathParam      = "tenantID"
	listIDPathParam        = "listID"
	transactionIDPathParam = "txID"

	contentTypeJWT = "application/jwt"

	// MaxCredentialRequestSize is the largest credential request body accepted.
	MaxCredentialRequestSize = 1 << 20
)

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type issuanceService oidc4cisrv.ServiceInterface

type statusListService interface {
	Aggregate(ctx context.Context, tenantID string) ([]string, error)
	Encode(ctx context.Context, listID string) (*statuslist.EncodedList, error)
}

type tenantService interface {
	Delete(ctx context.Context, tenantID string) error
}

type profileService interface {
	GetTenant(ctx context.Context, tenantID profileapi.ID) (*profileapi.Tenant, error)
}

type accessTokenValidator interface {
	Grant(token string) (*oidc4cisrv.AccessGrant, error)
}

// Config holds the controller dependencies.
type Config struct {
	IssuanceService issuanceService
	StatusLists     statusListService
	Tenants         tenantService
	Profiles        profileService
	AccessTokens    accessTokenValidator
	// AdminAPIKey protects the status, deferred claims and tenant routes when set.
	AdminAPIKey string
	Tracer      trace.Tracer
}

// Controller exposes the issuance engine over HTTP.
type Controller struct {
	issuanceService issuanceService
	statusLists     statusListService
	tenants         tenantService
	profiles        profileService
	accessTokens    accessTokenValidator
	tracer          trace.Tracer
}

// NewController creates the controller and registers its routes.
func NewController(router router, config *Config) *Controller {
	c := &Controller{
		issuanceService: config.IssuanceService,
		statusLists:     config.StatusLists,
		tenants:         config.Tenants,
		profiles:        config.Profiles,
		accessTokens:    config.AccessTokens,
		tracer:          config.Tracer,
	}

	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer("")
	}

	var admin []echo.MiddlewareFunc
	if config.AdminAPIKey != "" {
		admin = append(admin, mw.APIKeyAuth(config.AdminAPIKey))
	}

	router.POST("/oidc/:tenantID/nonce", c.OidcNonce)
	router.POST("/oidc/:tenantID/credential", c.OidcCredential)
	router.POST("/oidc/:tenantID/deferred_credential", c.OidcDeferredCredential)
	router.POST("/oidc/:tenantID/deferred/:txID/claims", c.DeferredClaims, admin...)
	router.GET("/status-lists/:tenantID", c.GetStatusLists)
	router.GET("/status-lists/:tenantID/:listID", c.GetStatusList)
	router.POST("/status-lists/:tenantID/status", c.UpdateCredentialStatus, admin...)
	router.DELETE("/tenants/:tenantID", c.DeleteTenant, admin...)

	return c
}

// OidcNonce handles POST /oidc/{tenantID}/nonce.
func (c *Controller) OidcNonce(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "OidcNonce")
	defer span.End()

	tenantID := e.Param(tenantIDPathParam)
	span.SetAttributes(attribute.String("tenant_id", tenantID))

	grant, err := c.accessGrant(e)
	if err != nil {
		return err
	}

	res, err := c.issuanceService.IssueNonce(ctx, tenantID, grant.SessionID)
	if err != nil {
		return publicError(err)
	}

	return util.WriteNoStore(e, http.StatusOK, &NonceResponse{
		CNonce:          res.CNonce,
		CNonceExpiresIn: res.ExpiresIn,
	})
}

// OidcCredential handles POST /oidc/{tenantID}/credential.
func (c *Controller) OidcCredential(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "OidcCredential")
	defer span.End()

	tenantID := e.Param(tenantIDPathParam)
	span.SetAttributes(attribute.String("tenant_id", tenantID))

	grant, err := c.accessGrant(e)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(e.Request().Body, MaxCredentialRequestSize+1))
	if err != nil {
		return invalidCredentialRequest(fmt.Errorf("read body: %w", err))
	}

	if len(body) > MaxCredentialRequestSize {
		return invalidCredentialRequest(fmt.Errorf("request body exceeds %d bytes", MaxCredentialRequestSize))
	}

	if err = checkDuplicateMembers(body); err != nil {
		return invalidCredentialRequest(err)
	}

	var req CredentialRequest

	if err = json.Unmarshal(body, &req); err != nil {
		return invalidCredentialRequest(fmt.Errorf("decode body: %w", err))
	}

	res, err := c.issuanceService.RequestCredential(ctx, &oidc4cisrv.CredentialRequest{
		TenantID:                     tenantID,
		CredentialConfigurationID:    req.CredentialConfigurationID,
		CredentialIdentifier:         req.CredentialIdentifier,
		Proof:                        req.Proof,
		CredentialResponseEncryption: req.CredentialResponseEncryption,
		Grant:                        grant,
	})
	if err != nil {
		return publicError(err)
	}

	return writeCredentialResult(e, res)
}

// OidcDeferredCredential handles POST /oidc/{tenantID}/deferred_credential.
func (c *Controller) OidcDeferredCredential(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "OidcDeferredCredential")
	defer span.End()

	tenantID := e.Param(tenantIDPathParam)

	if _, err := c.accessGrant(e); err != nil {
		return err
	}

	var req DeferredCredentialRequest

	if err := e.Bind(&req); err != nil {
		return invalidCredentialRequest(fmt.Errorf("decode body: %w", err))
	}

	span.SetAttributes(attribute.String("tenant_id", tenantID), attribute.String("tx_id", req.TransactionID))

	res, err := c.issuanceService.PollDeferred(ctx, tenantID, oidc4cisrv.TxID(req.TransactionID))
	if err != nil {
		return publicError(err)
	}

	return writeCredentialResult(e, res)
}

// DeferredClaims handles POST /oidc/{tenantID}/deferred/{txID}/claims. The
// claims provider either delivers claims or refuses the pending transaction.
func (c *Controller) DeferredClaims(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "DeferredClaims")
	defer span.End()

	tenantID := e.Param(tenantIDPathParam)
	txID := oidc4cisrv.TxID(e.Param(transactionIDPathParam))

	span.SetAttributes(attribute.String("tenant_id", tenantID), attribute.String("tx_id", string(txID)))

	var req DeferredClaimsRequest

	if err := util.ReadBody(e, &req); err != nil {
		return err
	}

	var err error

	if req.Denied {
		err = c.issuanceService.DenyDeferred(ctx, tenantID, txID, req.Reason)
	} else {
		err = c.issuanceService.ResolveDeferred(ctx, tenantID, txID, req.Claims)
	}

	if err != nil {
		return publicError(err)
	}

	return e.NoContent(http.StatusNoContent)
}

// GetStatusLists handles GET /status-lists/{tenantID}.
func (c *Controller) GetStatusLists(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "GetStatusLists")
	defer span.End()

	tenantID := e.Param(tenantIDPathParam)
	span.SetAttributes(attribute.String("tenant_id", tenantID))

	if _, err := c.profiles.GetTenant(ctx, tenantID); err != nil {
		if errors.Is(err, profileapi.ErrTenantNotFound) {
			return notFound(err, resterr.TenantSvcComponent, "tenant")
		}

		return fmt.Errorf("get tenant: %w", err)
	}

	uris, err := c.statusLists.Aggregate(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("aggregate status lists: %w", err)
	}

	return util.WriteJSON(e, http.StatusOK, &StatusListsResponse{StatusLists: uris})
}

// GetStatusList handles GET /status-lists/{tenantID}/{listID}.
func (c *Controller) GetStatusList(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "GetStatusList")
	defer span.End()

	tenantID := e.Param(tenantIDPathParam)
	listID := e.Param(listIDPathParam)

	span.SetAttributes(attribute.String("tenant_id", tenantID), attribute.String("list_id", listID))

	encoded, err := c.statusLists.Encode(ctx, listID)
	if err != nil {
		if errors.Is(err, statuslist.ErrDataNotFound) {
			return notFound(fmt.Errorf("status list %s not found", listID), resterr.StatusListSvcComponent, "list_id")
		}

		return fmt.Errorf("encode status list: %w", err)
	}

	if encoded.TenantID != tenantID {
		return notFound(fmt.Errorf("status list %s not found", listID), resterr.StatusListSvcComponent, "list_id")
	}

	return util.WriteCacheable(e, encoded)
}

// UpdateCredentialStatus handles POST /status-lists/{tenantID}/status.
func (c *Controller) UpdateCredentialStatus(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "UpdateCredentialStatus")
	defer span.End()

	tenantID := e.Param(tenantIDPathParam)

	var req UpdateCredentialStatusRequest

	if err := util.ReadBody(e, &req); err != nil {
		return err
	}

	switch {
	case req.ListID == "":
		return badRequest(errors.New("list_id is required"), "list_id")
	case req.Index == nil:
		return badRequest(errors.New("index is required"), "index")
	case req.Status == nil:
		return badRequest(errors.New("status is required"), "status")
	}

	span.SetAttributes(attribute.String("tenant_id", tenantID), attribute.String("list_id", req.ListID),
		attribute.Int("index", *req.Index))

	if err := c.issuanceService.UpdateCredentialStatus(ctx, tenantID, req.ListID, *req.Index, *req.Status); err != nil {
		return publicError(err)
	}

	return e.NoContent(http.StatusNoContent)
}

// DeleteTenant handles DELETE /tenants/{tenantID}.
func (c *Controller) DeleteTenant(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "DeleteTenant")
	defer span.End()

	tenantID := e.Param(tenantIDPathParam)
	span.SetAttributes(attribute.String("tenant_id", tenantID))

	if err := c.tenants.Delete(ctx, tenantID); err != nil {
		if errors.Is(err, profileapi.ErrTenantNotFound) {
			return notFound(err, resterr.TenantSvcComponent, "tenant")
		}

		return err
	}

	logger.Infoc(ctx, "Tenant deleted", logfields.WithTenantID(tenantID))

	return e.NoContent(http.StatusNoContent)
}

func (c *Controller) accessGrant(e echo.Context) (*oidc4cisrv.AccessGrant, error) {
	token, err := accesstoken.FromRequest(e.Request())
	if err != nil {
		return nil, invalidToken(e, err)
	}

	grant, err := c.accessTokens.Grant(token)
	if err != nil {
		return nil, invalidToken(e, err)
	}

	return grant, nil
}

func invalidToken(e echo.Context, err error) error {
	logger.Debugc(e.Request().Context(), "Access token rejected", log.WithError(err))

	e.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)

	return &echo.HTTPError{
		Code: http.StatusUnauthorized,
		Message: map[string]interface{}{
			"error":             "invalid_token",
			"error_description": err.Error(),
		},
	}
}

func writeCredentialResult(e echo.Context, res *oidc4cisrv.CredentialResult) error {
	var (
		code    = http.StatusOK
		payload interface{}
	)

	if res.TransactionID != "" {
		code = http.StatusAccepted
		payload = &DeferredResponse{
			TransactionID: string(res.TransactionID),
			Interval:      res.Interval,
		}
	} else {
		payload = &CredentialResponse{
			Credentials:     []IssuedCredential{{Credential: res.Credential.Credential}},
			CNonce:          res.CNonce,
			CNonceExpiresIn: res.CNonceExpires,
		}
	}

	if res.Encryption == nil {
		return util.WriteNoStore(e, code, payload)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal credential response: %w", err)
	}

	jwe, err := oidc4cisrv.EncryptResponse(b, res.Encryption)
	if err != nil {
		return fmt.Errorf("encrypt credential response: %w", err)
	}

	util.SetNoStore(e)

	return e.Blob(code, contentTypeJWT, []byte(jwe))
}

// checkDuplicateMembers rejects objects that repeat a member name at any depth.
func checkDuplicateMembers(body []byte) error {
	if !gjson.ValidBytes(body) {
		return errors.New("malformed json")
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return errors.New("request body must be a json object")
	}

	return checkObject(root, "")
}

func checkObject(obj gjson.Result, prefix string) error {
	var err error

	seen := make(map[string]struct{})

	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()

		if _, ok := seen[name]; ok {
			err = fmt.Errorf("duplicate member %q", prefix+name)

			return false
		}

		seen[name] = struct{}{}

		if value.IsObject() {
			err = checkObject(value, prefix+name+".")
		}

		return err == nil
	})

	return err
}

func publicError(err error) error {
	var oidcErr *oidc4cierr.Error
	if errors.As(err, &oidcErr) {
		return oidcErr.UsePublicAPIResponse()
	}

	return err
}

func invalidCredentialRequest(err error) error {
	return oidc4cierr.NewInvalidCredentialRequestError(err).UsePublicAPIResponse()
}

func badRequest(err error, value string) error {
	return oidc4cierr.NewBadRequestError(err).WithIncorrectValue(value).UsePublicAPIResponse()
}

func notFound(err error, component resterr.Component, value string) error {
	return oidc4cierr.NewNotFoundError(err).
		WithComponent(component).
		WithIncorrectValue(value).
		UsePublicAPIResponse()
}
