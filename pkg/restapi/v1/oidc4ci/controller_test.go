/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4ci_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-jose/go-jose/v3"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	profileapi "github.com/trustbloc/vcs-issuance/pkg/profile"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/resterr"
	oidc4cierr "github.com/trustbloc/vcs-issuance/pkg/restapi/resterr/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/v1/oidc4ci"
	oidc4cisrv "github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
)

const (
	tenantID    = "tenant1"
	accessToken = "access-token"
	apiKey      = "admin-key"
)

type mocks struct {
	issuance    *MockIssuanceService
	statusLists *MockStatusListService
	tenants     *MockTenantService
	profiles    *MockProfileService
	tokens      *MockAccessTokenValidator
}

func newServer(t *testing.T) (*echo.Echo, *mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &mocks{
		issuance:    NewMockIssuanceService(ctrl),
		statusLists: NewMockStatusListService(ctrl),
		tenants:     NewMockTenantService(ctrl),
		profiles:    NewMockProfileService(ctrl),
		tokens:      NewMockAccessTokenValidator(ctrl),
	}

	e := echo.New()
	e.HTTPErrorHandler = resterr.HTTPErrorHandler(noop.NewTracerProvider().Tracer(""))

	oidc4ci.NewController(e, &oidc4ci.Config{
		IssuanceService: m.issuance,
		StatusLists:     m.statusLists,
		Tenants:         m.tenants,
		Profiles:        m.profiles,
		AccessTokens:    m.tokens,
		AdminAPIKey:     apiKey,
	})

	return e, m
}

func do(e *echo.Echo, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func bearer() map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + accessToken}
}

func admin() map[string]string {
	return map[string]string{"X-API-Key": apiKey}
}

func grant() *oidc4cisrv.AccessGrant {
	return &oidc4cisrv.AccessGrant{
		Subject:   "user1",
		SessionID: "session1",
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestController_OidcNonce(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().IssueNonce(gomock.Any(), tenantID, "session1").
			Return(&oidc4cisrv.NonceResult{CNonce: "nonce1", ExpiresIn: 300}, nil)

		rec := do(e, http.MethodPost, "/oidc/tenant1/nonce", "", bearer())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
		assert.JSONEq(t, `{"c_nonce":"nonce1","c_nonce_expires_in":300}`, rec.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		e, _ := newServer(t)

		rec := do(e, http.MethodPost, "/oidc/tenant1/nonce", "", nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, `Bearer error="invalid_token"`, rec.Header().Get(echo.HeaderWWWAuthenticate))
		assert.Equal(t, "invalid_token", errorCode(t, rec)["error"])
	})

	t.Run("invalid token", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(nil, errors.New("expired"))

		rec := do(e, http.MethodPost, "/oidc/tenant1/nonce", "", bearer())

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid_token", errorCode(t, rec)["error"])
	})

	t.Run("inactive tenant", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().IssueNonce(gomock.Any(), tenantID, "session1").
			Return(nil, oidc4cierr.NewBadRequestError(errors.New("tenant tenant1 is not active")))

		rec := do(e, http.MethodPost, "/oidc/tenant1/nonce", "", bearer())

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"bad_request","error_description":"tenant tenant1 is not active"}`,
			rec.Body.String())
	})
}

func TestController_OidcCredential(t *testing.T) {
	const validBody = `{"credential_configuration_id":"PID","proof":{"proof_type":"jwt","jwt":"a.b.c"}}`

	t.Run("issued", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().RequestCredential(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, req *oidc4cisrv.CredentialRequest) (*oidc4cisrv.CredentialResult, error) {
				assert.Equal(t, tenantID, req.TenantID)
				assert.Equal(t, "PID", req.CredentialConfigurationID)
				assert.Equal(t, "jwt", req.Proof.ProofType)
				assert.Equal(t, "a.b.c", req.Proof.JWT)
				assert.Equal(t, "session1", req.Grant.SessionID)

				return &oidc4cisrv.CredentialResult{
					Credential:    &oidc4cisrv.SignedCredential{Format: "dc+sd-jwt", Credential: "cred~"},
					CNonce:        "next",
					CNonceExpires: 300,
				}, nil
			})

		rec := do(e, http.MethodPost, "/oidc/tenant1/credential", validBody, bearer())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
		assert.JSONEq(t, `{"credentials":[{"credential":"cred~"}],"c_nonce":"next","c_nonce_expires_in":300}`,
			rec.Body.String())
	})

	t.Run("deferred", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().RequestCredential(gomock.Any(), gomock.Any()).
			Return(&oidc4cisrv.CredentialResult{TransactionID: "tx1", Interval: 5}, nil)

		rec := do(e, http.MethodPost, "/oidc/tenant1/credential", validBody, bearer())

		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"transaction_id":"tx1","interval":5}`, rec.Body.String())
	})

	t.Run("encrypted response", func(t *testing.T) {
		e, m := newServer(t)

		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().RequestCredential(gomock.Any(), gomock.Any()).
			Return(&oidc4cisrv.CredentialResult{
				Credential: &oidc4cisrv.SignedCredential{Credential: "cred~"},
				Encryption: &oidc4cisrv.CredentialResponseEncryption{
					JWK: &jose.JSONWebKey{Key: &key.PublicKey, KeyID: "enc1"},
					Alg: string(jose.ECDH_ES),
					Enc: string(jose.A128GCM),
				},
			}, nil)

		rec := do(e, http.MethodPost, "/oidc/tenant1/credential", validBody, bearer())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/jwt", rec.Header().Get(echo.HeaderContentType))

		jwe, err := jose.ParseEncrypted(rec.Body.String())
		require.NoError(t, err)

		plain, err := jwe.Decrypt(key)
		require.NoError(t, err)
		assert.JSONEq(t, `{"credentials":[{"credential":"cred~"}]}`, string(plain))
	})

	t.Run("missing token", func(t *testing.T) {
		e, _ := newServer(t)

		rec := do(e, http.MethodPost, "/oidc/tenant1/credential", validBody, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{
			name: "duplicate member",
			body: `{"credential_configuration_id":"PID","credential_configuration_id":"Other"}`,
			msg:  `duplicate member "credential_configuration_id"`,
		},
		{
			name: "nested duplicate member",
			body: `{"proof":{"proof_type":"jwt","jwt":"a","jwt":"b"}}`,
			msg:  `duplicate member "proof.jwt"`,
		},
		{
			name: "malformed json",
			body: `{"credential_configuration_id":`,
			msg:  "malformed json",
		},
		{
			name: "not an object",
			body: `["PID"]`,
			msg:  "must be a json object",
		},
		{
			name: "wrong member type",
			body: `{"proof":"jwt"}`,
			msg:  "decode body",
		},
		{
			name: "oversized body",
			body: `{"credential_configuration_id":"` + strings.Repeat("a", oidc4ci.MaxCredentialRequestSize) + `"}`,
			msg:  "request body exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, m := newServer(t)

			m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)

			rec := do(e, http.MethodPost, "/oidc/tenant1/credential", tt.body, bearer())

			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := errorCode(t, rec)
			assert.Equal(t, "invalid_credential_request", body["error"])
			assert.Contains(t, body["error_description"], tt.msg)
			assert.NotContains(t, body, "component")
		})
	}

	t.Run("protocol error", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().RequestCredential(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("wrapped: %w", oidc4cierr.NewInvalidNonceError(errors.New("nonce expired")).
				WithComponent(resterr.NonceSvcComponent)))

		rec := do(e, http.MethodPost, "/oidc/tenant1/credential", validBody, bearer())

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"invalid_nonce","error_description":"nonce expired"}`, rec.Body.String())
	})

	t.Run("internal error", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().RequestCredential(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("store unavailable"))

		rec := do(e, http.MethodPost, "/oidc/tenant1/credential", validBody, bearer())

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"server_error","error_description":"internal server error"}`, rec.Body.String())
	})
}

func TestController_OidcDeferredCredential(t *testing.T) {
	t.Run("issued", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().PollDeferred(gomock.Any(), tenantID, oidc4cisrv.TxID("tx1")).
			Return(&oidc4cisrv.CredentialResult{
				Credential: &oidc4cisrv.SignedCredential{Credential: "cred~"},
			}, nil)

		rec := do(e, http.MethodPost, "/oidc/tenant1/deferred_credential", `{"transaction_id":"tx1"}`, bearer())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"credentials":[{"credential":"cred~"}]}`, rec.Body.String())
	})

	t.Run("issuance pending", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().PollDeferred(gomock.Any(), tenantID, oidc4cisrv.TxID("tx1")).
			Return(nil, oidc4cierr.NewIssuancePendingError(errors.New("credential is not ready yet"), 5))

		rec := do(e, http.MethodPost, "/oidc/tenant1/deferred_credential", `{"transaction_id":"tx1"}`, bearer())

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t,
			`{"error":"issuance_pending","error_description":"credential is not ready yet","interval":5}`,
			rec.Body.String())
	})

	t.Run("invalid transaction id", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)
		m.issuance.EXPECT().PollDeferred(gomock.Any(), tenantID, oidc4cisrv.TxID("")).
			Return(nil, oidc4cierr.NewInvalidTransactionIDError(errors.New("transaction_id is required")))

		rec := do(e, http.MethodPost, "/oidc/tenant1/deferred_credential", `{}`, bearer())

		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := errorCode(t, rec)
		assert.Equal(t, "invalid_transaction_id", body["error"])
		assert.NotContains(t, body, "interval")
	})

	t.Run("malformed body", func(t *testing.T) {
		e, m := newServer(t)

		m.tokens.EXPECT().Grant(accessToken).Return(grant(), nil)

		rec := do(e, http.MethodPost, "/oidc/tenant1/deferred_credential", `{"transaction_id":`, bearer())

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_credential_request", errorCode(t, rec)["error"])
	})

	t.Run("missing token", func(t *testing.T) {
		e, _ := newServer(t)

		rec := do(e, http.MethodPost, "/oidc/tenant1/deferred_credential", `{"transaction_id":"tx1"}`, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestController_DeferredClaims(t *testing.T) {
	const path = "/oidc/tenant1/deferred/tx1/claims"

	t.Run("resolve", func(t *testing.T) {
		e, m := newServer(t)

		m.issuance.EXPECT().ResolveDeferred(gomock.Any(), tenantID, oidc4cisrv.TxID("tx1"),
			map[string]interface{}{"given_name": "Alice"}).Return(nil)

		rec := do(e, http.MethodPost, path, `{"claims":{"given_name":"Alice"}}`, admin())

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("deny", func(t *testing.T) {
		e, m := newServer(t)

		m.issuance.EXPECT().DenyDeferred(gomock.Any(), tenantID, oidc4cisrv.TxID("tx1"), "not eligible").
			Return(nil)

		rec := do(e, http.MethodPost, path, `{"denied":true,"reason":"not eligible"}`, admin())

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		e, m := newServer(t)

		m.issuance.EXPECT().ResolveDeferred(gomock.Any(), tenantID, oidc4cisrv.TxID("tx1"), gomock.Any()).
			Return(oidc4cierr.NewNotFoundError(errors.New("transaction tx1 not found")))

		rec := do(e, http.MethodPost, path, `{"claims":{}}`, admin())

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", errorCode(t, rec)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		e, _ := newServer(t)

		rec := do(e, http.MethodPost, path, `{"claims":`, admin())

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", errorCode(t, rec)["error"])
	})

	t.Run("missing api key", func(t *testing.T) {
		e, _ := newServer(t)

		rec := do(e, http.MethodPost, path, `{"claims":{}}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestController_GetStatusLists(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e, m := newServer(t)

		m.profiles.EXPECT().GetTenant(gomock.Any(), tenantID).Return(&profileapi.Tenant{ID: tenantID}, nil)
		m.statusLists.EXPECT().Aggregate(gomock.Any(), tenantID).
			Return([]string{"https://issuer/status-lists/tenant1/a", "https://issuer/status-lists/tenant1/b"}, nil)

		rec := do(e, http.MethodGet, "/status-lists/tenant1", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"status_lists":["https://issuer/status-lists/tenant1/a","https://issuer/status-lists/tenant1/b"]}`,
			rec.Body.String())
	})

	t.Run("no lists", func(t *testing.T) {
		e, m := newServer(t)

		m.profiles.EXPECT().GetTenant(gomock.Any(), tenantID).Return(&profileapi.Tenant{ID: tenantID}, nil)
		m.statusLists.EXPECT().Aggregate(gomock.Any(), tenantID).Return([]string{}, nil)

		rec := do(e, http.MethodGet, "/status-lists/tenant1", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status_lists":[]}`, rec.Body.String())
	})

	t.Run("unknown tenant", func(t *testing.T) {
		e, m := newServer(t)

		m.profiles.EXPECT().GetTenant(gomock.Any(), tenantID).Return(nil, profileapi.ErrTenantNotFound)

		rec := do(e, http.MethodGet, "/status-lists/tenant1", "", nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("aggregate error", func(t *testing.T) {
		e, m := newServer(t)

		m.profiles.EXPECT().GetTenant(gomock.Any(), tenantID).Return(&profileapi.Tenant{ID: tenantID}, nil)
		m.statusLists.EXPECT().Aggregate(gomock.Any(), tenantID).Return(nil, errors.New("db down"))

		rec := do(e, http.MethodGet, "/status-lists/tenant1", "", nil)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestController_GetStatusList(t *testing.T) {
	encoded := &statuslist.EncodedList{
		ID:           "list1",
		TenantID:     tenantID,
		URI:          "https://issuer/status-lists/tenant1/list1",
		BitsPerEntry: 1,
		Size:         131072,
		EncodedList:  "uH4sIAAAAAAAA_-zAMQEAAADCoPVPbQwfoAAAAAAAAAAAAAAAAAAAAIC3AYbSVKsAQAAA",
	}

	t.Run("success", func(t *testing.T) {
		e, m := newServer(t)

		m.statusLists.EXPECT().Encode(gomock.Any(), "list1").Return(encoded, nil)

		rec := do(e, http.MethodGet, "/status-lists/tenant1/list1", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-cache", rec.Header().Get(echo.HeaderCacheControl))

		var got statuslist.EncodedList
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, encoded.EncodedList, got.EncodedList)
		assert.Equal(t, encoded.URI, got.URI)
	})

	t.Run("list of another tenant", func(t *testing.T) {
		e, m := newServer(t)

		m.statusLists.EXPECT().Encode(gomock.Any(), "list1").Return(encoded, nil)

		rec := do(e, http.MethodGet, "/status-lists/tenant2/list1", "", nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", errorCode(t, rec)["error"])
	})

	t.Run("unknown list", func(t *testing.T) {
		e, m := newServer(t)

		m.statusLists.EXPECT().Encode(gomock.Any(), "list1").
			Return(nil, fmt.Errorf("get status list: %w", statuslist.ErrDataNotFound))

		rec := do(e, http.MethodGet, "/status-lists/tenant1/list1", "", nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestController_UpdateCredentialStatus(t *testing.T) {
	const path = "/status-lists/tenant1/status"

	t.Run("success", func(t *testing.T) {
		e, m := newServer(t)

		m.issuance.EXPECT().UpdateCredentialStatus(gomock.Any(), tenantID, "list1", 7, oidc4cisrv.StatusRevoked).
			Return(nil)

		rec := do(e, http.MethodPost, path, `{"list_id":"list1","index":7,"status":1}`, admin())

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	tests := []struct {
		name  string
		body  string
		value string
	}{
		{name: "missing list", body: `{"index":7,"status":1}`, value: "list_id"},
		{name: "missing index", body: `{"list_id":"list1","status":1}`, value: "index"},
		{name: "missing status", body: `{"list_id":"list1","index":0}`, value: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newServer(t)

			rec := do(e, http.MethodPost, path, tt.body, admin())

			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := errorCode(t, rec)
			assert.Equal(t, "bad_request", body["error"])
			assert.Contains(t, body["error_description"], tt.value)
		})
	}

	t.Run("index out of range", func(t *testing.T) {
		e, m := newServer(t)

		m.issuance.EXPECT().UpdateCredentialStatus(gomock.Any(), tenantID, "list1", 1<<20, uint8(1)).
			Return(oidc4cierr.NewBadRequestError(statuslist.ErrIndexOutOfRange))

		rec := do(e, http.MethodPost, path, fmt.Sprintf(`{"list_id":"list1","index":%d,"status":1}`, 1<<20), admin())

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong api key", func(t *testing.T) {
		e, _ := newServer(t)

		rec := do(e, http.MethodPost, path, `{"list_id":"list1","index":7,"status":1}`,
			map[string]string{"X-API-Key": "other"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestController_DeleteTenant(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e, m := newServer(t)

		m.tenants.EXPECT().Delete(gomock.Any(), tenantID).Return(nil)

		rec := do(e, http.MethodDelete, "/tenants/tenant1", "", admin())

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		e, m := newServer(t)

		m.tenants.EXPECT().Delete(gomock.Any(), tenantID).
			Return(fmt.Errorf("get tenant: %w", profileapi.ErrTenantNotFound))

		rec := do(e, http.MethodDelete, "/tenants/tenant1", "", admin())

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("partial failure", func(t *testing.T) {
		e, m := newServer(t)

		m.tenants.EXPECT().Delete(gomock.Any(), tenantID).
			Return(errors.Join(errors.New("delete nonces: timeout")))

		rec := do(e, http.MethodDelete, "/tenants/tenant1", "", admin())

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "server_error", errorCode(t, rec)["error"])
	})

	t.Run("no api key configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tenants := NewMockTenantService(ctrl)
		tenants.EXPECT().Delete(gomock.Any(), tenantID).Return(nil)

		e := echo.New()
		oidc4ci.NewController(e, &oidc4ci.Config{Tenants: tenants})

		rec := do(e, http.MethodDelete, "/tenants/tenant1", "", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestController_CredentialRequestMapping(t *testing.T) {
	e, m := newServer(t)

	m.tokens.EXPECT().Grant(accessToken).Return(&oidc4cisrv.AccessGrant{
		Subject:               "user1",
		SessionID:             "session1",
		CredentialIdentifiers: map[string]string{"pid-1": "PID"},
	}, nil)
	m.issuance.EXPECT().RequestCredential(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req *oidc4cisrv.CredentialRequest) (*oidc4cisrv.CredentialResult, error) {
			assert.Empty(t, req.CredentialConfigurationID)
			assert.Equal(t, "pid-1", req.CredentialIdentifier)
			assert.Equal(t, "PID", req.Grant.CredentialIdentifiers["pid-1"])
			require.NotNil(t, req.CredentialResponseEncryption)
			assert.Equal(t, "ECDH-ES", req.CredentialResponseEncryption.Alg)

			return nil, oidc4cierr.NewInvalidEncryptionParametersError(errors.New("unsupported enc"))
		})

	body := map[string]interface{}{
		"credential_identifier": "pid-1",
		"credential_response_encryption": map[string]interface{}{
			"alg": "ECDH-ES",
			"enc": "A256GCM",
		},
	}

	rec := do(e, http.MethodPost, "/oidc/tenant1/credential", string(lo.Must(json.Marshal(body))), bearer())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_encryption_parameters", errorCode(t, rec)["error"])
}
