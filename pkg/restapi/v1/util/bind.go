/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package util

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	oidc4cierr "github.com/trustbloc/vcs-issuance/pkg/restapi/resterr/oidc4ci"
)

const requestBody = "requestBody"

// ReadBody binds the request body into body. A body that cannot be bound is a bad request.
func ReadBody(ctx echo.Context, body interface{}) error {
	if ctx.Request().ContentLength == 0 {
		return oidc4cierr.NewBadRequestError(fmt.Errorf("%s is empty", requestBody)).
			WithIncorrectValue(requestBody).UsePublicAPIResponse()
	}

	if err := ctx.Bind(body); err != nil {
		return oidc4cierr.NewBadRequestError(err).WithIncorrectValue(requestBody).UsePublicAPIResponse()
	}

	return nil
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(ctx echo.Context, code int, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	return ctx.JSONBlob(code, b)
}

// WriteNoStore writes v as JSON and forbids caching of the response.
func WriteNoStore(ctx echo.Context, code int, v interface{}) error {
	SetNoStore(ctx)

	return WriteJSON(ctx, code, v)
}

// SetNoStore marks the response as not cacheable.
func SetNoStore(ctx echo.Context) {
	h := ctx.Response().Header()
	h.Set(echo.HeaderCacheControl, "no-store")
	h.Set("Pragma", "no-cache")
}

// WriteCacheable writes v as JSON. Caches must revalidate before reuse.
func WriteCacheable(ctx echo.Context, v interface{}) error {
	ctx.Response().Header().Set(echo.HeaderCacheControl, "no-cache")

	return WriteJSON(ctx, http.StatusOK, v)
}
