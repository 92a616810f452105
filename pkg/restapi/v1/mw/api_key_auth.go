/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mw

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIKeyHeader carries the operator key on admin routes.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth rejects requests whose X-API-Key header does not match apiKey.
// An empty apiKey disables the check.
func APIKeyAuth(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if apiKey == "" {
			return next
		}

		return func(c echo.Context) error {
			got := c.Request().Header.Get(APIKeyHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
				return &echo.HTTPError{
					Code: http.StatusUnauthorized,
					Message: map[string]interface{}{
						"error":             "unauthorized",
						"error_description": "missing or invalid api key",
					},
				}
			}

			return next(c)
		}
	}
}
