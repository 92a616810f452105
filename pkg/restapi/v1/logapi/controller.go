/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	oidc4cierr "github.com/trustbloc/vcs-issuance/pkg/restapi/resterr/oidc4ci"
)

var logger = log.New("logapi")

const maxSpecLength = 4096

type router interface {
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Controller changes module log levels at runtime.
type Controller struct{}

// NewController registers POST /loglevels. The middleware guards the route.
func NewController(router router, m ...echo.MiddlewareFunc) *Controller {
	c := &Controller{}

	router.POST("/loglevels", c.PostLogLevels, m...)

	return c
}

// PostLogLevels updates log levels. The body is a spec such as
// "oidc4ci=DEBUG:claims-resolver=WARNING:INFO".
// (POST /loglevels).
func (c *Controller) PostLogLevels(e echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(e.Request().Body, maxSpecLength+1))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	if len(body) > maxSpecLength {
		return oidc4cierr.NewBadRequestError(errors.New("log spec is too long")).UsePublicAPIResponse()
	}

	spec := strings.TrimSpace(string(body))

	if err = log.SetSpec(spec); err != nil {
		return oidc4cierr.NewBadRequestError(fmt.Errorf("failed to set log spec: %w", err)).UsePublicAPIResponse()
	}

	logger.Infoc(e.Request().Context(), "Log levels modified", logfields.WithLogSpec(spec))

	return e.NoContent(http.StatusOK)
}
