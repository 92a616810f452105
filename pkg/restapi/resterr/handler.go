/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var logger = log.New("rest-err")

// protocolError is implemented by RFCError of any code type.
type protocolError interface {
	error
	Code() string
	StatusCode() int
}

// HTTPErrorHandler returns echo error handler. Protocol errors are written
// with their own status and body, anything else is an internal fault.
func HTTPErrorHandler(tracer trace.Tracer) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		ctx, span := tracer.Start(c.Request().Context(), "HTTPErrorHandler")
		defer span.End()

		code, message := processError(err)

		if code >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)

			logger.Errorc(ctx, "Request failed", log.WithURL(c.Request().RequestURI),
				log.WithHTTPStatus(code), log.WithError(err))
		} else {
			logger.Debugc(ctx, "Request rejected", log.WithURL(c.Request().RequestURI),
				log.WithHTTPStatus(code), log.WithError(err))
		}

		sendResponse(c, code, message)
	}
}

func sendResponse(c echo.Context, code int, message interface{}) {
	if c.Response().Committed {
		return
	}

	var err error

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, message)
	}

	if err != nil {
		logger.Error("Write http response", log.WithError(err))
	}
}

const serverError = "server_error"

func processError(err error) (int, interface{}) {
	var pe protocolError
	if errors.As(err, &pe) && pe.StatusCode() != 0 {
		return pe.StatusCode(), pe
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, serverErrorBody()
		}

		if strMsg, ok := he.Message.(string); ok {
			return he.Code, map[string]interface{}{
				"error":             statusErrorCode(he.Code),
				"error_description": strMsg,
			}
		}

		return he.Code, he.Message
	}

	return http.StatusInternalServerError, serverErrorBody()
}

// serverErrorBody hides the cause. It is logged by the handler.
func serverErrorBody() map[string]interface{} {
	return map[string]interface{}{
		"error":             serverError,
		"error_description": "internal server error",
	}
}

// statusErrorCode turns "Method Not Allowed" into "method_not_allowed".
func statusErrorCode(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return serverError
	}

	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
