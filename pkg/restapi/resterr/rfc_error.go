/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RFCError is a protocol error with an RFC-style error code. The public form
// carries only error, error_description and interval; the internal form adds
// the diagnostics used in logs.
type RFCError[T ~string] struct {
	ErrorCode      T
	ErrorComponent Component
	Operation      string
	IncorrectValue string
	HTTPStatus     int
	// Interval is the minimum poll delay in seconds, set for issuance_pending only.
	Interval             *int
	Err                  error
	usePublicAPIResponse bool
}

type rfcErrorJSON[T ~string] struct {
	ErrorCode      T         `json:"error"`
	Component      Component `json:"component,omitempty"`
	Operation      string    `json:"operation,omitempty"`
	IncorrectValue string    `json:"incorrect_value,omitempty"`
	HTTPStatus     int       `json:"http_status,omitempty"`
	Description    string    `json:"error_description,omitempty"`
	Interval       *int      `json:"interval,omitempty"`
}

func (e *RFCError[T]) MarshalJSON() ([]byte, error) {
	body := &rfcErrorJSON[T]{
		ErrorCode:   e.ErrorCode,
		Description: e.description(),
		Interval:    e.Interval,
	}

	if !e.usePublicAPIResponse {
		body.Component = e.ErrorComponent
		body.Operation = e.Operation
		body.IncorrectValue = e.IncorrectValue
		body.HTTPStatus = e.HTTPStatus
	}

	return json.Marshal(body)
}

func (e *RFCError[T]) description() string {
	if e.Err == nil {
		return ""
	}

	return e.Err.Error()
}

// Error renders code[details]: cause.
func (e *RFCError[T]) Error() string {
	details := make([]string, 0, 5) //nolint:mnd

	add := func(key, value string) {
		if value != "" {
			details = append(details, key+": "+value)
		}
	}

	add("component", string(e.ErrorComponent))
	add("operation", e.Operation)
	add("incorrect value", e.IncorrectValue)

	if e.HTTPStatus != 0 {
		add("http status", fmt.Sprint(e.HTTPStatus))
	}

	if e.Interval != nil {
		add("interval", fmt.Sprint(*e.Interval))
	}

	return fmt.Sprintf("%s[%s]: %v", e.ErrorCode, strings.Join(details, "; "), e.Err)
}

func (e *RFCError[T]) WithComponent(component Component) *RFCError[T] {
	e.ErrorComponent = component

	return e
}

func (e *RFCError[T]) WithOperation(operation string) *RFCError[T] {
	e.Operation = operation

	return e
}

func (e *RFCError[T]) WithIncorrectValue(incorrectValue string) *RFCError[T] {
	e.IncorrectValue = incorrectValue

	return e
}

// WithInterval sets the poll interval reported to the wallet.
func (e *RFCError[T]) WithInterval(interval int) *RFCError[T] {
	e.Interval = &interval

	return e
}

// UsePublicAPIResponse strips diagnostics from the JSON body.
func (e *RFCError[T]) UsePublicAPIResponse() *RFCError[T] {
	e.usePublicAPIResponse = true

	return e
}

func (e *RFCError[T]) Code() string {
	return string(e.ErrorCode)
}

func (e *RFCError[T]) Component() string {
	return string(e.ErrorComponent)
}

func (e *RFCError[T]) StatusCode() int {
	return e.HTTPStatus
}

func (e *RFCError[T]) Unwrap() error {
	return e.Err
}
