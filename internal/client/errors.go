// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/daewazone/admin-go/internal/model"
)

// ErrorKind tags an API error by its origin.
type ErrorKind string

// Error kinds.
const (
	KindValidation ErrorKind = "validation"
	KindTransport  ErrorKind = "transport"
	KindNotFound   ErrorKind = "not_found"
)

// Error is the tagged error returned by every client operation. Validation
// errors carry per-field messages; transport errors carry the HTTP status
// and the server's message when one was present in the response body.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Fields     model.FieldErrors
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a not-found API error.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

// IsValidation reports whether err is a client-side validation error.
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindValidation
}

// validationError wraps DTO validation output into a tagged Error.
func validationError(err error) *Error {
	e := &Error{Kind: KindValidation, Message: "validation failed", Err: err}
	var fields model.FieldErrors
	if errors.As(err, &fields) {
		e.Fields = fields
		e.Message = err.Error()
	}
	return e
}

// transportError wraps a network-level failure into a tagged Error.
func transportError(fallback string, err error) *Error {
	return &Error{Kind: KindTransport, Message: fallback, Err: err}
}

// serverMessage mirrors the error body shape returned by the API.
type serverMessage struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// statusError converts a non-2xx response into a tagged Error. The message
// is extracted from the response body when present, otherwise the
// per-operation fallback is used.
func statusError(statusCode int, body []byte, fallback string) *Error {
	kind := KindTransport
	if statusCode == http.StatusNotFound {
		kind = KindNotFound
	}

	message := fallback
	var sm serverMessage
	if err := json.Unmarshal(body, &sm); err == nil {
		switch {
		case sm.Message != "":
			message = sm.Message
		case sm.Error.Message != "":
			message = sm.Error.Message
		}
	}

	return &Error{Kind: kind, Message: message, StatusCode: statusCode}
}
