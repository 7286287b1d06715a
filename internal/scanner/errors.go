// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Use errors.Is to test for them; the *Error returned by the
// API wraps one of these and adds a numeric code.
var (
	ErrNotFound        = errors.New("not found")
	ErrNoPreview       = errors.New("no preview available")
	ErrUnknownAction   = errors.New("unknown action")
	ErrUnknownFilter   = errors.New("unknown filter")
	ErrUnknownPipeline = errors.New("unknown pipeline")
	ErrUnknownDevice   = errors.New("unknown device")
	ErrInvalidName     = errors.New("invalid file name")
	ErrUnsupported     = errors.New("unsupported file type")
)

// Error is a scanner failure carrying a numeric code. The API error formatter
// copies Code into the response payload.
type Error struct {
	code int
	msg  string
	err  error
}

func newError(code int, err error, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...), err: err}
}

// Error returns the human readable message.
func (e *Error) Error() string {
	if e.msg == "" && e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

// Code returns the numeric error code. Codes follow HTTP status semantics.
func (e *Error) Code() int { return e.code }

// Unwrap exposes the sentinel or underlying cause.
func (e *Error) Unwrap() error { return e.err }

func notFound(err error, format string, args ...any) *Error {
	return newError(http.StatusNotFound, err, format, args...)
}

func badRequest(err error, format string, args ...any) *Error {
	return newError(http.StatusBadRequest, err, format, args...)
}
