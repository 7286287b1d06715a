// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/scanserv/internal/logging"
	"github.com/tomtom215/scanserv/internal/metrics"
)

// noCode is reported for structured failures that carry no code of their own.
const noCode = -1

// ErrorPayload is the JSON body of every failed API response.
type ErrorPayload struct {
	Message string `json:"message" example:"file not found: a.jpg"`
	Code    *int   `json:"code,omitempty" example:"404"`
}

// coder is implemented by failures that carry a numeric code,
// such as *scanner.Error and *validation.RequestValidationError.
type coder interface {
	Code() int
}

// failureKind tags the shape of a raw failure.
type failureKind int

const (
	failureStructuredWithMessage failureKind = iota
	failureStructuredWithoutMessage
	failureText
	failureOther
)

func (k failureKind) String() string {
	switch k {
	case failureStructuredWithMessage:
		return "structured"
	case failureStructuredWithoutMessage:
		return "structured_no_message"
	case failureText:
		return "text"
	default:
		return "other"
	}
}

// failure is a raw failure classified into one of the failure kinds.
// fields holds the top-level JSON members of structured non-error values.
type failure struct {
	kind   failureKind
	raw    any
	fields map[string]any
}

// classify decides the failure kind of raw. Errors are structured with a
// message. Maps, structs and pointers to structs are structured with a
// message when their JSON form has a top-level "message" member; slices
// and arrays never have one.
func classify(raw any) failure {
	switch v := raw.(type) {
	case nil:
		return failure{kind: failureOther}
	case error:
		return failure{kind: failureStructuredWithMessage, raw: v}
	case string:
		return failure{kind: failureText, raw: v}
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return failure{kind: failureStructuredWithoutMessage, raw: raw}
	case reflect.Pointer:
		if elem := reflect.Indirect(rv); !elem.IsValid() || elem.Kind() != reflect.Struct {
			return failure{kind: failureOther, raw: raw}
		}
	case reflect.Map, reflect.Struct:
	default:
		return failure{kind: failureOther, raw: raw}
	}

	fields := jsonFields(raw)
	if _, ok := member(fields, "message"); ok {
		return failure{kind: failureStructuredWithMessage, raw: raw, fields: fields}
	}
	return failure{kind: failureStructuredWithoutMessage, raw: raw, fields: fields}
}

// payload formats the failure according to its kind.
func (f failure) payload() ErrorPayload {
	switch f.kind {
	case failureStructuredWithMessage:
		return ErrorPayload{Message: f.message(), Code: intPtr(f.code())}
	case failureStructuredWithoutMessage:
		return ErrorPayload{Message: serialize(f.raw), Code: intPtr(f.code())}
	case failureText:
		return ErrorPayload{Message: f.raw.(string)}
	default:
		return ErrorPayload{Message: ""}
	}
}

// message is the error text or the "message" member rendered as text.
func (f failure) message() string {
	if err, ok := f.raw.(error); ok {
		return err.Error()
	}
	v, _ := member(f.fields, "message")
	switch msg := v.(type) {
	case nil:
		return ""
	case string:
		return msg
	}
	return serialize(v)
}

func (f failure) code() int {
	if err, ok := f.raw.(error); ok {
		var c coder
		if errors.As(err, &c) {
			return c.Code()
		}
		return noCode
	}
	if c, ok := f.raw.(coder); ok {
		return c.Code()
	}
	if v, ok := member(f.fields, "code"); ok {
		if n, ok := v.(float64); ok {
			return int(n)
		}
	}
	return noCode
}

// jsonFields returns the top-level members of raw's JSON form, or nil when
// raw does not encode to an object.
func jsonFields(raw any) map[string]any {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil
	}
	return fields
}

// member looks key up exactly, then case-insensitively so untagged struct
// fields such as Message are found.
func member(fields map[string]any, key string) (any, bool) {
	if v, ok := fields[key]; ok {
		return v, true
	}
	for k, v := range fields {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// serialize renders raw as JSON text, falling back to its %v form.
func serialize(raw any) string {
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Sprintf("%v", raw)
	}
	return string(b)
}

func intPtr(v int) *int { return &v }

// FormatError turns any raw failure into an error payload. The raw failure is
// logged at error level before formatting. FormatError never fails.
func FormatError(raw any) ErrorPayload {
	f := classify(raw)
	logging.Error().
		Str("kind", f.kind.String()).
		Interface("failure", logValue(raw)).
		Msg("API request failed")
	metrics.RecordAPIError(f.kind.String())
	return f.payload()
}

// logValue keeps errors readable in the log; zerolog would otherwise
// serialize an error struct as {}.
func logValue(raw any) any {
	if err, ok := raw.(error); ok {
		return err.Error()
	}
	return raw
}

// writeError formats raw and writes it with the given status.
func writeError(w http.ResponseWriter, status int, raw any) {
	respondJSON(w, status, FormatError(raw))
}
