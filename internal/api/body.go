// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/tomtom215/scanserv/internal/logging"
	"github.com/tomtom215/scanserv/internal/validation"
)

// MaxBodyBytes caps decoded request bodies.
const MaxBodyBytes = 1 << 20

type bodyContextKey struct{}

// requestBody is a decoded request body.
type requestBody struct {
	raw    []byte         // JSON bodies only
	values map[string]any // top-level object or form values
	form   bool
}

// requestError is a client error with an HTTP code.
type requestError struct {
	code int
	msg  string
}

func (e *requestError) Error() string { return e.msg }

// Code returns the HTTP status for the error.
func (e *requestError) Code() int { return e.code }

var errBodyRequired = &requestError{code: http.StatusBadRequest, msg: "request body is required"}

// DecodeBody parses JSON and URL-encoded request bodies before any handler
// runs. The decoded body is available to the request logger and to handlers.
// Malformed bodies are answered with 400 and the pipeline stops.
func DecodeBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		var (
			body *requestBody
			err  error
		)
		switch mediaType {
		case "application/json":
			body, err = decodeJSON(w, r)
		case "application/x-www-form-urlencoded":
			body, err = decodeForm(w, r)
		default:
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, &requestError{
					code: http.StatusRequestEntityTooLarge,
					msg:  fmt.Sprintf("request body exceeds %d bytes", MaxBodyBytes),
				})
				return
			}
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if body != nil {
			logging.Trace().
				Str("content_type", mediaType).
				Int("fields", len(body.values)).
				Msg("Decoded request body")
			r = r.WithContext(context.WithValue(r.Context(), bodyContextKey{}, body))
		}
		next.ServeHTTP(w, r)
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request) (*requestBody, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &requestError{code: http.StatusBadRequest, msg: "malformed JSON body: " + err.Error()}
	}
	body := &requestBody{raw: raw}
	if obj, ok := v.(map[string]any); ok {
		body.values = obj
	}
	return body, nil
}

func decodeForm(w http.ResponseWriter, r *http.Request) (*requestBody, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &requestError{code: http.StatusBadRequest, msg: "malformed form body: " + err.Error()}
	}
	return &requestBody{values: flatten(r.PostForm), form: true}, nil
}

// flatten maps single-valued keys to a string and repeated keys to a list.
func flatten(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) == 1 {
			out[k] = vs[0]
			continue
		}
		out[k] = append([]string(nil), vs...)
	}
	return out
}

func bodyFromContext(ctx context.Context) *requestBody {
	b, _ := ctx.Value(bodyContextKey{}).(*requestBody)
	return b
}

// bodyValues returns the decoded top-level body fields, or nil.
func bodyValues(r *http.Request) map[string]any {
	if b := bodyFromContext(r.Context()); b != nil {
		return b.values
	}
	return nil
}

// bind decodes the request body into dst and validates it.
func bind(r *http.Request, dst any) error {
	b := bodyFromContext(r.Context())
	if b == nil {
		return errBodyRequired
	}

	raw := b.raw
	if b.form {
		var err error
		if raw, err = json.Marshal(b.values); err != nil {
			return &requestError{code: http.StatusBadRequest, msg: "malformed form body: " + err.Error()}
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &requestError{code: http.StatusBadRequest, msg: "invalid request body: " + err.Error()}
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}
	return nil
}
