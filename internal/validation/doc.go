// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use and shared; it caches
// struct reflection data and is safe for concurrent use. Field names in
// messages are the JSON names clients send.
//
// # Usage
//
//	type RenameRequest struct {
//	    NewName string `json:"newName" validate:"required,filename"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return verr // formatted as {"message": "...", "code": 400}
//	}
//
// RequestValidationError implements Code() int, so the API error formatter
// reports it with code 400.
//
// # Custom Tags
//
//   - filename: a single path element; rejects "", ".", "..", "/" and "\".
//
// # Error Message Translation
//
//	required   -> "newName is required"
//	filename   -> "newName must be a plain file name without path separators"
//	gte=1      -> "resolution must be greater than or equal to 1"
//	oneof=a b  -> "mode must be one of: a b"
package validation
