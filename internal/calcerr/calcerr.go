// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package calcerr defines the structured failure shape the engine and its
// collaborators return, per the taxonomy in the mark-calculation spec:
// bad_params, not_found, db_query_failed. Computation itself is total —
// these are reserved for request-shape and data-access failures, never for
// "could not produce a final mark" (that is a nil finalMark, not an error).
package calcerr

import "fmt"

type Code string

const (
	CodeBadParams     Code = "bad_params"
	CodeNotFound      Code = "not_found"
	CodeDBQueryFailed Code = "db_query_failed"
)

// Error is the {code, message, details?} shape from spec §7.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s %v", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func BadParams(msg string, details map[string]any) error {
	return &Error{Code: CodeBadParams, Message: msg, Details: details}
}

func NotFound(msg string, details map[string]any) error {
	return &Error{Code: CodeNotFound, Message: msg, Details: details}
}

func DBQueryFailed(msg string, err error) error {
	d := map[string]any{}
	if err != nil {
		d["cause"] = err.Error()
	}
	return &Error{Code: CodeDBQueryFailed, Message: msg, Details: d}
}

// As reports whether err is a *Error, matching the errors.As protocol.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
