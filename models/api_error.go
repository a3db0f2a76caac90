// SPDX-License-Identifier: Apache-2.0

package models

import "fmt"

// APIError is the structured error envelope returned by every failing
// endpoint. The JSON shape is part of the public HTTP contract:
//
//	{"err_code": "...", "err_msg": "...", "status_code": 401, "context": {...}}
//
// APIError implements the error interface so it can travel through ordinary
// error returns; the HTTP layer writes it verbatim with the declared status.
type APIError struct {
	// ErrCode is a stable, machine-readable error identifier
	// (e.g. "errors.validationError").
	ErrCode string `json:"err_code"`

	// ErrMsg is a human-readable description of the failure.
	ErrMsg string `json:"err_msg"`

	// StatusCode is the HTTP status the response carries.
	StatusCode int `json:"status_code"`

	// Context holds optional error-specific details, such as the schema's
	// required fields on a validation failure. Omitted when empty.
	Context map[string]any `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrCode, e.ErrMsg)
}

// NewAPIError constructs an APIError without context details.
func NewAPIError(errCode, errMsg string, statusCode int) *APIError {
	return &APIError{ErrCode: errCode, ErrMsg: errMsg, StatusCode: statusCode}
}

// WithContext returns the receiver with its context replaced. Intended for
// fluent construction at the raise site.
func (e *APIError) WithContext(ctx map[string]any) *APIError {
	e.Context = ctx
	return e
}
