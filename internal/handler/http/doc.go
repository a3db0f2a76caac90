// SPDX-License-Identifier: Apache-2.0

// Package http implements the HTTP transport layer of the framework.
//
// It exposes the token issuance API, the generic resource endpoint
// registration driven by Resource descriptors, and the middleware chain
// (tracing, access logging, panic recovery) requests pass through before
// reaching the service layer. Every error leaving this package is shaped
// into the standard {err_code, err_msg, status_code, context?} envelope.
package http
