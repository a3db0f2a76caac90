// SPDX-License-Identifier: Apache-2.0

package store

import "errors"

// Sentinel errors surfaced by the store layer. Callers match against them
// with [errors.Is]; the HTTP layer maps them to response envelopes.
var (
	// ErrUserNotFound is returned when no user matches the requested email
	// or identifier.
	ErrUserNotFound = errors.New("no user was found")

	// ErrResourceNotFound is returned when no document with the requested id
	// exists for the resource.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrResourceAlreadyExists is returned when inserting a document whose id
	// is already taken within the resource.
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// ErrInvalidFilterField is returned when a query specification references
	// a field name that is not a valid identifier. Guards the dynamically
	// built JSON-extraction SQL against injection.
	ErrInvalidFilterField = errors.New("invalid filter field name")

	ErrBuildingSQLQuery = errors.New("error building SQL query")
	ErrExecutingQuery   = errors.New("error executing query")
	ErrScanningRow      = errors.New("error scanning row")
)
