// SPDX-License-Identifier: Apache-2.0

package token

import "errors"

// Sentinel errors returned by [Decode]. Callers match against them with
// [errors.Is]; the security layer maps all of them to authentication failures.
var (
	// ErrInvalidSignature is returned when verification is requested and the
	// token's signature does not match the shared secret.
	ErrInvalidSignature = errors.New("token signature is invalid")

	// ErrTokenExpired is returned when the current time exceeds the token's
	// expiry claim. Enforced regardless of the verify flag.
	ErrTokenExpired = errors.New("token is expired")

	// ErrMalformedToken is returned when the token cannot be parsed into the
	// expected structure or lacks required claims.
	ErrMalformedToken = errors.New("token is malformed")
)
