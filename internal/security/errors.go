package security

import "errors"

var (
	// ErrAuthentication wraps every token codec failure: expired, malformed,
	// or incorrectly signed tokens all surface as this class.
	ErrAuthentication = errors.New("provided token is invalid")

	// ErrUserNotFound is returned when a structurally valid token references
	// an identity that no longer exists.
	ErrUserNotFound = errors.New("token subject not found")
)
