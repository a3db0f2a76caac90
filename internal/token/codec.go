// SPDX-License-Identifier: Apache-2.0

// Package token implements the bearer token codec: signing, encoding,
// decoding, and verifying compact tokens carrying user identity and expiry.
//
// Tokens are JWTs signed with HMAC-SHA256. Encode and Decode are pure
// functions of their inputs and the shared secret; they hold no state and are
// safe for concurrent use.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the decoded payload of a bearer token.
type Claims struct {
	// UserID is the token subject: the identity the token was issued for.
	UserID int64

	// IssuedAt is the time the token was crafted.
	IssuedAt time.Time

	// ExpiresAt is the time after which the token is no longer accepted.
	ExpiresAt time.Time
}

// Encode serializes the given identity into a signed compact token.
//
// The token carries the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//   - ID        (jti): a random UUID, so two tokens issued for the same user
//     within the same second still differ
//
// Returns an error if the secret is empty, ttl is zero, or signing fails.
func Encode(userID int64, issuer string, ttl time.Duration, secret string) (string, error) {
	if issuer == "" || ttl == 0 || secret == "" {
		return "", errors.New("invalid params for encoding token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing token: %w", err)
	}

	return tokenString, nil
}

// Decode parses tokenString and returns its claims.
//
// With verify=true the signature is checked against secret; a mismatch yields
// [ErrInvalidSignature]. With verify=false the signature check is skipped
// (trusted-proxy and debug deployments), but structural parsing and the
// expiry check still apply.
//
// An elapsed exp claim yields [ErrTokenExpired] regardless of verify. A token
// that cannot be parsed into the expected structure, lacks an exp claim, or
// carries a non-numeric subject yields [ErrMalformedToken].
func Decode(tokenString, secret string, verify bool) (Claims, error) {
	if !verify {
		return decodeUnverified(tokenString)
	}

	registered := new(jwt.RegisteredClaims)
	_, err := jwt.ParseWithClaims(tokenString, registered, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSignature
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
	}

	return claimsFromRegistered(registered)
}

// decodeUnverified parses the token structure without checking its signature.
// Expiry is still enforced against the current time.
func decodeUnverified(tokenString string) (Claims, error) {
	registered := new(jwt.RegisteredClaims)
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, registered); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	claims, err := claimsFromRegistered(registered)
	if err != nil {
		return Claims{}, err
	}

	if time.Now().After(claims.ExpiresAt) {
		return Claims{}, ErrTokenExpired
	}

	return claims, nil
}

// claimsFromRegistered converts standard JWT claims into the codec's Claims,
// validating that the subject and expiry are present and well-formed.
func claimsFromRegistered(registered *jwt.RegisteredClaims) (Claims, error) {
	if registered.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: missing expiry claim", ErrMalformedToken)
	}

	subject, err := registered.GetSubject()
	if err != nil || subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject claim", ErrMalformedToken)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: subject is not a user id", ErrMalformedToken)
	}

	claims := Claims{
		UserID:    userID,
		ExpiresAt: registered.ExpiresAt.Time,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}

	return claims, nil
}
