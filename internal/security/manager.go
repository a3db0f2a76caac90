// SPDX-License-Identifier: Apache-2.0

// Package security resolves bearer tokens into authenticated user identities.
//
// The Manager applies the deployment's verification policy (signature checks
// on or off) via the token codec and then loads the full user entity the
// token's subject claim references. Every failure on this path is an
// authentication failure from the caller's point of view.
package security

import (
	"context"
	"errors"
	"fmt"

	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/store"
	"github.com/restgen/restgen/internal/token"
	"github.com/restgen/restgen/models"
)

// Manager resolves tokens to users. All state is read-only after
// construction; a single Manager is shared by every generated handler.
type Manager struct {
	users  store.UserRepository
	secret string
	verify bool
	logger *logger.Logger
}

// NewManager constructs a Manager over the given identity store.
//
// secret is the shared signing key; verify controls whether token signatures
// are checked (structural parsing and expiry checks always apply).
func NewManager(users store.UserRepository, secret string, verify bool, logger *logger.Logger) *Manager {
	return &Manager{
		users:  users,
		secret: secret,
		verify: verify,
		logger: logger,
	}
}

// LoadUser decodes tokenString and returns the user entity its subject claim
// references.
//
// Any codec failure (bad signature, elapsed expiry, malformed structure) is
// wrapped in [ErrAuthentication] so callers can treat the whole class as a
// 401 without inspecting codec internals; the codec sentinel stays in the
// chain for logging. A token whose subject no longer exists in the identity
// store yields [ErrUserNotFound].
func (m *Manager) LoadUser(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	claims, err := token.Decode(tokenString, m.secret, m.verify)
	if err != nil {
		log.Err(err).Msg("token decoding failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	user, err := m.users.FindUserByID(ctx, claims.UserID)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Int64("user_id", claims.UserID).Msg("token subject no longer exists")
		return models.User{}, ErrUserNotFound
	case err != nil:
		log.Err(err).Int64("user_id", claims.UserID).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}
