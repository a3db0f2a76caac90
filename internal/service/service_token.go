// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/restgen/restgen/internal/config"
	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/store"
	"github.com/restgen/restgen/internal/token"
	"github.com/restgen/restgen/models"
)

// tokenService is the concrete implementation of TokenService.
// It exchanges credentials for HS256-signed bearer tokens, comparing
// passwords against stored bcrypt hashes, and refreshes tokens for users
// already resolved by the security manager.
type tokenService struct {
	// userRepository is the data-access layer used to look up accounts.
	userRepository store.UserRepository

	// secret is the symmetric key tokens are signed with.
	secret string

	// issuer is the "iss" claim embedded in every issued token.
	issuer string

	// ttl controls how long a newly issued token remains valid.
	ttl time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a TokenService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		userRepository: userRepository,
		secret:         cfg.Secret,
		issuer:         cfg.TokenIssuer,
		ttl:            cfg.TokenTTL,
		logger:         logger,
	}
}

// Craft looks up the account by email and compares the supplied password
// against the stored bcrypt hash. Both an unknown email and a failed
// comparison surface as ErrInvalidCredentials so that callers cannot probe
// which emails exist.
func (t *tokenService) Craft(ctx context.Context, credentials models.Credentials) (string, error) {
	log := logger.FromContext(ctx)

	user, err := t.userRepository.FindUserByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Error().Str("email", credentials.Email).Msg("token requested for unknown email")
			return "", ErrInvalidCredentials
		}
		log.Err(err).Str("email", credentials.Email).Msg("user search by email failed")
		return "", fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		log.Error().Int64("id", user.UserID).Str("email", user.Email).Msg("wrong password")
		return "", ErrInvalidCredentials
	}

	signed, err := token.Encode(user.UserID, t.issuer, t.ttl, t.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return signed, nil
}

// Refresh issues a new token for user without re-checking credentials.
// The caller is responsible for having authenticated user first. The prior
// token is not revoked; it stays valid until its own expiry.
func (t *tokenService) Refresh(ctx context.Context, user models.User) (string, error) {
	signed, err := token.Encode(user.UserID, t.issuer, t.ttl, t.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return signed, nil
}
