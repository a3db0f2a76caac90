package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/models"
)

// userRepository is the SQL-backed implementation of [UserRepository]. It
// performs lookups against the "users" table owned by the external identity
// store; the framework never writes to it.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindUserByEmail retrieves the user record whose email matches.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Any driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, findUserByEmail, email)
}

// FindUserByID retrieves the user record referenced by a token's subject
// claim. Returns [ErrUserNotFound] when the identity no longer exists.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, findUserByID, userID)
}

func (r *userRepository) findUser(ctx context.Context, sqlQuery string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, sqlQuery, arg)

	err := row.Scan(&foundUser.UserID, &foundUser.Email, &foundUser.PasswordHash, &foundUser.Role, &foundUser.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}
