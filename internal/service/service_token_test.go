package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/restgen/restgen/internal/config"
	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/mock"
	"github.com/restgen/restgen/internal/store"
	"github.com/restgen/restgen/internal/token"
	"github.com/restgen/restgen/models"
)

func newTestTokenService(t *testing.T, ctrl *gomock.Controller) (TokenService, *mock.MockUserRepository) {
	t.Helper()

	users := mock.NewMockUserRepository(ctrl)
	cfg := config.App{
		Secret:      "token-service-test-secret",
		TokenIssuer: "restgen-tests",
		TokenTTL:    time.Hour,
	}

	return NewTokenService(users, cfg, logger.Nop()), users
}

func storedUser(t *testing.T, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return models.User{
		UserID:       42,
		Email:        "reader@example.com",
		PasswordHash: string(hash),
		Role:         "readers",
	}
}

// ── Craft ────────────────────────────────────────────────────────────────────

func TestTokenService_Craft_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestTokenService(t, ctrl)
	user := storedUser(t, "super-secret-password")

	users.EXPECT().FindUserByEmail(gomock.Any(), user.Email).Return(user, nil)

	signed, err := svc.Craft(context.Background(), models.Credentials{
		Email:    user.Email,
		Password: "super-secret-password",
	})
	require.NoError(t, err)

	claims, err := token.Decode(signed, "token-service-test-secret", true)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestTokenService_Craft_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestTokenService(t, ctrl)

	users.EXPECT().
		FindUserByEmail(gomock.Any(), "ghost@example.com").
		Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Craft(context.Background(), models.Credentials{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenService_Craft_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestTokenService(t, ctrl)
	user := storedUser(t, "super-secret-password")

	users.EXPECT().FindUserByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, err := svc.Craft(context.Background(), models.Credentials{
		Email:    user.Email,
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenService_Craft_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestTokenService(t, ctrl)

	users.EXPECT().
		FindUserByEmail(gomock.Any(), "reader@example.com").
		Return(models.User{}, errors.New("connection refused"))

	_, err := svc.Craft(context.Background(), models.Credentials{
		Email:    "reader@example.com",
		Password: "super-secret-password",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── Refresh ──────────────────────────────────────────────────────────────────

// Refresh never needs the repository: the user was already resolved upstream.
func TestTokenService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestTokenService(t, ctrl)
	user := models.User{UserID: 42, Email: "reader@example.com"}

	first, err := svc.Refresh(context.Background(), user)
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), user)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := token.Decode(second, "token-service-test-secret", true)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}
