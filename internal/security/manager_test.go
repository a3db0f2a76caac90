package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/mock"
	"github.com/restgen/restgen/internal/store"
	"github.com/restgen/restgen/internal/token"
	"github.com/restgen/restgen/models"
)

const testSecret = "security-manager-test-secret"

func issueToken(t *testing.T, userID int64, ttl time.Duration, secret string) string {
	t.Helper()

	tokenString, err := token.Encode(userID, "restgen-tests", ttl, secret)
	require.NoError(t, err)

	return tokenString
}

func TestManager_LoadUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storedUser := models.User{UserID: 42, Email: "reader@example.com", Role: "readers"}

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindUserByID(gomock.Any(), int64(42)).Return(storedUser, nil)

	manager := NewManager(users, testSecret, true, logger.Nop())

	got, err := manager.LoadUser(context.Background(), issueToken(t, 42, time.Hour, testSecret))
	require.NoError(t, err)
	assert.Equal(t, storedUser, got)
}

func TestManager_LoadUser_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	manager := NewManager(users, testSecret, true, logger.Nop())

	_, err := manager.LoadUser(context.Background(), issueToken(t, 42, -time.Hour, testSecret))
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestManager_LoadUser_WrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	manager := NewManager(users, testSecret, true, logger.Nop())

	_, err := manager.LoadUser(context.Background(), issueToken(t, 42, time.Hour, "a different secret"))
	assert.ErrorIs(t, err, ErrAuthentication)
}

// A manager built with verify disabled accepts tokens signed with a foreign
// secret, as long as they are well formed and unexpired.
func TestManager_LoadUser_VerificationSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storedUser := models.User{UserID: 7, Email: "gateway@example.com"}

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(storedUser, nil)

	manager := NewManager(users, testSecret, false, logger.Nop())

	got, err := manager.LoadUser(context.Background(), issueToken(t, 7, time.Hour, "a different secret"))
	require.NoError(t, err)
	assert.Equal(t, storedUser, got)
}

func TestManager_LoadUser_SubjectGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindUserByID(gomock.Any(), int64(42)).Return(models.User{}, store.ErrUserNotFound)

	manager := NewManager(users, testSecret, true, logger.Nop())

	_, err := manager.LoadUser(context.Background(), issueToken(t, 42, time.Hour, testSecret))
	assert.ErrorIs(t, err, ErrUserNotFound)
}
