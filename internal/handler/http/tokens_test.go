package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restgen/restgen/internal/config"
	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/security"
	"github.com/restgen/restgen/internal/service"
	"github.com/restgen/restgen/internal/store"
	"github.com/restgen/restgen/internal/token"
	"github.com/restgen/restgen/models"
)

// ─────────────────────────────────────────────
// Mocks and helpers
// ─────────────────────────────────────────────

const testSecret = "handler-test-secret"

// mockTokenService implements service.TokenService for unit tests.
// Each method field can be overridden per test case.
type mockTokenService struct {
	craftFn   func(ctx context.Context, credentials models.Credentials) (string, error)
	refreshFn func(ctx context.Context, user models.User) (string, error)
}

func (m *mockTokenService) Craft(ctx context.Context, credentials models.Credentials) (string, error) {
	return m.craftFn(ctx, credentials)
}

func (m *mockTokenService) Refresh(ctx context.Context, user models.User) (string, error) {
	return m.refreshFn(ctx, user)
}

// stubUserRepository implements store.UserRepository for unit tests.
type stubUserRepository struct {
	findByEmailFn func(ctx context.Context, email string) (models.User, error)
	findByIDFn    func(ctx context.Context, userID int64) (models.User, error)
}

func (s *stubUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findByEmailFn(ctx, email)
}

func (s *stubUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return s.findByIDFn(ctx, userID)
}

// knownUser is the identity every stub repository resolves to.
var knownUser = models.User{UserID: 42, Email: "reader@example.com", Role: "readers"}

func repositoryWithKnownUser() *stubUserRepository {
	return &stubUserRepository{
		findByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			if userID == knownUser.UserID {
				return knownUser, nil
			}
			return models.User{}, store.ErrUserNotFound
		},
	}
}

// newTestHandler builds a Handler with the given TokenService mock and a
// security manager resolving knownUser's tokens.
func newTestHandler(t *testing.T, tokens service.TokenService) *Handler {
	t.Helper()

	manager := security.NewManager(repositoryWithKnownUser(), testSecret, true, logger.Nop())
	services := &service.Services{TokenService: tokens}

	return NewHandler(services, manager, config.App{APIVersion: "v1"}, logger.Nop())
}

// validToken issues a token the test security manager accepts.
func validToken(t *testing.T) string {
	t.Helper()

	signed, err := token.Encode(knownUser.UserID, "restgen-tests", time.Hour, testSecret)
	require.NoError(t, err)

	return signed
}

// decodeEnvelope parses an error response body.
func decodeEnvelope(t *testing.T, body []byte) models.APIError {
	t.Helper()

	var envelope models.APIError
	require.NoError(t, json.Unmarshal(body, &envelope))

	return envelope
}

// ─────────────────────────────────────────────
// POST /api/v1/tokens
// ─────────────────────────────────────────────

func TestCreateToken_Success(t *testing.T) {
	tokens := &mockTokenService{
		craftFn: func(_ context.Context, credentials models.Credentials) (string, error) {
			assert.Equal(t, "reader@example.com", credentials.Email)
			assert.Equal(t, "super-secret", credentials.Password)
			return "signed.jwt.token", nil
		},
	}

	h := newTestHandler(t, tokens)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens",
		strings.NewReader(`{"email": "reader@example.com", "password": "super-secret"}`))
	rec := httptest.NewRecorder()

	h.createToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"token": "signed.jwt.token"}`, rec.Body.String())
}

// A body missing required fields is rejected with the schema's required list
// echoed in the error context.
func TestCreateToken_ValidationError(t *testing.T) {
	h := newTestHandler(t, &mockTokenService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens",
		strings.NewReader(`{"email": "reader@example.com"}`))
	rec := httptest.NewRecorder()

	h.createToken(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, "errors.validationError", envelope.ErrCode)
	assert.Equal(t, []any{"email", "password"}, envelope.Context["required"])
	assert.Contains(t, envelope.Context, "properties")
}

func TestCreateToken_WrongCredentials(t *testing.T) {
	tokens := &mockTokenService{
		craftFn: func(_ context.Context, _ models.Credentials) (string, error) {
			return "", service.ErrInvalidCredentials
		},
	}

	h := newTestHandler(t, tokens)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens",
		strings.NewReader(`{"email": "a@b.com", "password": "wrong"}`))
	rec := httptest.NewRecorder()

	h.createToken(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, "errors.invalidCredentials", envelope.ErrCode)
	assert.Equal(t, http.StatusUnauthorized, envelope.StatusCode)
}

// ─────────────────────────────────────────────
// POST /api/v1/tokens/refresh
// ─────────────────────────────────────────────

func TestRefreshToken_Success(t *testing.T) {
	tokens := &mockTokenService{
		refreshFn: func(_ context.Context, user models.User) (string, error) {
			assert.Equal(t, knownUser, user)
			return "fresh.jwt.token", nil
		},
	}

	h := newTestHandler(t, tokens)
	body := `{"token": "` + validToken(t) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens/refresh", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.refreshToken(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"token": "fresh.jwt.token"}`, rec.Body.String())
}

func TestRefreshToken_MalformedJSON(t *testing.T) {
	h := newTestHandler(t, &mockTokenService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens/refresh", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.refreshToken(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, "errors.badRequest", envelope.ErrCode)
	assert.Contains(t, envelope.Context, "message")
}

func TestRefreshToken_MissingTokenField(t *testing.T) {
	h := newTestHandler(t, &mockTokenService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens/refresh", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.refreshToken(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, "errors.tokenRequired", envelope.ErrCode)
}

func TestRefreshToken_InvalidToken(t *testing.T) {
	h := newTestHandler(t, &mockTokenService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens/refresh",
		strings.NewReader(`{"token": "not.a.token"}`))
	rec := httptest.NewRecorder()

	h.refreshToken(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, "errors.tokenIsInvalid", envelope.ErrCode)
}

// An expired token cannot be refreshed; the caller must authenticate again.
func TestRefreshToken_ExpiredToken(t *testing.T) {
	h := newTestHandler(t, &mockTokenService{})

	expired, err := token.Encode(knownUser.UserID, "restgen-tests", -time.Hour, testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokens/refresh",
		strings.NewReader(`{"token": "`+expired+`"}`))
	rec := httptest.NewRecorder()

	h.refreshToken(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
