package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/restgen/restgen/internal/logger"
	"github.com/restgen/restgen/internal/schema"
	"github.com/restgen/restgen/models"
)

// createTokenSchema validates the body of POST /api/{version}/tokens.
// Violations are echoed back with the schema's required fields and
// properties in the error context.
var createTokenSchema = schema.MustCompile(`{
	"type": "object",
	"properties": {
		"email":    {"type": "string"},
		"password": {"type": "string"}
	},
	"required": ["email", "password"]
}`)

func (h *Handler) createToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = createTokenSchema.Validate(body); err != nil {
		writeError(w, r, err)
		return
	}

	var credentials models.Credentials
	if err = json.Unmarshal(body, &credentials); err != nil {
		writeError(w, r, models.NewAPIError("errors.badRequest", "invalid json provided", http.StatusBadRequest).
			WithContext(map[string]any{"message": err.Error()}))
		return
	}

	token, err := h.services.TokenService.Craft(ctx, credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("email", credentials.Email).Msg("token issued")

	writeJSON(w, map[string]string{"token": token}, http.StatusOK)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, models.NewAPIError("errors.badRequest", "invalid json provided", http.StatusBadRequest).
			WithContext(map[string]any{"message": err.Error()}))
		return
	}

	if body.Token == "" {
		writeError(w, r, models.NewAPIError("errors.tokenRequired", "Token is required", http.StatusBadRequest))
		return
	}

	user, err := h.security.LoadUser(ctx, body.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.TokenService.Refresh(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("token refreshed")

	writeJSON(w, map[string]string{"token": token}, http.StatusCreated)
}
