package http

import (
	"errors"
	"net/http"

	"github.com/restgen/restgen/internal/query"
	"github.com/restgen/restgen/internal/security"
	"github.com/restgen/restgen/internal/service"
	"github.com/restgen/restgen/internal/store"
	"github.com/restgen/restgen/models"
)

// errorEnvelopeMap translates sentinel errors raised below the transport
// layer into error envelopes. Errors that are already a *models.APIError
// (schema violations, auth gate failures) bypass the map and are written
// as-is.
var errorEnvelopeMap = map[error]*models.APIError{
	service.ErrInvalidCredentials: models.NewAPIError("errors.invalidCredentials", "invalid credentials provided", http.StatusUnauthorized),
	service.ErrMalformedDocument:  models.NewAPIError("errors.badRequest", "invalid json provided", http.StatusBadRequest),

	security.ErrAuthentication: models.NewAPIError("errors.tokenIsInvalid", "provided token is invalid", http.StatusUnauthorized),
	security.ErrUserNotFound:   models.NewAPIError("errors.userNotFound", "token subject not found", http.StatusUnauthorized),

	query.ErrInvalidSpec: models.NewAPIError("errors.badRequest", "invalid query specification provided", http.StatusBadRequest),

	store.ErrResourceNotFound:      models.NewAPIError("errors.resourceNotFound", "resource not found", http.StatusNotFound),
	store.ErrResourceAlreadyExists: models.NewAPIError("errors.resourceAlreadyExists", "resource already exists", http.StatusConflict),
	store.ErrInvalidFilterField:    models.NewAPIError("errors.badRequest", "invalid filter field name", http.StatusBadRequest),

	store.ErrBuildingSQLQuery: models.NewAPIError("errors.internalError", "internal server error", http.StatusInternalServerError),
	store.ErrExecutingQuery:   models.NewAPIError("errors.internalError", "internal server error", http.StatusInternalServerError),
	store.ErrScanningRow:      models.NewAPIError("errors.internalError", "internal server error", http.StatusInternalServerError),
}

func envelopeFromError(err error) *models.APIError {
	var apiError *models.APIError
	if errors.As(err, &apiError) {
		return apiError
	}

	for target, envelope := range errorEnvelopeMap {
		if errors.Is(err, target) {
			return envelope
		}
	}

	return models.NewAPIError("errors.internalError", "internal server error", http.StatusInternalServerError)
}
