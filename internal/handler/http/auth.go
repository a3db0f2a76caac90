package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/restgen/restgen/models"
)

// authenticate is the gate in front of every non-anonymous endpoint.
//
// It extracts the "Authorization" header, requires exactly two
// space-separated parts (scheme + credential), and resolves the credential
// to a user through the security manager. apiName is echoed into the
// missing-header message so clients know which resource rejected them.
//
// Failure modes, all HTTP 401:
//   - header absent: errors.authorizationHeaderRequired
//   - header not exactly two parts: errors.invalidBearerTokenUsage
//   - token invalid, expired, or subject gone: surfaced from the security
//     manager via the error envelope mapper.
func (h *Handler) authenticate(r *http.Request, apiName string) (models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return models.User{}, models.NewAPIError(
			"errors.authorizationHeaderRequired",
			fmt.Sprintf("Authorization header is required for using this api<%s>", apiName),
			http.StatusUnauthorized,
		)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		return models.User{}, models.NewAPIError(
			"errors.invalidBearerTokenUsage",
			"Bearer token usage is invalid",
			http.StatusUnauthorized,
		)
	}

	return h.security.LoadUser(r.Context(), parts[1])
}
