package rest

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
	"recommendation-service/internal/core/port/usecases_port"
)

const (
	jwtCookieName = "jwt"

	msgLoginRequired    = "Please log in to get access"
	msgInvalidToken     = "Invalid token. Please log in again"
	msgTokenUserMissing = "The token does not exist!"
	msgForbidden        = "You do not have permission to perform this action"
)

type AuthMiddleware struct {
	authUC usecases_port.AuthenticateUserUseCasePort
}

func NewAuthMiddleware(authUC usecases_port.AuthenticateUserUseCasePort) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Protect resolves the user behind the Bearer token or the jwt cookie and
// stores it in the request context.
func (am *AuthMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"middleware": "Protect"})

		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			logger.Warn("Request without token", nil)
			WriteJSONError(w, http.StatusUnauthorized, msgLoginRequired)
			return
		}

		user, err := am.authUC.Execute(r.Context(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUserNotFound):
				logger.Warn("Token belongs to a user that no longer exists", nil)
				WriteJSONError(w, http.StatusUnauthorized, msgTokenUserMissing)
			case errors.Is(err, domain.ErrTokenInvalid):
				logger.Warn("Invalid token", port.Fields{"error": err.Error()})
				WriteJSONError(w, http.StatusUnauthorized, msgInvalidToken)
			default:
				logger.Error("Failed to authenticate user", err, nil)
				WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		ctx := contextkeys.ContextWithUser(r.Context(), user)
		ctx = contextkeys.ContextWithLogger(ctx, contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
			"user_id": user.ID.String(),
		}))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RestrictTo lets the request through only for the listed roles. It must run after Protect.
func (am *AuthMiddleware) RestrictTo(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := contextkeys.UserFromContext(r.Context())
			if !ok {
				WriteJSONError(w, http.StatusUnauthorized, msgLoginRequired)
				return
			}

			if !slices.Contains(roles, user.Role) {
				contextkeys.LoggerFromContext(r.Context()).Warn("Role is not allowed", port.Fields{
					"role":          user.Role,
					"allowed_roles": roles,
				})
				WriteJSONError(w, http.StatusForbidden, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer") {
		fields := strings.Fields(authHeader)
		if len(fields) == 2 {
			return fields[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(jwtCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
