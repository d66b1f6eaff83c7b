package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/api/shared"
	"github.com/termdeck/termdeck-api/internal/platform/logger"
	"github.com/termdeck/termdeck-api/internal/redact"
	"github.com/termdeck/termdeck-api/internal/service/auth"
	"github.com/termdeck/termdeck-api/internal/store"
)

// TokenVersionSource reports the token version a user's tokens must carry.
type TokenVersionSource interface {
	TokenVersion(ctx context.Context, userID uuid.UUID) (int, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	versions   TokenVersionSource
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, versions TokenVersionSource) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		versions:   versions,
	}
}

// Authenticate validates the bearer access token and stores the user ID in
// the request context. Requests without a valid access token get 401, as do
// tokens issued before the user's last logout and tokens of deleted users.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		current, err := m.versions.TokenVersion(r.Context(), claims.UserID)
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		case err != nil:
			logger.FromContext(r.Context()).Error("failed to check token version",
				slog.String("error", err.Error()),
				slog.String("user_id", claims.UserID.String()))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		case claims.TokenVersion != current:
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Token revoked")
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
