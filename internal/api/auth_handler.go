package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/termdeck/termdeck-api/internal/api/shared"
	"github.com/termdeck/termdeck-api/internal/config"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/platform/logger"
	"github.com/termdeck/termdeck-api/internal/service"
	"github.com/termdeck/termdeck-api/internal/service/auth"
	"github.com/termdeck/termdeck-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	authConfig  config.AuthConfig
	now         func() time.Time
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	authConfig config.AuthConfig,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		authConfig:  authConfig,
		now:         time.Now,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	h.respondWithTokens(w, r, http.StatusCreated, user)
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	h.respondWithTokens(w, r, http.StatusOK, user)
}

// RefreshToken handles the /auth/refresh endpoint. A valid refresh token for
// an existing user is exchanged for a new token pair, unless the user has
// logged out since it was issued.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		log.Debug("refresh token rejected", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "Failed to validate refresh token")
		return
	}

	user, err := h.userService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("refresh token for deleted user", slog.String("user_id", claims.UserID.String()))
			HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
			return
		}
		HandleAPIError(w, r, err, "Failed to refresh token")
		return
	}

	if claims.TokenVersion != user.TokenVersion {
		log.Debug("refresh token revoked by logout", slog.String("user_id", user.ID.String()))
		HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
		return
	}

	h.respondWithTokens(w, r, http.StatusOK, user)
}

// Logout handles the /auth/logout endpoint. Every token issued to the
// caller so far, access and refresh alike, stops being accepted.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.userService.Logout(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to log out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondWithTokens issues an access and refresh token pair for user.
func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	resp, err := h.issueTokens(r.Context(), user)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to generate tokens",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}
	shared.RespondWithJSON(w, r, status, resp)
}

func (h *AuthHandler) issueTokens(ctx context.Context, user *domain.User) (AuthResponse, error) {
	accessToken, err := h.jwtService.GenerateToken(ctx, user.ID, user.TokenVersion)
	if err != nil {
		return AuthResponse{}, err
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(ctx, user.ID, user.TokenVersion)
	if err != nil {
		return AuthResponse{}, err
	}

	expiresAt := h.now().UTC().Add(time.Duration(h.authConfig.TokenLifetimeMinutes) * time.Minute)
	return AuthResponse{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt.Format(time.RFC3339),
	}, nil
}
