package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termdeck/termdeck-api/internal/config"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/mocks"
	"github.com/termdeck/termdeck-api/internal/service"
	"github.com/termdeck/termdeck-api/internal/service/auth"
	"github.com/termdeck/termdeck-api/internal/store"
)

var testAuthConfig = config.AuthConfig{
	TokenLifetimeMinutes:        60,
	RefreshTokenLifetimeMinutes: 60 * 24 * 7,
}

func newTestAuthHandler(users *mocks.MockUserService, tokens *mocks.MockJWTService) *AuthHandler {
	h := NewAuthHandler(users, tokens, testAuthConfig, discardLogger)
	h.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return h
}

func testUser() *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Name:         "Ada",
		Email:        "ada@example.com",
		Subscription: domain.SubscriptionStarter,
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	user := testUser()

	tests := []struct {
		name       string
		body       interface{}
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "registered",
			body:       RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "long-enough-password"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "email taken",
			body:       RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "long-enough-password"},
			serviceErr: service.NewUserServiceError("register", "failed to create user", store.ErrEmailExists),
			wantStatus: http.StatusConflict,
			wantError:  "Email already exists",
		},
		{
			name:       "short password",
			body:       RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "short"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid password: too short",
		},
		{
			name:       "single character name",
			body:       RegisterRequest{Name: "A", Email: "ada@example.com", Password: "long-enough-password"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid name: too short",
		},
		{
			name:       "name over 35 characters",
			body:       RegisterRequest{Name: strings.Repeat("a", 36), Email: "ada@example.com", Password: "long-enough-password"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid name: too long",
		},
		{
			name:       "bad email",
			body:       RegisterRequest{Name: "Ada", Email: "ada", Password: "long-enough-password"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid email: invalid email format",
		},
		{
			name:       "store failure",
			body:       RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "long-enough-password"},
			serviceErr: errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to create user",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			users := &mocks.MockUserService{User: user, DefaultError: tt.serviceErr}
			if tt.serviceErr != nil {
				users.User = nil
			}
			tokens := mocks.NewMockJWTService(user.ID)

			rec := httptest.NewRecorder()
			newTestAuthHandler(users, tokens).Register(rec,
				newTestRequest(t, http.MethodPost, "/api/auth/register", tt.body, uuid.Nil, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
				return
			}

			var resp AuthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, user.ID, resp.UserID)
			assert.Equal(t, "mock-access-token", resp.AccessToken)
			assert.Equal(t, "mock-refresh-token", resp.RefreshToken)
			assert.Equal(t, "2024-06-01T13:00:00Z", resp.ExpiresAt)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	user := testUser()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserService{
			AuthenticateFn: func(_ context.Context, email, password string) (*domain.User, error) {
				assert.Equal(t, "ada@example.com", email)
				assert.Equal(t, "correct horse battery", password)
				return user, nil
			},
		}

		rec := httptest.NewRecorder()
		newTestAuthHandler(users, mocks.NewMockJWTService(user.ID)).Login(rec, newTestRequest(t, http.MethodPost,
			"/api/auth/login", LoginRequest{Email: "ada@example.com", Password: "correct horse battery"}, uuid.Nil, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()
		users := &mocks.MockUserService{DefaultError: service.ErrInvalidCredentials}

		rec := httptest.NewRecorder()
		newTestAuthHandler(users, mocks.NewMockJWTService(user.ID)).Login(rec, newTestRequest(t, http.MethodPost,
			"/api/auth/login", LoginRequest{Email: "ada@example.com", Password: "wrong"}, uuid.Nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rec).Error)
	})

	t.Run("token generation failure", func(t *testing.T) {
		t.Parallel()
		tokens := mocks.NewMockJWTService(user.ID)
		tokens.Err = errors.New("signing failed")

		rec := httptest.NewRecorder()
		newTestAuthHandler(&mocks.MockUserService{User: user}, tokens).Login(rec, newTestRequest(t, http.MethodPost,
			"/api/auth/login", LoginRequest{Email: "ada@example.com", Password: "pw"}, uuid.Nil, nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to generate authentication token", decodeError(t, rec).Error)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Parallel()

	user := testUser()

	tests := []struct {
		name        string
		validateErr  error
		userErr      error
		userVersion  int
		wantStatus   int
		wantError   string
	}{
		{name: "new pair issued", wantStatus: http.StatusOK},
		{
			name:        "expired refresh token",
			validateErr: auth.ErrExpiredRefreshToken,
			wantStatus:  http.StatusUnauthorized,
			wantError:   "Invalid refresh token",
		},
		{
			name:        "access token presented",
			validateErr: auth.ErrWrongTokenType,
			wantStatus:  http.StatusUnauthorized,
			wantError:   "Invalid refresh token",
		},
		{
			name:         "user logged out since",
			userVersion:  1,
			wantStatus:   http.StatusUnauthorized,
			wantError:    "Invalid refresh token",
		},
		{
			name:       "user deleted since",
			userErr:    service.NewUserServiceError("get_user", "failed to retrieve user", store.ErrUserNotFound),
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid refresh token",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := mocks.NewMockJWTService(user.ID)
			tokens.ValidateRefreshTokenFn = func(_ context.Context, token string) (*auth.Claims, error) {
				assert.Equal(t, "the-refresh-token", token)
				if tt.validateErr != nil {
					return nil, tt.validateErr
				}
				return &auth.Claims{UserID: user.ID, TokenType: auth.TokenTypeRefresh}, nil
			}
			current := *user
			current.TokenVersion = tt.userVersion
			users := &mocks.MockUserService{User: &current, DefaultError: tt.userErr}

			rec := httptest.NewRecorder()
			newTestAuthHandler(users, tokens).RefreshToken(rec, newTestRequest(t, http.MethodPost,
				"/api/auth/refresh", RefreshTokenRequest{RefreshToken: "the-refresh-token"}, uuid.Nil, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
				return
			}
			var resp AuthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, user.ID, resp.UserID)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
		})
	}
}

func TestAuthHandler_IssuesTokensForCurrentVersion(t *testing.T) {
	t.Parallel()

	user := testUser()
	user.TokenVersion = 3

	var accessVersion, refreshVersion int
	tokens := mocks.NewMockJWTService(user.ID)
	tokens.GenerateTokenFn = func(_ context.Context, id uuid.UUID, version int) (string, error) {
		accessVersion = version
		return "access", nil
	}
	tokens.GenerateRefreshTokenFn = func(_ context.Context, id uuid.UUID, version int) (string, error) {
		refreshVersion = version
		return "refresh", nil
	}

	rec := httptest.NewRecorder()
	newTestAuthHandler(&mocks.MockUserService{User: user}, tokens).Login(rec, newTestRequest(t, http.MethodPost,
		"/api/auth/login", LoginRequest{Email: "ada@example.com", Password: "pw"}, uuid.Nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, accessVersion)
	assert.Equal(t, 3, refreshVersion)
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		userID     uuid.UUID
		serviceErr error
		wantStatus int
		wantCalled bool
	}{
		{name: "revokes tokens", userID: userID, wantStatus: http.StatusNoContent, wantCalled: true},
		{
			name:       "user gone",
			userID:     userID,
			serviceErr: service.NewUserServiceError("logout", "failed to revoke tokens", store.ErrUserNotFound),
			wantStatus: http.StatusNotFound,
			wantCalled: true,
		},
		{
			name:       "store failure",
			userID:     userID,
			serviceErr: errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantCalled: true,
		},
		{name: "no user in context", userID: uuid.Nil, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			users := &mocks.MockUserService{
				LogoutFn: func(_ context.Context, id uuid.UUID) error {
					called = true
					assert.Equal(t, userID, id)
					return tt.serviceErr
				},
			}

			rec := httptest.NewRecorder()
			newTestAuthHandler(users, mocks.NewMockJWTService(userID)).Logout(rec,
				newTestRequest(t, http.MethodPost, "/api/auth/logout", nil, tt.userID, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}
