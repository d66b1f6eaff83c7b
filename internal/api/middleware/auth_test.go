package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termdeck/termdeck-api/internal/api/middleware"
	"github.com/termdeck/termdeck-api/internal/api/shared"
	"github.com/termdeck/termdeck-api/internal/mocks"
	"github.com/termdeck/termdeck-api/internal/service/auth"
	"github.com/termdeck/termdeck-api/internal/store"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		tokenVersion   int
		currentVersion int
		versionErr     error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "lowercase scheme",
			authHeader:     "bearer valid-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing auth header",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Authorization header required",
		},
		{
			name:           "invalid auth format",
			authHeader:     "InvalidFormat",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid authorization format",
		},
		{
			name:           "basic scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid authorization format",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			validateErr:    auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Token expired",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			validateErr:    fmt.Errorf("%w: signature mismatch", auth.ErrInvalidToken),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:           "refresh token used as access token",
			authHeader:     "Bearer refresh-token",
			validateErr:    auth.ErrWrongTokenType,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:           "token from the current session",
			authHeader:     "Bearer valid-token",
			tokenVersion:   2,
			currentVersion: 2,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "token issued before logout",
			authHeader:     "Bearer valid-token",
			tokenVersion:   1,
			currentVersion: 2,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Token revoked",
		},
		{
			name:           "user deleted",
			authHeader:     "Bearer valid-token",
			versionErr:     fmt.Errorf("wrapped: %w", store.ErrUserNotFound),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:           "token version lookup fails",
			authHeader:     "Bearer valid-token",
			versionErr:     errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Authentication error",
		},
		{
			name:           "unexpected validation failure",
			authHeader:     "Bearer some-token",
			validateErr:    errors.New("key store unavailable"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Authentication error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := mocks.NewMockJWTService(userID)
			var gotToken string
			jwtService.ValidateTokenFn = func(_ context.Context, token string) (*auth.Claims, error) {
				gotToken = token
				if tt.validateErr != nil {
					return nil, tt.validateErr
				}
				claims := *jwtService.Claims
				claims.TokenVersion = tt.tokenVersion
				return &claims, nil
			}
			users := &mocks.MockUserService{
				TokenVersionFn: func(_ context.Context, id uuid.UUID) (int, error) {
					assert.Equal(t, userID, id)
					return tt.currentVersion, tt.versionErr
				},
			}

			var capturedUserID uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedUserID, _ = shared.GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/terms", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middleware.NewAuthMiddleware(jwtService, users).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, userID, capturedUserID)
				assert.Equal(t, "valid-token", gotToken)
				return
			}

			assert.Equal(t, uuid.Nil, capturedUserID)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body.Error)
			assert.Equal(t, tt.expectedStatus, body.Code)
		})
	}
}
