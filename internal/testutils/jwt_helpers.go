package testutils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/termdeck/termdeck-api/internal/config"
	"github.com/termdeck/termdeck-api/internal/service/auth"
)

// TestJWTSecret is a test-only signing secret of the minimum accepted length.
const TestJWTSecret = "test-jwt-secret-that-is-32-chars"

// TestAuthConfig returns auth settings suitable for tests: the test secret,
// the cheapest bcrypt cost and short token lifetimes.
func TestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   TestJWTSecret,
		BCryptCost:                  4,
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 60 * 24,
	}
}

// NewTestJWTService returns a real HMAC token service configured with
// TestAuthConfig.
func NewTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(TestAuthConfig())
	require.NoError(t, err, "failed to create test JWT service")
	return svc
}

// AuthHeader returns an Authorization header value carrying a fresh access
// token for userID at the given token version. New users are at version 0.
func AuthHeader(t *testing.T, svc auth.JWTService, userID uuid.UUID, tokenVersion int) string {
	t.Helper()

	token, err := svc.GenerateToken(context.Background(), userID, tokenVersion)
	require.NoError(t, err, "failed to generate test token")
	return "Bearer " + token
}
