package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterFn           func(ctx context.Context, name, email, password string) (*domain.User, error)
	AuthenticateFn       func(ctx context.Context, email, password string) (*domain.User, error)
	GetUserFn            func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateSubscriptionFn func(ctx context.Context, userID uuid.UUID, plan domain.Subscription) (*domain.User, error)
	DeleteUserFn         func(ctx context.Context, userID uuid.UUID) error
	LogoutFn             func(ctx context.Context, userID uuid.UUID) error
	TokenVersionFn       func(ctx context.Context, userID uuid.UUID) (int, error)

	// Default return values
	User         *domain.User
	DefaultError error
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements the UserService.Register method
func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, name, email, password)
	}
	return m.User, m.DefaultError
}

// Authenticate implements the UserService.Authenticate method
func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return m.User, m.DefaultError
}

// GetUser implements the UserService.GetUser method
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return m.User, m.DefaultError
}

// UpdateSubscription implements the UserService.UpdateSubscription method
func (m *MockUserService) UpdateSubscription(
	ctx context.Context,
	userID uuid.UUID,
	plan domain.Subscription,
) (*domain.User, error) {
	if m.UpdateSubscriptionFn != nil {
		return m.UpdateSubscriptionFn(ctx, userID, plan)
	}
	return m.User, m.DefaultError
}

// DeleteUser implements the UserService.DeleteUser method
func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, userID)
	}
	return m.DefaultError
}

// Logout implements the UserService.Logout method
func (m *MockUserService) Logout(ctx context.Context, userID uuid.UUID) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, userID)
	}
	return m.DefaultError
}

// TokenVersion implements the UserService.TokenVersion method. Without a
// func it reports the version of User, or 0.
func (m *MockUserService) TokenVersion(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.TokenVersionFn != nil {
		return m.TokenVersionFn(ctx, userID)
	}
	if m.User != nil {
		return m.User.TokenVersion, m.DefaultError
	}
	return 0, m.DefaultError
}
