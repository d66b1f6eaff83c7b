package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/platform/logger"
	"github.com/termdeck/termdeck-api/internal/service/auth"
	"github.com/termdeck/termdeck-api/internal/store"
)

// UserService provides user account operations
type UserService interface {
	// Register creates a new user account.
	// Returns store.ErrEmailExists if the email is already registered.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// Authenticate checks an email and password pair.
	// Returns ErrInvalidCredentials when either is wrong.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateSubscription switches the user to another plan.
	UpdateSubscription(ctx context.Context, userID uuid.UUID, plan domain.Subscription) (*domain.User, error)

	// DeleteUser deletes a user and all of their terms
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// Logout revokes every access and refresh token issued to the user.
	Logout(ctx context.Context, userID uuid.UUID) error

	// TokenVersion returns the version a token must carry to be accepted
	// for the user. Returns store.ErrUserNotFound for a deleted user.
	TokenVersion(ctx context.Context, userID uuid.UUID) (int, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore        store.UserStore
	passwordVerifier auth.PasswordVerifier
	db               *sql.DB
	logger           *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if passwordVerifier == nil {
		return nil, domain.NewValidationError("passwordVerifier", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore:        userStore,
		passwordVerifier: passwordVerifier,
		db:               db,
		logger:           logger.With(slog.String("component", "user_service")),
	}, nil
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		log.Debug("invalid registration data", slog.String("error", err.Error()))
		return nil, NewUserServiceError("register", "invalid user data", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to register an existing email")
		} else {
			log.Error("failed to save user", slog.String("error", err.Error()))
		}
		return nil, NewUserServiceError("register", "failed to create user", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user by email", slog.String("error", err.Error()))
		return nil, NewUserServiceError("authenticate", "failed to look up user", err)
	}

	if err := s.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return nil, NewUserServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// UpdateSubscription implements UserService.UpdateSubscription
// Following the pattern of getting the complete user first, then updating the specific field
func (s *UserServiceImpl) UpdateSubscription(
	ctx context.Context,
	userID uuid.UUID,
	plan domain.Subscription,
) (*domain.User, error) {
	if !plan.Valid() {
		return nil, NewUserServiceError("update_subscription", "unknown plan", domain.ErrInvalidSubscription)
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		user.Subscription = plan
		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to update subscription",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return nil, NewUserServiceError("update_subscription", "failed to update subscription", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("subscription updated",
		slog.String("user_id", userID.String()),
		slog.String("subscription", string(plan)))
	return updated, nil
}

// DeleteUser implements UserService.DeleteUser
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("attempted to delete non-existent user", slog.String("user_id", userID.String()))
		} else {
			log.Error("failed to delete user",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return NewUserServiceError("delete_user", "failed to delete user", err)
	}

	log.Info("user deleted", slog.String("user_id", userID.String()))
	return nil
}

// Logout implements UserService.Logout
func (s *UserServiceImpl) Logout(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	version, err := s.userStore.IncrementTokenVersion(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to revoke tokens",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return NewUserServiceError("logout", "failed to revoke tokens", err)
	}

	log.Info("user logged out",
		slog.String("user_id", userID.String()),
		slog.Int("token_version", version))
	return nil
}

// TokenVersion implements UserService.TokenVersion
func (s *UserServiceImpl) TokenVersion(ctx context.Context, userID uuid.UUID) (int, error) {
	version, err := s.userStore.GetTokenVersion(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to read token version",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return 0, NewUserServiceError("token_version", "failed to read token version", err)
	}
	return version, nil
}
