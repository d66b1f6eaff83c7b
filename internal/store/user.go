package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user.
	// When user.Password is set it is hashed and the plaintext cleared.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address, case-insensitively.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's details.
	// The caller MUST provide a complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user and, through the foreign key cascade, all of
	// their terms. Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetTokenVersion returns the token version tokens must carry to be
	// accepted. Returns ErrUserNotFound if the user does not exist.
	GetTokenVersion(ctx context.Context, id uuid.UUID) (int, error)

	// IncrementTokenVersion bumps the user's token version, revoking every
	// token issued so far, and returns the new version.
	// Returns ErrUserNotFound if the user does not exist.
	IncrementTokenVersion(ctx context.Context, id uuid.UUID) (int, error)

	// WithTx returns a UserStore that runs every query on tx.
	WithTx(tx *sql.Tx) UserStore
}
