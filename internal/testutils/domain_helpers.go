package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/platform/postgres"
	"github.com/termdeck/termdeck-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword satisfies the password rules of domain.NewUser.
const TestPassword = "correct-horse-battery"

// TermOption customizes a term built by MustCreateTermForTest.
type TermOption func(*domain.Term)

// WithTermOwner sets the owner of the term.
func WithTermOwner(ownerID uuid.UUID) TermOption {
	return func(t *domain.Term) { t.OwnerID = ownerID }
}

// WithTermText sets the term and its definition.
func WithTermText(term, definition string) TermOption {
	return func(t *domain.Term) {
		t.Term = term
		t.Definition = definition
	}
}

// WithTermLevel sets the level without touching the level change time.
func WithTermLevel(level domain.Level) TermOption {
	return func(t *domain.Term) { t.Level = level }
}

// WithLevelChangedAt records when the term was last raised.
func WithLevelChangedAt(at time.Time) TermOption {
	return func(t *domain.Term) {
		at = at.UTC()
		t.LevelChangedAt = &at
	}
}

// WithTermCreatedAt sets both timestamps of the term.
func WithTermCreatedAt(at time.Time) TermOption {
	return func(t *domain.Term) {
		t.CreatedAt = at.UTC()
		t.UpdatedAt = at.UTC()
	}
}

// MustCreateTermForTest builds a valid term without saving it. Without
// options the term belongs to a random owner and sits at level 0.
func MustCreateTermForTest(t *testing.T, opts ...TermOption) *domain.Term {
	t.Helper()

	suffix := uuid.NewString()[:8]
	term, err := domain.NewTerm(uuid.New(), "term "+suffix, "definition "+suffix, "")
	require.NoError(t, err, "failed to create test term")

	for _, opt := range opts {
		opt(term)
	}
	require.NoError(t, term.Validate(), "test term options produced an invalid term")
	return term
}

// MustCreateUserForTest builds a valid user with a unique email and
// TestPassword, without saving it.
func MustCreateUserForTest(t *testing.T) *domain.User {
	t.Helper()

	user, err := domain.NewUser("Test User", fmt.Sprintf("user-%s@example.com", uuid.NewString()), TestPassword)
	require.NoError(t, err, "failed to create test user")
	return user
}

// MustInsertUser saves a new test user through db, typically a test
// transaction.
func MustInsertUser(ctx context.Context, t *testing.T, db store.DBTX) *domain.User {
	t.Helper()

	user := MustCreateUserForTest(t)
	err := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil).Create(ctx, user)
	require.NoError(t, err, "failed to insert test user")
	return user
}

// MustInsertTerm saves a new term owned by ownerID through db.
func MustInsertTerm(
	ctx context.Context,
	t *testing.T,
	db store.DBTX,
	ownerID uuid.UUID,
	opts ...TermOption,
) *domain.Term {
	t.Helper()

	term := MustCreateTermForTest(t, append([]TermOption{WithTermOwner(ownerID)}, opts...)...)
	err := postgres.NewPostgresTermStore(db, nil).Create(ctx, term)
	require.NoError(t, err, "failed to insert test term")
	return term
}
