package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser(" Ada ", " Ada@Example.com ", "correct-horse-battery")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, SubscriptionStarter, user.Subscription)
	assert.Equal(t, "correct-horse-battery", user.Password)
	assert.Empty(t, user.HashedPassword)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	valid := func() User {
		return User{
			ID:             uuid.New(),
			Name:           "Grace",
			Email:          "grace@example.com",
			Subscription:   SubscriptionPro,
			HashedPassword: "$2a$10$hash",
		}
	}

	testCases := []struct {
		name        string
		mutate      func(u *User)
		expectedErr error
	}{
		{"valid with hash", func(u *User) {}, nil},
		{"missing id", func(u *User) { u.ID = uuid.Nil }, ErrEmptyUserID},
		{"missing name", func(u *User) { u.Name = "" }, ErrEmptyName},
		{"name too short", func(u *User) { u.Name = "G" }, ErrNameTooShort},
		{"shortest name", func(u *User) { u.Name = "Al" }, nil},
		{"longest name", func(u *User) { u.Name = strings.Repeat("n", 35) }, nil},
		{"name too long", func(u *User) { u.Name = strings.Repeat("n", 36) }, ErrNameTooLong},
		{"missing email", func(u *User) { u.Email = "" }, ErrEmptyEmail},
		{"email without at", func(u *User) { u.Email = "grace.example.com" }, ErrInvalidEmail},
		{"email without dotted domain", func(u *User) { u.Email = "grace@example" }, ErrInvalidEmail},
		{"email with display name", func(u *User) { u.Email = "Grace <grace@example.com>" }, ErrInvalidEmail},
		{"unknown plan", func(u *User) { u.Subscription = "gold" }, ErrInvalidSubscription},
		{"short password", func(u *User) { u.Password = "short" }, ErrPasswordTooShort},
		{"long password", func(u *User) { u.Password = strings.Repeat("p", 73) }, ErrPasswordTooLong},
		{"no password or hash", func(u *User) { u.HashedPassword = "" }, ErrEmptyPassword},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			u := valid()
			tc.mutate(&u)
			err := u.Validate()
			if tc.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestParseSubscription(t *testing.T) {
	t.Parallel()

	s, err := ParseSubscription(" Business ")
	require.NoError(t, err)
	assert.Equal(t, SubscriptionBusiness, s)

	_, err = ParseSubscription("enterprise")
	assert.ErrorIs(t, err, ErrInvalidSubscription)
}
