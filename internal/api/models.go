package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=35"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"userId"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"accessToken"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refreshToken"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expiresAt"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CreateTermRequest defines the payload for creating a term.
type CreateTermRequest struct {
	Term       string `json:"term"       validate:"required,max=1000"`
	Definition string `json:"definition" validate:"required,max=1000"`
	ImageURL   string `json:"imageUrl"   validate:"omitempty,max=1000"`
}

// UpdateTermRequest defines the payload for a partial term edit. Omitted
// fields keep their current value.
type UpdateTermRequest struct {
	Term       *string `json:"term"       validate:"omitempty,max=1000"`
	Definition *string `json:"definition" validate:"omitempty,max=1000"`
	ImageURL   *string `json:"imageUrl"   validate:"omitempty,max=1000"`
	Level      *int    `json:"level"`
}

// ToUpdate converts the request into a domain.TermUpdate.
func (r UpdateTermRequest) ToUpdate() (domain.TermUpdate, error) {
	update := domain.TermUpdate{
		Term:       r.Term,
		Definition: r.Definition,
		ImageURL:   r.ImageURL,
	}
	if r.Level != nil {
		level, err := domain.ParseLevel(*r.Level)
		if err != nil {
			return domain.TermUpdate{}, err
		}
		update.Level = &level
	}
	return update, nil
}

// ChangeLevelRequest defines the payload for recording a review.
// Action is 0 (lower), 1 (keep) or 2 (raise).
type ChangeLevelRequest struct {
	Action *int `json:"action" validate:"required"`
}

// UpdateSubscriptionRequest defines the payload for switching plans.
type UpdateSubscriptionRequest struct {
	Subscription string `json:"subscription" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Subscription domain.Subscription `json:"subscription"`
}

// TermResponse is the public view of a term.
type TermResponse struct {
	ID             uuid.UUID  `json:"id"`
	Term           string     `json:"term"`
	Definition     string     `json:"definition"`
	ImageURL       string     `json:"imageUrl"`
	Level          int        `json:"level"`
	LevelChangedAt *time.Time `json:"dateLevelWasChanged,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TermListResponse is one page of terms.
type TermListResponse struct {
	Items      []TermResponse `json:"items"`
	TotalItems int            `json:"totalItems"`
}

// ForLearnResponse lists the terms due for review.
type ForLearnResponse struct {
	Items []TermResponse `json:"items"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Subscription: u.Subscription,
	}
}

func termToResponse(t *domain.Term) TermResponse {
	return TermResponse{
		ID:             t.ID,
		Term:           t.Term,
		Definition:     t.Definition,
		ImageURL:       t.ImageURL,
		Level:          int(t.Level),
		LevelChangedAt: t.LevelChangedAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func termsToResponse(terms []*domain.Term) []TermResponse {
	out := make([]TermResponse, 0, len(terms))
	for _, t := range terms {
		out = append(out, termToResponse(t))
	}
	return out
}
