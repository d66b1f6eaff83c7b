package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits for term content, counted in characters.
const (
	MaxTermLength       = 1000
	MaxDefinitionLength = 1000
	MaxImageURLLength   = 1000
)

// Term-specific validation errors
var (
	// ErrTermIDEmpty is returned when a term ID is empty or nil.
	ErrTermIDEmpty = fmt.Errorf("%w: term ID cannot be empty", ErrValidation)

	// ErrTermOwnerIDEmpty is returned when a term has no owner.
	ErrTermOwnerIDEmpty = fmt.Errorf("%w: term owner ID cannot be empty", ErrValidation)

	// ErrTermTextEmpty is returned when the term text is blank.
	ErrTermTextEmpty = fmt.Errorf("%w: term cannot be empty", ErrValidation)

	// ErrTermTextTooLong is returned when the term text exceeds MaxTermLength.
	ErrTermTextTooLong = fmt.Errorf("%w: term must be at most %d characters", ErrValidation, MaxTermLength)

	// ErrDefinitionEmpty is returned when the definition is blank.
	ErrDefinitionEmpty = fmt.Errorf("%w: definition cannot be empty", ErrValidation)

	// ErrDefinitionTooLong is returned when the definition exceeds MaxDefinitionLength.
	ErrDefinitionTooLong = fmt.Errorf(
		"%w: definition must be at most %d characters",
		ErrValidation,
		MaxDefinitionLength,
	)

	// ErrImageURLTooLong is returned when the image URL exceeds MaxImageURLLength.
	ErrImageURLTooLong = fmt.Errorf(
		"%w: image URL must be at most %d characters",
		ErrValidation,
		MaxImageURLLength,
	)
)

// Term is a single flashcard owned by a user. Level and LevelChangedAt carry
// its position on the review ladder; LevelChangedAt is nil until the term is
// raised for the first time.
type Term struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"owner_id"`
	Term           string     `json:"term"`
	Definition     string     `json:"definition"`
	ImageURL       string     `json:"image_url"`
	Level          Level      `json:"level"`
	LevelChangedAt *time.Time `json:"level_changed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewTerm creates a term at MinLevel with no level change recorded.
// Text fields are trimmed before validation.
func NewTerm(ownerID uuid.UUID, term, definition, imageURL string) (*Term, error) {
	now := time.Now().UTC()
	t := &Term{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Term:       strings.TrimSpace(term),
		Definition: strings.TrimSpace(definition),
		ImageURL:   strings.TrimSpace(imageURL),
		Level:      MinLevel,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks if the Term has valid data.
func (t *Term) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTermIDEmpty
	}
	if t.OwnerID == uuid.Nil {
		return ErrTermOwnerIDEmpty
	}

	if strings.TrimSpace(t.Term) == "" {
		return ErrTermTextEmpty
	}
	if utf8.RuneCountInString(t.Term) > MaxTermLength {
		return ErrTermTextTooLong
	}

	if strings.TrimSpace(t.Definition) == "" {
		return ErrDefinitionEmpty
	}
	if utf8.RuneCountInString(t.Definition) > MaxDefinitionLength {
		return ErrDefinitionTooLong
	}

	if utf8.RuneCountInString(t.ImageURL) > MaxImageURLLength {
		return ErrImageURLTooLong
	}

	if !t.Level.Valid() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidLevel)
	}

	return nil
}

// EditLevel sets the level outside the review flow. Any recorded level
// change is discarded so the term is treated as never raised.
func (t *Term) EditLevel(level Level, now time.Time) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidLevel)
	}
	t.Level = level
	t.LevelChangedAt = nil
	t.UpdatedAt = now
	return nil
}

// TermUpdate holds the optional fields of a partial term edit. Nil fields are
// left untouched.
type TermUpdate struct {
	Term       *string
	Definition *string
	ImageURL   *string
	Level      *Level
}

// Apply merges u into t and validates the result. Editing the level goes
// through EditLevel, so the level change timestamp is reset.
func (u TermUpdate) Apply(t *Term, now time.Time) error {
	if u.Term != nil {
		t.Term = strings.TrimSpace(*u.Term)
	}
	if u.Definition != nil {
		t.Definition = strings.TrimSpace(*u.Definition)
	}
	if u.ImageURL != nil {
		t.ImageURL = strings.TrimSpace(*u.ImageURL)
	}
	if u.Level != nil {
		if err := t.EditLevel(*u.Level, now); err != nil {
			return err
		}
	}
	t.UpdatedAt = now
	return t.Validate()
}
