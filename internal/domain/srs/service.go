package srs

import (
	"errors"
	"time"

	"github.com/termdeck/termdeck-api/internal/domain"
)

// Common errors
var (
	ErrNilTerm = errors.New("term cannot be nil")

	// ErrUnrecognizedAction reports a review action outside Lower, Keep and
	// Raise. It is a warning, not a failure: it is returned together with a
	// usable result computed as if the action were Keep.
	ErrUnrecognizedAction = errors.New("unrecognized review action")

	ErrInvalidParams = errors.New("invalid leveling parameters")
)

// Service defines the interface for leveling operations. All methods are pure
// and safe for concurrent use.
type Service interface {
	// NextLevel computes the level that follows current for action.
	// For an unrecognized action it returns the clamped current level along
	// with ErrUnrecognizedAction.
	NextLevel(current domain.Level, action domain.ReviewAction) (domain.Level, error)

	// ApplyReview returns a copy of term moved according to action.
	// LevelChangedAt is set to now only for a Raise. The input is not modified.
	// For an unrecognized action the copy keeps its level and
	// ErrUnrecognizedAction is returned alongside it.
	ApplyReview(term *domain.Term, action domain.ReviewAction, now time.Time) (*domain.Term, error)

	// IsDue reports whether term should appear in a study session at now.
	IsDue(term *domain.Term, now time.Time) bool

	// FilterDue returns the due subset of terms, preserving input order.
	FilterDue(terms []*domain.Term, now time.Time) []*domain.Term

	// Params returns the parameters the service was built with.
	Params() *Params
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new leveling service with default parameters
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a new leveling service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, ErrInvalidParams
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &defaultService{params: params}, nil
}

func (s *defaultService) NextLevel(
	current domain.Level,
	action domain.ReviewAction,
) (domain.Level, error) {
	next, recognized := nextLevel(current, action)
	if !recognized {
		return next, ErrUnrecognizedAction
	}
	return next, nil
}

func (s *defaultService) ApplyReview(
	term *domain.Term,
	action domain.ReviewAction,
	now time.Time,
) (*domain.Term, error) {
	if term == nil {
		return nil, ErrNilTerm
	}

	updated, recognized := applyReview(term, action, now)
	if !recognized {
		return updated, ErrUnrecognizedAction
	}
	return updated, nil
}

func (s *defaultService) IsDue(term *domain.Term, now time.Time) bool {
	if term == nil {
		return false
	}
	return isDue(term.Level, term.LevelChangedAt, now, s.params)
}

func (s *defaultService) FilterDue(terms []*domain.Term, now time.Time) []*domain.Term {
	due := make([]*domain.Term, 0, len(terms))
	for _, term := range terms {
		if s.IsDue(term, now) {
			due = append(due, term)
		}
	}
	return due
}

func (s *defaultService) Params() *Params {
	return s.params
}
