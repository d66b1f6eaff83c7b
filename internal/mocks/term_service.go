package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/service"
	"github.com/termdeck/termdeck-api/internal/store"
)

// MockTermService implements service.TermService for testing
type MockTermService struct {
	CreateTermFn        func(ctx context.Context, ownerID uuid.UUID, term, definition, imageURL string) (*domain.Term, error)
	GetTermFn           func(ctx context.Context, ownerID, termID uuid.UUID) (*domain.Term, error)
	ListTermsFn         func(ctx context.Context, ownerID uuid.UUID, filter store.TermFilter) (*store.TermPage, error)
	ListTermsForLearnFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Term, error)
	UpdateTermFn        func(ctx context.Context, ownerID, termID uuid.UUID, update domain.TermUpdate) (*domain.Term, error)
	ChangeLevelFn       func(ctx context.Context, ownerID, termID uuid.UUID, action domain.ReviewAction) (*domain.Term, error)
	DeleteTermFn        func(ctx context.Context, ownerID, termID uuid.UUID) error

	// Default return values
	Term         *domain.Term
	Terms        []*domain.Term
	Page         *store.TermPage
	DefaultError error
}

var _ service.TermService = (*MockTermService)(nil)

// CreateTerm implements the TermService.CreateTerm method
func (m *MockTermService) CreateTerm(
	ctx context.Context,
	ownerID uuid.UUID,
	term, definition, imageURL string,
) (*domain.Term, error) {
	if m.CreateTermFn != nil {
		return m.CreateTermFn(ctx, ownerID, term, definition, imageURL)
	}
	return m.Term, m.DefaultError
}

// GetTerm implements the TermService.GetTerm method
func (m *MockTermService) GetTerm(ctx context.Context, ownerID, termID uuid.UUID) (*domain.Term, error) {
	if m.GetTermFn != nil {
		return m.GetTermFn(ctx, ownerID, termID)
	}
	return m.Term, m.DefaultError
}

// ListTerms implements the TermService.ListTerms method
func (m *MockTermService) ListTerms(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TermFilter,
) (*store.TermPage, error) {
	if m.ListTermsFn != nil {
		return m.ListTermsFn(ctx, ownerID, filter)
	}
	return m.Page, m.DefaultError
}

// ListTermsForLearn implements the TermService.ListTermsForLearn method
func (m *MockTermService) ListTermsForLearn(ctx context.Context, ownerID uuid.UUID) ([]*domain.Term, error) {
	if m.ListTermsForLearnFn != nil {
		return m.ListTermsForLearnFn(ctx, ownerID)
	}
	return m.Terms, m.DefaultError
}

// UpdateTerm implements the TermService.UpdateTerm method
func (m *MockTermService) UpdateTerm(
	ctx context.Context,
	ownerID, termID uuid.UUID,
	update domain.TermUpdate,
) (*domain.Term, error) {
	if m.UpdateTermFn != nil {
		return m.UpdateTermFn(ctx, ownerID, termID, update)
	}
	return m.Term, m.DefaultError
}

// ChangeLevel implements the TermService.ChangeLevel method
func (m *MockTermService) ChangeLevel(
	ctx context.Context,
	ownerID, termID uuid.UUID,
	action domain.ReviewAction,
) (*domain.Term, error) {
	if m.ChangeLevelFn != nil {
		return m.ChangeLevelFn(ctx, ownerID, termID, action)
	}
	return m.Term, m.DefaultError
}

// DeleteTerm implements the TermService.DeleteTerm method
func (m *MockTermService) DeleteTerm(ctx context.Context, ownerID, termID uuid.UUID) error {
	if m.DeleteTermFn != nil {
		return m.DeleteTermFn(ctx, ownerID, termID)
	}
	return m.DefaultError
}
