package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/domain"
)

// Paging limits for term listings.
const (
	DefaultTermsPerPage = 10
	MaxTermsPerPage     = 100
)

// TermSort selects the ordering of a term listing.
type TermSort string

// Supported orderings. The values double as the query parameter values of
// the HTTP API.
const (
	TermSortCreatedAsc       TermSort = "createAsc"
	TermSortCreatedDesc      TermSort = "createDesc"
	TermSortLevelChangedAsc  TermSort = "lvlChangeAsc"
	TermSortLevelChangedDesc TermSort = "lvlChangeDesc"
)

// Valid reports whether s is a supported ordering.
func (s TermSort) Valid() bool {
	switch s {
	case TermSortCreatedAsc, TermSortCreatedDesc, TermSortLevelChangedAsc, TermSortLevelChangedDesc:
		return true
	default:
		return false
	}
}

// TermFilter narrows and pages a term listing. Zero values select the
// defaults: first page, DefaultTermsPerPage items, no search, any level,
// newest first.
type TermFilter struct {
	Page    int
	PerPage int
	Search  string
	Level   *domain.Level
	Sort    TermSort
}

// Normalize returns a copy of f with defaults applied and paging bounded.
func (f TermFilter) Normalize() TermFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultTermsPerPage
	}
	if f.PerPage > MaxTermsPerPage {
		f.PerPage = MaxTermsPerPage
	}
	if !f.Sort.Valid() {
		f.Sort = TermSortCreatedDesc
	}
	return f
}

// Offset is the number of rows skipped before the requested page.
func (f TermFilter) Offset() int {
	n := f.Normalize()
	return (n.Page - 1) * n.PerPage
}

// TermPage is one page of a term listing.
type TermPage struct {
	Items      []*domain.Term `json:"items"`
	TotalItems int            `json:"totalItems"`
}

// TermStore defines the interface for term data persistence.
// Every lookup is scoped by owner: a term that exists but belongs to another
// user is reported as ErrTermNotFound.
type TermStore interface {
	// Create saves a new term.
	// Returns ErrInvalidEntity wrapping the domain error if the term is invalid.
	Create(ctx context.Context, term *domain.Term) error

	// GetByID retrieves one of the owner's terms.
	// Returns ErrTermNotFound if it does not exist.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Term, error)

	// GetByIDForUpdate retrieves one of the owner's terms and locks its row
	// until the surrounding transaction ends.
	//
	// IMPORTANT: Only meaningful on a store obtained from WithTx. Outside a
	// transaction the lock is released as soon as the statement completes.
	GetByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*domain.Term, error)

	// FindByOwner returns all of the owner's terms, oldest first.
	// An owner without terms yields an empty slice, not an error.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Term, error)

	// List returns one page of the owner's terms matching filter, together
	// with the number of matching terms across all pages.
	List(ctx context.Context, ownerID uuid.UUID, filter TermFilter) (*TermPage, error)

	// Update writes the editable fields of term (text, image URL, level,
	// level change time). Returns ErrTermNotFound if the term does not exist
	// for its owner.
	Update(ctx context.Context, term *domain.Term) error

	// UpdateLevel writes a new level and level change time as a pair.
	// A nil levelChangedAt clears the stored time.
	// Returns ErrTermNotFound if the term does not exist for the owner.
	UpdateLevel(
		ctx context.Context,
		ownerID, id uuid.UUID,
		level domain.Level,
		levelChangedAt *time.Time,
		updatedAt time.Time,
	) error

	// Delete removes one of the owner's terms.
	// Returns ErrTermNotFound if it does not exist.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// WithTx returns a TermStore that runs every query on tx.
	WithTx(tx *sql.Tx) TermStore
}
