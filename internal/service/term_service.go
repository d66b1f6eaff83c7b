package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/domain/srs"
	"github.com/termdeck/termdeck-api/internal/platform/logger"
	"github.com/termdeck/termdeck-api/internal/store"
)

// TermService provides term management and review operations. Every operation
// is scoped to the owner: another user's term behaves as if it did not exist.
type TermService interface {
	// CreateTerm creates a new term at level 0 for the owner.
	CreateTerm(ctx context.Context, ownerID uuid.UUID, term, definition, imageURL string) (*domain.Term, error)

	// GetTerm retrieves one of the owner's terms.
	GetTerm(ctx context.Context, ownerID, termID uuid.UUID) (*domain.Term, error)

	// ListTerms returns one page of the owner's terms.
	ListTerms(ctx context.Context, ownerID uuid.UUID, filter store.TermFilter) (*store.TermPage, error)

	// ListTermsForLearn returns the owner's terms that are due for review
	// now, oldest first.
	ListTermsForLearn(ctx context.Context, ownerID uuid.UUID) ([]*domain.Term, error)

	// UpdateTerm applies a partial edit. Editing the level resets the level
	// change timestamp.
	UpdateTerm(ctx context.Context, ownerID, termID uuid.UUID, update domain.TermUpdate) (*domain.Term, error)

	// ChangeLevel records a review of a term and moves it along the level
	// ladder.
	//
	// The term row is locked, the review is applied and the new level is
	// written within a single transaction, so concurrent reviews of the same
	// term are serialized.
	//
	// Returns:
	//   - (*domain.Term, nil): the term as stored after the review
	//   - (nil, store.ErrTermNotFound): the term does not exist or belongs to
	//     another user
	//   - (nil, error): any other failure, typically from the database
	//
	// An action outside Lower, Keep and Raise is logged at WARN and treated
	// as Keep.
	ChangeLevel(ctx context.Context, ownerID, termID uuid.UUID, action domain.ReviewAction) (*domain.Term, error)

	// DeleteTerm removes one of the owner's terms.
	DeleteTerm(ctx context.Context, ownerID, termID uuid.UUID) error
}

// termServiceImpl implements the TermService interface
type termServiceImpl struct {
	termStore store.TermStore
	db        *sql.DB
	srs       srs.Service
	now       func() time.Time
	logger    *slog.Logger
}

// NewTermService creates a new TermService.
// It returns an error if any of the required dependencies are nil. A nil
// clock defaults to time.Now.
func NewTermService(
	termStore store.TermStore,
	db *sql.DB,
	srsService srs.Service,
	clock func() time.Time,
	logger *slog.Logger,
) (TermService, error) {
	if termStore == nil {
		return nil, domain.NewValidationError("termStore", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if srsService == nil {
		return nil, domain.NewValidationError("srsService", "cannot be nil", domain.ErrValidation)
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &termServiceImpl{
		termStore: termStore,
		db:        db,
		srs:       srsService,
		now:       clock,
		logger:    logger.With(slog.String("component", "term_service")),
	}, nil
}

// CreateTerm implements TermService.CreateTerm
func (s *termServiceImpl) CreateTerm(
	ctx context.Context,
	ownerID uuid.UUID,
	text, definition, imageURL string,
) (*domain.Term, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	term, err := domain.NewTerm(ownerID, text, definition, imageURL)
	if err != nil {
		log.Debug("invalid term data", slog.String("error", err.Error()))
		return nil, NewTermServiceError("create_term", "invalid term", err)
	}

	if err := s.termStore.Create(ctx, term); err != nil {
		log.Error("failed to create term",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewTermServiceError("create_term", "failed to save term", err)
	}

	log.Info("term created",
		slog.String("term_id", term.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return term, nil
}

// GetTerm implements TermService.GetTerm
func (s *termServiceImpl) GetTerm(ctx context.Context, ownerID, termID uuid.UUID) (*domain.Term, error) {
	term, err := s.termStore.GetByID(ctx, ownerID, termID)
	if err != nil {
		s.logStoreError(ctx, "failed to retrieve term", err, termID)
		return nil, NewTermServiceError("get_term", "failed to retrieve term", err)
	}
	return term, nil
}

// ListTerms implements TermService.ListTerms
func (s *termServiceImpl) ListTerms(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TermFilter,
) (*store.TermPage, error) {
	page, err := s.termStore.List(ctx, ownerID, filter.Normalize())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list terms",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewTermServiceError("list_terms", "failed to list terms", err)
	}
	return page, nil
}

// ListTermsForLearn implements TermService.ListTermsForLearn
func (s *termServiceImpl) ListTermsForLearn(ctx context.Context, ownerID uuid.UUID) ([]*domain.Term, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	terms, err := s.termStore.FindByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to load terms for learning",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewTermServiceError("list_terms_for_learn", "failed to load terms", err)
	}

	due := s.srs.FilterDue(terms, s.now())

	log.Debug("built study set",
		slog.String("owner_id", ownerID.String()),
		slog.Int("total", len(terms)),
		slog.Int("due", len(due)))
	return due, nil
}

// UpdateTerm implements TermService.UpdateTerm
func (s *termServiceImpl) UpdateTerm(
	ctx context.Context,
	ownerID, termID uuid.UUID,
	update domain.TermUpdate,
) (*domain.Term, error) {
	var updated *domain.Term

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.termStore.WithTx(tx)

		term, err := txStore.GetByIDForUpdate(ctx, ownerID, termID)
		if err != nil {
			s.logStoreError(ctx, "failed to load term for update", err, termID)
			return NewTermServiceError("update_term", "failed to retrieve term", err)
		}

		if err := update.Apply(term, s.now().UTC()); err != nil {
			return NewTermServiceError("update_term", "invalid term update", err)
		}

		if err := txStore.Update(ctx, term); err != nil {
			s.logStoreError(ctx, "failed to save term update", err, termID)
			return NewTermServiceError("update_term", "failed to save term", err)
		}

		updated = term
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ChangeLevel implements TermService.ChangeLevel
func (s *termServiceImpl) ChangeLevel(
	ctx context.Context,
	ownerID, termID uuid.UUID,
	action domain.ReviewAction,
) (*domain.Term, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("term_id", termID.String()),
		slog.String("action", action.String()))

	var reviewed *domain.Term

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.termStore.WithTx(tx)

		term, err := txStore.GetByIDForUpdate(ctx, ownerID, termID)
		if err != nil {
			s.logStoreError(ctx, "failed to lock term for review", err, termID)
			return NewTermServiceError("change_level", "failed to retrieve term", err)
		}

		next, err := s.srs.ApplyReview(term, action, s.now().UTC())
		switch {
		case errors.Is(err, srs.ErrUnrecognizedAction):
			log.Warn("unrecognized review action, keeping level",
				slog.Int("action_value", int(action)),
				slog.Int("current_level", int(term.Level)))
		case err != nil:
			return NewTermServiceError("change_level", "failed to apply review", err)
		}

		if err := txStore.UpdateLevel(
			ctx,
			ownerID,
			termID,
			next.Level,
			next.LevelChangedAt,
			next.UpdatedAt,
		); err != nil {
			log.Error("failed to save level change", slog.String("error", err.Error()))
			return NewTermServiceError("change_level", "failed to save level", err)
		}

		log.Debug("term level changed",
			slog.Int("previous_level", int(term.Level)),
			slog.Int("new_level", int(next.Level)))

		reviewed = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviewed, nil
}

// DeleteTerm implements TermService.DeleteTerm
func (s *termServiceImpl) DeleteTerm(ctx context.Context, ownerID, termID uuid.UUID) error {
	if err := s.termStore.Delete(ctx, ownerID, termID); err != nil {
		s.logStoreError(ctx, "failed to delete term", err, termID)
		return NewTermServiceError("delete_term", "failed to delete term", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("term deleted",
		slog.String("term_id", termID.String()),
		slog.String("owner_id", ownerID.String()))
	return nil
}

// logStoreError logs a missing term at debug level and anything else as an
// error.
func (s *termServiceImpl) logStoreError(ctx context.Context, msg string, err error, termID uuid.UUID) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if store.IsNotFoundError(err) {
		log.Debug("term not found", slog.String("term_id", termID.String()))
		return
	}
	log.Error(msg,
		slog.String("error", err.Error()),
		slog.String("term_id", termID.String()))
}
