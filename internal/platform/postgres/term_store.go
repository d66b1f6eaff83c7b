package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/platform/logger"
	"github.com/termdeck/termdeck-api/internal/store"
)

const termColumns = `id, owner_id, term, definition, image_url, level, level_changed_at, created_at, updated_at`

// termOrderBy maps each listing order onto its ORDER BY clause. Ties are
// broken by id so paging is stable. Terms that were never raised sort last
// in both level-change orders.
var termOrderBy = map[store.TermSort]string{
	store.TermSortCreatedAsc:       "created_at ASC, id ASC",
	store.TermSortCreatedDesc:      "created_at DESC, id DESC",
	store.TermSortLevelChangedAsc:  "level_changed_at ASC NULLS LAST, created_at ASC, id ASC",
	store.TermSortLevelChangedDesc: "level_changed_at DESC NULLS LAST, created_at DESC, id DESC",
}

// PostgresTermStore implements the store.TermStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTermStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTermStore creates a new PostgreSQL implementation of the TermStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTermStore(db store.DBTX, logger *slog.Logger) *PostgresTermStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTermStore{
		db:     db,
		logger: logger.With(slog.String("component", "term_store")),
	}
}

// Ensure PostgresTermStore implements store.TermStore interface
var _ store.TermStore = (*PostgresTermStore)(nil)

// WithTx implements store.TermStore.WithTx
func (s *PostgresTermStore) WithTx(tx *sql.Tx) store.TermStore {
	return &PostgresTermStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTerm(row rowScanner) (*domain.Term, error) {
	var (
		t              domain.Term
		level          int
		levelChangedAt sql.NullTime
	)

	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Term,
		&t.Definition,
		&t.ImageURL,
		&level,
		&levelChangedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Level = domain.Level(level)
	if levelChangedAt.Valid {
		changedAt := levelChangedAt.Time.UTC()
		t.LevelChangedAt = &changedAt
	}

	return &t, nil
}

// nullableTime converts an optional instant into a value the driver stores
// as NULL when absent.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// Create implements store.TermStore.Create
func (s *PostgresTermStore) Create(ctx context.Context, term *domain.Term) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := term.Validate(); err != nil {
		log.Warn("term validation failed during create",
			slog.String("error", err.Error()),
			slog.String("term_id", term.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO terms (` + termColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		term.ID,
		term.OwnerID,
		term.Term,
		term.Definition,
		term.ImageURL,
		int(term.Level),
		nullableTime(term.LevelChangedAt),
		term.CreatedAt,
		term.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("term owner does not exist",
				slog.String("term_id", term.ID.String()),
				slog.String("owner_id", term.OwnerID.String()))
			return fmt.Errorf("%w: owner %s not found", store.ErrInvalidEntity, term.OwnerID)
		}
		log.Error("failed to create term",
			slog.String("error", err.Error()),
			slog.String("term_id", term.ID.String()))
		return MapError(err)
	}

	log.Debug("term created",
		slog.String("term_id", term.ID.String()),
		slog.String("owner_id", term.OwnerID.String()))
	return nil
}

// GetByID implements store.TermStore.GetByID
func (s *PostgresTermStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms WHERE id = $1 AND owner_id = $2`
	return s.getOne(ctx, query, ownerID, id)
}

// GetByIDForUpdate implements store.TermStore.GetByIDForUpdate
func (s *PostgresTermStore) GetByIDForUpdate(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms WHERE id = $1 AND owner_id = $2 FOR UPDATE`
	return s.getOne(ctx, query, ownerID, id)
}

func (s *PostgresTermStore) getOne(
	ctx context.Context,
	query string,
	ownerID, id uuid.UUID,
) (*domain.Term, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	term, err := scanTerm(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("term not found",
				slog.String("term_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrTermNotFound
		}
		log.Error("failed to get term",
			slog.String("error", err.Error()),
			slog.String("term_id", id.String()))
		return nil, MapError(err)
	}

	return term, nil
}

// FindByOwner implements store.TermStore.FindByOwner
func (s *PostgresTermStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`

	terms, err := s.queryTerms(ctx, query, ownerID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to find terms by owner",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	return terms, nil
}

// List implements store.TermStore.List
func (s *PostgresTermStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TermFilter,
) (*store.TermPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	filter = filter.Normalize()

	where, args := termListWhere(ownerID, filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM terms WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count terms",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}

	pageArgs := append(args, filter.PerPage, filter.Offset())
	query := fmt.Sprintf(
		`SELECT %s FROM terms WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		termColumns,
		where,
		termOrderBy[filter.Sort],
		len(args)+1,
		len(args)+2,
	)

	items, err := s.queryTerms(ctx, query, pageArgs...)
	if err != nil {
		log.Error("failed to list terms",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	return &store.TermPage{Items: items, TotalItems: total}, nil
}

// termListWhere builds the WHERE clause shared by the count and page queries.
func termListWhere(ownerID uuid.UUID, filter store.TermFilter) (string, []any) {
	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}

	if filter.Level != nil {
		args = append(args, int(*filter.Level))
		conditions = append(conditions, fmt.Sprintf("level = $%d", len(args)))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf(`(term ILIKE $%d ESCAPE '\' OR definition ILIKE $%d ESCAPE '\')`, n, n))
	}

	return strings.Join(conditions, " AND "), args
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *PostgresTermStore) queryTerms(ctx context.Context, query string, args ...any) ([]*domain.Term, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	terms := make([]*domain.Term, 0)
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, MapError(err)
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return terms, nil
}

// Update implements store.TermStore.Update
func (s *PostgresTermStore) Update(ctx context.Context, term *domain.Term) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := term.Validate(); err != nil {
		log.Warn("term validation failed during update",
			slog.String("error", err.Error()),
			slog.String("term_id", term.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE terms
		SET term = $1, definition = $2, image_url = $3, level = $4, level_changed_at = $5, updated_at = $6
		WHERE id = $7 AND owner_id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		term.Term,
		term.Definition,
		term.ImageURL,
		int(term.Level),
		nullableTime(term.LevelChangedAt),
		term.UpdatedAt,
		term.ID,
		term.OwnerID,
	)
	if err != nil {
		log.Error("failed to update term",
			slog.String("error", err.Error()),
			slog.String("term_id", term.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTermNotFound)
}

// UpdateLevel implements store.TermStore.UpdateLevel
func (s *PostgresTermStore) UpdateLevel(
	ctx context.Context,
	ownerID, id uuid.UUID,
	level domain.Level,
	levelChangedAt *time.Time,
	updatedAt time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !level.Valid() {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidLevel)
	}

	query := `
		UPDATE terms
		SET level = $1, level_changed_at = $2, updated_at = $3
		WHERE id = $4 AND owner_id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		int(level),
		nullableTime(levelChangedAt),
		updatedAt,
		id,
		ownerID,
	)
	if err != nil {
		log.Error("failed to update term level",
			slog.String("error", err.Error()),
			slog.String("term_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTermNotFound); err != nil {
		return err
	}

	log.Debug("term level updated",
		slog.String("term_id", id.String()),
		slog.Int("new_level", int(level)))
	return nil
}

// Delete implements store.TermStore.Delete
func (s *PostgresTermStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM terms WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		log.Error("failed to delete term",
			slog.String("error", err.Error()),
			slog.String("term_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTermNotFound)
}
