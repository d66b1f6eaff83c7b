package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/platform/postgres"
	"github.com/termdeck/termdeck-api/internal/store"
)

var termRowColumns = []string{
	"id", "owner_id", "term", "definition", "image_url",
	"level", "level_changed_at", "created_at", "updated_at",
}

func newMockTermStore(t *testing.T) (*postgres.PostgresTermStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return postgres.NewPostgresTermStore(db, nil), mock
}

func TestPostgresTermStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("inserts a valid term", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		term, err := domain.NewTerm(uuid.New(), "word", "meaning", "")
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO terms")).
			WithArgs(term.ID, term.OwnerID, "word", "meaning", "", 0, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Create(context.Background(), term))
	})

	t.Run("rejects an invalid term without touching the database", func(t *testing.T) {
		t.Parallel()
		s, _ := newMockTermStore(t)

		err := s.Create(context.Background(), &domain.Term{ID: uuid.New(), OwnerID: uuid.New()})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown owner", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		term, err := domain.NewTerm(uuid.New(), "word", "meaning", "")
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO terms")).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "terms_owner_id_fkey"})

		err = s.Create(context.Background(), term)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestPostgresTermStore_GetByID(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	termID := uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	changed := created.Add(72 * time.Hour)

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM terms WHERE id = $1 AND owner_id = $2")).
			WithArgs(termID, ownerID).
			WillReturnRows(sqlmock.NewRows(termRowColumns).AddRow(
				termID.String(), ownerID.String(), "word", "meaning", "https://img/x.png",
				int64(2), changed, created, changed,
			))

		term, err := s.GetByID(context.Background(), ownerID, termID)
		require.NoError(t, err)
		assert.Equal(t, termID, term.ID)
		assert.Equal(t, ownerID, term.OwnerID)
		assert.Equal(t, domain.Level(2), term.Level)
		require.NotNil(t, term.LevelChangedAt)
		assert.True(t, term.LevelChangedAt.Equal(changed))
		assert.Equal(t, "https://img/x.png", term.ImageURL)
	})

	t.Run("null level change", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM terms WHERE id = $1 AND owner_id = $2")).
			WillReturnRows(sqlmock.NewRows(termRowColumns).AddRow(
				termID.String(), ownerID.String(), "word", "meaning", "",
				int64(0), nil, created, created,
			))

		term, err := s.GetByID(context.Background(), ownerID, termID)
		require.NoError(t, err)
		assert.Nil(t, term.LevelChangedAt)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM terms WHERE id = $1 AND owner_id = $2")).
			WillReturnRows(sqlmock.NewRows(termRowColumns))

		_, err := s.GetByID(context.Background(), ownerID, termID)
		assert.ErrorIs(t, err, store.ErrTermNotFound)
	})
}

func TestPostgresTermStore_GetByIDForUpdateLocksRow(t *testing.T) {
	t.Parallel()
	s, mock := newMockTermStore(t)

	ownerID := uuid.New()
	termID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM terms WHERE id = \$1 AND owner_id = \$2 FOR UPDATE`).
		WithArgs(termID, ownerID).
		WillReturnRows(sqlmock.NewRows(termRowColumns).AddRow(
			termID.String(), ownerID.String(), "word", "meaning", "",
			int64(1), nil, now, now,
		))

	term, err := s.GetByIDForUpdate(context.Background(), ownerID, termID)
	require.NoError(t, err)
	assert.Equal(t, domain.Level(1), term.Level)
}

func TestPostgresTermStore_FindByOwner(t *testing.T) {
	t.Parallel()
	s, mock := newMockTermStore(t)

	ownerID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE owner_id = $1 ORDER BY created_at ASC, id ASC")).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(termRowColumns).
			AddRow(uuid.NewString(), ownerID.String(), "a", "1", "", int64(0), nil, now, now).
			AddRow(uuid.NewString(), ownerID.String(), "b", "2", "", int64(6), now, now, now))

	terms, err := s.FindByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "a", terms[0].Term)
	assert.Equal(t, domain.MaxLevel, terms[1].Level)
}

func TestPostgresTermStore_FindByOwnerEmpty(t *testing.T) {
	t.Parallel()
	s, mock := newMockTermStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM terms WHERE owner_id = $1")).
		WillReturnRows(sqlmock.NewRows(termRowColumns))

	terms, err := s.FindByOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, terms)
	assert.Empty(t, terms)
}

func TestPostgresTermStore_List(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)
		ownerID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM terms WHERE owner_id = $1")).
			WithArgs(ownerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3")).
			WithArgs(ownerID, store.DefaultTermsPerPage, 0).
			WillReturnRows(sqlmock.NewRows(termRowColumns))

		page, err := s.List(context.Background(), ownerID, store.TermFilter{})
		require.NoError(t, err)
		assert.Equal(t, 0, page.TotalItems)
		assert.Empty(t, page.Items)
	})

	t.Run("level, escaped search, sort and paging", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)
		ownerID := uuid.New()
		level := domain.Level(3)
		now := time.Now().UTC()

		where := `owner_id = $1 AND level = $2 AND (term ILIKE $3 ESCAPE '\' OR definition ILIKE $3 ESCAPE '\')`
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM terms WHERE " + where)).
			WithArgs(ownerID, 3, `%50\%\_off%`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectQuery(regexp.QuoteMeta(
			"WHERE " + where + " ORDER BY level_changed_at ASC NULLS LAST, created_at ASC, id ASC LIMIT $4 OFFSET $5",
		)).
			WithArgs(ownerID, 3, `%50\%\_off%`, 5, 5).
			WillReturnRows(sqlmock.NewRows(termRowColumns).
				AddRow(uuid.NewString(), ownerID.String(), "50%_off", "sale", "", int64(3), now, now, now))

		page, err := s.List(context.Background(), ownerID, store.TermFilter{
			Page:    2,
			PerPage: 5,
			Search:  " 50%_off ",
			Level:   &level,
			Sort:    store.TermSortLevelChangedAsc,
		})
		require.NoError(t, err)
		assert.Equal(t, 7, page.TotalItems)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "50%_off", page.Items[0].Term)
	})
}

func TestPostgresTermStore_Update(t *testing.T) {
	t.Parallel()

	t.Run("writes editable fields", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		term, err := domain.NewTerm(uuid.New(), "word", "meaning", "")
		require.NoError(t, err)
		term.Level = 4

		mock.ExpectExec(regexp.QuoteMeta("UPDATE terms")).
			WithArgs("word", "meaning", "", 4, nil, sqlmock.AnyArg(), term.ID, term.OwnerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Update(context.Background(), term))
	})

	t.Run("missing term", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		term, err := domain.NewTerm(uuid.New(), "word", "meaning", "")
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE terms")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(context.Background(), term), store.ErrTermNotFound)
	})
}

func TestPostgresTermStore_UpdateLevel(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	termID := uuid.New()
	now := time.Date(2024, 5, 5, 5, 5, 5, 0, time.UTC)

	t.Run("stamps level change", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		mock.ExpectExec(regexp.QuoteMeta("SET level = $1, level_changed_at = $2, updated_at = $3")).
			WithArgs(3, now, now, termID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.UpdateLevel(context.Background(), ownerID, termID, 3, &now, now))
	})

	t.Run("clears level change", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE terms")).
			WithArgs(0, nil, now, termID, ownerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.UpdateLevel(context.Background(), ownerID, termID, 0, nil, now))
	})

	t.Run("out of range level", func(t *testing.T) {
		t.Parallel()
		s, _ := newMockTermStore(t)

		err := s.UpdateLevel(context.Background(), ownerID, termID, domain.MaxLevel+1, nil, now)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("other owner's term", func(t *testing.T) {
		t.Parallel()
		s, mock := newMockTermStore(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE terms")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.UpdateLevel(context.Background(), uuid.New(), termID, 1, nil, now)
		assert.ErrorIs(t, err, store.ErrTermNotFound)
	})
}

func TestPostgresTermStore_Delete(t *testing.T) {
	t.Parallel()
	s, mock := newMockTermStore(t)

	ownerID := uuid.New()
	termID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM terms WHERE id = $1 AND owner_id = $2")).
		WithArgs(termID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM terms")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Delete(context.Background(), ownerID, termID))
	assert.ErrorIs(t, s.Delete(context.Background(), ownerID, termID), store.ErrTermNotFound)
}

func TestPostgresTermStore_WithTx(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := postgres.NewPostgresTermStore(db, nil)
	ownerID := uuid.New()
	termID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM terms")).
		WithArgs(termID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, s.WithTx(tx).Delete(context.Background(), ownerID, termID))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}
