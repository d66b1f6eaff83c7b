package service_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/store"
)

// MockTermStore mocks the store.TermStore interface. WithTx returns the same
// mock so expectations cover transactional calls too.
type MockTermStore struct {
	mock.Mock
}

var _ store.TermStore = (*MockTermStore)(nil)

func (m *MockTermStore) Create(ctx context.Context, term *domain.Term) error {
	return m.Called(ctx, term).Error(0)
}

func (m *MockTermStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Term, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Term), args.Error(1)
}

func (m *MockTermStore) GetByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*domain.Term, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Term), args.Error(1)
}

func (m *MockTermStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Term, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Term), args.Error(1)
}

func (m *MockTermStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TermFilter,
) (*store.TermPage, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.TermPage), args.Error(1)
}

func (m *MockTermStore) Update(ctx context.Context, term *domain.Term) error {
	return m.Called(ctx, term).Error(0)
}

func (m *MockTermStore) UpdateLevel(
	ctx context.Context,
	ownerID, id uuid.UUID,
	level domain.Level,
	levelChangedAt *time.Time,
	updatedAt time.Time,
) error {
	return m.Called(ctx, ownerID, id, level, levelChangedAt, updatedAt).Error(0)
}

func (m *MockTermStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockTermStore) WithTx(_ *sql.Tx) store.TermStore {
	return m
}

// MockUserStore mocks the store.UserStore interface.
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserStore) GetTokenVersion(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockUserStore) IncrementTokenVersion(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}

// MockPasswordVerifier mocks auth.PasswordVerifier.
type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}
