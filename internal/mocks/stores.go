package mocks

import (
	"context"
	"database/sql"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a testify mock of store.UserStore.
// WithTx returns the receiver so expectations carry into transactions.
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByVerificationCode is a mock implementation of store.UserStore.GetByVerificationCode
func (m *MockUserStore) GetByVerificationCode(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.UserStore.List
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// WithTx is a mock implementation of store.UserStore.WithTx
func (m *MockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}

// MockRegistrationStore is a testify mock of store.RegistrationStore.
type MockRegistrationStore struct {
	mock.Mock
}

var _ store.RegistrationStore = (*MockRegistrationStore)(nil)

// Upsert is a mock implementation of store.RegistrationStore.Upsert
func (m *MockRegistrationStore) Upsert(ctx context.Context, p *domain.PendingRegistration) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// GetByCode is a mock implementation of store.RegistrationStore.GetByCode
func (m *MockRegistrationStore) GetByCode(ctx context.Context, code string) (*domain.PendingRegistration, error) {
	args := m.Called(ctx, code)
	if p, ok := args.Get(0).(*domain.PendingRegistration); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.RegistrationStore.Delete
func (m *MockRegistrationStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.RegistrationStore.WithTx
func (m *MockRegistrationStore) WithTx(_ *sql.Tx) store.RegistrationStore {
	return m
}

// MockTodoStore is a testify mock of store.TodoStore.
type MockTodoStore struct {
	mock.Mock
}

var _ store.TodoStore = (*MockTodoStore)(nil)

// Create is a mock implementation of store.TodoStore.Create
func (m *MockTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TodoStore.GetByID
func (m *MockTodoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	args := m.Called(ctx, id)
	if todo, ok := args.Get(0).(*domain.Todo); ok {
		return todo, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.TodoStore.List
func (m *MockTodoStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter domain.TodoFilter,
	limit, offset int,
) ([]*domain.Todo, error) {
	args := m.Called(ctx, ownerID, filter, limit, offset)
	if todos, ok := args.Get(0).([]*domain.Todo); ok {
		return todos, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListAll is a mock implementation of store.TodoStore.ListAll
func (m *MockTodoStore) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	args := m.Called(ctx)
	if todos, ok := args.Get(0).([]*domain.Todo); ok {
		return todos, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.TodoStore.Update
func (m *MockTodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

// Delete is a mock implementation of store.TodoStore.Delete
func (m *MockTodoStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListDueReminders is a mock implementation of store.TodoStore.ListDueReminders
func (m *MockTodoStore) ListDueReminders(
	ctx context.Context,
	interval domain.ReminderInterval,
) ([]domain.ReminderTarget, error) {
	args := m.Called(ctx, interval)
	if targets, ok := args.Get(0).([]domain.ReminderTarget); ok {
		return targets, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.TodoStore.WithTx
func (m *MockTodoStore) WithTx(_ *sql.Tx) store.TodoStore {
	return m
}
