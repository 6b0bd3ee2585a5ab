package mocks

import (
	"context"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountService is a testify mock of service.AccountService.
type MockAccountService struct {
	mock.Mock
}

var _ service.AccountService = (*MockAccountService)(nil)

func userOrNil(args mock.Arguments) (*domain.User, error) {
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Register is a mock implementation of service.AccountService.Register
func (m *MockAccountService) Register(ctx context.Context, username, email, password string) error {
	return m.Called(ctx, username, email, password).Error(0)
}

// ConfirmRegistration is a mock implementation of service.AccountService.ConfirmRegistration
func (m *MockAccountService) ConfirmRegistration(ctx context.Context, code string) (*domain.User, error) {
	return userOrNil(m.Called(ctx, code))
}

// SignIn is a mock implementation of service.AccountService.SignIn
func (m *MockAccountService) SignIn(ctx context.Context, email, password string) (*service.SignInResult, error) {
	args := m.Called(ctx, email, password)
	if res, ok := args.Get(0).(*service.SignInResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// CheckPassword is a mock implementation of service.AccountService.CheckPassword
func (m *MockAccountService) CheckPassword(ctx context.Context, p service.Principal, password string) error {
	return m.Called(ctx, p, password).Error(0)
}

// ChangePassword is a mock implementation of service.AccountService.ChangePassword
func (m *MockAccountService) ChangePassword(ctx context.Context, p service.Principal, current, newPassword string) error {
	return m.Called(ctx, p, current, newPassword).Error(0)
}

// RequestEmailChange is a mock implementation of service.AccountService.RequestEmailChange
func (m *MockAccountService) RequestEmailChange(ctx context.Context, p service.Principal, password, newEmail string) error {
	return m.Called(ctx, p, password, newEmail).Error(0)
}

// ConfirmEmailChange is a mock implementation of service.AccountService.ConfirmEmailChange
func (m *MockAccountService) ConfirmEmailChange(ctx context.Context, p service.Principal, code string) (*domain.User, error) {
	return userOrNil(m.Called(ctx, p, code))
}

// GetProfile is a mock implementation of service.AccountService.GetProfile
func (m *MockAccountService) GetProfile(ctx context.Context, p service.Principal) (*domain.User, error) {
	return userOrNil(m.Called(ctx, p))
}

// UpdateProfile is a mock implementation of service.AccountService.UpdateProfile
func (m *MockAccountService) UpdateProfile(
	ctx context.Context,
	p service.Principal,
	accountID uuid.UUID,
	username string,
) (*domain.User, error) {
	return userOrNil(m.Called(ctx, p, accountID, username))
}

// ListAccounts is a mock implementation of service.AccountService.ListAccounts
func (m *MockAccountService) ListAccounts(ctx context.Context, p service.Principal) ([]*domain.User, error) {
	args := m.Called(ctx, p)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// ResolvePrincipal is a mock implementation of service.AccountService.ResolvePrincipal
func (m *MockAccountService) ResolvePrincipal(ctx context.Context, accountID uuid.UUID) (service.Principal, error) {
	args := m.Called(ctx, accountID)
	if p, ok := args.Get(0).(service.Principal); ok {
		return p, args.Error(1)
	}
	return service.Principal{}, args.Error(1)
}

// MockTodoService is a testify mock of service.TodoService.
type MockTodoService struct {
	mock.Mock
}

var _ service.TodoService = (*MockTodoService)(nil)

func todoOrNil(args mock.Arguments) (*domain.Todo, error) {
	if todo, ok := args.Get(0).(*domain.Todo); ok {
		return todo, args.Error(1)
	}
	return nil, args.Error(1)
}

func todosOrNil(args mock.Arguments) ([]*domain.Todo, error) {
	if todos, ok := args.Get(0).([]*domain.Todo); ok {
		return todos, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of service.TodoService.Create
func (m *MockTodoService) Create(ctx context.Context, p service.Principal, in service.CreateTodoInput) (*domain.Todo, error) {
	return todoOrNil(m.Called(ctx, p, in))
}

// List is a mock implementation of service.TodoService.List
func (m *MockTodoService) List(ctx context.Context, p service.Principal, q service.ListQuery) ([]*domain.Todo, error) {
	return todosOrNil(m.Called(ctx, p, q))
}

// ListAll is a mock implementation of service.TodoService.ListAll
func (m *MockTodoService) ListAll(ctx context.Context, p service.Principal) ([]*domain.Todo, error) {
	return todosOrNil(m.Called(ctx, p))
}

// Get is a mock implementation of service.TodoService.Get
func (m *MockTodoService) Get(ctx context.Context, p service.Principal, id uuid.UUID) (*domain.Todo, error) {
	return todoOrNil(m.Called(ctx, p, id))
}

// Update is a mock implementation of service.TodoService.Update
func (m *MockTodoService) Update(
	ctx context.Context,
	p service.Principal,
	id uuid.UUID,
	in service.UpdateTodoInput,
) (*domain.Todo, error) {
	return todoOrNil(m.Called(ctx, p, id, in))
}

// MarkDone is a mock implementation of service.TodoService.MarkDone
func (m *MockTodoService) MarkDone(ctx context.Context, p service.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

// ToggleReminder is a mock implementation of service.TodoService.ToggleReminder
func (m *MockTodoService) ToggleReminder(ctx context.Context, p service.Principal, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, p, id)
	return args.Bool(0), args.Error(1)
}

// Trash is a mock implementation of service.TodoService.Trash
func (m *MockTodoService) Trash(ctx context.Context, p service.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

// Restore is a mock implementation of service.TodoService.Restore
func (m *MockTodoService) Restore(ctx context.Context, p service.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

// PermanentDelete is a mock implementation of service.TodoService.PermanentDelete
func (m *MockTodoService) PermanentDelete(ctx context.Context, p service.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}
