package mocks

import (
	"context"

	"github.com/Msdoshack/2do/internal/notify"
	"github.com/stretchr/testify/mock"
)

// MockNotifier is a testify mock of notify.Notifier.
type MockNotifier struct {
	mock.Mock
}

var _ notify.Notifier = (*MockNotifier)(nil)

// SendSignUpCode is a mock implementation of notify.Notifier.SendSignUpCode
func (m *MockNotifier) SendSignUpCode(ctx context.Context, to, username, code string) error {
	args := m.Called(ctx, to, username, code)
	return args.Error(0)
}

// SendEmailChangeCode is a mock implementation of notify.Notifier.SendEmailChangeCode
func (m *MockNotifier) SendEmailChangeCode(ctx context.Context, to, username, code string) error {
	args := m.Called(ctx, to, username, code)
	return args.Error(0)
}

// SendReminder is a mock implementation of notify.Notifier.SendReminder
func (m *MockNotifier) SendReminder(ctx context.Context, r notify.Reminder) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
