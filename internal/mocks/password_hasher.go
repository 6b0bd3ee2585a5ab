package mocks

import (
	"github.com/Msdoshack/2do/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing.
// By default Hash prefixes the password with "hashed:" and Compare succeeds
// only when the hash equals that form of the password.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// FakeHash is the default hash produced for password.
func FakeHash(password string) string {
	return "hashed:" + password
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return FakeHash(password), nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword == FakeHash(password) {
		return nil
	}
	return auth.ErrPasswordMismatch
}
