package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrUserNotFound", ErrUserNotFound, true},
		{"ErrTodoNotFound", ErrTodoNotFound, true},
		{"wrapped ErrRegistrationNotFound", fmt.Errorf("lookup: %w", ErrRegistrationNotFound), true},
		{"duplicate is not not-found", ErrEmailExists, false},
		{"store error wrapping not found", NewStoreError("todo", "get", "missing", ErrTodoNotFound), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"ErrDuplicate", ErrDuplicate, true},
		{"ErrEmailExists", ErrEmailExists, true},
		{"wrapped ErrTitleExists", fmt.Errorf("insert: %w", ErrTitleExists), true},
		{"not found is not duplicate", ErrUserNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewStoreError("user", "create", "insert failed", inner)

	assert.Equal(t, "create operation on user failed: insert failed: connection reset", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewStoreError("todo", "delete", "nothing to delete", nil)
	assert.Equal(t, "delete operation on todo failed: nothing to delete", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
