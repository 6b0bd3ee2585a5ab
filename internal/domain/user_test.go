package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser(" alice ", " Alice@Example.COM ", "hashed")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Username != "alice" {
		t.Errorf("Expected trimmed username, got %q", user.Username)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}
	if user.Role != RoleUser {
		t.Errorf("Expected role %q, got %q", RoleUser, user.Role)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		hash     string
		wantErr  error
	}{
		{"empty username", "", "a@x.com", "h", ErrEmptyUsername},
		{"short username", "ab", "a@x.com", "h", ErrInvalidUsername},
		{"long username", strings.Repeat("a", 13), "a@x.com", "h", ErrInvalidUsername},
		{"empty email", "alice", "", "h", ErrEmptyEmail},
		{"no at sign", "alice", "invalidemail", "h", ErrInvalidEmail},
		{"no domain dot", "alice", "a@localhost", "h", ErrInvalidEmail},
		{"empty hash", "alice", "a@x.com", "", ErrEmptyHashedPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.username, tc.email, tc.hash)
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUserValidateRole(t *testing.T) {
	user := User{
		ID:             uuid.New(),
		Username:       "alice",
		Email:          "a@x.com",
		HashedPassword: "h",
		Role:           Role("root"),
	}
	if err := user.Validate(); err != ErrInvalidRole {
		t.Errorf("Expected %v, got %v", ErrInvalidRole, err)
	}

	user.Role = RoleAdmin
	if err := user.Validate(); err != nil {
		t.Errorf("Expected admin to validate, got %v", err)
	}
	if !user.IsAdmin() {
		t.Error("Expected IsAdmin to be true")
	}
}

func TestPendingRegistrationPromote(t *testing.T) {
	p, err := NewPendingRegistration("alice", "A@x.com", "hashed", " 123456 ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Code != "123456" {
		t.Errorf("Expected trimmed code, got %q", p.Code)
	}

	user, err := p.Promote()
	if err != nil {
		t.Fatalf("Expected promotion to succeed, got %v", err)
	}
	if user.Username != p.Username || user.Email != p.Email || user.HashedPassword != p.HashedPassword {
		t.Errorf("Promoted user does not match registration: %+v", user)
	}
	if user.ID == p.ID {
		t.Error("Expected promoted user to get a fresh ID")
	}

	if _, err := NewPendingRegistration("alice", "a@x.com", "hashed", ""); err != ErrEmptyCode {
		t.Errorf("Expected %v, got %v", ErrEmptyCode, err)
	}
}
