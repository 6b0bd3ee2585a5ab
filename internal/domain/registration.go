package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyCode is returned when a confirmation code is blank.
var ErrEmptyCode = errors.New("code cannot be empty")

// PendingRegistration holds a sign-up that has not been confirmed yet.
// It is promoted into a User once the emailed code is presented.
type PendingRegistration struct {
	ID             uuid.UUID
	Username       string
	Email          string
	HashedPassword string
	Code           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewPendingRegistration creates a pending registration for the given code.
func NewPendingRegistration(username, email, hashedPassword, code string) (*PendingRegistration, error) {
	now := time.Now().UTC()
	p := &PendingRegistration{
		ID:             uuid.New(),
		Username:       strings.TrimSpace(username),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		Code:           strings.TrimSpace(code),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the pending registration fields.
func (p *PendingRegistration) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if err := ValidateUsername(p.Username); err != nil {
		return err
	}
	if err := ValidateEmail(p.Email); err != nil {
		return err
	}
	if p.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	if p.Code == "" {
		return ErrEmptyCode
	}
	return nil
}

// Promote builds the account this registration confirms.
func (p *PendingRegistration) Promote() (*User, error) {
	return NewUser(p.Username, p.Email, p.HashedPassword)
}
