package store

import (
	"context"
	"database/sql"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/google/uuid"
)

// RegistrationStore persists sign-ups awaiting code confirmation.
type RegistrationStore interface {
	// Upsert stores p, replacing any earlier pending registration for the same email.
	Upsert(ctx context.Context, p *domain.PendingRegistration) error

	// GetByCode returns the pending registration holding code.
	// Returns ErrRegistrationNotFound if none does.
	GetByCode(ctx context.Context, code string) (*domain.PendingRegistration, error)

	// Delete removes the pending registration.
	// Returns ErrRegistrationNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a RegistrationStore bound to tx.
	WithTx(tx *sql.Tx) RegistrationStore
}
