package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"github.com/Msdoshack/2do/internal/store"
	"github.com/google/uuid"
)

// PostgresRegistrationStore implements store.RegistrationStore.
type PostgresRegistrationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRegistrationStore creates a registration store on db.
// If logger is nil, a default logger will be used.
func NewPostgresRegistrationStore(db store.DBTX, logger *slog.Logger) *PostgresRegistrationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRegistrationStore{
		db:     db,
		logger: logger.With(slog.String("component", "registration_store")),
	}
}

var _ store.RegistrationStore = (*PostgresRegistrationStore)(nil)

// WithTx implements store.RegistrationStore.WithTx
func (s *PostgresRegistrationStore) WithTx(tx *sql.Tx) store.RegistrationStore {
	return &PostgresRegistrationStore{db: tx, logger: s.logger}
}

// Upsert implements store.RegistrationStore.Upsert.
// A second sign-up for the same email replaces username, password hash and code.
func (s *PostgresRegistrationStore) Upsert(ctx context.Context, p *domain.PendingRegistration) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("pending registration validation failed",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO pending_registrations (id, username, email, hashed_password, code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE
		SET username = EXCLUDED.username,
			hashed_password = EXCLUDED.hashed_password,
			code = EXCLUDED.code,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		p.ID,
		p.Username,
		p.Email,
		p.HashedPassword,
		p.Code,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert pending registration",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("pending registration stored")
	return nil
}

// GetByCode implements store.RegistrationStore.GetByCode.
// Codes are unique across pending registrations, so at most one row matches.
func (s *PostgresRegistrationStore) GetByCode(ctx context.Context, code string) (*domain.PendingRegistration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, hashed_password, code, created_at, updated_at
		FROM pending_registrations
		WHERE code = $1
	`

	var p domain.PendingRegistration
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.HashedPassword,
		&p.Code,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no pending registration for code")
			return nil, store.ErrRegistrationNotFound
		}
		log.Error("failed to get pending registration",
			slog.String("error", err.Error()))
		return nil, err
	}
	return &p, nil
}

// Delete implements store.RegistrationStore.Delete
func (s *PostgresRegistrationStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM pending_registrations WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete pending registration",
			slog.String("error", err.Error()),
			slog.String("registration_id", id.String()))
		return err
	}

	return CheckRowsAffected(result, store.ErrRegistrationNotFound)
}
