package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"github.com/Msdoshack/2do/internal/store"
	"github.com/google/uuid"
)

const todoColumns = `id, title, description, user_id, is_done, is_deleted, reminder, reminder_interval, created_at, updated_at`

// DefaultPageSize is used by List when the caller passes a non-positive limit.
const DefaultPageSize = 10

// PostgresTodoStore implements the store.TodoStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTodoStore creates a new PostgreSQL implementation of the TodoStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTodoStore(db store.DBTX, logger *slog.Logger) *PostgresTodoStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// Ensure PostgresTodoStore implements store.TodoStore interface
var _ store.TodoStore = (*PostgresTodoStore)(nil)

// WithTx implements store.TodoStore.WithTx
func (s *PostgresTodoStore) WithTx(tx *sql.Tx) store.TodoStore {
	return &PostgresTodoStore{db: tx, logger: s.logger}
}

// Create implements store.TodoStore.Create
// Returns store.ErrTitleExists on a title clash and store.ErrInvalidEntity
// if the owner does not exist.
func (s *PostgresTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during create",
			slog.String("error", err.Error()),
			slog.String("todo_id", todo.ID.String()))
		return err
	}

	query := `
		INSERT INTO todos (` + todoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		todo.ID,
		todo.Title,
		todo.Description,
		todo.UserID,
		todo.IsDone,
		todo.IsDeleted,
		todo.Reminder,
		todo.ReminderInterval,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during todo creation",
				slog.String("todo_id", todo.ID.String()),
				slog.String("user_id", todo.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, todo.UserID)
		}
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create todo",
				slog.String("error", err.Error()),
				slog.String("todo_id", todo.ID.String()))
		}
		return mapped
	}

	log.Info("todo created successfully",
		slog.String("todo_id", todo.ID.String()),
		slog.String("user_id", todo.UserID.String()))
	return nil
}

// GetByID implements store.TodoStore.GetByID
func (s *PostgresTodoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	todo, err := scanTodo(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found", slog.String("todo_id", id.String()))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to get todo by ID",
			slog.String("error", err.Error()),
			slog.String("todo_id", id.String()))
		return nil, err
	}
	return todo, nil
}

// List implements store.TodoStore.List
func (s *PostgresTodoStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter domain.TodoFilter,
	limit, offset int,
) ([]*domain.Todo, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	conds := []string{"user_id = $1", "is_deleted = $2"}
	args := []any{ownerID, filter.Deleted}
	if filter.Done != nil {
		args = append(args, *filter.Done)
		conds = append(conds, fmt.Sprintf("is_done = $%d", len(args)))
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(
		`SELECT %s FROM todos WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		todoColumns,
		strings.Join(conds, " AND "),
		len(args)-1,
		len(args),
	)

	return s.query(ctx, "list", query, args...)
}

// ListAll implements store.TodoStore.ListAll
func (s *PostgresTodoStore) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	return s.query(ctx, "list_all", `SELECT `+todoColumns+` FROM todos ORDER BY created_at DESC`)
}

func (s *PostgresTodoStore) query(ctx context.Context, op, query string, args ...any) ([]*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query todos",
			slog.String("error", err.Error()),
			slog.String("op", op))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	todos := []*domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			log.Error("failed to scan todo row",
				slog.String("error", err.Error()),
				slog.String("op", op))
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating todo rows",
			slog.String("error", err.Error()),
			slog.String("op", op))
		return nil, err
	}

	log.Debug("todos retrieved", slog.String("op", op), slog.Int("count", len(todos)))
	return todos, nil
}

// Update implements store.TodoStore.Update
func (s *PostgresTodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during update",
			slog.String("error", err.Error()),
			slog.String("todo_id", todo.ID.String()))
		return err
	}

	query := `
		UPDATE todos
		SET title = $1, description = $2, is_done = $3, is_deleted = $4,
			reminder = $5, reminder_interval = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		todo.Title,
		todo.Description,
		todo.IsDone,
		todo.IsDeleted,
		todo.Reminder,
		todo.ReminderInterval,
		todo.UpdatedAt,
		todo.ID,
	)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to update todo",
				slog.String("error", err.Error()),
				slog.String("todo_id", todo.ID.String()))
		}
		return mapped
	}

	if err := CheckRowsAffected(result, store.ErrTodoNotFound); err != nil {
		log.Debug("todo not updated",
			slog.String("todo_id", todo.ID.String()),
			slog.String("reason", err.Error()))
		return err
	}

	log.Info("todo updated successfully", slog.String("todo_id", todo.ID.String()))
	return nil
}

// Delete implements store.TodoStore.Delete
func (s *PostgresTodoStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete todo",
			slog.String("error", err.Error()),
			slog.String("todo_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrTodoNotFound); err != nil {
		return err
	}

	log.Info("todo deleted successfully", slog.String("todo_id", id.String()))
	return nil
}

// ListDueReminders implements store.TodoStore.ListDueReminders.
// Owners are left-joined so a todo whose owner is gone comes back with an
// empty email and is skipped by the caller.
func (s *PostgresTodoStore) ListDueReminders(
	ctx context.Context,
	interval domain.ReminderInterval,
) ([]domain.ReminderTarget, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT t.id, t.title, t.reminder_interval, t.user_id,
			COALESCE(u.email, ''), COALESCE(u.username, '')
		FROM todos t
		LEFT JOIN users u ON u.id = t.user_id
		WHERE t.reminder = TRUE AND t.is_done = FALSE AND t.reminder_interval = $1
		ORDER BY t.created_at
	`
	rows, err := s.db.QueryContext(ctx, query, interval)
	if err != nil {
		log.Error("failed to query due reminders",
			slog.String("error", err.Error()),
			slog.String("interval", string(interval)))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var targets []domain.ReminderTarget
	for rows.Next() {
		var (
			target domain.ReminderTarget
			iv     string
		)
		if err := rows.Scan(
			&target.TodoID,
			&target.Title,
			&iv,
			&target.UserID,
			&target.Email,
			&target.Username,
		); err != nil {
			log.Error("failed to scan reminder row", slog.String("error", err.Error()))
			return nil, err
		}
		target.Interval = domain.ReminderInterval(iv)
		targets = append(targets, target)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating reminder rows", slog.String("error", err.Error()))
		return nil, err
	}
	return targets, nil
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var (
		todo     domain.Todo
		interval string
	)
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.UserID,
		&todo.IsDone,
		&todo.IsDeleted,
		&todo.Reminder,
		&interval,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	todo.ReminderInterval = domain.ReminderInterval(interval)
	return &todo, nil
}
