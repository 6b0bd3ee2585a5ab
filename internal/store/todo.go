package store

import (
	"context"
	"database/sql"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/google/uuid"
)

// TodoStore defines the interface for todo data persistence.
type TodoStore interface {
	// Create saves a new todo.
	// Returns ErrTitleExists if the title is already used.
	Create(ctx context.Context, todo *domain.Todo) error

	// GetByID retrieves a todo by ID.
	// Returns ErrTodoNotFound if the todo does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error)

	// List returns one page of the owner's todos matching filter, newest first.
	List(ctx context.Context, ownerID uuid.UUID, filter domain.TodoFilter, limit, offset int) ([]*domain.Todo, error)

	// ListAll returns every todo, newest first.
	ListAll(ctx context.Context) ([]*domain.Todo, error)

	// Update persists the mutable fields of todo.
	// Returns ErrTodoNotFound if it does not exist, ErrTitleExists on a title clash.
	Update(ctx context.Context, todo *domain.Todo) error

	// Delete permanently removes a todo.
	// Returns ErrTodoNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListDueReminders returns the reminder-enabled, unfinished todos for the
	// interval joined with their owner's contact details.
	ListDueReminders(ctx context.Context, interval domain.ReminderInterval) ([]domain.ReminderTarget, error)

	// WithTx returns a TodoStore bound to tx.
	WithTx(tx *sql.Tx) TodoStore
}
