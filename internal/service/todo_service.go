package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"github.com/Msdoshack/2do/internal/store"
	"github.com/google/uuid"
)

// PageSize is the number of todos returned per List call.
const PageSize = 10

// Messages returned on successful todo operations.
const (
	MsgTaskAdded     = "task added"
	MsgUpdated       = "updated"
	MsgDone          = "done"
	MsgReminderOn    = "Reminder turned on"
	MsgReminderOff   = "Reminder turned off"
	MsgTaskRestored  = "task restored"
	MsgMovedToTrash  = "moved to trash"
	MsgDeleted       = "deleted"
	msgInvalidOffset = "offset must be a non-negative integer"
)

// CreateTodoInput carries the fields of a new todo. A nil Reminder means
// enabled and an empty ReminderInterval means the default interval.
type CreateTodoInput struct {
	Title            string
	Description      string
	Reminder         *bool
	ReminderInterval string
}

// UpdateTodoInput carries a partial update. Nil and empty values are ignored.
type UpdateTodoInput struct {
	Title            *string
	Description      *string
	IsDone           *bool
	ReminderInterval *string
}

// ListQuery selects a page of the caller's todos.
// Deleted switches to the trash; Done, when set, narrows by completion.
type ListQuery struct {
	Deleted bool
	Done    *bool
	Offset  int
}

// TodoService provides todo operations scoped to the calling account.
type TodoService interface {
	// Create adds a todo owned by the caller.
	Create(ctx context.Context, p Principal, in CreateTodoInput) (*domain.Todo, error)

	// List returns one page of the caller's todos, newest first.
	List(ctx context.Context, p Principal, q ListQuery) ([]*domain.Todo, error)

	// ListAll returns every todo. Admin only.
	ListAll(ctx context.Context, p Principal) ([]*domain.Todo, error)

	// Get returns a todo readable by its owner or an admin.
	Get(ctx context.Context, p Principal, id uuid.UUID) (*domain.Todo, error)

	// Update applies a partial update to the caller's todo.
	Update(ctx context.Context, p Principal, id uuid.UUID, in UpdateTodoInput) (*domain.Todo, error)

	// MarkDone marks the caller's todo as done.
	MarkDone(ctx context.Context, p Principal, id uuid.UUID) error

	// ToggleReminder flips the reminder flag and returns the new value.
	ToggleReminder(ctx context.Context, p Principal, id uuid.UUID) (bool, error)

	// Trash soft-deletes the caller's todo.
	Trash(ctx context.Context, p Principal, id uuid.UUID) error

	// Restore brings a soft-deleted todo back.
	Restore(ctx context.Context, p Principal, id uuid.UUID) error

	// PermanentDelete removes the caller's todo, trashed or not.
	PermanentDelete(ctx context.Context, p Principal, id uuid.UUID) error
}

type todoServiceImpl struct {
	todos  store.TodoStore
	logger *slog.Logger
}

var _ TodoService = (*todoServiceImpl)(nil)

// NewTodoService creates a TodoService.
func NewTodoService(todos store.TodoStore, logger *slog.Logger) (TodoService, error) {
	if todos == nil {
		return nil, domain.NewValidationError("todos", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &todoServiceImpl{
		todos:  todos,
		logger: logger.With(slog.String("component", "todo_service")),
	}, nil
}

// ParseTodoID parses a todo ID taken from a request path.
func ParseTodoID(raw string) (uuid.UUID, error) {
	const op = "todo.parse_id"

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, validationError(op, MsgTodoIDMissing, nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, validationError(op, MsgInvalidID, domain.ErrInvalidID)
	}
	return id, nil
}

// Create implements TodoService.Create
func (s *todoServiceImpl) Create(ctx context.Context, p Principal, in CreateTodoInput) (*domain.Todo, error) {
	const op = "todo.create"
	log := logger.FromContextOrDefault(ctx, s.logger)

	interval := domain.DefaultReminderInterval
	if strings.TrimSpace(in.ReminderInterval) != "" {
		parsed, err := domain.ParseReminderInterval(in.ReminderInterval)
		if err != nil {
			return nil, validationError(op, err.Error(), err)
		}
		interval = parsed
	}

	reminder := true
	if in.Reminder != nil {
		reminder = *in.Reminder
	}

	todo, err := domain.NewTodo(p.AccountID, in.Title, in.Description, reminder, interval)
	if err != nil {
		return nil, validationError(op, err.Error(), err)
	}

	if err := s.todos.Create(ctx, todo); err != nil {
		if errors.Is(err, store.ErrTitleExists) {
			return nil, NewError(KindConflict, op, MsgTitleTaken, err)
		}
		return nil, internalError(op, err)
	}

	log.Info("todo created",
		slog.String("todo_id", todo.ID.String()),
		slog.String("user_id", p.AccountID.String()))
	return todo, nil
}

// List implements TodoService.List
func (s *todoServiceImpl) List(ctx context.Context, p Principal, q ListQuery) ([]*domain.Todo, error) {
	const op = "todo.list"

	if q.Offset < 0 {
		return nil, validationError(op, msgInvalidOffset, nil)
	}

	filter := domain.TodoFilter{Deleted: q.Deleted, Done: q.Done}
	todos, err := s.todos.List(ctx, p.AccountID, filter, PageSize, q.Offset)
	if err != nil {
		return nil, internalError(op, err)
	}
	return todos, nil
}

// ListAll implements TodoService.ListAll
func (s *todoServiceImpl) ListAll(ctx context.Context, p Principal) ([]*domain.Todo, error) {
	const op = "todo.list_all"

	if !p.IsAdmin() {
		return nil, NewError(KindForbidden, op, MsgAdminOnly, nil)
	}

	todos, err := s.todos.ListAll(ctx)
	if err != nil {
		return nil, internalError(op, err)
	}
	return todos, nil
}

// Get implements TodoService.Get
func (s *todoServiceImpl) Get(ctx context.Context, p Principal, id uuid.UUID) (*domain.Todo, error) {
	const op = "todo.get"

	todo, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !todo.OwnedBy(p.AccountID) && !p.IsAdmin() {
		return nil, NewError(KindForbidden, op, MsgNotPermitted, nil)
	}
	return todo, nil
}

// Update implements TodoService.Update
func (s *todoServiceImpl) Update(
	ctx context.Context,
	p Principal,
	id uuid.UUID,
	in UpdateTodoInput,
) (*domain.Todo, error) {
	const op = "todo.update"

	patch := domain.TodoPatch{
		Title:       in.Title,
		Description: in.Description,
		IsDone:      in.IsDone,
	}
	if in.ReminderInterval != nil && strings.TrimSpace(*in.ReminderInterval) != "" {
		interval, err := domain.ParseReminderInterval(*in.ReminderInterval)
		if err != nil {
			return nil, validationError(op, err.Error(), err)
		}
		patch.ReminderInterval = &interval
	}

	todo, err := s.loadOwned(ctx, op, p, id)
	if err != nil {
		return nil, err
	}

	if !todo.Apply(patch) {
		return todo, nil
	}
	if err := s.save(ctx, op, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// MarkDone implements TodoService.MarkDone
func (s *todoServiceImpl) MarkDone(ctx context.Context, p Principal, id uuid.UUID) error {
	const op = "todo.mark_done"

	todo, err := s.loadOwned(ctx, op, p, id)
	if err != nil {
		return err
	}
	if todo.IsDone {
		return nil
	}
	todo.IsDone = true
	todo.Touch()
	return s.save(ctx, op, todo)
}

// ToggleReminder implements TodoService.ToggleReminder
func (s *todoServiceImpl) ToggleReminder(ctx context.Context, p Principal, id uuid.UUID) (bool, error) {
	const op = "todo.toggle_reminder"

	todo, err := s.loadOwned(ctx, op, p, id)
	if err != nil {
		return false, err
	}
	todo.Reminder = !todo.Reminder
	todo.Touch()
	if err := s.save(ctx, op, todo); err != nil {
		return false, err
	}
	return todo.Reminder, nil
}

// Trash implements TodoService.Trash
func (s *todoServiceImpl) Trash(ctx context.Context, p Principal, id uuid.UUID) error {
	const op = "todo.trash"

	todo, err := s.loadOwned(ctx, op, p, id)
	if err != nil {
		return err
	}
	todo.IsDeleted = true
	todo.Touch()
	return s.save(ctx, op, todo)
}

// Restore implements TodoService.Restore.
// Ownership is checked before the trash state.
func (s *todoServiceImpl) Restore(ctx context.Context, p Principal, id uuid.UUID) error {
	const op = "todo.restore"

	todo, err := s.loadOwned(ctx, op, p, id)
	if err != nil {
		return err
	}
	if !todo.IsDeleted {
		return NewError(KindConflict, op, MsgTaskNotDeleted, nil)
	}
	todo.IsDeleted = false
	todo.Touch()
	return s.save(ctx, op, todo)
}

// PermanentDelete implements TodoService.PermanentDelete
func (s *todoServiceImpl) PermanentDelete(ctx context.Context, p Principal, id uuid.UUID) error {
	const op = "todo.delete"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.loadOwned(ctx, op, p, id); err != nil {
		return err
	}

	if err := s.todos.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewError(KindNotFound, op, MsgTodoNotFound, err)
		}
		return internalError(op, err)
	}

	log.Info("todo deleted", slog.String("todo_id", id.String()))
	return nil
}

func (s *todoServiceImpl) load(ctx context.Context, op string, id uuid.UUID) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewError(KindNotFound, op, MsgTodoNotFound, err)
		}
		return nil, internalError(op, err)
	}
	return todo, nil
}

// loadOwned fetches a todo and rejects callers other than its owner.
func (s *todoServiceImpl) loadOwned(ctx context.Context, op string, p Principal, id uuid.UUID) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	todo, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !todo.OwnedBy(p.AccountID) {
		log.Warn("todo access by non-owner rejected",
			slog.String("op", op),
			slog.String("todo_id", id.String()),
			slog.String("caller_id", p.AccountID.String()))
		return nil, NewError(KindForbidden, op, MsgNotPermitted, nil)
	}
	return todo, nil
}

func (s *todoServiceImpl) save(ctx context.Context, op string, todo *domain.Todo) error {
	if err := s.todos.Update(ctx, todo); err != nil {
		switch {
		case errors.Is(err, store.ErrTitleExists):
			return NewError(KindConflict, op, MsgTitleTaken, err)
		case store.IsNotFoundError(err):
			return NewError(KindNotFound, op, MsgTodoNotFound, err)
		default:
			return internalError(op, err)
		}
	}
	return nil
}
