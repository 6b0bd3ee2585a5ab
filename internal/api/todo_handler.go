package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Msdoshack/2do/internal/api/shared"
	"github.com/Msdoshack/2do/internal/service"
	"github.com/google/uuid"
)

type todoOp func(ctx context.Context, p service.Principal, id uuid.UUID) error

// TodoHandler handles the todo endpoints.
type TodoHandler struct {
	todos  service.TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todos service.TodoService, logger *slog.Logger) *TodoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoHandler{
		todos:  todos,
		logger: logger.With(slog.String("component", "todo_handler")),
	}
}

// ListAll handles GET /todos.
func (h *TodoHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	todos, err := h.todos.ListAll(r.Context(), p)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", todos)
}

// ListMine handles GET /todos/user/todo.
func (h *TodoHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidQuery, err)
		return
	}

	todos, err := h.todos.List(r.Context(), p, q)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", todos)
}

// Get handles GET /todos/{todoId}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}
	id, ok := todoIDOrAbort(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.Get(r.Context(), p, id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", todo)
}

// Create handles POST /todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	var req CreateTodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	todo, err := h.todos.Create(r.Context(), p, service.CreateTodoInput{
		Title:            req.Title,
		Description:      req.Description,
		Reminder:         req.Reminder,
		ReminderInterval: req.ReminderInterval,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusCreated, service.MsgTaskAdded, todo)
}

// Update handles PUT /todos/{todoId}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}
	id, ok := todoIDOrAbort(w, r)
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	_, err := h.todos.Update(r.Context(), p, id, service.UpdateTodoInput{
		Title:            req.Title,
		Description:      req.Description,
		IsDone:           req.IsDone,
		ReminderInterval: req.ReminderInterval,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, service.MsgUpdated, nil)
}

// MarkDone handles PUT /todos/mark-done/{todoId}.
func (h *TodoHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	h.simple(w, r, h.todos.MarkDone, service.MsgDone)
}

// ToggleReminder handles PUT /todos/toggle-reminder/{todoId}.
func (h *TodoHandler) ToggleReminder(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}
	id, ok := todoIDOrAbort(w, r)
	if !ok {
		return
	}

	on, err := h.todos.ToggleReminder(r.Context(), p, id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	message := service.MsgReminderOff
	if on {
		message = service.MsgReminderOn
	}
	shared.RespondSuccess(w, r, http.StatusOK, message, nil)
}

// Restore handles PUT /todos/restore-todo/{todoId}.
func (h *TodoHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.simple(w, r, h.todos.Restore, service.MsgTaskRestored)
}

// Trash handles DELETE /todos/trash/{todoId}.
func (h *TodoHandler) Trash(w http.ResponseWriter, r *http.Request) {
	h.simple(w, r, h.todos.Trash, service.MsgMovedToTrash)
}

// Delete handles DELETE /todos/{todoId}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.simple(w, r, h.todos.PermanentDelete, service.MsgDeleted)
}

// simple runs an id-scoped operation that answers with a message only.
func (h *TodoHandler) simple(w http.ResponseWriter, r *http.Request, op todoOp, message string) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}
	id, ok := todoIDOrAbort(w, r)
	if !ok {
		return
	}

	if err := op(r.Context(), p, id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, message, nil)
}
