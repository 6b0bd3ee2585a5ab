package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/mocks"
	"github.com/Msdoshack/2do/internal/service"
	"github.com/Msdoshack/2do/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTodoService(t *testing.T) (service.TodoService, *mocks.MockTodoStore) {
	t.Helper()
	todos := new(mocks.MockTodoStore)
	svc, err := service.NewTodoService(todos, nil)
	require.NoError(t, err)
	t.Cleanup(func() { todos.AssertExpectations(t) })
	return svc, todos
}

func userPrincipal() service.Principal {
	return service.Principal{AccountID: uuid.New(), Role: domain.RoleUser}
}

func ownedTodo(t *testing.T, owner uuid.UUID) *domain.Todo {
	t.Helper()
	todo, err := domain.NewTodo(owner, "buy milk", "two litres", true, domain.ReminderDaily)
	require.NoError(t, err)
	return todo
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestNewTodoService_NilStore(t *testing.T) {
	t.Parallel()
	_, err := service.NewTodoService(nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseTodoID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, err := service.ParseTodoID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = service.ParseTodoID("")
	assertKind(t, err, service.KindValidation, service.MsgTodoIDMissing)

	_, err = service.ParseTodoID("not-a-uuid")
	assertKind(t, err, service.KindValidation, service.MsgInvalidID)
}

func TestTodoService_Create(t *testing.T) {
	t.Parallel()

	t.Run("applies reminder defaults", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		p := userPrincipal()
		todos.On("Create", ctx, mock.AnythingOfType("*domain.Todo")).Return(nil)

		todo, err := svc.Create(ctx, p, service.CreateTodoInput{Title: " buy milk ", Description: "two litres"})
		require.NoError(t, err)
		assert.Equal(t, "buy milk", todo.Title)
		assert.Equal(t, p.AccountID, todo.UserID)
		assert.True(t, todo.Reminder)
		assert.Equal(t, domain.ReminderDaily, todo.ReminderInterval)
		assert.False(t, todo.IsDone)
		assert.False(t, todo.IsDeleted)
	})

	t.Run("explicit reminder settings", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		todos.On("Create", ctx, mock.Anything).Return(nil)

		todo, err := svc.Create(ctx, userPrincipal(), service.CreateTodoInput{
			Title:            "stretch",
			Description:      "ten minutes",
			Reminder:         boolPtr(false),
			ReminderInterval: "minute",
		})
		require.NoError(t, err)
		assert.False(t, todo.Reminder)
		assert.Equal(t, domain.ReminderMinute, todo.ReminderInterval)
	})

	t.Run("duplicate title", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		todos.On("Create", ctx, mock.Anything).Return(store.ErrTitleExists)

		_, err := svc.Create(ctx, userPrincipal(), service.CreateTodoInput{Title: "a", Description: "b"})
		assertKind(t, err, service.KindConflict, service.MsgTitleTaken)
	})

	invalid := []struct {
		name string
		in   service.CreateTodoInput
	}{
		{"missing title", service.CreateTodoInput{Description: "b"}},
		{"missing description", service.CreateTodoInput{Title: "a"}},
		{"unknown interval", service.CreateTodoInput{Title: "a", Description: "b", ReminderInterval: "fortnightly"}},
	}
	for _, tc := range invalid {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, _ := newTodoService(t)
			_, err := svc.Create(context.Background(), userPrincipal(), tc.in)
			assertKind(t, err, service.KindValidation, "")
		})
	}
}

func TestTodoService_List(t *testing.T) {
	t.Parallel()

	svc, todos := newTodoService(t)
	ctx := context.Background()
	p := userPrincipal()
	page := []*domain.Todo{ownedTodo(t, p.AccountID)}

	filter := domain.TodoFilter{Deleted: false, Done: boolPtr(true)}
	todos.On("List", ctx, p.AccountID, filter, service.PageSize, 20).Return(page, nil)

	got, err := svc.List(ctx, p, service.ListQuery{Done: boolPtr(true), Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, page, got)

	_, err = svc.List(ctx, p, service.ListQuery{Offset: -1})
	assertKind(t, err, service.KindValidation, "")
}

func TestTodoService_ListAll(t *testing.T) {
	t.Parallel()

	svc, todos := newTodoService(t)
	ctx := context.Background()
	todos.On("ListAll", ctx).Return([]*domain.Todo{}, nil)

	_, err := svc.ListAll(ctx, userPrincipal())
	assertKind(t, err, service.KindForbidden, service.MsgAdminOnly)

	got, err := svc.ListAll(ctx, service.Principal{AccountID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTodoService_Get(t *testing.T) {
	t.Parallel()

	svc, todos := newTodoService(t)
	ctx := context.Background()
	owner := userPrincipal()
	todo := ownedTodo(t, owner.AccountID)
	missing := uuid.New()
	todos.On("GetByID", ctx, todo.ID).Return(todo, nil)
	todos.On("GetByID", ctx, missing).Return(nil, store.ErrTodoNotFound)

	got, err := svc.Get(ctx, owner, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)

	_, err = svc.Get(ctx, service.Principal{AccountID: uuid.New(), Role: domain.RoleAdmin}, todo.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, userPrincipal(), todo.ID)
	assertKind(t, err, service.KindForbidden, service.MsgNotPermitted)

	_, err = svc.Get(ctx, owner, missing)
	assertKind(t, err, service.KindNotFound, service.MsgTodoNotFound)
}

func TestTodoService_Update(t *testing.T) {
	t.Parallel()

	t.Run("partial update", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		p := userPrincipal()
		todo := ownedTodo(t, p.AccountID)
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)
		todos.On("Update", ctx, todo).Return(nil)

		got, err := svc.Update(ctx, p, todo.ID, service.UpdateTodoInput{
			Title:            strPtr("buy oat milk"),
			Description:      strPtr(""),
			ReminderInterval: strPtr("weekly"),
		})
		require.NoError(t, err)
		assert.Equal(t, "buy oat milk", got.Title)
		assert.Equal(t, "two litres", got.Description)
		assert.Equal(t, domain.ReminderWeekly, got.ReminderInterval)
	})

	t.Run("no changes skips write", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		p := userPrincipal()
		todo := ownedTodo(t, p.AccountID)
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)

		_, err := svc.Update(ctx, p, todo.ID, service.UpdateTodoInput{Title: strPtr("buy milk")})
		require.NoError(t, err)
		todos.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("non-owner", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		todo := ownedTodo(t, uuid.New())
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)

		_, err := svc.Update(ctx, userPrincipal(), todo.ID, service.UpdateTodoInput{Title: strPtr("x")})
		assertKind(t, err, service.KindForbidden, service.MsgNotPermitted)
	})

	t.Run("renamed onto existing title", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		p := userPrincipal()
		todo := ownedTodo(t, p.AccountID)
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)
		todos.On("Update", ctx, todo).Return(store.ErrTitleExists)

		_, err := svc.Update(ctx, p, todo.ID, service.UpdateTodoInput{Title: strPtr("taken")})
		assertKind(t, err, service.KindConflict, service.MsgTitleTaken)
	})

	t.Run("bad interval", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTodoService(t)
		_, err := svc.Update(context.Background(), userPrincipal(), uuid.New(),
			service.UpdateTodoInput{ReminderInterval: strPtr("sometimes")})
		assertKind(t, err, service.KindValidation, "")
	})
}

func TestTodoService_StateChanges(t *testing.T) {
	t.Parallel()

	t.Run("mark done", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		p := userPrincipal()
		todo := ownedTodo(t, p.AccountID)
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)
		todos.On("Update", ctx, todo).Return(nil).Once()

		require.NoError(t, svc.MarkDone(ctx, p, todo.ID))
		assert.True(t, todo.IsDone)

		// already done: no second write
		require.NoError(t, svc.MarkDone(ctx, p, todo.ID))
	})

	t.Run("toggle reminder", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		p := userPrincipal()
		todo := ownedTodo(t, p.AccountID)
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)
		todos.On("Update", ctx, todo).Return(nil)

		on, err := svc.ToggleReminder(ctx, p, todo.ID)
		require.NoError(t, err)
		assert.False(t, on)

		on, err = svc.ToggleReminder(ctx, p, todo.ID)
		require.NoError(t, err)
		assert.True(t, on)
	})

	t.Run("trash then restore", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		p := userPrincipal()
		todo := ownedTodo(t, p.AccountID)
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)
		todos.On("Update", ctx, todo).Return(nil)

		require.NoError(t, svc.Trash(ctx, p, todo.ID))
		assert.True(t, todo.IsDeleted)

		require.NoError(t, svc.Restore(ctx, p, todo.ID))
		assert.False(t, todo.IsDeleted)
	})

	t.Run("restore active todo is a conflict", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		p := userPrincipal()
		todo := ownedTodo(t, p.AccountID)
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)

		err := svc.Restore(ctx, p, todo.ID)
		assertKind(t, err, service.KindConflict, service.MsgTaskNotDeleted)
	})

	t.Run("restore by non-owner is forbidden before state check", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		todo := ownedTodo(t, uuid.New())
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)

		err := svc.Restore(ctx, userPrincipal(), todo.ID)
		assertKind(t, err, service.KindForbidden, service.MsgNotPermitted)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		t.Parallel()
		svc, todos := newTodoService(t)
		ctx := context.Background()
		p := userPrincipal()
		todo := ownedTodo(t, p.AccountID)
		todos.On("GetByID", ctx, todo.ID).Return(todo, nil)
		todos.On("Update", ctx, todo).Return(errors.New("connection reset"))

		err := svc.Trash(ctx, p, todo.ID)
		assertKind(t, err, service.KindInternal, service.MsgInternal)
	})
}

func TestTodoService_NonOwnerMutations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		trashed bool
		call    func(ctx context.Context, svc service.TodoService, p service.Principal, id uuid.UUID) error
	}{
		{"update", false, func(ctx context.Context, svc service.TodoService, p service.Principal, id uuid.UUID) error {
			_, err := svc.Update(ctx, p, id, service.UpdateTodoInput{Title: strPtr("mine now"), IsDone: boolPtr(true)})
			return err
		}},
		{"mark done", false, func(ctx context.Context, svc service.TodoService, p service.Principal, id uuid.UUID) error {
			return svc.MarkDone(ctx, p, id)
		}},
		{"toggle reminder", false, func(ctx context.Context, svc service.TodoService, p service.Principal, id uuid.UUID) error {
			_, err := svc.ToggleReminder(ctx, p, id)
			return err
		}},
		{"trash", false, func(ctx context.Context, svc service.TodoService, p service.Principal, id uuid.UUID) error {
			return svc.Trash(ctx, p, id)
		}},
		{"restore", true, func(ctx context.Context, svc service.TodoService, p service.Principal, id uuid.UUID) error {
			return svc.Restore(ctx, p, id)
		}},
		{"permanent delete", false, func(ctx context.Context, svc service.TodoService, p service.Principal, id uuid.UUID) error {
			return svc.PermanentDelete(ctx, p, id)
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, todos := newTodoService(t)
			ctx := context.Background()
			todo := ownedTodo(t, uuid.New())
			todo.IsDeleted = tc.trashed
			before := *todo
			todos.On("GetByID", ctx, todo.ID).Return(todo, nil)

			err := tc.call(ctx, svc, userPrincipal(), todo.ID)
			assertKind(t, err, service.KindForbidden, service.MsgNotPermitted)

			todos.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			todos.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			assert.Equal(t, before.IsDone, todo.IsDone)
			assert.Equal(t, before.IsDeleted, todo.IsDeleted)
			assert.Equal(t, before.Reminder, todo.Reminder)
			assert.Equal(t, before, *todo)
		})
	}
}

func TestTodoService_PermanentDelete(t *testing.T) {
	t.Parallel()

	svc, todos := newTodoService(t)
	ctx := context.Background()
	p := userPrincipal()
	todo := ownedTodo(t, p.AccountID)
	stranger := ownedTodo(t, uuid.New())
	missing := uuid.New()

	todos.On("GetByID", ctx, todo.ID).Return(todo, nil)
	todos.On("GetByID", ctx, stranger.ID).Return(stranger, nil)
	todos.On("GetByID", ctx, missing).Return(nil, store.ErrTodoNotFound)
	todos.On("Delete", ctx, todo.ID).Return(nil)

	require.NoError(t, svc.PermanentDelete(ctx, p, todo.ID))
	assertKind(t, svc.PermanentDelete(ctx, p, stranger.ID), service.KindForbidden, service.MsgNotPermitted)
	assertKind(t, svc.PermanentDelete(ctx, p, missing), service.KindNotFound, service.MsgTodoNotFound)
	todos.AssertNotCalled(t, "Delete", ctx, stranger.ID)
}
