package reminder_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/mocks"
	"github.com/Msdoshack/2do/internal/notify"
	"github.com/Msdoshack/2do/internal/reminder"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	mu      sync.Mutex
	sent    map[string]int
	failed  map[string]int
	batches int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{sent: map[string]int{}, failed: map[string]int{}}
}

func (r *countingRecorder) ReminderSent(interval string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[interval]++
}

func (r *countingRecorder) ReminderFailed(interval string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[interval]++
}

func (r *countingRecorder) ReminderBatch(string, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches++
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func target(title, email string) domain.ReminderTarget {
	return domain.ReminderTarget{
		TodoID:   uuid.New(),
		Title:    title,
		Interval: domain.ReminderDaily,
		UserID:   uuid.New(),
		Email:    email,
		Username: "bob",
	}
}

func TestNewDispatcher_Validation(t *testing.T) {
	_, err := reminder.NewDispatcher(nil, new(mocks.MockNotifier), "", nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = reminder.NewDispatcher(new(mocks.MockTodoStore), nil, "", nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDispatcher_Run(t *testing.T) {
	ctx := context.Background()
	todos := new(mocks.MockTodoStore)
	notifier := new(mocks.MockNotifier)
	rec := newCountingRecorder()

	ok := target("buy milk", "bob@example.com")
	failing := target("call mom", "carol@example.com")
	orphan := target("no owner", "")

	todos.On("ListDueReminders", ctx, domain.ReminderDaily).
		Return([]domain.ReminderTarget{ok, failing, orphan}, nil)
	notifier.On("SendReminder", ctx, notify.Reminder{
		To:       "bob@example.com",
		Username: "bob",
		Title:    "buy milk",
		Link:     "https://2do.example.com/todos/" + ok.TodoID.String(),
	}).Return(nil)
	notifier.On("SendReminder", ctx, mock.MatchedBy(func(r notify.Reminder) bool {
		return r.To == "carol@example.com"
	})).Return(errors.New("mailbox full"))

	d, err := reminder.NewDispatcher(todos, notifier, "https://2do.example.com/", rec, quietLogger())
	require.NoError(t, err)

	res, err := d.Run(ctx, domain.ReminderDaily)
	require.NoError(t, err)
	assert.Equal(t, reminder.Result{Sent: 1, Skipped: 1, Failed: 1}, res)
	assert.Equal(t, 1, rec.sent["daily"])
	assert.Equal(t, 1, rec.failed["daily"])
	assert.Equal(t, 1, rec.batches)

	todos.AssertExpectations(t)
	notifier.AssertExpectations(t)
	notifier.AssertNumberOfCalls(t, "SendReminder", 2)
}

func TestDispatcher_RunLoadFailure(t *testing.T) {
	ctx := context.Background()
	todos := new(mocks.MockTodoStore)
	notifier := new(mocks.MockNotifier)
	todos.On("ListDueReminders", ctx, domain.ReminderHourly).Return(nil, errors.New("db down"))

	d, err := reminder.NewDispatcher(todos, notifier, "https://2do.example.com", nil, quietLogger())
	require.NoError(t, err)

	_, err = d.Run(ctx, domain.ReminderHourly)
	require.Error(t, err)
	notifier.AssertNotCalled(t, "SendReminder", mock.Anything, mock.Anything)
}

func TestDispatcher_RunEmptyBatch(t *testing.T) {
	ctx := context.Background()
	todos := new(mocks.MockTodoStore)
	todos.On("ListDueReminders", ctx, domain.ReminderYearly).Return([]domain.ReminderTarget{}, nil)

	d, err := reminder.NewDispatcher(todos, new(mocks.MockNotifier), "https://2do.example.com", nil, quietLogger())
	require.NoError(t, err)

	res, err := d.Run(ctx, domain.ReminderYearly)
	require.NoError(t, err)
	assert.Zero(t, res)
}

func TestDispatcher_Link(t *testing.T) {
	d, err := reminder.NewDispatcher(new(mocks.MockTodoStore), new(mocks.MockNotifier), "https://example.com/", nil, nil)
	require.NoError(t, err)

	tg := target("x", "a@b.co")
	assert.Equal(t, "https://example.com/todos/"+tg.TodoID.String(), d.Link(tg))
}
