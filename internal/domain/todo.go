package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReminderInterval is the recurrence cadence of a todo reminder.
type ReminderInterval string

// Possible reminder intervals. The minute cadence is stored as "min".
const (
	ReminderMinute  ReminderInterval = "min"
	ReminderHourly  ReminderInterval = "hourly"
	ReminderDaily   ReminderInterval = "daily"
	ReminderWeekly  ReminderInterval = "weekly"
	ReminderMonthly ReminderInterval = "monthly"
	ReminderYearly  ReminderInterval = "yearly"
)

// DefaultReminderInterval is applied when a todo is created without one.
const DefaultReminderInterval = ReminderDaily

// ReminderIntervals lists every interval in cadence order.
var ReminderIntervals = []ReminderInterval{
	ReminderMinute,
	ReminderHourly,
	ReminderDaily,
	ReminderWeekly,
	ReminderMonthly,
	ReminderYearly,
}

// Valid reports whether i is a known interval.
func (i ReminderInterval) Valid() bool {
	for _, known := range ReminderIntervals {
		if i == known {
			return true
		}
	}
	return false
}

// ParseReminderInterval parses an interval name; "minute" is accepted for "min".
func ParseReminderInterval(s string) (ReminderInterval, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "minute" {
		return ReminderMinute, nil
	}
	i := ReminderInterval(s)
	if !i.Valid() {
		return "", ErrInvalidReminderInterval
	}
	return i, nil
}

// Todo validation errors
var (
	ErrEmptyTodoID          = errors.New("todo ID cannot be empty")
	ErrEmptyTodoOwner       = errors.New("todo owner cannot be empty")
	ErrEmptyTodoTitle       = errors.New("title field is required")
	ErrEmptyTodoDescription = errors.New("description field is required")
)

// Todo is a task owned by exactly one user.
type Todo struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	UserID           uuid.UUID        `json:"user"`
	IsDone           bool             `json:"isDone"`
	IsDeleted        bool             `json:"isDeleted"`
	Reminder         bool             `json:"reminder"`
	ReminderInterval ReminderInterval `json:"reminderInterval"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// NewTodo creates an active todo for the owner. Reminders are on by default
// and an empty interval falls back to DefaultReminderInterval.
func NewTodo(
	userID uuid.UUID,
	title, description string,
	reminder bool,
	interval ReminderInterval,
) (*Todo, error) {
	if interval == "" {
		interval = DefaultReminderInterval
	}

	now := time.Now().UTC()
	todo := &Todo{
		ID:               uuid.New(),
		Title:            strings.TrimSpace(title),
		Description:      strings.TrimSpace(description),
		UserID:           userID,
		Reminder:         reminder,
		ReminderInterval: interval,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}
	return todo, nil
}

// Validate checks if the Todo has valid data.
func (t *Todo) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTodoID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTodoOwner
	}
	if t.Title == "" {
		return ErrEmptyTodoTitle
	}
	if t.Description == "" {
		return ErrEmptyTodoDescription
	}
	if !t.ReminderInterval.Valid() {
		return ErrInvalidReminderInterval
	}
	return nil
}

// OwnedBy reports whether the todo belongs to userID.
func (t *Todo) OwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

// TodoPatch carries the fields of a partial update. Nil fields are left untouched.
type TodoPatch struct {
	Title            *string
	Description      *string
	IsDone           *bool
	ReminderInterval *ReminderInterval
}

// Apply writes the present, non-empty fields of p onto t and reports whether
// anything changed.
func (t *Todo) Apply(p TodoPatch) bool {
	changed := false
	if p.Title != nil {
		if v := strings.TrimSpace(*p.Title); v != "" && v != t.Title {
			t.Title = v
			changed = true
		}
	}
	if p.Description != nil {
		if v := strings.TrimSpace(*p.Description); v != "" && v != t.Description {
			t.Description = v
			changed = true
		}
	}
	if p.IsDone != nil && *p.IsDone != t.IsDone {
		t.IsDone = *p.IsDone
		changed = true
	}
	if p.ReminderInterval != nil && *p.ReminderInterval != "" && *p.ReminderInterval != t.ReminderInterval {
		t.ReminderInterval = *p.ReminderInterval
		changed = true
	}
	if changed {
		t.Touch()
	}
	return changed
}

// Touch bumps the update timestamp.
func (t *Todo) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// TodoFilter selects one of the listing views for an owner.
// Deleted flips the base view to the trash; Done, when set, narrows by completion.
type TodoFilter struct {
	Deleted bool
	Done    *bool
}

// ReminderTarget is a todo due for a reminder joined with its owner's contact data.
type ReminderTarget struct {
	TodoID   uuid.UUID
	Title    string
	Interval ReminderInterval
	UserID   uuid.UUID
	Email    string
	Username string
}
