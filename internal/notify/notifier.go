// Package notify delivers account and reminder emails.
package notify

import "context"

// Reminder is one reminder email for a todo.
type Reminder struct {
	To       string
	Username string
	Title    string
	Link     string
}

// Notifier sends user-facing notifications.
type Notifier interface {
	// SendSignUpCode emails the registration confirmation code.
	SendSignUpCode(ctx context.Context, to, username, code string) error

	// SendEmailChangeCode emails the code confirming an email change.
	SendEmailChangeCode(ctx context.Context, to, username, code string) error

	// SendReminder emails a todo reminder.
	SendReminder(ctx context.Context, r Reminder) error
}
