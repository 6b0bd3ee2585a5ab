package notify

import (
	"context"
	"log/slog"

	"github.com/Msdoshack/2do/internal/platform/logger"
)

// LogNotifier records notifications in the log instead of sending them.
// It is used when no SMTP server is configured.
type LogNotifier struct {
	logger *slog.Logger
}

var _ Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With(slog.String("component", "log_notifier"))}
}

// SendSignUpCode implements Notifier. The code itself is logged at debug level only.
func (n *LogNotifier) SendSignUpCode(ctx context.Context, to, username, code string) error {
	log := logger.FromContextOrDefault(ctx, n.logger)
	log.Info("sign-up code not delivered, email disabled", slog.String("username", username))
	log.Debug("sign-up code", slog.String("code", code))
	return nil
}

// SendEmailChangeCode implements Notifier.
func (n *LogNotifier) SendEmailChangeCode(ctx context.Context, to, username, code string) error {
	log := logger.FromContextOrDefault(ctx, n.logger)
	log.Info("email change code not delivered, email disabled", slog.String("username", username))
	log.Debug("email change code", slog.String("code", code))
	return nil
}

// SendReminder implements Notifier.
func (n *LogNotifier) SendReminder(ctx context.Context, r Reminder) error {
	logger.FromContextOrDefault(ctx, n.logger).Info("reminder not delivered, email disabled",
		slog.String("title", r.Title),
		slog.String("link", r.Link))
	return nil
}
