package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Msdoshack/2do/internal/config"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"gopkg.in/gomail.v2"
)

// Email subjects.
const (
	SubjectSignUp      = "Confirm your 2DO account"
	SubjectEmailChange = "Confirm your new email address"
	reminderPrefix     = "Reminder: "
)

// SendFunc delivers a composed message.
type SendFunc func(m *gomail.Message) error

// EmailNotifier sends notifications over SMTP.
type EmailNotifier struct {
	cfg    config.EmailConfig
	send   SendFunc
	logger *slog.Logger
}

var _ Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier creates an EmailNotifier that dials cfg's SMTP server for
// every message.
func NewEmailNotifier(cfg config.EmailConfig, logger *slog.Logger) (*EmailNotifier, error) {
	if cfg.SMTPHost == "" || cfg.FromEmail == "" {
		return nil, fmt.Errorf("email config missing smtp host or sender")
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	return newEmailNotifier(cfg, func(m *gomail.Message) error {
		return dialer.DialAndSend(m)
	}, logger), nil
}

// NewEmailNotifierWithSender creates an EmailNotifier delivering through send.
func NewEmailNotifierWithSender(cfg config.EmailConfig, send SendFunc, logger *slog.Logger) *EmailNotifier {
	return newEmailNotifier(cfg, send, logger)
}

func newEmailNotifier(cfg config.EmailConfig, send SendFunc, logger *slog.Logger) *EmailNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailNotifier{
		cfg:    cfg,
		send:   send,
		logger: logger.With(slog.String("component", "email_notifier")),
	}
}

// SendSignUpCode implements Notifier.
func (n *EmailNotifier) SendSignUpCode(ctx context.Context, to, username, code string) error {
	return n.deliver(ctx, to, SubjectSignUp, tmplSignUp, templateData{Username: username, Code: code})
}

// SendEmailChangeCode implements Notifier.
func (n *EmailNotifier) SendEmailChangeCode(ctx context.Context, to, username, code string) error {
	return n.deliver(ctx, to, SubjectEmailChange, tmplEmailChange, templateData{Username: username, Code: code})
}

// SendReminder implements Notifier.
func (n *EmailNotifier) SendReminder(ctx context.Context, r Reminder) error {
	return n.deliver(ctx, r.To, ReminderSubject(r.Title), tmplReminder, templateData{
		Username: r.Username,
		Title:    r.Title,
		Link:     r.Link,
	})
}

// ReminderSubject returns the subject line of a reminder for title.
func ReminderSubject(title string) string {
	return reminderPrefix + title
}

func (n *EmailNotifier) deliver(ctx context.Context, to, subject, tmpl string, data templateData) error {
	log := logger.FromContextOrDefault(ctx, n.logger)

	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := render(tmpl, data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.FromEmail, n.fromName())
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.send(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	log.Info("email sent", slog.String("template", tmpl))
	return nil
}

func (n *EmailNotifier) fromName() string {
	if n.cfg.FromName != "" {
		return n.cfg.FromName
	}
	return "2DO"
}
