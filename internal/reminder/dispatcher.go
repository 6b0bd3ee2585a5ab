package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/notify"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"github.com/Msdoshack/2do/internal/redact"
)

// Source lists the todos due for a reminder.
type Source interface {
	ListDueReminders(ctx context.Context, interval domain.ReminderInterval) ([]domain.ReminderTarget, error)
}

// Recorder receives reminder outcomes. *metrics.Metrics implements it.
type Recorder interface {
	ReminderSent(interval string)
	ReminderFailed(interval string)
	ReminderBatch(interval string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ReminderSent(string)                 {}
func (nopRecorder) ReminderFailed(string)               {}
func (nopRecorder) ReminderBatch(string, time.Duration) {}

// Result summarizes one batch.
type Result struct {
	Sent    int
	Skipped int
	Failed  int
}

// Dispatcher sends the reminders of one interval per Run.
type Dispatcher struct {
	source   Source
	notifier notify.Notifier
	baseURL  string
	recorder Recorder
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher. Links in reminder emails point at
// baseURL + "/todos/<id>". A nil recorder discards outcomes.
func NewDispatcher(
	source Source,
	notifier notify.Notifier,
	baseURL string,
	recorder Recorder,
	logger *slog.Logger,
) (*Dispatcher, error) {
	if source == nil {
		return nil, domain.NewValidationError("source", "cannot be nil", domain.ErrValidation)
	}
	if notifier == nil {
		return nil, domain.NewValidationError("notifier", "cannot be nil", domain.ErrValidation)
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		source:   source,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
		recorder: recorder,
		logger:   logger.With(slog.String("component", "reminder_dispatcher")),
	}, nil
}

// Run sends one reminder per due todo of interval. Targets without an owner
// email are skipped. A failed send is logged and counted and the batch goes on;
// only a failure to load the batch is returned.
func (d *Dispatcher) Run(ctx context.Context, interval domain.ReminderInterval) (Result, error) {
	log := logger.FromContextOrDefault(ctx, d.logger).With(slog.String("interval", string(interval)))
	start := time.Now()
	defer func() { d.recorder.ReminderBatch(string(interval), time.Since(start)) }()

	log.Debug("checking for reminders")

	targets, err := d.source.ListDueReminders(ctx, interval)
	if err != nil {
		log.Error("failed to load reminders", redact.ErrorAttr(err))
		return Result{}, fmt.Errorf("load %s reminders: %w", interval, err)
	}

	var res Result
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if strings.TrimSpace(target.Email) == "" {
			res.Skipped++
			continue
		}

		err := d.notifier.SendReminder(ctx, notify.Reminder{
			To:       target.Email,
			Username: target.Username,
			Title:    target.Title,
			Link:     d.Link(target),
		})
		if err != nil {
			res.Failed++
			d.recorder.ReminderFailed(string(interval))
			log.Error("failed to send reminder",
				slog.String("todo_id", target.TodoID.String()),
				redact.ErrorAttr(err))
			continue
		}
		res.Sent++
		d.recorder.ReminderSent(string(interval))
	}

	log.Info("reminder batch finished",
		slog.Int("sent", res.Sent),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed))
	return res, nil
}

// Link returns the deep link to target's todo.
func (d *Dispatcher) Link(target domain.ReminderTarget) string {
	return d.baseURL + "/todos/" + target.TodoID.String()
}
