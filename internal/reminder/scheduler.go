package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Msdoshack/2do/internal/config"
	"github.com/Msdoshack/2do/internal/domain"
	"github.com/go-co-op/gocron"
)

// DefaultBatchTimeout bounds a single reminder batch.
const DefaultBatchTimeout = 4 * time.Minute

// Runner runs one reminder batch. *Dispatcher implements it.
type Runner interface {
	Run(ctx context.Context, interval domain.ReminderInterval) (Result, error)
}

// Scheduler triggers a Runner on the cron cadence of each schedule entry.
// Jobs run in singleton mode, so a slow batch never overlaps itself.
type Scheduler struct {
	cron    *gocron.Scheduler
	runner  Runner
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	jobs    map[domain.ReminderInterval]*gocron.Job
}

// NewScheduler creates a Scheduler evaluating cron expressions in cfg.Timezone
// and registers every entry of schedule.
func NewScheduler(
	runner Runner,
	cfg config.ReminderConfig,
	schedule []Entry,
	logger *slog.Logger,
) (*Scheduler, error) {
	if runner == nil {
		return nil, domain.NewValidationError("runner", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	tz := cfg.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load reminder timezone %q: %w", tz, err)
	}

	cron := gocron.NewScheduler(loc)
	cron.SingletonModeAll()

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:    cron,
		runner:  runner,
		timeout: DefaultBatchTimeout,
		logger:  logger.With(slog.String("component", "reminder_scheduler")),
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(map[domain.ReminderInterval]*gocron.Job, len(schedule)),
	}

	for _, entry := range schedule {
		if err := s.add(entry); err != nil {
			cancel()
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) add(entry Entry) error {
	if _, exists := s.jobs[entry.Interval]; exists {
		return fmt.Errorf("reminder job for %s already registered", entry.Interval)
	}

	interval := entry.Interval
	job, err := s.cron.Cron(entry.Cron).Tag(string(interval)).Do(func() {
		s.fire(interval)
	})
	if err != nil {
		return fmt.Errorf("schedule %s reminders with %q: %w", interval, entry.Cron, err)
	}
	s.jobs[interval] = job
	return nil
}

// fire runs one batch; it is called by the cron goroutine.
func (s *Scheduler) fire(interval domain.ReminderInterval) {
	s.mu.Lock()
	base := s.ctx
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(base, s.timeout)
	defer cancel()

	if _, err := s.runner.Run(ctx, interval); err != nil {
		s.logger.Error("reminder batch failed",
			slog.String("interval", string(interval)),
			slog.String("error", err.Error()))
	}
}

// Start begins firing jobs in the background. A stopped scheduler can be
// started again; batches then run under a fresh context.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
	s.cron.StartAsync()
	s.running = true
	s.logger.Info("reminder scheduler started", slog.Int("jobs", len(s.jobs)))
}

// Stop cancels in-flight batches and stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.logger.Info("reminder scheduler stopped")
}

// IsRunning reports whether the scheduler has been started and not stopped.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next firing time of the job for interval.
func (s *Scheduler) NextRun(interval domain.ReminderInterval) (time.Time, bool) {
	job, ok := s.jobs[interval]
	if !ok {
		return time.Time{}, false
	}
	return job.NextRun(), true
}
