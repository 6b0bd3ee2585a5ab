package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/Msdoshack/2do/internal/config"
	"github.com/Msdoshack/2do/internal/notify"
	"github.com/Msdoshack/2do/internal/platform/metrics"
	"github.com/Msdoshack/2do/internal/platform/postgres"
	"github.com/Msdoshack/2do/internal/platform/redis"
	"github.com/Msdoshack/2do/internal/redact"
	"github.com/Msdoshack/2do/internal/reminder"
	"github.com/Msdoshack/2do/internal/service"
	"github.com/Msdoshack/2do/internal/service/auth"
	"github.com/Msdoshack/2do/internal/store"
)

// application holds the shared dependencies and owns their shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService
	accounts   service.AccountService
	todos      service.TodoService

	metrics   *metrics.Metrics
	limiter   *redis.RateLimiter
	scheduler *reminder.Scheduler

	// closers run in reverse order on shutdown
	closers []io.Closer
}

// newApplication wires stores, services and background workers.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}
	app.closers = append(app.closers, db)

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	users := postgres.NewPostgresUserStore(db, logger)
	registrations := postgres.NewPostgresRegistrationStore(db, logger)
	todoStore := postgres.NewPostgresTodoStore(db, logger)

	notifier, err := newNotifier(cfg.Email, logger)
	if err != nil {
		return nil, err
	}

	app.accounts, err = service.NewAccountService(service.AccountDeps{
		Users:         users,
		Registrations: registrations,
		Tx:            store.NewDBTransactor(db),
		Hasher:        auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:        app.jwtService,
		Codes:         auth.RandomCodeGenerator{},
		Notifier:      notifier,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	app.todos, err = service.NewTodoService(todoStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo service: %w", err)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.closers = append(app.closers, rdb)
		app.limiter = redis.NewRateLimiter(rdb, cfg.Redis.RateLimit, cfg.Redis.RateBurst, logger)
		logger.Info("rate limiting enabled",
			slog.Float64("rate", cfg.Redis.RateLimit),
			slog.Float64("burst", cfg.Redis.RateBurst))
	} else {
		logger.Warn("redis address not configured, rate limiting disabled")
	}

	if cfg.Reminder.Enabled {
		dispatcher, err := reminder.NewDispatcher(todoStore, notifier, cfg.Reminder.BaseURL, app.metrics, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create reminder dispatcher: %w", err)
		}
		app.scheduler, err = reminder.NewScheduler(dispatcher, cfg.Reminder, reminder.DefaultSchedule, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create reminder scheduler: %w", err)
		}
	}

	logger.Info("application initialized")
	return app, nil
}

// newNotifier sends real email when SMTP is configured and logs otherwise.
func newNotifier(cfg config.EmailConfig, logger *slog.Logger) (notify.Notifier, error) {
	if cfg.SMTPHost == "" {
		logger.Warn("smtp host not configured, emails will only be logged")
		return notify.NewLogNotifier(logger), nil
	}
	n, err := notify.NewEmailNotifier(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create email notifier: %w", err)
	}
	return n, nil
}

// Run starts the background scheduler and serves HTTP until ctx is done.
func (app *application) Run(ctx context.Context) error {
	if app.scheduler != nil {
		app.scheduler.Start()
	}

	deps := routerDeps{
		logger:   app.logger,
		tokens:   app.jwtService,
		accounts: app.accounts,
		todos:    app.todos,
		metrics:  app.metrics,
		health:   app.db,
	}
	if app.limiter != nil {
		deps.limiter = app.limiter
	}
	router := newRouter(deps)

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops background work and releases connections.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.logger.Error("error closing resource", redact.ErrorAttr(err))
		}
	}

	app.logger.Info("application shutdown completed")
}
