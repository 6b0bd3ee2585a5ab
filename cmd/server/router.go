package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Msdoshack/2do/internal/api"
	apiMiddleware "github.com/Msdoshack/2do/internal/api/middleware"
	"github.com/Msdoshack/2do/internal/api/shared"
	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/platform/metrics"
	"github.com/Msdoshack/2do/internal/redact"
	"github.com/Msdoshack/2do/internal/service"
	"github.com/Msdoshack/2do/internal/service/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// healthChecker reports whether a backing dependency is reachable.
type healthChecker interface {
	PingContext(ctx context.Context) error
}

type routerDeps struct {
	logger   *slog.Logger
	tokens   auth.JWTService
	accounts service.AccountService
	todos    service.TodoService
	metrics  *metrics.Metrics
	limiter  apiMiddleware.Limiter
	health   healthChecker
}

// newRouter creates the application router with all routes and middleware.
func newRouter(deps routerDeps) http.Handler {
	if deps.logger == nil {
		deps.logger = slog.Default()
	}

	// typed nils would defeat the middlewares' nil checks
	var observed apiMiddleware.HTTPRecorder
	var limited apiMiddleware.RateLimitRecorder
	if deps.metrics != nil {
		observed = deps.metrics
		limited = deps.metrics
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(deps.logger))
	r.Use(apiMiddleware.Metrics(observed))

	authHandler := api.NewAuthHandler(deps.accounts, deps.logger)
	todoHandler := api.NewTodoHandler(deps.todos, deps.logger)
	userHandler := api.NewUserHandler(deps.accounts, deps.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.tokens, deps.accounts)
	adminOnly := apiMiddleware.RequireRole(domain.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiMiddleware.RateLimit(deps.limiter, limited))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/verify-sign-up", authHandler.VerifySignUp)
			r.Post("/sign-in", authHandler.SignIn)
			r.With(authMiddleware.Authenticate).Post("/password-check", authHandler.PasswordCheck)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/todos", func(r chi.Router) {
				r.With(adminOnly).Get("/", todoHandler.ListAll)
				r.Post("/", todoHandler.Create)
				r.Get("/user/todo", todoHandler.ListMine)
				r.Put("/mark-done/{todoId}", todoHandler.MarkDone)
				r.Put("/toggle-reminder/{todoId}", todoHandler.ToggleReminder)
				r.Put("/restore-todo/{todoId}", todoHandler.Restore)
				r.Delete("/trash/{todoId}", todoHandler.Trash)
				r.Get("/{todoId}", todoHandler.Get)
				r.Put("/{todoId}", todoHandler.Update)
				r.Delete("/{todoId}", todoHandler.Delete)
			})

			r.Route("/users", func(r chi.Router) {
				r.With(adminOnly).Get("/", userHandler.List)
				r.Get("/single-user", userHandler.SingleUser)
				r.Post("/verify-email", userHandler.VerifyEmail)
				r.Patch("/update-email", userHandler.UpdateEmail)
				r.Patch("/change-password", userHandler.ChangePassword)
				r.Put("/{userId}", userHandler.Update)
				r.With(adminOnly).Delete("/{userId}", userHandler.Delete)
			})
		})
	})

	r.Get("/health", healthHandler(deps.health, deps.logger))
	if deps.metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.metrics.Handler())
	}

	return r
}

// healthHandler answers 200 when the database responds and 503 otherwise.
func healthHandler(checker healthChecker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := checker.PingContext(ctx); err != nil {
				logger.Error("health check failed", redact.ErrorAttr(err))
				shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
