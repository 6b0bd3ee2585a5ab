package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Msdoshack/2do/internal/api/shared"
	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"github.com/Msdoshack/2do/internal/redact"
	"github.com/Msdoshack/2do/internal/service"
	"github.com/Msdoshack/2do/internal/service/auth"
	"github.com/google/uuid"
)

// PrincipalResolver loads the principal for an authenticated account ID.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, accountID uuid.UUID) (service.Principal, error)
}

// AuthMiddleware provides bearer token authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	resolver   PrincipalResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, resolver PrincipalResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		resolver:   resolver,
	}
}

// Authenticate validates the bearer token, resolves the account it names and
// attaches the resulting principal to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, service.MsgUnauthorized, auth.ErrMissingToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, token)
		if err != nil {
			if !isTokenError(err) {
				logger.FromContext(ctx).Error("failed to validate token", redact.ErrorAttr(err))
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, service.MsgUnauthorized, err)
			return
		}

		principal, err := m.resolver.ResolvePrincipal(ctx, claims.UserID)
		if err != nil {
			status := http.StatusInternalServerError
			if service.KindOf(err) == service.KindUnauthenticated {
				status = http.StatusUnauthorized
			}
			shared.RespondWithErrorAndLog(w, r, status, service.MessageOf(err), err)
			return
		}

		ctx = shared.WithPrincipal(ctx, principal)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(
			slog.String("user_id", principal.AccountID.String())))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects requests whose principal does not hold role.
// It must run after Authenticate.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := shared.PrincipalFrom(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, service.MsgUnauthorized)
				return
			}
			if p.Role != role {
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, service.MsgAdminOnly, nil,
					shared.WithElevatedLogLevel())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func isTokenError(err error) bool {
	return errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, auth.ErrTokenNotYetValid) ||
		errors.Is(err, auth.ErrWrongTokenType)
}
