package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/Msdoshack/2do/internal/api/shared"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"github.com/Msdoshack/2do/internal/platform/redis"
	"github.com/Msdoshack/2do/internal/redact"
)

// MsgRateLimited is the error returned to throttled clients.
const MsgRateLimited = "rate limit exceeded"

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (redis.Decision, error)
}

// RateLimitRecorder counts throttled requests.
type RateLimitRecorder interface {
	RateLimited()
}

// RateLimit throttles requests per client IP. Limiter errors let the request
// through.
func RateLimit(limiter Limiter, recorder RateLimitRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			decision, err := limiter.Allow(ctx, clientKey(r))
			if err != nil {
				logger.FromContext(ctx).Warn("rate limiter unavailable", redact.ErrorAttr(err))
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				if recorder != nil {
					recorder.RateLimited()
				}
				seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				shared.RespondWithError(w, r, http.StatusTooManyRequests, MsgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller by IP. RemoteAddr has already been
// rewritten by chi's RealIP when the server sits behind a proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
