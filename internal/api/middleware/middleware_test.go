package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Msdoshack/2do/internal/api/shared"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"github.com/Msdoshack/2do/internal/platform/redis"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestTraceMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	handler := TraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, traceID)
	assert.Contains(t, buf.String(), `"trace_id":"`+traceID+`"`)
	assert.Contains(t, buf.String(), "request started")
}

type fakeLimiter struct {
	decision redis.Decision
	err      error
	keys     []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (redis.Decision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

type countingRecorder struct {
	mu       sync.Mutex
	limited  int
	observed []string
	statuses []int
}

func (c *countingRecorder) RateLimited() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limited++
}

func (c *countingRecorder) ObserveHTTP(route, method string, status int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observed = append(c.observed, method+" "+route)
	c.statuses = append(c.statuses, status)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
}

func TestRateLimit(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		limiter := &fakeLimiter{decision: redis.Decision{Allowed: true}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.7:5123"

		RateLimit(limiter, nil)(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"10.0.0.7"}, limiter.keys)
	})

	t.Run("throttled", func(t *testing.T) {
		limiter := &fakeLimiter{decision: redis.Decision{Allowed: false, RetryAfter: 1500 * time.Millisecond}}
		recorder := &countingRecorder{}
		rec := httptest.NewRecorder()

		RateLimit(limiter, recorder)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), MsgRateLimited)
		assert.Equal(t, 1, recorder.limited)
	})

	t.Run("limiter error fails open", func(t *testing.T) {
		limiter := &fakeLimiter{err: errors.New("redis down")}
		rec := httptest.NewRecorder()

		RateLimit(limiter, nil)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("nil limiter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RateLimit(nil, nil)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	recorder := &countingRecorder{}

	r := chi.NewRouter()
	r.Use(Metrics(recorder))
	r.Get("/todos/{todoId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/plain", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/todos/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plain", nil))

	assert.Equal(t, []string{"GET /todos/{todoId}", "GET /plain"}, recorder.observed)
	assert.Equal(t, []int{http.StatusNotFound, http.StatusOK}, recorder.statuses)
}
