package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces the per-client buckets.
const DefaultKeyPrefix = "twodo:ratelimit:"

// tokenBucketLua refills the bucket at KEYS[1] by rate tokens per second up to
// burst, then takes the requested tokens if available. It returns
// {allowed, wait_ms, tokens_left}.
const tokenBucketLua = `
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

if rate <= 0 or burst <= 0 then
  return {1, 0, burst}
end

local data = redis.call("HMGET", key, "tokens", "ts")
local tokens = tonumber(data[1])
local ts = tonumber(data[2])
if tokens == nil then
  tokens = burst
end
if ts == nil then
  ts = now
end

local delta = math.max(0, now - ts)
tokens = math.min(burst, tokens + (delta * rate) / 1000.0)

local allowed = tokens >= requested
local wait_ms = 0
if allowed then
  tokens = tokens - requested
else
  wait_ms = math.ceil((requested - tokens) * 1000.0 / rate)
end

redis.call("HSET", key, "tokens", tostring(tokens), "ts", now)
redis.call("PEXPIRE", key, math.ceil((burst / rate) * 1000.0 * 2))

return {allowed and 1 or 0, wait_ms, math.floor(tokens)}
`

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
	Remaining  int64
}

// RateLimiter is a per-key token bucket stored in Redis, so every API
// instance shares the same budget for a client.
type RateLimiter struct {
	rdb    goredis.Scripter
	prefix string
	rate   float64
	burst  float64
	now    func() time.Time
	script *goredis.Script
	logger *slog.Logger
}

// NewRateLimiter creates a limiter that refills rate tokens per second up to
// burst. A non-positive rate or burst disables limiting.
func NewRateLimiter(rdb goredis.Scripter, rate, burst float64, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimiter{
		rdb:    rdb,
		prefix: DefaultKeyPrefix,
		rate:   rate,
		burst:  burst,
		now:    time.Now,
		script: goredis.NewScript(tokenBucketLua),
		logger: logger.With(slog.String("component", "rate_limiter")),
	}
}

// Allow takes one token from the bucket of key.
func (r *RateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if r == nil || r.rate <= 0 || r.burst <= 0 {
		return Decision{Allowed: true}, nil
	}

	now := r.now().UnixMilli()
	res, err := r.script.Run(ctx, r.rdb, []string{r.prefix + key}, r.rate, r.burst, now, 1).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit eval: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) < 3 {
		return Decision{}, fmt.Errorf("ratelimit invalid result %v", res)
	}

	d := Decision{
		Allowed:    toInt64(values[0]) == 1,
		RetryAfter: time.Duration(toInt64(values[1])) * time.Millisecond,
		Remaining:  toInt64(values[2]),
	}
	if !d.Allowed {
		r.logger.Debug("rate limit exceeded", slog.Duration("retry_after", d.RetryAfter))
	}
	return d, nil
}

func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if parsed, err := strconv.ParseInt(t, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}
