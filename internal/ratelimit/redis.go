package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces the counters in redis.
const KeyPrefix = "ratelimit:"

// Increments the window counter and sets its expiry on first use, so the
// check and the increment happen atomically.
const consumeScript = `
local limit = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current >= limit then
    return 0
end

local n = redis.call("INCR", KEYS[1])
if n == 1 then
    redis.call("PEXPIRE", KEYS[1], ttl)
end

return 1
`

// Redis is a RateLimiter shared by every instance using the same redis.
type Redis struct {
	client redis.UniversalClient
	limit  int
	period time.Duration
	script *redis.Script
}

// NewRedis allows limit requests per key in every period.
func NewRedis(client redis.UniversalClient, limit int, period time.Duration) *Redis {
	return &Redis{
		client: client,
		limit:  limit,
		period: period,
		script: redis.NewScript(consumeScript),
	}
}

// TryConsume implements RateLimiter.
func (r *Redis) TryConsume(ctx context.Context, key string) (bool, error) {
	allowed, err := r.script.Run(ctx, r.client, []string{KeyPrefix + key}, r.limit, r.period.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}

	return allowed == 1, nil
}
