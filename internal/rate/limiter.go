package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rule bounds one limiter type: at most Limit attempts per fixed Window.
type Rule struct {
	Window time.Duration
	Limit  int
}

// The counter increment and its window TTL must land as one indivisible
// store operation, or two racing first attempts could leave a counter
// without expiry. INCR returns the post-increment count, so the caller
// gets check-and-increment in a single round trip.
const checkAndIncrScript = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`

var checkAndIncrLua = redis.NewScript(checkAndIncrScript)

var (
	// ErrRateLimited is returned when an identifier exhausted its window budget.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps transport-level Redis failures.
	ErrRedisUnavailable = errors.New("redis unavailable")
	// ErrUnknownLimiter marks a limiter type missing from the rules table.
	ErrUnknownLimiter = errors.New("unknown limiter type")
)

// Limiter enforces fixed-window attempt budgets per (type, identifier)
// pair using Redis counters.
type Limiter struct {
	redis  redis.UniversalClient
	prefix string
	rules  map[string]Rule
}

// New creates a [Limiter] with a static rules table. The table is copied;
// later mutation of rules by the caller has no effect.
func New(client redis.UniversalClient, prefix string, rules map[string]Rule) (*Limiter, error) {
	copied := make(map[string]Rule, len(rules))
	for name, rule := range rules {
		if name == "" {
			return nil, errors.New("empty limiter type name")
		}
		if rule.Window <= 0 || rule.Limit <= 0 {
			return nil, fmt.Errorf("limiter %q: window and limit must be positive", name)
		}
		copied[name] = rule
	}
	return &Limiter{redis: client, prefix: prefix, rules: copied}, nil
}

func (l *Limiter) key(limiterType, identifier string) string {
	return l.prefix + ":" + limiterType + "_" + identifier
}

// CheckAndIncrement counts one attempt for (limiterType, identifier) and
// fails closed with [ErrRateLimited] once the window budget is exhausted.
// The first attempt in a window creates the counter with TTL = Window.
//
//	Performance: 1 Lua EVALSHA (atomic increment + conditional expire).
func (l *Limiter) CheckAndIncrement(ctx context.Context, limiterType, identifier string) error {
	rule, ok := l.rules[limiterType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLimiter, limiterType)
	}
	if identifier == "" {
		return errors.New("empty rate limit identifier")
	}

	count, err := checkAndIncrLua.Run(
		ctx,
		l.redis,
		[]string{l.key(limiterType, identifier)},
		rule.Window.Milliseconds(),
	).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	if count > int64(rule.Limit) {
		return ErrRateLimited
	}
	return nil
}

// Reset deletes the counter outright so prior attempts in the current
// window no longer count against the identifier.
//
//	Performance: 1 Redis DEL.
func (l *Limiter) Reset(ctx context.Context, limiterType, identifier string) error {
	if _, ok := l.rules[limiterType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLimiter, limiterType)
	}
	if err := l.redis.Del(ctx, l.key(limiterType, identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Attempts returns the current counter value. Missing keys return zero
// and do not reveal identifier existence.
func (l *Limiter) Attempts(ctx context.Context, limiterType, identifier string) (int, error) {
	count, err := l.redis.Get(ctx, l.key(limiterType, identifier)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}
	return int(count), nil
}
