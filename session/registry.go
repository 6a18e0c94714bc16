package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by [Registry.Get] when the principal has no
// active session record.
var ErrNotFound = errors.New("session not found")

// ErrRedisUnavailable wraps transport-level Redis failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Registry tracks the single canonical session id per principal in Redis.
//
// At most one record exists per principal: Register overwrites any prior
// value, which logically invalidates every token minted against the old
// session id. Records expire with the token TTL. All operations are a
// single round trip; last-write-wins ordering between racing Register
// calls is serialized by Redis, not by callers.
type Registry struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRegistry creates a [Registry] keyed under prefix with the given
// record TTL (normally the token TTL).
func NewRegistry(client redis.UniversalClient, prefix string, ttl time.Duration) *Registry {
	return &Registry{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *Registry) key(principalID string) string {
	return r.prefix + ":" + principalID
}

// Register writes or overwrites the principal's session record.
//
//	Performance: 1 Redis SET.
func (r *Registry) Register(ctx context.Context, principalID, sessionID string) error {
	if principalID == "" || sessionID == "" {
		return errors.New("empty principal or session id")
	}
	if err := r.redis.Set(ctx, r.key(principalID), sessionID, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get returns the principal's current session id, or [ErrNotFound] when
// no record exists (never logged in, logged out, or expired).
//
//	Performance: 1 Redis GET.
func (r *Registry) Get(ctx context.Context, principalID string) (string, error) {
	sessionID, err := r.redis.Get(ctx, r.key(principalID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return sessionID, nil
}

// Invalidate deletes the principal's session record. Idempotent: deleting
// an absent record is not an error.
//
//	Performance: 1 Redis DEL.
func (r *Registry) Invalidate(ctx context.Context, principalID string) error {
	if err := r.redis.Del(ctx, r.key(principalID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (r *Registry) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
