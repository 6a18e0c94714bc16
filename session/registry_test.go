package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRegistryTest(t *testing.T) (*Registry, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	reg := NewRegistry(rdb, "session", time.Hour)
	return reg, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestRegisterAndGet(t *testing.T) {
	reg, _, done := newRegistryTest(t)
	defer done()
	ctx := context.Background()

	if err := reg.Register(ctx, "p-1", "s-1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := reg.Get(ctx, "p-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "s-1" {
		t.Fatalf("expected s-1, got %q", got)
	}
}

func TestRegisterOverwritesPriorSession(t *testing.T) {
	reg, _, done := newRegistryTest(t)
	defer done()
	ctx := context.Background()

	if err := reg.Register(ctx, "p-1", "s-old"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := reg.Register(ctx, "p-1", "s-new"); err != nil {
		t.Fatalf("second register: %v", err)
	}

	got, err := reg.Get(ctx, "p-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "s-new" {
		t.Fatalf("expected the newer session to win, got %q", got)
	}
}

func TestRegisterRejectsEmptyIDs(t *testing.T) {
	reg, _, done := newRegistryTest(t)
	defer done()
	ctx := context.Background()

	if err := reg.Register(ctx, "", "s-1"); err == nil {
		t.Fatal("expected empty principal id to fail")
	}
	if err := reg.Register(ctx, "p-1", ""); err == nil {
		t.Fatal("expected empty session id to fail")
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	reg, _, done := newRegistryTest(t)
	defer done()

	if _, err := reg.Get(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInvalidateIsIdempotent(t *testing.T) {
	reg, _, done := newRegistryTest(t)
	defer done()
	ctx := context.Background()

	if err := reg.Register(ctx, "p-1", "s-1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Invalidate(ctx, "p-1"); err != nil {
		t.Fatalf("first invalidate: %v", err)
	}
	if err := reg.Invalidate(ctx, "p-1"); err != nil {
		t.Fatalf("second invalidate: %v", err)
	}
	if _, err := reg.Get(ctx, "p-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after invalidate, got %v", err)
	}
}

func TestRecordExpiresWithTTL(t *testing.T) {
	reg, mr, done := newRegistryTest(t)
	defer done()
	ctx := context.Background()

	if err := reg.Register(ctx, "p-1", "s-1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := reg.Get(ctx, "p-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after TTL expiry, got %v", err)
	}
}

func TestRedisDownWrapsSentinel(t *testing.T) {
	reg, mr, done := newRegistryTest(t)
	defer done()
	ctx := context.Background()

	mr.Close()

	if err := reg.Register(ctx, "p-1", "s-1"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := reg.Get(ctx, "p-1"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := reg.Ping(ctx); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
