package goalkeeper_test

import (
	"context"
	"errors"
	"testing"

	goalkeeper "github.com/obafemio/goalkeeper"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc.def.ghi", "abc.def.ghi", true},
		{"BEARER abc.def.ghi", "abc.def.ghi", true},
		{"  Bearer   abc.def.ghi  ", "abc.def.ghi", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Basic abc.def.ghi", "", false},
		{"Bearer abc def", "", false},
		{"abc.def.ghi", "", false},
	}
	for _, tc := range cases {
		token, ok := goalkeeper.BearerToken(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Fatalf("header %q: got (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestValidateRequestMalformedHeader(t *testing.T) {
	env := newTestEnv(t, nil)
	defer env.close()

	for _, header := range []string{"", "Bearer", "Basic xyz", "token-without-scheme"} {
		if _, err := env.engine.ValidateRequest(context.Background(), header, false); !errors.Is(err, goalkeeper.ErrUnauthenticated) {
			t.Fatalf("header %q: expected ErrUnauthenticated, got %v", header, err)
		}
	}
}

func TestValidateRequestFullPipeline(t *testing.T) {
	env := newTestEnv(t, nil)
	defer env.close()
	ctx := context.Background()

	result, err := env.engine.Login(ctx, "alice@example.com", testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	auth, err := env.engine.ValidateRequest(ctx, "Bearer "+result.Token, false)
	if err != nil {
		t.Fatalf("validate request: %v", err)
	}
	if auth.PrincipalID != "p-alice" || !auth.Admin {
		t.Fatalf("unexpected auth result: %+v", auth)
	}
}

func TestValidateRejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t, nil)
	defer env.close()

	if _, err := env.engine.Validate(context.Background(), "not-a-token", false); !errors.Is(err, goalkeeper.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestValidateAdminRequirement(t *testing.T) {
	env := newTestEnv(t, nil)
	defer env.close()
	ctx := context.Background()

	admin, err := env.engine.Login(ctx, "alice@example.com", testPassword)
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	regular, err := env.engine.Login(ctx, "bob@example.com", testPassword)
	if err != nil {
		t.Fatalf("regular login: %v", err)
	}

	if _, err := env.engine.Validate(ctx, admin.Token, true); err != nil {
		t.Fatalf("admin should pass elevated check: %v", err)
	}
	if _, err := env.engine.Validate(ctx, regular.Token, true); !errors.Is(err, goalkeeper.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-admin, got %v", err)
	}
	// The same token still passes the non-elevated check.
	if _, err := env.engine.Validate(ctx, regular.Token, false); err != nil {
		t.Fatalf("non-admin should pass plain check: %v", err)
	}
}

func TestValidateDoesNotMutateState(t *testing.T) {
	env := newTestEnv(t, nil)
	defer env.close()
	ctx := context.Background()

	result, err := env.engine.Login(ctx, "alice@example.com", testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Repeated validation keeps succeeding and never consumes limiter budget.
	for i := 0; i < 20; i++ {
		if _, err := env.engine.Validate(ctx, result.Token, false); err != nil {
			t.Fatalf("validation %d: %v", i+1, err)
		}
	}
	count, err := env.engine.LoginAttempts(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("login attempts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 attempts after validations, got %d", count)
	}
}

func TestValidateFailsClosedWhenRedisDown(t *testing.T) {
	env := newTestEnv(t, nil)
	defer env.close()
	ctx := context.Background()

	result, err := env.engine.Login(ctx, "alice@example.com", testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	env.mr.Close()

	if _, err := env.engine.Validate(ctx, result.Token, false); !errors.Is(err, goalkeeper.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
