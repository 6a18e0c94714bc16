package goalkeeper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/obafemio/goalkeeper/session"
)

// BearerToken extracts the credential from an Authorization header value.
// The header must be exactly two fields, a case-insensitive "bearer"
// scheme followed by a non-empty token.
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// ValidateRequest runs the full per-request pipeline against an
// Authorization header value: parse the bearer credential, verify token
// signature and expiry, cross-check the embedded session id against the
// principal's current session record, and optionally require the admin
// flag. Stages short-circuit on first failure.
//
// The pipeline only reads shared state; it never mutates session or
// rate-limit records.
func (e *Engine) ValidateRequest(ctx context.Context, authorization string, requireAdmin bool) (*AuthResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	tok, ok := BearerToken(authorization)
	if !ok {
		e.metrics.Inc(MetricValidateUnauthenticated)
		return nil, fmt.Errorf("%w: missing or malformed authorization header", ErrUnauthenticated)
	}

	return e.Validate(ctx, tok, requireAdmin)
}

// Validate is the header-less form of [Engine.ValidateRequest] for callers
// that already hold the bare token string.
//
// A token is accepted iff its signature verifies, it is unexpired, and its
// embedded session id equals the principal's current session record.
// Cryptographic validity alone is insufficient: a re-login or logout
// rejects older tokens here even though they still verify and have not
// expired.
func (e *Engine) Validate(ctx context.Context, tokenStr string, requireAdmin bool) (*AuthResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	start := time.Now()
	defer func() {
		e.metrics.Observe(MetricValidateLatency, time.Since(start))
	}()

	payload, err := e.codec.Decode(tokenStr)
	if err != nil {
		e.metrics.Inc(MetricValidateUnauthenticated)
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	current, err := e.sessions.Get(ctx, payload.PrincipalID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			e.metrics.Inc(MetricValidateUnauthenticated)
			return nil, fmt.Errorf("%w: no active session", ErrUnauthenticated)
		}
		e.metrics.Inc(MetricStoreError)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if current != payload.SessionID {
		// Session superseded by a newer login or invalidated.
		e.metrics.Inc(MetricValidateUnauthenticated)
		return nil, fmt.Errorf("%w: session superseded", ErrUnauthenticated)
	}

	if requireAdmin && !payload.Admin {
		e.metrics.Inc(MetricValidateUnauthorized)
		return nil, fmt.Errorf("%w: admin access required", ErrUnauthorized)
	}

	e.metrics.Inc(MetricValidateSuccess)
	return &AuthResult{
		PrincipalID: payload.PrincipalID,
		Admin:       payload.Admin,
		SessionID:   payload.SessionID,
		IssuedAt:    payload.IssuedAt,
		ExpiresAt:   payload.ExpiresAt,
	}, nil
}
