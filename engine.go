package goalkeeper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/obafemio/goalkeeper/internal"
	"github.com/obafemio/goalkeeper/internal/audit"
	"github.com/obafemio/goalkeeper/internal/rate"
	"github.com/obafemio/goalkeeper/session"
	"github.com/obafemio/goalkeeper/token"
)

// Engine composes the token codec, session registry, rate limiter,
// principal store, and credential verifier behind the login, logout, and
// request-validation operations. Build one Engine at startup via
// [Builder.Build] and share it; all methods are safe for concurrent use.
type Engine struct {
	config     Config
	codec      *token.Codec
	sessions   *session.Registry
	limiter    *rate.Limiter
	principals PrincipalStore
	verifier   CredentialVerifier
	hasher     CredentialHasher
	audit      *audit.Dispatcher
	metrics    *Metrics
	dummyHash  string
}

// Close flushes the audit dispatcher. The engine must not be used after
// Close returns.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
}

// Metrics returns the engine's metrics instance.
func (e *Engine) Metrics() *Metrics {
	if e == nil {
		return nil
	}
	return e.metrics
}

// MetricsSnapshot returns a point-in-time copy of all metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) ready() bool {
	return e != nil &&
		e.codec != nil &&
		e.sessions != nil &&
		e.limiter != nil &&
		e.principals != nil &&
		e.verifier != nil
}

// Login authenticates identifier+password and, on success, issues a fresh
// token bound to a new session that supersedes any prior session for the
// principal.
//
// The login limiter admits the attempt first; once the window budget is
// exhausted every further attempt fails with [ErrRateLimited] regardless
// of credential correctness. Unknown identifiers and wrong passwords
// return the identical [ErrInvalidCredentials] so responses do not reveal
// account existence. A successful login resets the limiter best-effort:
// reset failure is logged, never propagated.
func (e *Engine) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		// Rejected before rate limiting: an empty identifier would fold
		// every malformed request onto a single counter key.
		e.metrics.Inc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	if err := e.limiter.CheckAndIncrement(ctx, LimiterLogin, identifier); err != nil {
		if errors.Is(err, rate.ErrRateLimited) {
			e.metrics.Inc(MetricLoginRateLimited)
			e.emitAudit(ctx, auditEventLoginRateLimited, false, "", "", ErrRateLimited, func() map[string]string {
				return map[string]string{"identifier": identifier}
			})
			return nil, ErrRateLimited
		}
		e.metrics.Inc(MetricStoreError)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	rec, err := e.principals.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			// Burn a verification anyway so the miss path costs the same
			// as a mismatch.
			_, _ = e.verifier.Verify(password, e.dummyHash)
			e.metrics.Inc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLoginFailure, false, "", "", ErrInvalidCredentials, func() map[string]string {
				return map[string]string{"identifier": identifier, "reason": "unknown_identifier"}
			})
			return nil, ErrInvalidCredentials
		}
		e.metrics.Inc(MetricStoreError)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ok, err := e.verifier.Verify(password, rec.PasswordHash)
	if err != nil || !ok {
		e.metrics.Inc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, rec.ID, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"identifier": identifier, "reason": "credential_mismatch"}
		})
		return nil, ErrInvalidCredentials
	}

	sessionID, err := internal.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	mintedAt := time.Now()
	tok, err := e.codec.Encode(token.Payload{
		PrincipalID: rec.ID,
		Admin:       rec.Admin,
		SessionID:   sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("encode token: %w", err)
	}

	if err := e.sessions.Register(ctx, rec.ID, sessionID); err != nil {
		e.metrics.Inc(MetricStoreError)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	e.metrics.Inc(MetricSessionCreated)

	if err := e.limiter.Reset(ctx, LimiterLogin, identifier); err != nil {
		// Best effort: prior failures keep counting for the rest of the
		// window, but the login itself succeeded.
		e.metrics.Inc(MetricLimiterResetFailed)
		log.Print("goalkeeper: login limiter reset failed")
	}

	e.metrics.Inc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, rec.ID, sessionID, nil, nil)

	return &LoginResult{
		Token:       tok,
		PrincipalID: rec.ID,
		Admin:       rec.Admin,
		ExpiresAt:   mintedAt.Add(e.codec.TTL()),
	}, nil
}

// Logout deletes the principal's session record. Every outstanding token
// for the principal is rejected from the next request on, independent of
// its own expiry. Idempotent.
func (e *Engine) Logout(ctx context.Context, principalID string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}
	if principalID == "" {
		return fmt.Errorf("%w: empty principal id", ErrValidation)
	}

	if err := e.sessions.Invalidate(ctx, principalID); err != nil {
		e.metrics.Inc(MetricStoreError)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.metrics.Inc(MetricSessionInvalidated)
	e.metrics.Inc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, principalID, "", nil, nil)
	return nil
}

// CreateAccount registers a new principal in the external store with a
// freshly hashed credential. It does not log the principal in.
func (e *Engine) CreateAccount(ctx context.Context, identifier, password string, admin bool) (*PrincipalRecord, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if e.hasher == nil {
		return nil, fmt.Errorf("%w: no credential hasher configured", ErrEngineNotReady)
	}

	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	hash, err := e.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	rec, err := e.principals.Create(ctx, CreatePrincipalInput{
		Identifier:   identifier,
		PasswordHash: hash,
		Admin:        admin,
	})
	if err != nil {
		if errors.Is(err, ErrPrincipalExists) {
			e.metrics.Inc(MetricAccountCreationDuplicate)
			e.emitAudit(ctx, auditEventAccountCreationDuplicate, false, "", "", ErrPrincipalExists, func() map[string]string {
				return map[string]string{"identifier": identifier}
			})
			return nil, ErrPrincipalExists
		}
		e.metrics.Inc(MetricStoreError)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.metrics.Inc(MetricAccountCreationSuccess)
	e.emitAudit(ctx, auditEventAccountCreationSuccess, true, rec.ID, "", nil, nil)

	rec.PasswordHash = ""
	return &rec, nil
}

// LoginAttempts returns the current login-limiter count for identifier.
// Missing counters report zero and do not reveal account existence.
func (e *Engine) LoginAttempts(ctx context.Context, identifier string) (int, error) {
	if !e.ready() {
		return 0, ErrEngineNotReady
	}
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	count, err := e.limiter.Attempts(ctx, LimiterLogin, identifier)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}
