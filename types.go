package goalkeeper

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/obafemio/goalkeeper/internal/audit"
)

// PrincipalRecord is the identity record returned by [PrincipalStore].
// It is owned by the external user store and read-only to this module.
type PrincipalRecord struct {
	ID           string
	Identifier   string
	PasswordHash string
	Admin        bool
}

// CreatePrincipalInput is the input for [PrincipalStore.Create].
type CreatePrincipalInput struct {
	Identifier   string
	PasswordHash string
	Admin        bool
}

// PrincipalStore is the interface callers implement to connect the engine
// to their user database. GetByIdentifier must return
// [ErrPrincipalNotFound] for unknown identifiers and Create must return
// [ErrPrincipalExists] on identifier collision; any other error is treated
// as the store being unreachable.
type PrincipalStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (PrincipalRecord, error)
	Create(ctx context.Context, input CreatePrincipalInput) (PrincipalRecord, error)
}

// CredentialVerifier checks a plaintext credential against a stored hash.
// A mismatch is (false, nil); errors are reserved for malformed hashes or
// backend failures.
type CredentialVerifier interface {
	Verify(plain, hash string) (bool, error)
}

// CredentialHasher extends [CredentialVerifier] with hashing, required
// only by [Engine.CreateAccount].
type CredentialHasher interface {
	CredentialVerifier
	Hash(plain string) (string, error)
}

// AuthResult is the verified request identity produced by
// [Engine.Validate] and [Engine.ValidateRequest].
type AuthResult struct {
	PrincipalID string
	Admin       bool
	SessionID   string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// LoginResult is returned by [Engine.Login].
type LoginResult struct {
	Token       string
	PrincipalID string
	Admin       bool
	ExpiresAt   time.Time
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
