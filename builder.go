package goalkeeper

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/obafemio/goalkeeper/internal/rate"
	"github.com/obafemio/goalkeeper/password"
	"github.com/obafemio/goalkeeper/session"
	"github.com/obafemio/goalkeeper/token"
)

// Builder assembles an [Engine]. Construction is allocation-only until
// Build; no I/O happens before the first Engine call.
type Builder struct {
	config     Config
	redis      redis.UniversalClient
	principals PrincipalStore
	verifier   CredentialVerifier
	auditSink  AuditSink
	built      bool
}

// New starts a builder with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the builder's configuration. The config is cloned;
// later mutation by the caller has no effect.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the shared cache store client used for session records
// and rate-limit counters. Required.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithPrincipalStore sets the external principal store. Required.
func (b *Builder) WithPrincipalStore(store PrincipalStore) *Builder {
	b.principals = store
	return b
}

// WithCredentialVerifier overrides the default bcrypt verifier. If the
// supplied verifier also implements [CredentialHasher], account creation
// stays available; otherwise [Engine.CreateAccount] is disabled.
func (b *Builder) WithCredentialVerifier(v CredentialVerifier) *Builder {
	b.verifier = v
	return b
}

// WithAuditSink sets the audit event consumer. Effective only when
// [AuditConfig.Enabled] is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates the configuration and wires the engine. A builder can
// only be consumed once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already consumed")
	}
	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.principals == nil {
		return nil, errors.New("principal store required")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	codec, err := token.NewCodec(token.Config{
		Secret: b.config.Token.SecretKey,
		TTL:    b.config.Token.TTL,
		Issuer: b.config.Token.Issuer,
		Leeway: b.config.Token.Leeway,
	})
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}

	rules := make(map[string]rate.Rule, len(b.config.RateLimit.Rules))
	for name, rule := range b.config.RateLimit.Rules {
		rules[name] = rate.Rule{Window: rule.Window, Limit: rule.Limit}
	}
	limiter, err := rate.New(b.redis, b.config.RateLimit.RedisPrefix, rules)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	verifier := b.verifier
	var hasher CredentialHasher
	if verifier == nil {
		h, err := password.NewHasher(password.Config{})
		if err != nil {
			return nil, fmt.Errorf("password hasher: %w", err)
		}
		verifier = h
		hasher = h
	} else if h, ok := verifier.(CredentialHasher); ok {
		hasher = h
	}

	// The miss path burns a verification against this hash so unknown
	// identifiers cost the same as wrong passwords.
	dummyHash := "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"
	if hasher != nil {
		if generated, err := hasher.Hash("goalkeeper decoy credential"); err == nil {
			dummyHash = generated
		}
	}

	engine := &Engine{
		config:     b.config,
		codec:      codec,
		sessions:   session.NewRegistry(b.redis, b.config.Session.RedisPrefix, b.config.Token.TTL),
		limiter:    limiter,
		principals: b.principals,
		verifier:   verifier,
		hasher:     hasher,
		audit:      newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics:    NewMetrics(b.config.Metrics),
		dummyHash:  dummyHash,
	}

	b.built = true
	return engine, nil
}
