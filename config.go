package goalkeeper

import (
	"errors"
	"fmt"
	"time"
)

// LimiterLogin is the limiter type guarding the login operation.
const LimiterLogin = "auth_login"

// Config defines engine behavior. Instances are configured during
// initialization and treated as immutable after [Builder.Build].
type Config struct {
	Token     TokenConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

// TokenConfig holds signing parameters for issued tokens.
type TokenConfig struct {
	// SecretKey is the shared HMAC signing key. Required, 16 bytes minimum.
	SecretKey []byte
	// TTL is the token lifetime, also used as the session record TTL.
	TTL time.Duration
	// Issuer, when set, is stamped into and required from every token.
	Issuer string
	// Leeway tolerates clock skew during expiry checks (max two minutes).
	Leeway time.Duration
}

// SessionConfig controls the session registry key layout.
type SessionConfig struct {
	RedisPrefix string
}

// RateLimitRule bounds one limiter type: Limit attempts per Window.
type RateLimitRule struct {
	Window time.Duration
	Limit  int
}

// RateLimitConfig is the static limiter table plus key layout.
type RateLimitConfig struct {
	RedisPrefix string
	Rules       map[string]RateLimitRule
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process metrics collection.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: 6h tokens, login
// limited to 10 attempts per hour, metrics on, audit off.
func DefaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TTL: 6 * time.Hour,
		},
		Session: SessionConfig{
			RedisPrefix: "session",
		},
		RateLimit: RateLimitConfig{
			RedisPrefix: "ratelimit",
			Rules: map[string]RateLimitRule{
				LimiterLogin: {Window: time.Hour, Limit: 10},
			},
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if len(c.Token.SecretKey) < 16 {
		return errors.New("config: token secret key must be at least 16 bytes")
	}
	if c.Token.TTL <= 0 {
		return errors.New("config: token TTL must be positive")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("config: token leeway out of range")
	}
	if c.Session.RedisPrefix == "" {
		return errors.New("config: session redis prefix required")
	}
	if c.RateLimit.RedisPrefix == "" {
		return errors.New("config: rate limit redis prefix required")
	}
	if _, ok := c.RateLimit.Rules[LimiterLogin]; !ok {
		return errors.New("config: rate limit table must define the login limiter")
	}
	for name, rule := range c.RateLimit.Rules {
		if name == "" {
			return errors.New("config: rate limit table contains empty limiter name")
		}
		if rule.Window <= 0 || rule.Limit <= 0 {
			return fmt.Errorf("config: limiter %q window and limit must be positive", name)
		}
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("config: audit buffer size must be positive when audit is enabled")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.SecretKey = append([]byte(nil), cfg.Token.SecretKey...)
	out.RateLimit.Rules = make(map[string]RateLimitRule, len(cfg.RateLimit.Rules))
	for name, rule := range cfg.RateLimit.Rules {
		out.RateLimit.Rules[name] = rule
	}
	return out
}
