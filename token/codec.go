package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned by [Codec.Decode] for any token that cannot be
// accepted: malformed input, signature mismatch, unexpected algorithm,
// missing claims, or expiry.
var ErrInvalid = errors.New("invalid token")

// Config holds the signing parameters for a [Codec].
type Config struct {
	// Secret is the shared HMAC signing key. Required.
	Secret []byte
	// TTL is the token lifetime applied at encode time. Required.
	TTL time.Duration
	// Issuer, when set, is stamped into and required from every token.
	Issuer string
	// Leeway tolerates small clock skew during expiry validation.
	// Zero disables it; values above two minutes are rejected.
	Leeway time.Duration
}

// Payload is the identity carried inside a signed token. It is immutable
// once minted; IssuedAt and ExpiresAt are computed by [Codec.Encode].
type Payload struct {
	PrincipalID string
	Admin       bool
	SessionID   string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

type claims struct {
	Admin bool   `json:"adm,omitempty"`
	SID   string `json:"sid"`
	jwt.RegisteredClaims
}

// Codec encodes and verifies signed, time-limited identity tokens.
// Tokens are self-contained: verification needs only the configured
// secret, never an external lookup.
type Codec struct {
	config Config
}

// NewCodec validates cfg and returns a [Codec].
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < 16 {
		return nil, errors.New("token secret must be at least 16 bytes")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &Codec{config: cfg}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.config.TTL
}

// Encode signs p into a compact token string. IssuedAt and ExpiresAt on p
// are ignored; they are derived from the configured TTL at call time.
func (c *Codec) Encode(p Payload) (string, error) {
	if p.PrincipalID == "" || p.SessionID == "" {
		return "", errors.New("payload missing principal or session id")
	}

	now := time.Now()
	cl := claims{
		Admin: p.Admin,
		SID:   p.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.PrincipalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.config.TTL)),
		},
	}
	if c.config.Issuer != "" {
		cl.Issuer = c.config.Issuer
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.config.Secret)
}

// Decode verifies signature and expiry and returns the embedded payload.
// Any failure is reported as [ErrInvalid]; the concrete cause is wrapped
// for logging but callers must not distinguish causes to clients.
func (c *Codec) Decode(tokenStr string) (*Payload, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if c.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(c.config.Leeway))
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return c.config.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	if cl.Subject == "" || cl.SID == "" {
		return nil, fmt.Errorf("%w: missing identity claims", ErrInvalid)
	}

	p := &Payload{
		PrincipalID: cl.Subject,
		Admin:       cl.Admin,
		SessionID:   cl.SID,
	}
	if cl.IssuedAt != nil {
		p.IssuedAt = cl.IssuedAt.Time
	}
	if cl.ExpiresAt != nil {
		p.ExpiresAt = cl.ExpiresAt.Time
	}

	return p, nil
}
