package goalkeeper

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the recognized YAML configuration surface:
//
//	secretKey: "..."
//	tokenTtl: "6h"
//	rateLimitTable:
//	  auth_login: {windowSeconds: 3600, limit: 10}
type fileConfig struct {
	SecretKey      string                  `yaml:"secretKey"`
	TokenTTL       string                  `yaml:"tokenTtl"`
	Issuer         string                  `yaml:"issuer"`
	RateLimitTable map[string]fileRateRule `yaml:"rateLimitTable"`
}

type fileRateRule struct {
	WindowSeconds int `yaml:"windowSeconds"`
	Limit         int `yaml:"limit"`
}

// LoadConfig reads a YAML configuration file and overlays it onto
// [DefaultConfig]. The result is validated.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration bytes over [DefaultConfig].
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg := DefaultConfig()
	if fc.SecretKey != "" {
		cfg.Token.SecretKey = []byte(fc.SecretKey)
	}
	if fc.TokenTTL != "" {
		ttl, err := time.ParseDuration(fc.TokenTTL)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse tokenTtl: %w", err)
		}
		cfg.Token.TTL = ttl
	}
	if fc.Issuer != "" {
		cfg.Token.Issuer = fc.Issuer
	}
	if len(fc.RateLimitTable) > 0 {
		rules := make(map[string]RateLimitRule, len(fc.RateLimitTable))
		for name, rule := range fc.RateLimitTable {
			rules[name] = RateLimitRule{
				Window: time.Duration(rule.WindowSeconds) * time.Second,
				Limit:  rule.Limit,
			}
		}
		// The login limiter survives unless explicitly overridden.
		if _, ok := rules[LimiterLogin]; !ok {
			rules[LimiterLogin] = cfg.RateLimit.Rules[LimiterLogin]
		}
		cfg.RateLimit.Rules = rules
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
