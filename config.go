package authcore

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/plateful/authcore/token"
)

// Config holds the immutable settings of a Service. Zero values fall back
// to the defaults below; Validate is called by Build and enforces startup
// policy, most importantly that a process without a signing secret refuses
// to start.
type Config struct {
	Token      TokenConfig
	Password   PasswordConfig
	Revocation RevocationConfig
}

// TokenConfig configures the token issuer and verifier.
type TokenConfig struct {
	// Secret is the HS256 signing key. Required; must be at least 32 bytes.
	Secret []byte

	// TTL is the token lifetime. Default one hour.
	TTL time.Duration

	// Issuer, when set, is stamped and enforced as the iss claim.
	Issuer string

	// Leeway tolerates clock skew during verification. Default zero.
	Leeway time.Duration
}

// PasswordConfig configures the bcrypt hasher.
type PasswordConfig struct {
	// Cost is the bcrypt work factor. Default 10.
	Cost int
}

// RevocationConfig configures the revocation registry and its sweep.
type RevocationConfig struct {
	// SweepInterval is how often expired entries are pruned. Default one
	// hour, which bounds registry memory to the revocations of one token
	// lifetime window.
	SweepInterval time.Duration

	// RedisPrefix namespaces registry keys when a Redis client is used.
	// Default "authcore".
	RedisPrefix string
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TTL: time.Hour,
		},
		Password: PasswordConfig{
			Cost: 10,
		},
		Revocation: RevocationConfig{
			SweepInterval: time.Hour,
			RedisPrefix:   "authcore",
		},
	}
}

func (c *Config) applyDefaults() {
	d := defaultConfig()
	if c.Token.TTL == 0 {
		c.Token.TTL = d.Token.TTL
	}
	if c.Password.Cost == 0 {
		c.Password.Cost = d.Password.Cost
	}
	if c.Revocation.SweepInterval == 0 {
		c.Revocation.SweepInterval = d.Revocation.SweepInterval
	}
	if c.Revocation.RedisPrefix == "" {
		c.Revocation.RedisPrefix = d.Revocation.RedisPrefix
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if len(c.Token.Secret) == 0 {
		return errors.New("Token Secret is required")
	}
	if len(c.Token.Secret) < token.MinSecretBytes {
		return errors.New("Token Secret must be at least 32 bytes")
	}
	if c.Token.TTL <= 0 {
		return errors.New("Token TTL must be > 0")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("Token Leeway must be between 0 and 2m")
	}
	if c.Password.Cost < bcrypt.MinCost || c.Password.Cost > bcrypt.MaxCost {
		return errors.New("Password Cost is out of the bcrypt range")
	}
	if c.Revocation.SweepInterval <= 0 {
		return errors.New("Revocation SweepInterval must be > 0")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.Secret = cloneBytes(cfg.Token.Secret)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
