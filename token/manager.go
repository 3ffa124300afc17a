// Package token issues and verifies the signed session credentials used by
// the auth core. Tokens are compact JWTs signed with a server-held HS256
// secret; the subject claim is the canonical user identifier and the email
// travels as a custom claim.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// MinSecretBytes is the minimum accepted secret length. 32 bytes gives
	// the 256 bits of entropy HS256 expects.
	MinSecretBytes = 32

	maxLeeway = 2 * time.Minute
)

// ErrNoExpiry is returned by ExpiryOf when a token carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry claim")

// Config holds the immutable signing parameters.
type Config struct {
	// Secret is the HS256 signing key. Required, >= MinSecretBytes.
	Secret []byte

	// TTL is the lifetime stamped into every issued token. Required.
	TTL time.Duration

	// Issuer, when set, is stamped into iss and enforced on verification.
	Issuer string

	// Leeway tolerates small clock skew during verification. Optional,
	// capped at two minutes.
	Leeway time.Duration

	// TimeFunc overrides the clock for issuance and verification.
	// Nil means time.Now. Tests use this to pin expiry behavior.
	TimeFunc func() time.Time
}

// Claims is the decoded token payload.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens. Safe for concurrent use; the
// secret is held behind this single type so a later rotation only has one
// place to touch.
type Manager struct {
	config Config
}

// NewManager validates cfg and returns a Manager. A missing or short secret
// is a hard error: callers are expected to refuse to start.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("signing secret is required")
	}
	if len(cfg.Secret) < MinSecretBytes {
		return nil, errors.New("signing secret must be at least 32 bytes")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("token TTL must be > 0")
	}
	if cfg.Leeway < 0 || cfg.Leeway > maxLeeway {
		return nil, errors.New("invalid leeway configuration")
	}
	if cfg.TimeFunc == nil {
		cfg.TimeFunc = time.Now
	}
	return &Manager{config: cfg}, nil
}

// TTL reports the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.config.TTL
}

// Issue mints a signed token for the given subject. Two calls at different
// instants produce different strings (iat differs), which is what makes
// keying the revocation registry by the full token string meaningful.
func (m *Manager) Issue(subjectID, email string) (string, error) {
	if subjectID == "" {
		return "", errors.New("subject id is required")
	}

	now := m.config.TimeFunc()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
		},
	}
	if m.config.Issuer != "" {
		claims.Issuer = m.config.Issuer
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.config.Secret)
}

// Parse verifies signature and expiry, returning the claims on success.
// jwt/v5 binds the exp check into verification, so an expired token fails
// here the same way a forged one does.
func (m *Manager) Parse(raw string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.config.TimeFunc),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	tok, err := parser.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.config.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ExpiryOf extracts the exp claim without verifying the signature. The
// revocation sweep uses it to decide when a blacklisted entry can be
// dropped; a token that fails to decode here can never verify either.
func ExpiryOf(raw string) (time.Time, error) {
	parser := jwt.NewParser()
	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}
