package token

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = bytes.Repeat([]byte("s"), 32)

func testManager(t *testing.T, mutate func(*Config)) *Manager {
	t.Helper()
	cfg := Config{
		Secret: testSecret,
		TTL:    time.Hour,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestNewManagerValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing secret", func(c *Config) { c.Secret = nil }},
		{"short secret", func(c *Config) { c.Secret = []byte("too-short") }},
		{"zero ttl", func(c *Config) { c.TTL = 0 }},
		{"negative ttl", func(c *Config) { c.TTL = -time.Minute }},
		{"negative leeway", func(c *Config) { c.Leeway = -time.Second }},
		{"huge leeway", func(c *Config) { c.Leeway = time.Hour }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{Secret: testSecret, TTL: time.Hour}
			tc.mutate(&cfg)
			if _, err := NewManager(cfg); err == nil {
				t.Fatalf("expected config error")
			}
		})
	}
}

func TestIssueParseRoundTrip(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := testManager(t, func(c *Config) {
		c.Issuer = "authd"
		c.TimeFunc = func() time.Time { return issued }
	})

	raw, err := m.Issue("user-1", "a@b.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.Email != "a@b.test" {
		t.Errorf("email = %q, want a@b.test", claims.Email)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(issued.Add(time.Hour)) {
		t.Errorf("exp = %v, want %v", got, issued.Add(time.Hour))
	}
}

func TestIssueRequiresSubject(t *testing.T) {
	m := testManager(t, nil)
	if _, err := m.Issue("", "a@b.test"); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestIssueDiffersAcrossInstants(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	m := testManager(t, func(c *Config) {
		c.TimeFunc = func() time.Time {
			now = now.Add(time.Second)
			return now
		}
	})

	first, err := m.Issue("user-1", "a@b.test")
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, err := m.Issue("user-1", "a@b.test")
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if first == second {
		t.Fatal("tokens issued at different instants must differ")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := testManager(t, nil)
	other := testManager(t, func(c *Config) {
		c.Secret = bytes.Repeat([]byte("x"), 32)
	})

	raw, err := other.Issue("user-1", "a@b.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Parse(raw); err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := testManager(t, func(c *Config) {
		c.TimeFunc = func() time.Time { return clock }
	})

	raw, err := m.Issue("user-1", "a@b.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock = clock.Add(time.Hour + time.Second)
	if _, err := m.Parse(raw); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestParseRejectsAlgNone(t *testing.T) {
	m := testManager(t, nil)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: "a@b.test",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := m.Parse(raw); err == nil {
		t.Fatal("alg=none token must not verify")
	}
}

func TestParseRejectsMissingExpiry(t *testing.T) {
	m := testManager(t, nil)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:            "a@b.test",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	raw, err := tok.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Parse(raw); err == nil {
		t.Fatal("token without exp must not verify")
	}
}

func TestExpiryOf(t *testing.T) {
	m := testManager(t, nil)
	raw, err := m.Issue("user-1", "a@b.test")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	exp, err := ExpiryOf(raw)
	if err != nil {
		t.Fatalf("expiry of issued token: %v", err)
	}
	if remaining := time.Until(exp); remaining <= 0 || remaining > time.Hour {
		t.Errorf("unexpected remaining lifetime %v", remaining)
	}

	if _, err := ExpiryOf("not-a-token"); err == nil {
		t.Error("malformed token must not yield an expiry")
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"})
	raw, err = noExp.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ExpiryOf(raw); err != ErrNoExpiry {
		t.Errorf("expected ErrNoExpiry, got %v", err)
	}
}
