package authcore

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/plateful/authcore/revoke"
	"github.com/plateful/authcore/token"
)

func TestBuildRequiresStore(t *testing.T) {
	_, err := New().
		WithConfig(Config{Token: TokenConfig{Secret: testSecret}}).
		Build()
	if err == nil || !strings.Contains(err.Error(), "credential store") {
		t.Fatalf("err = %v, want credential store error", err)
	}
}

func TestBuildRequiresSecret(t *testing.T) {
	cases := []struct {
		name   string
		secret []byte
	}{
		{"missing", nil},
		{"short", []byte("too-short")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().
				WithConfig(Config{Token: TokenConfig{Secret: tc.secret}}).
				WithCredentialStore(newFakeStore()).
				Build()
			if err == nil {
				t.Fatal("Build must fail without a usable signing secret")
			}
		})
	}
}

func TestBuildRejectsReuse(t *testing.T) {
	b := New().
		WithConfig(Config{
			Token:    TokenConfig{Secret: testSecret},
			Password: PasswordConfig{Cost: bcrypt.MinCost},
		}).
		WithCredentialStore(newFakeStore())

	svc, err := b.Build()
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	defer svc.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("second Build on the same builder must fail")
	}
}

func TestBuildAppliesDefaults(t *testing.T) {
	svc, err := New().
		WithConfig(Config{Token: TokenConfig{Secret: testSecret}}).
		WithCredentialStore(newFakeStore()).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer svc.Close()

	if got := svc.tokens.TTL(); got != time.Hour {
		t.Errorf("token TTL = %v, want 1h", got)
	}
	if svc.config.Revocation.SweepInterval != time.Hour {
		t.Errorf("sweep interval = %v, want 1h", svc.config.Revocation.SweepInterval)
	}
	if svc.registry == nil {
		t.Fatal("Build must fall back to an in-memory registry")
	}
}

func TestBuildHonorsExplicitRegistry(t *testing.T) {
	registry := revoke.NewMemory(token.ExpiryOf)
	svc, err := New().
		WithConfig(Config{
			Token:    TokenConfig{Secret: testSecret},
			Password: PasswordConfig{Cost: bcrypt.MinCost},
		}).
		WithCredentialStore(newFakeStore()).
		WithRegistry(registry).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer svc.Close()

	sess, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if registry.Len() != 1 {
		t.Errorf("injected registry holds %d entries, want 1", registry.Len())
	}
}
