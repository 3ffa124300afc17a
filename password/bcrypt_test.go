package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewHasherValidation(t *testing.T) {
	if _, err := NewHasher(Config{Cost: bcrypt.MaxCost + 1}); err == nil {
		t.Fatal("expected error for cost above bcrypt maximum")
	}
	if _, err := NewHasher(Config{Cost: 2}); err == nil {
		t.Fatal("expected error for cost below bcrypt minimum")
	}

	h, err := NewHasher(Config{})
	if err != nil {
		t.Fatalf("default hasher: %v", err)
	}
	if h.cost != DefaultCost {
		t.Errorf("cost = %d, want %d", h.cost, DefaultCost)
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h, err := NewHasher(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}

	encoded, err := h.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if strings.Contains(encoded, "correct horse battery") {
		t.Fatal("hash must not embed the plaintext")
	}

	ok, err := h.Verify("correct horse battery", encoded)
	if err != nil || !ok {
		t.Fatalf("verify correct password: ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("wrong password", encoded)
	if err != nil {
		t.Fatalf("verify wrong password: %v", err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	h, err := NewHasher(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	if _, err := h.Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestHashIsSalted(t *testing.T) {
	h, err := NewHasher(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	a, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h, err := NewHasher(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	if _, err := h.Verify("anything", "not-a-bcrypt-hash"); err == nil {
		t.Fatal("expected error for malformed stored hash")
	}
}

func TestNeedsUpgrade(t *testing.T) {
	low, err := NewHasher(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	encoded, err := low.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	high, err := NewHasher(Config{Cost: bcrypt.MinCost + 1})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}

	up, err := high.NeedsUpgrade(encoded)
	if err != nil {
		t.Fatalf("needs upgrade: %v", err)
	}
	if !up {
		t.Error("lower-cost hash should report upgrade needed")
	}

	up, err = low.NeedsUpgrade(encoded)
	if err != nil {
		t.Fatalf("needs upgrade: %v", err)
	}
	if up {
		t.Error("same-cost hash should not report upgrade needed")
	}

	if _, err := low.NeedsUpgrade("garbage"); err == nil {
		t.Error("expected error for malformed hash")
	}
}
