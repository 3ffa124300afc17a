// Package password wraps bcrypt hashing for stored credentials. Plaintext
// passwords exist only as arguments here; nothing in this package retains
// or logs them.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// Config holds the hasher parameters.
type Config struct {
	// Cost is the bcrypt work factor. Zero means DefaultCost.
	Cost int
}

// Hasher produces and verifies salted bcrypt hashes. Safe for concurrent
// use.
type Hasher struct {
	cost int
}

// NewHasher validates cfg and returns a Hasher.
func NewHasher(cfg Config) (*Hasher, error) {
	if cfg.Cost == 0 {
		cfg.Cost = DefaultCost
	}
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Hasher{cost: cfg.Cost}, nil
}

// Hash returns the salted hash of plain. The salt is generated per call, so
// hashing the same password twice yields different strings.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password must not be empty")
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether plain matches encoded. A mismatch is (false, nil);
// the error return is reserved for malformed stored hashes.
func (h *Hasher) Verify(plain, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// NeedsUpgrade reports whether encoded was produced with a lower cost than
// the hasher is configured for.
func (h *Hasher) NeedsUpgrade(encoded string) (bool, error) {
	cost, err := bcrypt.Cost([]byte(encoded))
	if err != nil {
		return false, err
	}
	return cost < h.cost, nil
}
