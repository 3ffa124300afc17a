package revoke

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local Registry suited to single-node deployments:
// revocations do not survive a restart and are not shared across instances.
// Use the Redis registry when either matters.
type Memory struct {
	expiryOf ExpiryFunc

	mu      sync.RWMutex
	entries map[string]struct{}
}

// NewMemory returns an empty in-memory registry. expiryOf is consulted only
// by Sweep; it is typically token.ExpiryOf.
func NewMemory(expiryOf ExpiryFunc) *Memory {
	return &Memory{
		expiryOf: expiryOf,
		entries:  make(map[string]struct{}),
	}
}

func (m *Memory) Revoke(_ context.Context, raw string) error {
	m.mu.Lock()
	m.entries[raw] = struct{}{}
	m.mu.Unlock()
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, raw string) (bool, error) {
	m.mu.RLock()
	_, ok := m.entries[raw]
	m.mu.RUnlock()
	return ok, nil
}

// Sweep removes expired and undecodable entries. It holds the write lock
// for the duration, so a concurrent Revoke either lands before the sweep
// (and survives if unexpired) or after it.
func (m *Memory) Sweep(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for raw := range m.entries {
		exp, err := m.expiryOf(raw)
		if err != nil || !exp.After(now) {
			delete(m.entries, raw)
			removed++
		}
	}
	return removed, nil
}

// Len reports the current number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
