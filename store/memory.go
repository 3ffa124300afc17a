// Package store provides credential store implementations. The GORM-backed
// store under store/gormstore is the production one; Memory backs tests and
// examples.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plateful/authcore"
)

// Memory is an in-memory CredentialStore. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	byEmail map[string]authcore.UserRecord
	byID    map[string]string // id -> email
	now     func() time.Time
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		byEmail: make(map[string]authcore.UserRecord),
		byID:    make(map[string]string),
		now:     time.Now,
	}
}

func (m *Memory) FindByEmail(_ context.Context, email string) (authcore.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byEmail[email]
	if !ok {
		return authcore.UserRecord{}, authcore.ErrUserNotFound
	}
	return user, nil
}

func (m *Memory) Create(_ context.Context, input authcore.CreateUserInput) (authcore.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[input.Email]; exists {
		return authcore.UserRecord{}, authcore.ErrDuplicateEmail
	}

	now := m.now()
	user := authcore.UserRecord{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.Name,
		Phone:        input.Phone,
		PasswordHash: input.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user.Email
	return user, nil
}

func (m *Memory) UpdatePasswordHash(_ context.Context, userID, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email, ok := m.byID[userID]
	if !ok {
		return authcore.ErrUserNotFound
	}
	user := m.byEmail[email]
	user.PasswordHash = newHash
	user.UpdatedAt = m.now()
	m.byEmail[email] = user
	return nil
}
