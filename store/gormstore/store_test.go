package gormstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plateful/authcore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	s, err := New(db)
	require.NoError(t, err)
	return s
}

func TestCreateAndFindByEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.Create(ctx, authcore.CreateUserInput{
		Email:        "ana@example.test",
		Name:         "Ana",
		Phone:        "555-0100",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ana@example.test", created.Email)

	found, err := s.FindByEmail(ctx, "ana@example.test")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Ana", found.Name)
	assert.Equal(t, "$2a$10$fakefakefakefakefakefake", found.PasswordHash)
}

func TestFindByEmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Create(ctx, authcore.CreateUserInput{
		Email:        "ana@example.test",
		PasswordHash: "h",
	})
	require.NoError(t, err)

	_, err = s.FindByEmail(ctx, "Ana@Example.Test")
	assert.ErrorIs(t, err, authcore.ErrUserNotFound)
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Create(ctx, authcore.CreateUserInput{Email: "dup@example.test", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = s.Create(ctx, authcore.CreateUserInput{Email: "dup@example.test", PasswordHash: "h2"})
	assert.ErrorIs(t, err, authcore.ErrDuplicateEmail)
}

func TestFindByEmailNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindByEmail(context.Background(), "nobody@example.test")
	assert.ErrorIs(t, err, authcore.ErrUserNotFound)
}

func TestUpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.Create(ctx, authcore.CreateUserInput{Email: "ana@example.test", PasswordHash: "old"})
	require.NoError(t, err)

	require.NoError(t, s.UpdatePasswordHash(ctx, created.ID, "new"))

	found, err := s.FindByEmail(ctx, "ana@example.test")
	require.NoError(t, err)
	assert.Equal(t, "new", found.PasswordHash)
}

func TestUpdatePasswordHashUnknownUser(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdatePasswordHash(context.Background(), "missing-id", "h")
	assert.ErrorIs(t, err, authcore.ErrUserNotFound)
}
