// Package gormstore is the GORM-backed CredentialStore used in production
// (Postgres) and in tests (SQLite). Open the *gorm.DB with
// TranslateError enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey.
package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/authcore"
)

// User is the persisted credential record. Email carries a unique index;
// lookups are exact-match and therefore case-sensitive.
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Name         string `gorm:"size:255"`
	Phone        string `gorm:"size:64"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName fixes the table name regardless of naming strategy.
func (User) TableName() string { return "users" }

// Store implements authcore.CredentialStore on a *gorm.DB.
type Store struct {
	db *gorm.DB
}

// New migrates the users table and returns a Store.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (authcore.UserRecord, error) {
	var user User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authcore.UserRecord{}, authcore.ErrUserNotFound
		}
		return authcore.UserRecord{}, err
	}
	return toRecord(user), nil
}

func (s *Store) Create(ctx context.Context, input authcore.CreateUserInput) (authcore.UserRecord, error) {
	user := User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.Name,
		Phone:        input.Phone,
		PasswordHash: input.PasswordHash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return authcore.UserRecord{}, authcore.ErrDuplicateEmail
		}
		return authcore.UserRecord{}, err
	}
	return toRecord(user), nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res := s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("password_hash", newHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return authcore.ErrUserNotFound
	}
	return nil
}

func toRecord(u User) authcore.UserRecord {
	return authcore.UserRecord{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
