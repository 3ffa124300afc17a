package authcore

import (
	"context"
	"time"
)

// UserRecord is the credential record held by a CredentialStore. The ID is
// assigned at creation and never changes; PasswordHash is the only
// security-relevant mutable field.
type UserRecord struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserInput is the input for CredentialStore.Create. PasswordHash
// must already be hashed; stores never see plaintext.
type CreateUserInput struct {
	Email        string
	Name         string
	Phone        string
	PasswordHash string
}

// CredentialStore persists user identity and password hashes. Email lookup
// is case-sensitive; normalization is a caller concern. Implementations return
// ErrUserNotFound and ErrDuplicateEmail for the expected conditions and any
// other error for backend failures; the Service wraps those in
// ErrStoreUnavailable.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (UserRecord, error)
	Create(ctx context.Context, input CreateUserInput) (UserRecord, error)
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
}

// Identity is the decoded claim set of a verified token.
type Identity struct {
	SubjectID string
	Email     string
}

// SignupInput carries the signup form fields.
type SignupInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Session is returned by Signup and Login. User.PasswordHash is always
// cleared before the record leaves the Service.
type Session struct {
	User  UserRecord
	Token string
}
