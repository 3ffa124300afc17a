package authcore

import "errors"

// Sentinel errors returned by the Service. Callers classify them with
// errors.Is; the httpapi package maps each one to a stable machine-readable
// kind and status code.
var (
	// ErrInvalidInput marks a request missing a required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPasswordMismatch is returned by Signup when password and
	// confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrDuplicateEmail is returned when the signup email is already
	// registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so login
	// cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned by password reset for an unknown email.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrTokenRevoked is returned for a token invalidated by logout before
	// its natural expiry.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrTokenInvalid is returned when signature verification fails or the
	// token has expired.
	ErrTokenInvalid = errors.New("token invalid or expired")

	// ErrStoreUnavailable wraps persistence-layer failures. It is the only
	// kind that surfaces as a 5xx.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)
