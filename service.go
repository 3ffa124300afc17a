package authcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/plateful/authcore/internal/logging"
	"github.com/plateful/authcore/password"
	"github.com/plateful/authcore/revoke"
	"github.com/plateful/authcore/token"
)

// Service is the session facade: it composes the credential store, token
// manager, password hasher, and revocation registry into the four
// operations route handlers call. All methods are safe for concurrent use.
type Service struct {
	config   Config
	store    CredentialStore
	tokens   *token.Manager
	hasher   *password.Hasher
	registry revoke.Registry
	sweeper  *revoke.Sweeper
	log      logging.Logger
	metrics  *Metrics
}

// Signup creates an account and issues a first session token.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Create(ctx, CreateUserInput{
		Email:        in.Email,
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			s.metrics.Inc(MetricSignupDuplicate)
			s.log.Debug(ctx, "signup rejected: duplicate email")
			return nil, ErrDuplicateEmail
		}
		return nil, s.storeFailure(ctx, "create user", err)
	}

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.Inc(MetricSignupSuccess)
	s.log.Info(ctx, "user created", "user_id", user.ID)
	return &Session{User: scrub(user), Token: tok}, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password produce the identical ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*Session, error) {
	if email == "" || plainPassword == "" {
		s.metrics.Inc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.metrics.Inc(MetricLoginFailure)
			s.log.Debug(ctx, "login rejected")
			return nil, ErrInvalidCredentials
		}
		return nil, s.storeFailure(ctx, "find user", err)
	}

	ok, err := s.hasher.Verify(plainPassword, user.PasswordHash)
	if err != nil {
		// Corrupt stored hash. Kept indistinguishable from
		// a wrong password on the wire.
		s.metrics.Inc(MetricLoginFailure)
		s.log.Warn(ctx, "stored password hash unreadable", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		s.metrics.Inc(MetricLoginFailure)
		s.log.Debug(ctx, "login rejected")
		return nil, ErrInvalidCredentials
	}

	s.maybeUpgradeHash(ctx, user, plainPassword)

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.Inc(MetricLoginSuccess)
	s.log.Info(ctx, "login succeeded", "user_id", user.ID)
	return &Session{User: scrub(user), Token: tok}, nil
}

// maybeUpgradeHash rehashes the password when the stored hash was produced
// with a lower cost than currently configured. Best effort; login already
// succeeded.
func (s *Service) maybeUpgradeHash(ctx context.Context, user UserRecord, plainPassword string) {
	up, err := s.hasher.NeedsUpgrade(user.PasswordHash)
	if err != nil || !up {
		return
	}
	newHash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return
	}
	if err := s.store.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
		s.log.Warn(ctx, "password hash upgrade failed", "user_id", user.ID, "error", err)
		return
	}
	s.log.Info(ctx, "password hash upgraded", "user_id", user.ID)
}

// Logout revokes the presented token until its natural expiry. Idempotent.
// Callers gate this behind Authenticate, so raw is a verified token.
func (s *Service) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return ErrMissingToken
	}
	if err := s.registry.Revoke(ctx, raw); err != nil {
		return s.storeFailure(ctx, "revoke token", err)
	}
	s.metrics.Inc(MetricLogout)
	s.log.Info(ctx, "token revoked")
	return nil
}

// ResetPassword replaces the stored hash for the given email.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if email == "" || newPassword == "" {
		s.metrics.Inc(MetricPasswordResetFailure)
		return fmt.Errorf("%w: email and new password are required", ErrInvalidInput)
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.metrics.Inc(MetricPasswordResetFailure)
			s.log.Debug(ctx, "password reset rejected: unknown email")
			return ErrUserNotFound
		}
		return s.storeFailure(ctx, "find user", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return s.storeFailure(ctx, "update password hash", err)
	}

	s.metrics.Inc(MetricPasswordResetSuccess)
	s.log.Info(ctx, "password reset", "user_id", user.ID)
	return nil
}

// Authenticate is the verification gate run on every protected request.
// Checks short-circuit in order: missing token, revocation, then signature
// and expiry together. It has no side effects and no mutable state beyond
// read access to the registry.
func (s *Service) Authenticate(ctx context.Context, raw string) (*Identity, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	revoked, err := s.registry.IsRevoked(ctx, raw)
	if err != nil {
		return nil, s.storeFailure(ctx, "revocation check", err)
	}
	if revoked {
		s.metrics.Inc(MetricReplayBlocked)
		s.log.Debug(ctx, "revoked token rejected")
		return nil, ErrTokenRevoked
	}

	claims, err := s.tokens.Parse(raw)
	if err != nil {
		s.metrics.Inc(MetricTokenRejected)
		s.log.Debug(ctx, "token rejected", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	s.metrics.Inc(MetricTokenAccepted)
	return &Identity{SubjectID: claims.Subject, Email: claims.Email}, nil
}

// Metrics exposes the service counters.
func (s *Service) Metrics() *Metrics {
	return s.metrics
}

// Close stops the background sweep loop. The Service must not be used
// after Close.
func (s *Service) Close() {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
}

func (s *Service) storeFailure(ctx context.Context, op string, err error) error {
	s.metrics.Inc(MetricStoreFailure)
	s.log.Error(ctx, "store operation failed", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

func scrub(u UserRecord) UserRecord {
	u.PasswordHash = ""
	return u
}
