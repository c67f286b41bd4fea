// Package security owns the authentication lifecycle: credential validation,
// the session state machine, capability resolution, and route guarding.
package security

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tiretrack/internal/domain"
	"tiretrack/internal/token"
)

// Sentinel errors surfaced by credential validation.
var (
	// ErrInvalidCredentials means the email/secret pair was rejected.
	// Recoverable: the caller may retry with different credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidatorUnreachable means the validator backend could not be
	// consulted at all. Recoverable: the caller may retry later.
	ErrValidatorUnreachable = errors.New("credential validator unreachable")
)

// CredentialValidator checks an email/secret pair and, on success, returns
// the authenticated identity together with a freshly minted bearer token.
type CredentialValidator interface {
	Validate(ctx context.Context, email, secret string) (*domain.Identity, string, error)
}

// DirectoryValidator validates credentials against the user directory using
// bcrypt password hashes, and mints HS256 bearer tokens for successful logins.
type DirectoryValidator struct {
	users  domain.UserRepository
	issuer *token.Issuer
	logger *slog.Logger
}

func NewDirectoryValidator(users domain.UserRepository, issuer *token.Issuer, logger *slog.Logger) *DirectoryValidator {
	return &DirectoryValidator{
		users:  users,
		issuer: issuer,
		logger: logger.With("component", "credential_validator"),
	}
}

// Validate implements CredentialValidator. Unknown emails, inactive accounts,
// and wrong secrets all collapse into ErrInvalidCredentials so callers cannot
// probe which accounts exist.
func (v *DirectoryValidator) Validate(ctx context.Context, email, secret string) (*domain.Identity, string, error) {
	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, "", ErrInvalidCredentials
		}
		v.logger.Error("user lookup failed", "error", err)
		return nil, "", ErrValidatorUnreachable
	}
	if !user.Active {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	ident, err := user.Identity()
	if err != nil {
		// A stored account violating the identity invariant is a data
		// integrity problem, not a login failure.
		v.logger.Error("stored user violates identity invariant", "user_id", user.ID, "error", err)
		return nil, "", ErrValidatorUnreachable
	}

	signed, _, err := v.issuer.Issue(ident, time.Now().UTC())
	if err != nil {
		v.logger.Error("token issue failed", "user_id", user.ID, "error", err)
		return nil, "", ErrValidatorUnreachable
	}
	return ident, signed, nil
}
