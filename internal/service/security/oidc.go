package security

import (
	"context"
	"errors"
	"log/slog"

	"tiretrack/internal/domain"
	"tiretrack/internal/middleware"
)

// OIDCResolver maps a validated external token onto a local user account by
// email. Accounts must already exist and be active; single sign-on never
// provisions users.
type OIDCResolver struct {
	users  domain.UserRepository
	logger *slog.Logger
}

func NewOIDCResolver(users domain.UserRepository, logger *slog.Logger) *OIDCResolver {
	return &OIDCResolver{
		users:  users,
		logger: logger.With("component", "oidc_resolver"),
	}
}

func (r *OIDCResolver) Resolve(ctx context.Context, claims *middleware.JWTClaims) (*domain.Identity, error) {
	if claims.Email == nil || *claims.Email == "" {
		return nil, errors.New("token carries no email claim")
	}
	user, err := r.users.GetByEmail(ctx, *claims.Email)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		r.logger.Warn("sso login for disabled account", "email", user.Email)
		return nil, errors.New("account is disabled")
	}
	return user.Identity()
}
