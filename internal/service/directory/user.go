package directory

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"tiretrack/internal/domain"
	"tiretrack/internal/service/security"
)

// UserService manages user accounts. All operations require the
// user-management capability and mutations are audited.
type UserService struct {
	users     domain.UserRepository
	companies domain.CompanyRepository
	audit     domain.AuditRepository
	logger    *slog.Logger
}

func NewUserService(users domain.UserRepository, companies domain.CompanyRepository, audit domain.AuditRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		companies: companies,
		audit:     audit,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates a user account with a bcrypt-hashed password. Tenant
// accounts must reference an existing company.
func (s *UserService) Register(ctx context.Context, req *domain.RegisterUserRequest) (*domain.User, error) {
	ident, err := s.authorize(ctx, "user.create", req.Email)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.CompanyID != nil {
		if _, err := s.companies.GetByID(ctx, *req.CompanyID); err != nil {
			var notFound *domain.NotFoundError
			if errors.As(err, &notFound) {
				return nil, domain.ErrValidation("company %s does not exist", *req.CompanyID)
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		AccessKind:   req.AccessKind,
		CompanyID:    req.CompanyID,
		Active:       true,
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, ident, "user.create", user.Email, domain.AuditAllowed)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := s.authorize(ctx, "user.get", id); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	if _, err := s.authorize(ctx, "user.list", ""); err != nil {
		return nil, 0, err
	}
	return s.users.List(ctx, page)
}

// SetActive enables or disables an account. A caller cannot disable itself.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	ident, err := s.authorize(ctx, "user.set_active", id)
	if err != nil {
		return err
	}
	if !active && ident.ID == id {
		return domain.ErrValidation("cannot deactivate your own account")
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.record(ctx, ident, "user.set_active", id, domain.AuditAllowed)
	return nil
}

// Delete removes an account. A caller cannot delete itself.
func (s *UserService) Delete(ctx context.Context, id string) error {
	ident, err := s.authorize(ctx, "user.delete", id)
	if err != nil {
		return err
	}
	if ident.ID == id {
		return domain.ErrValidation("cannot delete your own account")
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, ident, "user.delete", id, domain.AuditAllowed)
	return nil
}

func (s *UserService) authorize(ctx context.Context, action, detail string) (*domain.Identity, error) {
	ident, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied("authentication required")
	}
	if !security.ResolveCapabilities(ident).ManageUsers {
		s.record(ctx, ident, action, detail, domain.AuditDenied)
		return nil, domain.ErrAccessDenied("user management requires super admin role")
	}
	return ident, nil
}

func (s *UserService) record(ctx context.Context, ident *domain.Identity, action, detail, status string) {
	err := s.audit.Insert(ctx, &domain.AuditEntry{
		PrincipalName: ident.Email,
		Action:        action,
		Detail:        detail,
		Status:        status,
	})
	if err != nil {
		s.logger.Warn("audit insert failed", "action", action, "error", err)
	}
}
