package directory

import (
	"context"

	"tiretrack/internal/domain"
)

// AuditService exposes the audit trail to super admins.
type AuditService struct {
	audit domain.AuditRepository
}

func NewAuditService(audit domain.AuditRepository) *AuditService {
	return &AuditService{audit: audit}
}

func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	ident, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return nil, 0, domain.ErrAccessDenied("authentication required")
	}
	if ident.Role != domain.RoleSuperAdmin {
		return nil, 0, domain.ErrAccessDenied("audit log requires super admin role")
	}
	return s.audit.List(ctx, filter)
}
