// Package directory manages the client-company registry and user accounts.
package directory

import (
	"context"
	"log/slog"

	"tiretrack/internal/domain"
	"tiretrack/internal/service/security"
)

// CompanyService manages the client-company registry. All mutating
// operations require the company-management capability and are audited.
type CompanyService struct {
	companies domain.CompanyRepository
	audit     domain.AuditRepository
	logger    *slog.Logger
}

func NewCompanyService(companies domain.CompanyRepository, audit domain.AuditRepository, logger *slog.Logger) *CompanyService {
	return &CompanyService{
		companies: companies,
		audit:     audit,
		logger:    logger.With("component", "company_service"),
	}
}

func (s *CompanyService) Create(ctx context.Context, req *domain.CreateCompanyRequest) (*domain.Company, error) {
	ident, err := s.authorize(ctx, "company.create", req.Name)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	company, err := s.companies.Create(ctx, &domain.Company{
		Name:   req.Name,
		TaxID:  req.TaxID,
		Status: domain.StatusActive,
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, ident, "company.create", company.Name, domain.AuditAllowed)
	return company, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	if _, err := s.authorize(ctx, "company.get", id); err != nil {
		return nil, err
	}
	return s.companies.GetByID(ctx, id)
}

func (s *CompanyService) List(ctx context.Context, page domain.PageRequest) ([]domain.Company, int64, error) {
	if _, err := s.authorize(ctx, "company.list", ""); err != nil {
		return nil, 0, err
	}
	return s.companies.List(ctx, page)
}

func (s *CompanyService) Update(ctx context.Context, id string, req *domain.UpdateCompanyRequest) (*domain.Company, error) {
	ident, err := s.authorize(ctx, "company.update", id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.TaxID != nil {
		company.TaxID = *req.TaxID
	}
	if req.Status != nil {
		company.Status = *req.Status
	}

	updated, err := s.companies.Update(ctx, company)
	if err != nil {
		return nil, err
	}
	s.record(ctx, ident, "company.update", id, domain.AuditAllowed)
	return updated, nil
}

func (s *CompanyService) Delete(ctx context.Context, id string) error {
	ident, err := s.authorize(ctx, "company.delete", id)
	if err != nil {
		return err
	}
	if _, err := s.companies.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, ident, "company.delete", id, domain.AuditAllowed)
	return nil
}

// authorize requires an identity with the company-management capability.
// Denials are audited.
func (s *CompanyService) authorize(ctx context.Context, action, detail string) (*domain.Identity, error) {
	ident, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied("authentication required")
	}
	if !security.ResolveCapabilities(ident).ManageCompanies {
		s.record(ctx, ident, action, detail, domain.AuditDenied)
		return nil, domain.ErrAccessDenied("company management requires owner access")
	}
	return ident, nil
}

func (s *CompanyService) record(ctx context.Context, ident *domain.Identity, action, detail, status string) {
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
