// Package reporting builds fleet summary reports and persists nightly
// snapshots of their headline numbers.
package reporting

import (
	"context"
	"log/slog"
	"time"

	"tiretrack/internal/domain"
)

type Service struct {
	companies domain.CompanyRepository
	vehicles  domain.VehicleRepository
	tires     domain.TireModelRepository
	stock     domain.StockRepository
	snapshots domain.SnapshotRepository
	logger    *slog.Logger
}

func NewService(
	companies domain.CompanyRepository,
	vehicles domain.VehicleRepository,
	tires domain.TireModelRepository,
	stock domain.StockRepository,
	snapshots domain.SnapshotRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		companies: companies,
		vehicles:  vehicles,
		tires:     tires,
		stock:     stock,
		snapshots: snapshots,
		logger:    logger.With("component", "reporting_service"),
	}
}

// CompanyReport builds the current fleet report for one company. Owners may
// report on any company; tenants only on their own.
func (s *Service) CompanyReport(ctx context.Context, companyID string) (*domain.FleetReport, error) {
	ident, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied("authentication required")
	}
	if ident.AccessKind == domain.AccessTenant {
		if ident.CompanyID == nil || *ident.CompanyID != companyID {
			return nil, domain.ErrAccessDenied("reports are limited to your own company")
		}
	}
	return s.buildReport(ctx, companyID)
}

// History returns the most recent persisted snapshots for trend views.
func (s *Service) History(ctx context.Context, companyID string, limit int) ([]domain.ReportSnapshot, error) {
	ident, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return nil, domain.ErrAccessDenied("authentication required")
	}
	if ident.AccessKind == domain.AccessTenant {
		if ident.CompanyID == nil || *ident.CompanyID != companyID {
			return nil, domain.ErrAccessDenied("reports are limited to your own company")
		}
	}
	return s.snapshots.ListByCompany(ctx, companyID, limit)
}

// SnapshotAll builds a report for every company and persists its headline
// numbers. Called by the scheduler; per-company failures are logged and do
// not abort the sweep.
func (s *Service) SnapshotAll(ctx context.Context) error {
	companies, _, err := s.companies.List(ctx, domain.PageRequest{MaxResults: domain.MaxMaxResults})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, company := range companies {
		report, err := s.buildReport(ctx, company.ID)
		if err != nil {
			s.logger.Warn("snapshot build failed", "company_id", company.ID, "error", err)
			continue
		}
		err = s.snapshots.Insert(ctx, &domain.ReportSnapshot{
			CompanyID:    company.ID,
			VehicleCount: report.VehicleCount,
			TireModels:   report.TireModels,
			UnitsInStock: report.UnitsInStock,
			LowStock:     int64(len(report.LowStockLines)),
			TakenAt:      now,
		})
		if err != nil {
			s.logger.Warn("snapshot insert failed", "company_id", company.ID, "error", err)
		}
	}
	s.logger.Info("report snapshots taken", "companies", len(companies))
	return nil
}

func (s *Service) buildReport(ctx context.Context, companyID string) (*domain.FleetReport, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	_, vehicleCount, err := s.vehicles.ListByCompany(ctx, companyID, domain.PageRequest{MaxResults: 1})
	if err != nil {
		return nil, err
	}
	_, tireCount, err := s.tires.ListByCompany(ctx, companyID, domain.PageRequest{MaxResults: 1})
	if err != nil {
		return nil, err
	}
	lines, err := s.stock.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	report := &domain.FleetReport{
		CompanyID:    company.ID,
		CompanyName:  company.Name,
		VehicleCount: vehicleCount,
		TireModels:   tireCount,
		GeneratedAt:  time.Now().UTC(),
	}
	for _, line := range lines {
		report.UnitsInStock += line.Quantity
		if line.Low() {
			report.LowStockLines = append(report.LowStockLines, line)
		}
	}
	return report, nil
}
