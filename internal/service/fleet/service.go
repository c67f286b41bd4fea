// Package fleet manages a tenant company's vehicles, tire models, and
// inventory lines. Every operation is scoped to the calling identity's
// company; owner identities have no fleet of their own and are rejected.
package fleet

import (
	"context"
	"errors"
	"log/slog"

	"tiretrack/internal/domain"
)

type Service struct {
	vehicles domain.VehicleRepository
	tires    domain.TireModelRepository
	stock    domain.StockRepository
	logger   *slog.Logger
}

func NewService(vehicles domain.VehicleRepository, tires domain.TireModelRepository, stock domain.StockRepository, logger *slog.Logger) *Service {
	return &Service{
		vehicles: vehicles,
		tires:    tires,
		stock:    stock,
		logger:   logger.With("component", "fleet_service"),
	}
}

// companyScope resolves the tenant company the caller may operate on.
func companyScope(ctx context.Context) (string, error) {
	ident, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return "", domain.ErrAccessDenied("authentication required")
	}
	if ident.AccessKind != domain.AccessTenant || ident.CompanyID == nil {
		return "", domain.ErrAccessDenied("fleet management requires a tenant account")
	}
	return *ident.CompanyID, nil
}

func (s *Service) CreateVehicle(ctx context.Context, req *domain.CreateVehicleRequest) (*domain.Vehicle, error) {
	companyID, err := companyScope(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.vehicles.Create(ctx, &domain.Vehicle{
		CompanyID: companyID,
		Name:      req.Name,
		Plate:     req.Plate,
		AxleCount: req.AxleCount,
	})
}

func (s *Service) ListVehicles(ctx context.Context, page domain.PageRequest) ([]domain.Vehicle, int64, error) {
	companyID, err := companyScope(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.vehicles.ListByCompany(ctx, companyID, page)
}

func (s *Service) DeleteVehicle(ctx context.Context, id string) error {
	companyID, err := companyScope(ctx)
	if err != nil {
		return err
	}
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Cross-tenant IDs look like missing resources, not forbidden ones.
	if vehicle.CompanyID != companyID {
		return domain.ErrNotFound("vehicle %s not found", id)
	}
	return s.vehicles.Delete(ctx, id)
}

func (s *Service) CreateTireModel(ctx context.Context, req *domain.CreateTireModelRequest) (*domain.TireModel, error) {
	companyID, err := companyScope(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.tires.Create(ctx, &domain.TireModel{
		CompanyID: companyID,
		Brand:     req.Brand,
		Model:     req.Model,
		Dimension: req.Dimension,
	})
}

func (s *Service) ListTireModels(ctx context.Context, page domain.PageRequest) ([]domain.TireModel, int64, error) {
	companyID, err := companyScope(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.tires.ListByCompany(ctx, companyID, page)
}

func (s *Service) DeleteTireModel(ctx context.Context, id string) error {
	companyID, err := companyScope(ctx)
	if err != nil {
		return err
	}
	tire, err := s.tires.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tire.CompanyID != companyID {
		return domain.ErrNotFound("tire model %s not found", id)
	}
	return s.tires.Delete(ctx, id)
}

// SetStock creates or replaces the inventory line for a tire model.
func (s *Service) SetStock(ctx context.Context, req *domain.SetStockRequest) (*domain.StockLevel, error) {
	companyID, err := companyScope(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tire, err := s.tires.GetByID(ctx, req.TireModelID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.ErrValidation("tire model %s does not exist", req.TireModelID)
		}
		return nil, err
	}
	if tire.CompanyID != companyID {
		return nil, domain.ErrValidation("tire model %s does not exist", req.TireModelID)
	}

	line, err := s.stock.Upsert(ctx, &domain.StockLevel{
		CompanyID:   companyID,
		TireModelID: req.TireModelID,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
	})
	if err != nil {
		return nil, err
	}
	if line.Low() {
		s.logger.Warn("stock below minimum",
			"company_id", companyID,
			"tire_model_id", req.TireModelID,
			"quantity", line.Quantity,
			"min_quantity", line.MinQuantity,
		)
	}
	return line, nil
}

// ListStock returns the company's inventory lines with tire labels attached.
func (s *Service) ListStock(ctx context.Context) ([]domain.StockLevel, error) {
	companyID, err := companyScope(ctx)
	if err != nil {
		return nil, err
	}
	return s.stock.ListByCompany(ctx, companyID)
}
