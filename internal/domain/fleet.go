package domain

import "time"

// Vehicle represents a vehicle model registered by a tenant company.
type Vehicle struct {
	ID        string
	CompanyID string
	Name      string
	Plate     string
	AxleCount int64
	CreatedAt time.Time
}

// CreateVehicleRequest holds parameters for registering a vehicle.
type CreateVehicleRequest struct {
	Name      string
	Plate     string
	AxleCount int64
}

// Validate checks that the request is well-formed.
func (r *CreateVehicleRequest) Validate() error {
	if r.Name == "" {
		return ErrValidation("vehicle name is required")
	}
	if r.Plate == "" {
		return ErrValidation("vehicle plate is required")
	}
	if r.AxleCount < 2 {
		return ErrValidation("vehicle must have at least 2 axles")
	}
	return nil
}

// TireModel represents a tire model a tenant company stocks.
type TireModel struct {
	ID        string
	CompanyID string
	Brand     string
	Model     string
	Dimension string // e.g. "295/80R22.5"
	CreatedAt time.Time
}

// CreateTireModelRequest holds parameters for registering a tire model.
type CreateTireModelRequest struct {
	Brand     string
	Model     string
	Dimension string
}

// Validate checks that the request is well-formed.
func (r *CreateTireModelRequest) Validate() error {
	if r.Brand == "" {
		return ErrValidation("tire brand is required")
	}
	if r.Model == "" {
		return ErrValidation("tire model is required")
	}
	if r.Dimension == "" {
		return ErrValidation("tire dimension is required")
	}
	return nil
}

// StockLevel is one inventory line: how many units of a tire model a company
// holds, and the threshold below which the line counts as low stock.
type StockLevel struct {
	ID          string
	CompanyID   string
	TireModelID string
	TireLabel   string // denormalized "brand model dimension", populated on list
	Quantity    int64
	MinQuantity int64
	UpdatedAt   time.Time
}

// Low reports whether the line is at or below its minimum quantity.
func (s *StockLevel) Low() bool {
	return s.Quantity <= s.MinQuantity
}

// SetStockRequest holds parameters for setting an inventory line.
type SetStockRequest struct {
	TireModelID string
	Quantity    int64
	MinQuantity int64
}

// Validate checks that the request is well-formed.
func (r *SetStockRequest) Validate() error {
	if r.TireModelID == "" {
		return ErrValidation("tire model id is required")
	}
	if r.Quantity < 0 {
		return ErrValidation("quantity must not be negative")
	}
	if r.MinQuantity < 0 {
		return ErrValidation("minimum quantity must not be negative")
	}
	return nil
}
