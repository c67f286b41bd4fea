package domain

import "context"

// UserRepository provides CRUD operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, page PageRequest) ([]User, int64, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// CompanyRepository provides CRUD operations for client companies.
type CompanyRepository interface {
	Create(ctx context.Context, c *Company) (*Company, error)
	GetByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context, page PageRequest) ([]Company, int64, error)
	Update(ctx context.Context, c *Company) (*Company, error)
	Delete(ctx context.Context, id string) error
}

// VehicleRepository provides CRUD operations for a tenant's vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, v *Vehicle) (*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	ListByCompany(ctx context.Context, companyID string, page PageRequest) ([]Vehicle, int64, error)
	Delete(ctx context.Context, id string) error
}

// TireModelRepository provides CRUD operations for a tenant's tire models.
type TireModelRepository interface {
	Create(ctx context.Context, t *TireModel) (*TireModel, error)
	GetByID(ctx context.Context, id string) (*TireModel, error)
	ListByCompany(ctx context.Context, companyID string, page PageRequest) ([]TireModel, int64, error)
	Delete(ctx context.Context, id string) error
}

// StockRepository provides operations for inventory lines.
type StockRepository interface {
	Upsert(ctx context.Context, s *StockLevel) (*StockLevel, error)
	ListByCompany(ctx context.Context, companyID string) ([]StockLevel, error)
}

// SnapshotRepository persists nightly report snapshots.
type SnapshotRepository interface {
	Insert(ctx context.Context, s *ReportSnapshot) error
	ListByCompany(ctx context.Context, companyID string, limit int) ([]ReportSnapshot, error)
}

// AuditRepository provides operations for audit log entries.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]AuditEntry, int64, error)
}
