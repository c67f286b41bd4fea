package domain

import "time"

// FleetReport summarizes a company's fleet and inventory position.
type FleetReport struct {
	CompanyID     string
	CompanyName   string
	VehicleCount  int64
	TireModels    int64
	UnitsInStock  int64
	LowStockLines []StockLevel
	GeneratedAt   time.Time
}

// ReportSnapshot is a persisted nightly copy of a fleet report's headline
// numbers, kept for trend views.
type ReportSnapshot struct {
	ID           string
	CompanyID    string
	VehicleCount int64
	TireModels   int64
	UnitsInStock int64
	LowStock     int64
	TakenAt      time.Time
}
