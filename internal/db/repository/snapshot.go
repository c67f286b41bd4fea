package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tiretrack/internal/domain"
)

// SnapshotRepo implements domain.SnapshotRepository on SQLite.
type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

func (r *SnapshotRepo) Insert(ctx context.Context, s *domain.ReportSnapshot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO report_snapshots (id, company_id, vehicle_count, tire_models, units_in_stock, low_stock, taken_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.CompanyID, s.VehicleCount, s.TireModels, s.UnitsInStock, s.LowStock, s.TakenAt)
	return mapDBError(err)
}

func (r *SnapshotRepo) ListByCompany(ctx context.Context, companyID string, limit int) ([]domain.ReportSnapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, vehicle_count, tire_models, units_in_stock, low_stock, taken_at
		 FROM report_snapshots WHERE company_id = ? ORDER BY taken_at DESC LIMIT ?`,
		companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []domain.ReportSnapshot
	for rows.Next() {
		var s domain.ReportSnapshot
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.VehicleCount, &s.TireModels,
			&s.UnitsInStock, &s.LowStock, &s.TakenAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
