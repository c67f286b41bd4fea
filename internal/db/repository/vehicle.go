package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"tiretrack/internal/domain"
)

// VehicleRepo implements domain.VehicleRepository on SQLite.
type VehicleRepo struct {
	db *sql.DB
}

func NewVehicleRepo(db *sql.DB) *VehicleRepo {
	return &VehicleRepo{db: db}
}

func (r *VehicleRepo) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	created := *v
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicles (id, company_id, name, plate, axle_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, created.CompanyID, created.Name, created.Plate, created.AxleCount, created.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &created, nil
}

func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, name, plate, axle_count, created_at FROM vehicles WHERE id = ?`, id).
		Scan(&v.ID, &v.CompanyID, &v.Name, &v.Plate, &v.AxleCount, &v.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &v, nil
}

func (r *VehicleRepo) ListByCompany(ctx context.Context, companyID string, page domain.PageRequest) ([]domain.Vehicle, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vehicles WHERE company_id = ?`, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, name, plate, axle_count, created_at
		 FROM vehicles WHERE company_id = ? ORDER BY name, id LIMIT ? OFFSET ?`,
		companyID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.Name, &v.Plate, &v.AxleCount, &v.CreatedAt); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, total, rows.Err()
}

func (r *VehicleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	return mapDBError(err)
}
