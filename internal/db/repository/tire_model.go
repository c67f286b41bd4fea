package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"tiretrack/internal/domain"
)

// TireModelRepo implements domain.TireModelRepository on SQLite.
type TireModelRepo struct {
	db *sql.DB
}

func NewTireModelRepo(db *sql.DB) *TireModelRepo {
	return &TireModelRepo{db: db}
}

func (r *TireModelRepo) Create(ctx context.Context, t *domain.TireModel) (*domain.TireModel, error) {
	created := *t
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tire_models (id, company_id, brand, model, dimension, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, created.CompanyID, created.Brand, created.Model, created.Dimension, created.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &created, nil
}

func (r *TireModelRepo) GetByID(ctx context.Context, id string) (*domain.TireModel, error) {
	var t domain.TireModel
	err := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, brand, model, dimension, created_at FROM tire_models WHERE id = ?`, id).
		Scan(&t.ID, &t.CompanyID, &t.Brand, &t.Model, &t.Dimension, &t.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &t, nil
}

func (r *TireModelRepo) ListByCompany(ctx context.Context, companyID string, page domain.PageRequest) ([]domain.TireModel, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tire_models WHERE company_id = ?`, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, brand, model, dimension, created_at
		 FROM tire_models WHERE company_id = ? ORDER BY brand, model, id LIMIT ? OFFSET ?`,
		companyID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var models []domain.TireModel
	for rows.Next() {
		var t domain.TireModel
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Brand, &t.Model, &t.Dimension, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		models = append(models, t)
	}
	return models, total, rows.Err()
}

func (r *TireModelRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tire_models WHERE id = ?`, id)
	return mapDBError(err)
}
