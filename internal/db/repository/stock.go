package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"tiretrack/internal/domain"
)

// StockRepo implements domain.StockRepository on SQLite. Each company holds at
// most one line per tire model, so Upsert keys on (company_id, tire_model_id).
type StockRepo struct {
	db *sql.DB
}

func NewStockRepo(db *sql.DB) *StockRepo {
	return &StockRepo{db: db}
}

func (r *StockRepo) Upsert(ctx context.Context, s *domain.StockLevel) (*domain.StockLevel, error) {
	line := *s
	if line.ID == "" {
		line.ID = uuid.NewString()
	}
	line.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stock_levels (id, company_id, tire_model_id, quantity, min_quantity, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (company_id, tire_model_id) DO UPDATE SET
		   quantity = excluded.quantity,
		   min_quantity = excluded.min_quantity,
		   updated_at = excluded.updated_at`,
		line.ID, line.CompanyID, line.TireModelID, line.Quantity, line.MinQuantity, line.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}

	// Re-read so the caller sees the row's real ID when the upsert hit an
	// existing line.
	var out domain.StockLevel
	err = r.db.QueryRowContext(ctx,
		`SELECT id, company_id, tire_model_id, quantity, min_quantity, updated_at
		 FROM stock_levels WHERE company_id = ? AND tire_model_id = ?`,
		line.CompanyID, line.TireModelID).
		Scan(&out.ID, &out.CompanyID, &out.TireModelID, &out.Quantity, &out.MinQuantity, &out.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &out, nil
}

func (r *StockRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.StockLevel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.company_id, s.tire_model_id,
		        t.brand || ' ' || t.model || ' ' || t.dimension AS tire_label,
		        s.quantity, s.min_quantity, s.updated_at
		 FROM stock_levels s
		 JOIN tire_models t ON t.id = s.tire_model_id
		 WHERE s.company_id = ?
		 ORDER BY tire_label`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.StockLevel
	for rows.Next() {
		var s domain.StockLevel
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.TireModelID, &s.TireLabel,
			&s.Quantity, &s.MinQuantity, &s.UpdatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, s)
	}
	return lines, rows.Err()
}
