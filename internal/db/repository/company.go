package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"tiretrack/internal/domain"
)

// CompanyRepo implements domain.CompanyRepository on SQLite. List and GetByID
// populate the derived ActiveUsers count with a correlated subquery.
type CompanyRepo struct {
	db *sql.DB
}

func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `c.id, c.name, c.tax_id, c.status, c.created_at,
	(SELECT COUNT(*) FROM users u WHERE u.company_id = c.id AND u.active = 1) AS active_users`

func (r *CompanyRepo) Create(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	created := *c
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.Status == "" {
		created.Status = domain.StatusActive
	}
	created.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, tax_id, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		created.ID, created.Name, created.TaxID, created.Status, created.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &created, nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies c WHERE c.id = ?`, id)
	c, err := scanCompany(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return c, nil
}

func (r *CompanyRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Company, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies c ORDER BY c.name, c.id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, *c)
	}
	return companies, total, rows.Err()
}

func (r *CompanyRepo) Update(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE companies SET name = ?, tax_id = ?, status = ? WHERE id = ?`,
		c.Name, c.TaxID, c.Status, c.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound("company %s not found", c.ID)
	}
	return r.GetByID(ctx, c.ID)
}

func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	return mapDBError(err)
}

func scanCompany(s rowScanner) (*domain.Company, error) {
	var c domain.Company
	if err := s.Scan(&c.ID, &c.Name, &c.TaxID, &c.Status, &c.CreatedAt, &c.ActiveUsers); err != nil {
		return nil, err
	}
	return &c, nil
}
