package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"tiretrack/internal/domain"
)

// UserRepo implements domain.UserRepository on SQLite.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	created := *u
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, access_kind, company_id, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.Name, created.Email, created.PasswordHash,
		string(created.Role), string(created.AccessKind), nullStr(created.CompanyID),
		boolToInt(created.Active), created.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &created, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role, access_kind, company_id, active, created_at
		 FROM users WHERE id = ?`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role, access_kind, company_id, active, created_at
		 FROM users WHERE email = ?`, email))
}

func (r *UserRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, password_hash, role, access_kind, company_id, active, created_at
		 FROM users ORDER BY created_at, id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("user %s not found", id)
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return mapDBError(err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepo) scanOne(row *sql.Row) (*domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return u, nil
}

func scanUser(s rowScanner) (*domain.User, error) {
	var u domain.User
	var role, kind string
	var companyID sql.NullString
	var active int64
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &kind, &companyID, &active, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.AccessKind = domain.AccessKind(kind)
	u.CompanyID = strFromNull(companyID)
	u.Active = active != 0
	return &u, nil
}
