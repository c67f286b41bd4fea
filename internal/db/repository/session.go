package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"tiretrack/internal/domain"
)

// SessionRepo persists the current login as a single database row. Save
// replaces the row wholesale, Clear deletes it. Load distinguishes an empty
// store (domain.ErrNoSession) from an unreadable one (domain.ErrCorruptSession)
// so that callers can treat the two very differently.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Save(ctx context.Context, s *domain.Session) error {
	identityJSON, err := json.Marshal(s.Identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	var expiresAt sql.NullTime
	if !s.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: s.ExpiresAt, Valid: true}
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO current_session (id, token, identity_json, created_at, expires_at)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   token = excluded.token,
		   identity_json = excluded.identity_json,
		   created_at = excluded.created_at,
		   expires_at = excluded.expires_at`,
		s.Token, string(identityJSON), s.CreatedAt, expiresAt)
	return err
}

func (r *SessionRepo) Load(ctx context.Context) (*domain.Session, error) {
	var s domain.Session
	var identityJSON string
	var expiresAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT token, identity_json, created_at, expires_at FROM current_session WHERE id = 1`).
		Scan(&s.Token, &identityJSON, &s.CreatedAt, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		s.ExpiresAt = expiresAt.Time
	}

	if err := json.Unmarshal([]byte(identityJSON), &s.Identity); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSession, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSession, err)
	}
	return &s, nil
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM current_session WHERE id = 1`)
	return err
}
