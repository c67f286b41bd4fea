package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"tiretrack/internal/db/repository"
	"tiretrack/internal/domain"
)

// seedDemoData creates a demo tenant company and three accounts so a fresh
// install is usable immediately. Idempotent: it does nothing once any user
// exists.
func seedDemoData(ctx context.Context, users *repository.UserRepo, companies *repository.CompanyRepo, password string, logger *slog.Logger) error {
	_, total, err := users.List(ctx, domain.PageRequest{MaxResults: 1})
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if total > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	company, err := companies.Create(ctx, &domain.Company{
		Name:   "Transportes Arrecife",
		TaxID:  "B-76543210",
		Status: domain.StatusActive,
	})
	if err != nil {
		return fmt.Errorf("create demo company: %w", err)
	}

	seedUsers := []*domain.User{
		{
			Name:       "Platform Owner",
			Email:      "owner@track.com",
			Role:       domain.RoleSuperAdmin,
			AccessKind: domain.AccessOwner,
		},
		{
			Name:       "Fleet Manager",
			Email:      "manager@arrecife.com",
			Role:       domain.RoleAdmin,
			AccessKind: domain.AccessTenant,
			CompanyID:  &company.ID,
		},
		{
			Name:       "Depot Operator",
			Email:      "operator@arrecife.com",
			Role:       domain.RoleOperator,
			AccessKind: domain.AccessTenant,
			CompanyID:  &company.ID,
		},
	}
	for _, u := range seedUsers {
		u.PasswordHash = string(hash)
		u.Active = true
		if _, err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("create seed user %s: %w", u.Email, err)
		}
	}

	logger.Info("seeded demo data",
		"company", company.Name,
		"users", len(seedUsers),
	)
	return nil
}
