package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"syscall"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	internaldb "tiretrack/internal/db"
	"tiretrack/internal/db/repository"
	"tiretrack/internal/domain"
)

func openDB(path string) (*sql.DB, error) {
	db, err := internaldb.OpenSQLite(path, "write", 0)
	if err != nil {
		return nil, err
	}
	if err := internaldb.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newCreateUserCmd(dbPath *string) *cobra.Command {
	var (
		name       string
		email      string
		password   string
		role       string
		accessKind string
		companyID  string
	)

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account",
		Long:  "Creates a user account directly in the database. Prompts for the password when --password is not given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			var company *string
			if companyID != "" {
				company = &companyID
			}
			req := &domain.RegisterUserRequest{
				Name:       name,
				Email:      email,
				Password:   password,
				Role:       domain.Role(role),
				AccessKind: domain.AccessKind(accessKind),
				CompanyID:  company,
			}
			if err := req.Validate(); err != nil {
				return err
			}

			db, err := openDB(*dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user, err := repository.NewUserRepo(db).Create(context.Background(), &domain.User{
				Name:         name,
				Email:        email,
				PasswordHash: string(hash),
				Role:         req.Role,
				AccessKind:   req.AccessKind,
				CompanyID:    company,
				Active:       true,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "initial password (prompted when omitted)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "role: SuperAdmin, Admin, or Operator")
	cmd.Flags().StringVar(&accessKind, "access", string(domain.AccessOwner), "access kind: Owner or Tenant")
	cmd.Flags().StringVar(&companyID, "company", "", "company id (required for Tenant accounts)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newSeedCmd(dbPath *string) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed demo data",
		Long:  "Creates the demo company and accounts. Does nothing when users already exist.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(*dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := context.Background()
			users := repository.NewUserRepo(db)
			if _, total, err := users.List(ctx, domain.PageRequest{MaxResults: 1}); err != nil {
				return err
			} else if total > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "users already exist, nothing to do")
				return nil
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			company, err := repository.NewCompanyRepo(db).Create(ctx, &domain.Company{
				Name:   "Transportes Arrecife",
				TaxID:  "B-76543210",
				Status: domain.StatusActive,
			})
			if err != nil {
				return err
			}
			seedUsers := []*domain.User{
				{Name: "Platform Owner", Email: "owner@track.com", Role: domain.RoleSuperAdmin, AccessKind: domain.AccessOwner},
				{Name: "Fleet Manager", Email: "manager@arrecife.com", Role: domain.RoleAdmin, AccessKind: domain.AccessTenant, CompanyID: &company.ID},
				{Name: "Depot Operator", Email: "operator@arrecife.com", Role: domain.RoleOperator, AccessKind: domain.AccessTenant, CompanyID: &company.ID},
			}
			for _, u := range seedUsers {
				u.PasswordHash = string(hash)
				u.Active = true
				if _, err := users.Create(ctx, u); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s and %d users\n", company.Name, len(seedUsers))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "123", "password for the seeded accounts")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a password for manual database edits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}
