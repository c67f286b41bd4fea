// Package app wires repositories, services, and the session core together.
// main() provides the external dependencies; everything else is built here.
package app

import (
	"context"
	"database/sql"
	"log/slog"

	"tiretrack/internal/config"
	"tiretrack/internal/db/repository"
	"tiretrack/internal/metrics"
	"tiretrack/internal/service/directory"
	"tiretrack/internal/service/fleet"
	"tiretrack/internal/service/reporting"
	"tiretrack/internal/service/security"
	"tiretrack/internal/token"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, logger, and the metrics recorder.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Services groups the service pointers the API handler and UI need.
type Services struct {
	Validator security.CredentialValidator
	Sessions  *security.Manager
	Guard     *security.RouteGuard
	Companies *directory.CompanyService
	Users     *directory.UserService
	Audit     *directory.AuditService
	Fleet     *fleet.Service
	Reports   *reporting.Service
}

// App is the fully-wired application.
type App struct {
	Services       Services
	TokenValidator *token.Validator
	Users          *repository.UserRepo
}

// New wires all repositories and services from the provided deps. It does
// not restore the session or start the scheduler; main() sequences those.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg
	rec := deps.Metrics
	if rec == nil {
		rec = metrics.Noop{}
	}

	// Repositories. Mutations go through the write pool; list-heavy repos
	// read through the read pool.
	userRepo := repository.NewUserRepo(deps.WriteDB)
	companyRepo := repository.NewCompanyRepo(deps.WriteDB)
	auditRepo := repository.NewAuditRepo(deps.WriteDB)
	vehicleRepo := repository.NewVehicleRepo(deps.WriteDB)
	tireRepo := repository.NewTireModelRepo(deps.WriteDB)
	stockRepo := repository.NewStockRepo(deps.WriteDB)
	snapshotRepo := repository.NewSnapshotRepo(deps.WriteDB)
	sessionRepo := repository.NewSessionRepo(deps.WriteDB)

	issuer, err := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return nil, err
	}
	tokenValidator, err := token.NewValidator(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}

	validator := security.NewDirectoryValidator(userRepo, issuer, deps.Logger)
	sessions := security.NewManager(validator, sessionRepo, cfg.Auth.SessionTTL, deps.Logger,
		security.WithMetrics(rec))
	guard := security.NewRouteGuard(sessions, rec)

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, userRepo, companyRepo, cfg.SeedPassword, deps.Logger); err != nil {
			deps.Logger.Warn("seed demo data failed", "error", err)
		}
	}

	return &App{
		Services: Services{
			Validator: validator,
			Sessions:  sessions,
			Guard:     guard,
			Companies: directory.NewCompanyService(companyRepo, auditRepo, deps.Logger),
			Users:     directory.NewUserService(userRepo, companyRepo, auditRepo, deps.Logger),
			Audit:     directory.NewAuditService(auditRepo),
			Fleet:     fleet.NewService(vehicleRepo, tireRepo, stockRepo, deps.Logger),
			Reports:   reporting.NewService(companyRepo, vehicleRepo, tireRepo, stockRepo, snapshotRepo, deps.Logger),
		},
		TokenValidator: tokenValidator,
		Users:          userRepo,
	}, nil
}
