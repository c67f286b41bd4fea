package directory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "tiretrack/internal/db"
	"tiretrack/internal/db/repository"
	"tiretrack/internal/domain"
)

type testEnv struct {
	companies *CompanyService
	users     *UserService
	auditSvc  *AuditService
	auditRepo *repository.AuditRepo
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	writeDB, _ := internaldb.OpenTestSQLite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	companyRepo := repository.NewCompanyRepo(writeDB)
	userRepo := repository.NewUserRepo(writeDB)
	auditRepo := repository.NewAuditRepo(writeDB)
	return &testEnv{
		companies: NewCompanyService(companyRepo, auditRepo, logger),
		users:     NewUserService(userRepo, companyRepo, auditRepo, logger),
		auditSvc:  NewAuditService(auditRepo),
		auditRepo: auditRepo,
	}
}

func ownerCtx() context.Context {
	return domain.WithIdentity(context.Background(), &domain.Identity{
		ID: "owner-1", DisplayName: "Platform Owner", Email: "owner@track.com",
		Role: domain.RoleSuperAdmin, AccessKind: domain.AccessOwner,
	})
}

func tenantCtx(companyID string) context.Context {
	return domain.WithIdentity(context.Background(), &domain.Identity{
		ID: "tenant-1", DisplayName: "Tenant Admin", Email: "admin@tenant.com",
		Role: domain.RoleAdmin, AccessKind: domain.AccessTenant, CompanyID: &companyID,
	})
}

func TestCompanyService_CRUD(t *testing.T) {
	env := setupEnv(t)
	ctx := ownerCtx()

	company, err := env.companies.Create(ctx, &domain.CreateCompanyRequest{
		Name: "Transportes Arrecife", TaxID: "12.345.678/0001-90",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, company.Status)

	newName := "Arrecife Logística"
	updated, err := env.companies.Update(ctx, company.ID, &domain.UpdateCompanyRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	list, total, err := env.companies.List(ctx, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	require.NoError(t, env.companies.Delete(ctx, company.ID))
	_, err = env.companies.GetByID(ctx, company.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCompanyService_TenantDeniedAndAudited(t *testing.T) {
	env := setupEnv(t)

	_, err := env.companies.Create(tenantCtx("c1"), &domain.CreateCompanyRequest{
		Name: "Sneaky", TaxID: "tax",
	})
	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)

	// The denial left an audit trail.
	entries, total, err := env.auditRepo.List(context.Background(), domain.AuditFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, domain.AuditDenied, entries[0].Status)
	assert.Equal(t, "company.create", entries[0].Action)
}

func TestCompanyService_RequiresIdentity(t *testing.T) {
	env := setupEnv(t)
	_, _, err := env.companies.List(context.Background(), domain.PageRequest{})
	var denied *domain.AccessDeniedError
	assert.ErrorAs(t, err, &denied)
}

func TestCompanyService_ValidatesInput(t *testing.T) {
	env := setupEnv(t)
	_, err := env.companies.Create(ownerCtx(), &domain.CreateCompanyRequest{TaxID: "tax"})
	var invalid *domain.ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_RegisterTenantUser(t *testing.T) {
	env := setupEnv(t)
	ctx := ownerCtx()

	company, err := env.companies.Create(ctx, &domain.CreateCompanyRequest{
		Name: "Arrecife", TaxID: "tax-1",
	})
	require.NoError(t, err)

	user, err := env.users.Register(ctx, &domain.RegisterUserRequest{
		Name: "Carla Mendes", Email: "carla@arrecife.com", Password: "123",
		Role: domain.RoleAdmin, AccessKind: domain.AccessTenant, CompanyID: &company.ID,
	})
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.NotEqual(t, "123", user.PasswordHash)
}

func TestUserService_RegisterRejectsUnknownCompany(t *testing.T) {
	env := setupEnv(t)
	missing := "no-such-company"

	_, err := env.users.Register(ownerCtx(), &domain.RegisterUserRequest{
		Name: "X", Email: "x@y.com", Password: "123",
		Role: domain.RoleOperator, AccessKind: domain.AccessTenant, CompanyID: &missing,
	})
	var invalid *domain.ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_RegisterRejectsOwnerWithCompany(t *testing.T) {
	env := setupEnv(t)
	companyID := "c1"

	_, err := env.users.Register(ownerCtx(), &domain.RegisterUserRequest{
		Name: "X", Email: "x@y.com", Password: "123",
		Role: domain.RoleSuperAdmin, AccessKind: domain.AccessOwner, CompanyID: &companyID,
	})
	var invalid *domain.ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_NonSuperAdminDenied(t *testing.T) {
	env := setupEnv(t)

	_, _, err := env.users.List(tenantCtx("c1"), domain.PageRequest{})
	var denied *domain.AccessDeniedError
	assert.ErrorAs(t, err, &denied)
}

func TestUserService_CannotDeactivateSelf(t *testing.T) {
	env := setupEnv(t)
	ctx := ownerCtx()

	err := env.users.SetActive(ctx, "owner-1", false)
	var invalid *domain.ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_CannotDeleteSelf(t *testing.T) {
	env := setupEnv(t)
	err := env.users.Delete(ownerCtx(), "owner-1")
	var invalid *domain.ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestAuditService_SuperAdminOnly(t *testing.T) {
	env := setupEnv(t)

	_, _, err := env.auditSvc.List(tenantCtx("c1"), domain.AuditFilter{})
	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)

	_, _, err = env.auditSvc.List(ownerCtx(), domain.AuditFilter{})
	require.NoError(t, err)
}
