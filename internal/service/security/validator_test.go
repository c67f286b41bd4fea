package security

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	internaldb "tiretrack/internal/db"
	"tiretrack/internal/db/repository"
	"tiretrack/internal/domain"
	"tiretrack/internal/token"
)

func setupDirectoryValidator(t *testing.T) (*DirectoryValidator, *repository.UserRepo, *repository.CompanyRepo) {
	t.Helper()
	writeDB, _ := internaldb.OpenTestSQLite(t)
	users := repository.NewUserRepo(writeDB)
	companies := repository.NewCompanyRepo(writeDB)
	issuer, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return NewDirectoryValidator(users, issuer, testLogger()), users, companies
}

func createDirectoryUser(t *testing.T, users *repository.UserRepo, email, password string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	u, err := users.Create(context.Background(), &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		AccessKind:   domain.AccessOwner,
		Active:       active,
	})
	require.NoError(t, err)
	return u
}

func TestDirectoryValidator_Success(t *testing.T) {
	v, users, _ := setupDirectoryValidator(t)
	u := createDirectoryUser(t, users, "owner@track.com", "123", true)

	ident, bearer, err := v.Validate(context.Background(), "owner@track.com", "123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, ident.ID)
	assert.Equal(t, domain.AccessOwner, ident.AccessKind)
	assert.NotEmpty(t, bearer)

	// The minted token round-trips through the validator.
	tv, err := token.NewValidator("test-secret")
	require.NoError(t, err)
	got, err := tv.Validate(bearer)
	require.NoError(t, err)
	assert.Equal(t, ident, got)
}

func TestDirectoryValidator_WrongPassword(t *testing.T) {
	v, users, _ := setupDirectoryValidator(t)
	createDirectoryUser(t, users, "owner@track.com", "123", true)

	_, _, err := v.Validate(context.Background(), "owner@track.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDirectoryValidator_UnknownEmail(t *testing.T) {
	v, _, _ := setupDirectoryValidator(t)

	_, _, err := v.Validate(context.Background(), "nobody@track.com", "123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDirectoryValidator_InactiveAccount(t *testing.T) {
	v, users, _ := setupDirectoryValidator(t)
	createDirectoryUser(t, users, "gone@track.com", "123", false)

	_, _, err := v.Validate(context.Background(), "gone@track.com", "123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDirectoryValidator_TenantIdentityCarriesCompany(t *testing.T) {
	v, users, companies := setupDirectoryValidator(t)
	company, err := companies.Create(context.Background(), &domain.Company{
		Name: "Arrecife", TaxID: "tax-1",
	})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = users.Create(context.Background(), &domain.User{
		Name: "Carla", Email: "carla@arrecife.com", PasswordHash: string(hash),
		Role: domain.RoleAdmin, AccessKind: domain.AccessTenant,
		CompanyID: &company.ID, Active: true,
	})
	require.NoError(t, err)

	ident, _, err := v.Validate(context.Background(), "carla@arrecife.com", "123")
	require.NoError(t, err)
	require.NotNil(t, ident.CompanyID)
	assert.Equal(t, company.ID, *ident.CompanyID)
}
