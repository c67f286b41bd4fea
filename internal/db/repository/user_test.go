package repository

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "tiretrack/internal/db"
	"tiretrack/internal/domain"
)

func setupRepos(t *testing.T) (*UserRepo, *CompanyRepo) {
	t.Helper()
	writeDB, _ := internaldb.OpenTestSQLite(t)
	return NewUserRepo(writeDB), NewCompanyRepo(writeDB)
}

func createTestCompany(t *testing.T, companies *CompanyRepo, name string) *domain.Company {
	t.Helper()
	c, err := companies.Create(context.Background(), &domain.Company{
		Name:  name,
		TaxID: "tax-" + name,
	})
	require.NoError(t, err)
	return c
}

func TestUserRepo_CRUD(t *testing.T) {
	users, companies := setupRepos(t)
	ctx := context.Background()
	company := createTestCompany(t, companies, "arrecife")

	u, err := users.Create(ctx, &domain.User{
		Name:         "Carla Mendes",
		Email:        "carla@arrecife.com",
		PasswordHash: "hashed",
		Role:         domain.RoleAdmin,
		AccessKind:   domain.AccessTenant,
		CompanyID:    &company.ID,
		Active:       true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	found, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carla Mendes", found.Name)
	assert.Equal(t, domain.RoleAdmin, found.Role)
	require.NotNil(t, found.CompanyID)
	assert.Equal(t, company.ID, *found.CompanyID)
	assert.True(t, found.Active)

	found, err = users.GetByEmail(ctx, "carla@arrecife.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	list, total, err := users.List(ctx, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	err = users.Delete(ctx, u.ID)
	require.NoError(t, err)

	_, err = users.GetByID(ctx, u.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserRepo_OwnerHasNoCompany(t *testing.T) {
	users, _ := setupRepos(t)
	ctx := context.Background()

	u, err := users.Create(ctx, &domain.User{
		Name:         "Platform Owner",
		Email:        "owner@track.com",
		PasswordHash: "hashed",
		Role:         domain.RoleSuperAdmin,
		AccessKind:   domain.AccessOwner,
		Active:       true,
	})
	require.NoError(t, err)

	found, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CompanyID)
	assert.Equal(t, domain.AccessOwner, found.AccessKind)
}

func TestUserRepo_DuplicateEmailConflicts(t *testing.T) {
	users, _ := setupRepos(t)
	ctx := context.Background()

	_, err := users.Create(ctx, &domain.User{
		Name: "First", Email: "dup@track.com", PasswordHash: "h",
		Role: domain.RoleSuperAdmin, AccessKind: domain.AccessOwner, Active: true,
	})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{
		Name: "Second", Email: "dup@track.com", PasswordHash: "h",
		Role: domain.RoleSuperAdmin, AccessKind: domain.AccessOwner, Active: true,
	})
	require.Error(t, err)
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUserRepo_SetActive(t *testing.T) {
	users, _ := setupRepos(t)
	ctx := context.Background()

	u, err := users.Create(ctx, &domain.User{
		Name: "Toggle", Email: "toggle@track.com", PasswordHash: "h",
		Role: domain.RoleSuperAdmin, AccessKind: domain.AccessOwner, Active: true,
	})
	require.NoError(t, err)

	require.NoError(t, users.SetActive(ctx, u.ID, false))
	found, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, found.Active)

	err = users.SetActive(ctx, "missing-id", false)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
