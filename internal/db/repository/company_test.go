package repository

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiretrack/internal/domain"
)

func TestCompanyRepo_CRUD(t *testing.T) {
	_, companies := setupRepos(t)
	ctx := context.Background()

	c, err := companies.Create(ctx, &domain.Company{
		Name:  "Transportes Arrecife",
		TaxID: "12.345.678/0001-90",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, domain.StatusActive, c.Status)

	found, err := companies.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Transportes Arrecife", found.Name)
	assert.Equal(t, int64(0), found.ActiveUsers)

	found.Name = "Arrecife Logística"
	found.Status = domain.StatusInactive
	updated, err := companies.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Arrecife Logística", updated.Name)
	assert.Equal(t, domain.StatusInactive, updated.Status)

	list, total, err := companies.List(ctx, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	require.NoError(t, companies.Delete(ctx, c.ID))
	_, err = companies.GetByID(ctx, c.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCompanyRepo_ActiveUsersCount(t *testing.T) {
	users, companies := setupRepos(t)
	ctx := context.Background()
	company := createTestCompany(t, companies, "counted")

	active, err := users.Create(ctx, &domain.User{
		Name: "Active", Email: "active@counted.com", PasswordHash: "h",
		Role: domain.RoleAdmin, AccessKind: domain.AccessTenant,
		CompanyID: &company.ID, Active: true,
	})
	require.NoError(t, err)
	_, err = users.Create(ctx, &domain.User{
		Name: "Inactive", Email: "inactive@counted.com", PasswordHash: "h",
		Role: domain.RoleOperator, AccessKind: domain.AccessTenant,
		CompanyID: &company.ID, Active: false,
	})
	require.NoError(t, err)

	found, err := companies.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.ActiveUsers)

	// Deactivating the remaining user drops the count to zero.
	require.NoError(t, users.SetActive(ctx, active.ID, false))
	found, err = companies.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), found.ActiveUsers)
}

func TestCompanyRepo_DuplicateTaxIDConflicts(t *testing.T) {
	_, companies := setupRepos(t)
	ctx := context.Background()

	_, err := companies.Create(ctx, &domain.Company{Name: "One", TaxID: "same-tax"})
	require.NoError(t, err)

	_, err = companies.Create(ctx, &domain.Company{Name: "Two", TaxID: "same-tax"})
	require.Error(t, err)
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCompanyRepo_DeleteCascadesUsers(t *testing.T) {
	users, companies := setupRepos(t)
	ctx := context.Background()
	company := createTestCompany(t, companies, "doomed")

	u, err := users.Create(ctx, &domain.User{
		Name: "Tenant User", Email: "tenant@doomed.com", PasswordHash: "h",
		Role: domain.RoleAdmin, AccessKind: domain.AccessTenant,
		CompanyID: &company.ID, Active: true,
	})
	require.NoError(t, err)

	require.NoError(t, companies.Delete(ctx, company.ID))

	_, err = users.GetByID(ctx, u.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
