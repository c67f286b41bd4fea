package repository

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "tiretrack/internal/db"
	"tiretrack/internal/domain"
)

func TestAuditRepo_InsertAndList(t *testing.T) {
	writeDB, _ := internaldb.OpenTestSQLite(t)
	repo := NewAuditRepo(writeDB)
	ctx := context.Background()

	entries := []domain.AuditEntry{
		{PrincipalName: "owner@track.com", Action: "company.create", Detail: "Arrecife", Status: domain.AuditAllowed},
		{PrincipalName: "operator@arrecife.com", Action: "user.delete", Detail: "u-2", Status: domain.AuditDenied},
		{PrincipalName: "owner@track.com", Action: "user.create", Detail: "u-3", Status: domain.AuditAllowed},
	}
	for i := range entries {
		require.NoError(t, repo.Insert(ctx, &entries[i]))
		assert.NotZero(t, entries[i].ID)
	}

	all, total, err := repo.List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "user.create", all[0].Action)

	principal := "owner@track.com"
	filtered, total, err := repo.List(ctx, domain.AuditFilter{PrincipalName: &principal})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, e := range filtered {
		assert.Equal(t, principal, e.PrincipalName)
	}

	action := "user.delete"
	filtered, total, err = repo.List(ctx, domain.AuditFilter{Action: &action})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, domain.AuditDenied, filtered[0].Status)
}

func TestAuditRepo_SinceFilter(t *testing.T) {
	writeDB, _ := internaldb.OpenTestSQLite(t)
	repo := NewAuditRepo(writeDB)
	ctx := context.Background()

	old := domain.AuditEntry{
		PrincipalName: "owner@track.com", Action: "login", Status: domain.AuditAllowed,
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	recent := domain.AuditEntry{
		PrincipalName: "owner@track.com", Action: "login", Status: domain.AuditAllowed,
	}
	require.NoError(t, repo.Insert(ctx, &old))
	require.NoError(t, repo.Insert(ctx, &recent))

	since := time.Now().UTC().Add(-time.Hour)
	filtered, total, err := repo.List(ctx, domain.AuditFilter{Since: &since})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, recent.ID, filtered[0].ID)
}

func TestAuditRepo_Pagination(t *testing.T) {
	writeDB, _ := internaldb.OpenTestSQLite(t)
	repo := NewAuditRepo(writeDB)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, &domain.AuditEntry{
			PrincipalName: "owner@track.com", Action: "ping", Status: domain.AuditAllowed,
		}))
	}

	page, total, err := repo.List(ctx, domain.AuditFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)
}
