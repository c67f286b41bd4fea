package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiretrack/internal/domain"
)

func TestIssueAndValidateRoundTrip(t *testing.T) {
	issuer, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	validator, err := NewValidator("test-secret")
	require.NoError(t, err)

	companyID := "company-1"
	ident := &domain.Identity{
		ID:          "user-1",
		DisplayName: "Carla Mendes",
		Email:       "carla@arrecife.com",
		Role:        domain.RoleAdmin,
		AccessKind:  domain.AccessTenant,
		CompanyID:   &companyID,
	}

	now := time.Now().UTC()
	signed, expiresAt, err := issuer.Issue(ident, now)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	got, err := validator.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, ident, got)
}

func TestIssueOwnerOmitsCompany(t *testing.T) {
	issuer, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	validator, err := NewValidator("test-secret")
	require.NoError(t, err)

	ident := &domain.Identity{
		ID:          "owner-1",
		DisplayName: "Platform Owner",
		Email:       "owner@track.com",
		Role:        domain.RoleSuperAdmin,
		AccessKind:  domain.AccessOwner,
	}

	signed, _, err := issuer.Issue(ident, time.Now())
	require.NoError(t, err)

	got, err := validator.Validate(signed)
	require.NoError(t, err)
	assert.Nil(t, got.CompanyID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, err := NewIssuer("secret-a", time.Hour)
	require.NoError(t, err)
	validator, err := NewValidator("secret-b")
	require.NoError(t, err)

	signed, _, err := issuer.Issue(&domain.Identity{
		ID: "u", DisplayName: "U", Role: domain.RoleSuperAdmin, AccessKind: domain.AccessOwner,
	}, time.Now())
	require.NoError(t, err)

	_, err = validator.Validate(signed)
	require.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	issuer, err := NewIssuer("test-secret", time.Minute)
	require.NoError(t, err)
	validator, err := NewValidator("test-secret")
	require.NoError(t, err)

	signed, _, err := issuer.Issue(&domain.Identity{
		ID: "u", DisplayName: "U", Role: domain.RoleSuperAdmin, AccessKind: domain.AccessOwner,
	}, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = validator.Validate(signed)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	validator, err := NewValidator("test-secret")
	require.NoError(t, err)

	_, err = validator.Validate("not-a-token")
	require.Error(t, err)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	issuer, err := NewIssuer("test-secret", 0)
	require.NoError(t, err)
	validator, err := NewValidator("test-secret")
	require.NoError(t, err)

	signed, expiresAt, err := issuer.Issue(&domain.Identity{
		ID: "u", DisplayName: "U", Role: domain.RoleSuperAdmin, AccessKind: domain.AccessOwner,
	}, time.Now().Add(-365*24*time.Hour))
	require.NoError(t, err)
	assert.True(t, expiresAt.IsZero())

	_, err = validator.Validate(signed)
	require.NoError(t, err)
}
