package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tiretrack/internal/domain"
)

func ownerIdentity(role domain.Role) *domain.Identity {
	return &domain.Identity{
		ID:          "owner-1",
		DisplayName: "Platform Owner",
		Role:        role,
		AccessKind:  domain.AccessOwner,
	}
}

func tenantIdentity(role domain.Role) *domain.Identity {
	companyID := "company-1"
	return &domain.Identity{
		ID:          "tenant-1",
		DisplayName: "Tenant User",
		Role:        role,
		AccessKind:  domain.AccessTenant,
		CompanyID:   &companyID,
	}
}

func TestResolveCapabilities_OwnerSuperAdmin(t *testing.T) {
	set := ResolveCapabilities(ownerIdentity(domain.RoleSuperAdmin))

	assert.Equal(t, []domain.Destination{
		domain.DestDashboard,
		domain.DestCompanies,
		domain.DestUsers,
		domain.DestReports,
	}, set.Destinations)
	assert.True(t, set.ManageCompanies)
	assert.True(t, set.ManageUsers)
}

func TestResolveCapabilities_TenantOperator(t *testing.T) {
	set := ResolveCapabilities(tenantIdentity(domain.RoleOperator))

	assert.Equal(t, []domain.Destination{
		domain.DestDashboard,
		domain.DestInventory,
		domain.DestTires,
		domain.DestVehicles,
		domain.DestReports,
	}, set.Destinations)
	assert.False(t, set.ManageCompanies)
	assert.False(t, set.ManageUsers)
}

func TestResolveCapabilities_TenantSuperAdminSeesUsers(t *testing.T) {
	set := ResolveCapabilities(tenantIdentity(domain.RoleSuperAdmin))

	assert.Equal(t, []domain.Destination{
		domain.DestDashboard,
		domain.DestInventory,
		domain.DestTires,
		domain.DestVehicles,
		domain.DestUsers,
		domain.DestReports,
	}, set.Destinations)
	assert.False(t, set.ManageCompanies)
	assert.True(t, set.ManageUsers)
}

func TestResolveCapabilities_UnknownRoleFailsClosed(t *testing.T) {
	ident := tenantIdentity("unknown-value")
	set := ResolveCapabilities(ident)

	assert.Equal(t, []domain.Destination{domain.DestDashboard}, set.Destinations)
	assert.False(t, set.ManageCompanies)
	assert.False(t, set.ManageUsers)
}

func TestResolveCapabilities_UnknownAccessKindFailsClosed(t *testing.T) {
	ident := &domain.Identity{
		ID:          "x",
		DisplayName: "X",
		Role:        domain.RoleSuperAdmin,
		AccessKind:  "franchise",
	}
	set := ResolveCapabilities(ident)

	assert.Equal(t, []domain.Destination{domain.DestDashboard}, set.Destinations)
}

func TestResolveCapabilities_Deterministic(t *testing.T) {
	ident := ownerIdentity(domain.RoleSuperAdmin)
	first := ResolveCapabilities(ident)
	second := ResolveCapabilities(ident)
	assert.Equal(t, first, second)
}

func TestCapabilitySet_Allows(t *testing.T) {
	set := ResolveCapabilities(tenantIdentity(domain.RoleAdmin))
	assert.True(t, set.Allows(domain.DestInventory))
	assert.True(t, set.Allows(domain.DestReports))
	assert.False(t, set.Allows(domain.DestUsers))
	assert.False(t, set.Allows(domain.DestCompanies))
}

func TestLandingDestination(t *testing.T) {
	assert.Equal(t, domain.DestCompanies, LandingDestination(ownerIdentity(domain.RoleSuperAdmin)))
	assert.Equal(t, domain.DestDashboard, LandingDestination(tenantIdentity(domain.RoleAdmin)))
}
