package security

import "tiretrack/internal/domain"

// ResolveCapabilities maps an identity to the set of destinations it may
// navigate to. Pure function: no I/O, no side effects, deterministic order.
//
// Destinations are produced in fixed priority order — landing first, then the
// tenant fleet group, then owner company management, then user management,
// then reports. Consumers may rely on that order.
//
// An identity with an unrecognized role or access kind fails closed: it gets
// the landing destination and nothing else.
func ResolveCapabilities(ident *domain.Identity) domain.CapabilitySet {
	set := domain.CapabilitySet{
		Destinations: []domain.Destination{domain.DestDashboard},
	}

	if !ident.Role.Known() || !ident.AccessKind.Known() {
		return set
	}

	if ident.AccessKind == domain.AccessTenant {
		set.Destinations = append(set.Destinations,
			domain.DestInventory, domain.DestTires, domain.DestVehicles)
	}
	if ident.AccessKind == domain.AccessOwner {
		set.Destinations = append(set.Destinations, domain.DestCompanies)
		set.ManageCompanies = true
	}
	if ident.Role == domain.RoleSuperAdmin {
		set.Destinations = append(set.Destinations, domain.DestUsers)
		set.ManageUsers = true
	}
	set.Destinations = append(set.Destinations, domain.DestReports)

	return set
}

// LandingDestination is where a freshly logged-in identity is sent: owners
// land on company management, tenants on the dashboard.
func LandingDestination(ident *domain.Identity) domain.Destination {
	if ident.AccessKind == domain.AccessOwner {
		return domain.DestCompanies
	}
	return domain.DestDashboard
}
