package domain

// Destination identifies a navigable area of the application by its stable
// path. The UI and the capability resolver agree on these values.
type Destination string

const (
	DestDashboard Destination = "/dashboard"
	DestCompanies Destination = "/companies"
	DestUsers     Destination = "/users"
	DestInventory Destination = "/inventory"
	DestTires     Destination = "/tires"
	DestVehicles  Destination = "/vehicles"
	DestReports   Destination = "/reports"
	DestLogin     Destination = "/login"
)

// CapabilitySet is the derived list of destinations an Identity may navigate
// to, plus coarse management flags. It is a pure function of Identity and is
// never stored.
type CapabilitySet struct {
	// Destinations is ordered by a fixed priority the UI relies on:
	// dashboard, tenant fleet group, owner company management, user
	// management, reports.
	Destinations []Destination `json:"destinations"`

	ManageCompanies bool `json:"manage_companies"`
	ManageUsers     bool `json:"manage_users"`
}

// Allows reports whether the capability set includes the destination.
func (c CapabilitySet) Allows(d Destination) bool {
	for _, dest := range c.Destinations {
		if dest == d {
			return true
		}
	}
	return false
}
