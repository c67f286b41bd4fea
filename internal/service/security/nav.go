package security

import (
	"sync"

	"tiretrack/internal/domain"
)

// NavEntry is one visible navigation item.
type NavEntry struct {
	Label       string
	Destination domain.Destination
}

var navLabels = map[domain.Destination]string{
	domain.DestDashboard: "Dashboard",
	domain.DestInventory: "Inventory",
	domain.DestTires:     "Tire Models",
	domain.DestVehicles:  "Vehicles",
	domain.DestCompanies: "Companies",
	domain.DestUsers:     "Users",
	domain.DestReports:   "Reports",
}

// NavComposer derives the visible navigation from an identity's capability
// set. It memoizes the last identity/result pair; the cache is a render
// optimization only and dropping it changes nothing observable.
type NavComposer struct {
	mu         sync.Mutex
	lastIdent  domain.Identity
	lastResult []NavEntry
	cached     bool
}

func NewNavComposer() *NavComposer {
	return &NavComposer{}
}

// Entries returns the ordered navigation entries for the identity. A nil
// identity (logged out) yields no entries.
func (c *NavComposer) Entries(ident *domain.Identity) []NavEntry {
	if ident == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached && identityEqual(c.lastIdent, *ident) {
		return c.lastResult
	}

	set := ResolveCapabilities(ident)
	entries := make([]NavEntry, 0, len(set.Destinations))
	for _, dest := range set.Destinations {
		label, ok := navLabels[dest]
		if !ok {
			label = string(dest)
		}
		entries = append(entries, NavEntry{Label: label, Destination: dest})
	}

	c.lastIdent = *ident
	c.lastResult = entries
	c.cached = true
	return entries
}

func identityEqual(a, b domain.Identity) bool {
	if a.ID != b.ID || a.Role != b.Role || a.AccessKind != b.AccessKind {
		return false
	}
	switch {
	case a.CompanyID == nil && b.CompanyID == nil:
		return true
	case a.CompanyID != nil && b.CompanyID != nil:
		return *a.CompanyID == *b.CompanyID
	}
	return false
}
