package domain

import "time"

// Audit entry statuses.
const (
	AuditAllowed = "ALLOWED"
	AuditDenied  = "DENIED"
)

// AuditEntry records who did what, and whether it was allowed.
type AuditEntry struct {
	ID            int64
	PrincipalName string
	Action        string
	Detail        string
	Status        string
	CreatedAt     time.Time
}

// AuditFilter holds filter parameters for querying audit logs.
type AuditFilter struct {
	PrincipalName *string
	Action        *string
	Since         *time.Time
	Limit         int
	Offset        int
}
