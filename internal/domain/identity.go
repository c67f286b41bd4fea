package domain

// Role is the permission tier of an identity within its access kind.
type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleAdmin      Role = "Admin"
	RoleOperator   Role = "Operator"
)

// Known reports whether the role is one of the fixed enumeration values.
func (r Role) Known() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleOperator:
		return true
	}
	return false
}

// AccessKind partitions identities between the platform owner organization
// and tenant (client) fleet organizations.
type AccessKind string

const (
	AccessOwner  AccessKind = "Owner"
	AccessTenant AccessKind = "Tenant"
)

// Known reports whether the access kind is one of the fixed enumeration values.
func (k AccessKind) Known() bool {
	return k == AccessOwner || k == AccessTenant
}

// Identity represents an authenticated principal.
//
// Invariant: AccessKind == Owner implies CompanyID == nil, and
// AccessKind == Tenant implies CompanyID != nil. Every constructed Identity
// must satisfy it; a violation is a data-integrity error, not a recoverable
// state.
type Identity struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	AccessKind  AccessKind `json:"access_kind"`
	CompanyID   *string    `json:"company_id,omitempty"`
}

// NewIdentity constructs an Identity and enforces the Owner/Tenant invariant.
func NewIdentity(id, displayName, email string, role Role, kind AccessKind, companyID *string) (*Identity, error) {
	ident := &Identity{
		ID:          id,
		DisplayName: displayName,
		Email:       email,
		Role:        role,
		AccessKind:  kind,
		CompanyID:   companyID,
	}
	if err := ident.Validate(); err != nil {
		return nil, err
	}
	return ident, nil
}

// Validate checks structural well-formedness and the Owner/Tenant invariant.
// Role and AccessKind values outside the known enumeration are accepted here;
// capability resolution fails closed for them instead.
func (i *Identity) Validate() error {
	if i.ID == "" {
		return ErrValidation("identity id is required")
	}
	if i.DisplayName == "" {
		return ErrValidation("identity display name is required")
	}
	if i.Role == "" {
		return ErrValidation("identity role is required")
	}
	if i.AccessKind == "" {
		return ErrValidation("identity access kind is required")
	}
	if i.AccessKind == AccessOwner && i.CompanyID != nil {
		return ErrValidation("owner identity must not reference a company")
	}
	if i.AccessKind == AccessTenant && i.CompanyID == nil {
		return ErrValidation("tenant identity must reference a company")
	}
	return nil
}
