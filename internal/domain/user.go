package domain

import "time"

// User is a stored account. It carries the credential hash and status that an
// Identity never exposes.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	AccessKind   AccessKind
	CompanyID    *string
	Active       bool
	CreatedAt    time.Time
}

// Identity derives the authenticated principal view of the user, enforcing
// the Owner/Tenant invariant.
func (u *User) Identity() (*Identity, error) {
	return NewIdentity(u.ID, u.Name, u.Email, u.Role, u.AccessKind, u.CompanyID)
}

// RegisterUserRequest holds parameters for registering a user account.
// Password is the initial plaintext secret; the service hashes it.
type RegisterUserRequest struct {
	Name       string
	Email      string
	Password   string
	Role       Role
	AccessKind AccessKind
	CompanyID  *string
}

// Validate checks that the request is well-formed and invariant-consistent.
func (r *RegisterUserRequest) Validate() error {
	if r.Name == "" {
		return ErrValidation("user name is required")
	}
	if r.Email == "" {
		return ErrValidation("user email is required")
	}
	if len(r.Password) < 3 {
		return ErrValidation("password is too short")
	}
	if !r.Role.Known() {
		return ErrValidation("role must be 'SuperAdmin', 'Admin', or 'Operator'")
	}
	if !r.AccessKind.Known() {
		return ErrValidation("access kind must be 'Owner' or 'Tenant'")
	}
	if r.AccessKind == AccessOwner && r.CompanyID != nil {
		return ErrValidation("owner users must not reference a company")
	}
	if r.AccessKind == AccessTenant && r.CompanyID == nil {
		return ErrValidation("tenant users must reference a company")
	}
	return nil
}
