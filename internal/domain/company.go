package domain

import "time"

// Company statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Company represents a client (tenant) organization whose fleet is managed
// on the platform.
type Company struct {
	ID          string
	Name        string
	TaxID       string // national company registration number
	Status      string // "active" or "inactive"
	ActiveUsers int64  // derived count, populated on list/get
	CreatedAt   time.Time
}

// CreateCompanyRequest holds parameters for registering a client company.
type CreateCompanyRequest struct {
	Name  string
	TaxID string
}

// Validate checks that the request is well-formed.
func (r *CreateCompanyRequest) Validate() error {
	if r.Name == "" {
		return ErrValidation("company name is required")
	}
	if r.TaxID == "" {
		return ErrValidation("company tax id is required")
	}
	return nil
}

// UpdateCompanyRequest holds parameters for updating a client company.
// Nil fields are left unchanged.
type UpdateCompanyRequest struct {
	Name   *string
	TaxID  *string
	Status *string
}

// Validate checks that the request is well-formed.
func (r *UpdateCompanyRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return ErrValidation("company name must not be empty")
	}
	if r.Status != nil && *r.Status != StatusActive && *r.Status != StatusInactive {
		return ErrValidation("status must be 'active' or 'inactive'")
	}
	return nil
}
