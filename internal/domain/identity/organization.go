package identity

import (
	"regexp"
	"strings"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// OrganizationStatus represents the status of an organization
type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Organization is the tenancy root: every store, user, provider, purchase
// and payment belongs to exactly one organization.
type Organization struct {
	shared.BaseAggregateRoot
	Name   string             `gorm:"type:varchar(200);not null"`
	Slug   string             `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status OrganizationStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new organization
func NewOrganization(name, slug string) (*Organization, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}
	slug = strings.ToLower(slug)
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewValidationError("INVALID_SLUG", "Organization slug must be lowercase letters, digits and hyphens")
	}

	return &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Status:            OrganizationStatusActive,
	}, nil
}

// Rename changes the organization display name
func (o *Organization) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Organization name cannot be empty")
	}
	o.Name = name
	o.Touch()
	o.IncrementVersion()
	return nil
}

// Suspend blocks all access for the organization
func (o *Organization) Suspend() error {
	if o.Status == OrganizationStatusSuspended {
		return shared.NewDomainError(shared.KindInvalidState, "ALREADY_SUSPENDED", "Organization is already suspended")
	}
	o.Status = OrganizationStatusSuspended
	o.Touch()
	o.IncrementVersion()
	return nil
}

// IsActive returns true if members of the organization may log in
func (o *Organization) IsActive() bool {
	return o.Status == OrganizationStatusActive
}
