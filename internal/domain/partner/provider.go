package partner

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// ProviderStatus represents the status of a provider
type ProviderStatus string

const (
	ProviderStatusActive   ProviderStatus = "active"
	ProviderStatusInactive ProviderStatus = "inactive"
)

// Provider represents a supplier the organization purchases from.
// The reconciliation engine only ever references it by ID; everything here
// is display and contact data.
type Provider struct {
	shared.OrgAggregateRoot
	Code        string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_provider_org_code,priority:2"`
	Name        string         `gorm:"type:varchar(200);not null"`
	Status      ProviderStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName string         `gorm:"type:varchar(100)"`
	Phone       string         `gorm:"type:varchar(50);index"`
	Email       string         `gorm:"type:varchar(200);index"`
	Address     string         `gorm:"type:text"`
	TaxID       string         `gorm:"type:varchar(50)"`
	// CreditDays is the payment term used to default a purchase's due date.
	CreditDays int    `gorm:"not null;default:0"`
	Notes      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Provider) TableName() string {
	return "providers"
}

// NewProvider creates a new provider with required fields
func NewProvider(orgID uuid.UUID, code, name string) (*Provider, error) {
	if err := validateProviderCode(code); err != nil {
		return nil, err
	}
	if err := validateProviderName(name); err != nil {
		return nil, err
	}

	p := &Provider{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Code:             strings.ToUpper(code),
		Name:             name,
		Status:           ProviderStatusActive,
	}

	p.AddDomainEvent(NewProviderCreatedEvent(p))

	return p, nil
}

// Update updates the provider's basic information
func (p *Provider) Update(name, contactName, phone, email, address, taxID, notes string, creditDays int) error {
	if err := validateProviderName(name); err != nil {
		return err
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewValidationError("INVALID_EMAIL", "Email address is not valid")
		}
	}
	if creditDays < 0 {
		return shared.NewValidationError("INVALID_CREDIT_DAYS", "Credit days cannot be negative")
	}

	p.Name = name
	p.ContactName = contactName
	p.Phone = phone
	p.Email = email
	p.Address = address
	p.TaxID = taxID
	p.Notes = notes
	p.CreditDays = creditDays
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Deactivate marks the provider inactive; existing purchases keep the
// reference
func (p *Provider) Deactivate() error {
	if p.Status == ProviderStatusInactive {
		return shared.NewDomainError(shared.KindInvalidState, "ALREADY_INACTIVE", "Provider is already inactive")
	}
	p.Status = ProviderStatusInactive
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Activate re-enables an inactive provider
func (p *Provider) Activate() error {
	if p.Status == ProviderStatusActive {
		return shared.NewDomainError(shared.KindInvalidState, "ALREADY_ACTIVE", "Provider is already active")
	}
	p.Status = ProviderStatusActive
	p.Touch()
	p.IncrementVersion()
	return nil
}

// IsActive returns true if the provider can receive new purchases
func (p *Provider) IsActive() bool {
	return p.Status == ProviderStatusActive
}

func validateProviderCode(code string) error {
	if code == "" {
		return shared.NewValidationError("INVALID_CODE", "Provider code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewValidationError("INVALID_CODE", "Provider code cannot exceed 50 characters")
	}
	return nil
}

func validateProviderName(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Provider name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("INVALID_NAME", "Provider name cannot exceed 200 characters")
	}
	return nil
}
