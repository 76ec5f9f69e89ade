package partner

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// StoreStatus represents the status of a store
type StoreStatus string

const (
	StoreStatusActive   StoreStatus = "active"
	StoreStatusInactive StoreStatus = "inactive"
)

// Store represents a physical or virtual store within an organization.
// Purchases and payments are always scoped to a store.
type Store struct {
	shared.OrgAggregateRoot
	Code    string      `gorm:"type:varchar(50);not null;uniqueIndex:idx_store_org_code,priority:2"`
	Name    string      `gorm:"type:varchar(200);not null"`
	Status  StoreStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Address string      `gorm:"type:text"`
	Phone   string      `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store with required fields
func NewStore(orgID uuid.UUID, code, name string) (*Store, error) {
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Store code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewValidationError("INVALID_CODE", "Store code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("INVALID_NAME", "Store name cannot exceed 200 characters")
	}

	s := &Store{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Code:             strings.ToUpper(code),
		Name:             name,
		Status:           StoreStatusActive,
	}

	s.AddDomainEvent(NewStoreCreatedEvent(s))

	return s, nil
}

// Update updates the store's information
func (s *Store) Update(name, address, phone string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("INVALID_NAME", "Store name cannot exceed 200 characters")
	}

	s.Name = name
	s.Address = address
	s.Phone = phone
	s.Touch()
	s.IncrementVersion()

	return nil
}

// Deactivate marks the store inactive
func (s *Store) Deactivate() error {
	if s.Status == StoreStatusInactive {
		return shared.NewDomainError(shared.KindInvalidState, "ALREADY_INACTIVE", "Store is already inactive")
	}
	s.Status = StoreStatusInactive
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Activate re-opens an inactive store
func (s *Store) Activate() error {
	if s.Status == StoreStatusActive {
		return shared.NewDomainError(shared.KindInvalidState, "ALREADY_ACTIVE", "Store is already active")
	}
	s.Status = StoreStatusActive
	s.Touch()
	s.IncrementVersion()
	return nil
}

// IsActive returns true if the store accepts new transactions
func (s *Store) IsActive() bool {
	return s.Status == StoreStatusActive
}
