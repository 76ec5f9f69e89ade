package partner

import (
	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// ProviderCreatedEvent is raised when a new provider is registered
type ProviderCreatedEvent struct {
	shared.BaseDomainEvent
	ProviderID uuid.UUID `json:"provider_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// EventType returns the event type name
func (e *ProviderCreatedEvent) EventType() string {
	return "ProviderCreated"
}

// NewProviderCreatedEvent creates a new ProviderCreatedEvent
func NewProviderCreatedEvent(p *Provider) *ProviderCreatedEvent {
	return &ProviderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProviderCreated", "Provider", p.ID, p.OrgID),
		ProviderID:      p.ID,
		Code:            p.Code,
		Name:            p.Name,
	}
}

// StoreCreatedEvent is raised when a new store is registered
type StoreCreatedEvent struct {
	shared.BaseDomainEvent
	StoreID uuid.UUID `json:"store_id"`
	Code    string    `json:"code"`
	Name    string    `json:"name"`
}

// EventType returns the event type name
func (e *StoreCreatedEvent) EventType() string {
	return "StoreCreated"
}

// NewStoreCreatedEvent creates a new StoreCreatedEvent
func NewStoreCreatedEvent(s *Store) *StoreCreatedEvent {
	return &StoreCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("StoreCreated", "Store", s.ID, s.OrgID),
		StoreID:         s.ID,
		Code:            s.Code,
		Name:            s.Name,
	}
}
