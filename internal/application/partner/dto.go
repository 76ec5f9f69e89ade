package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/partner"
)

// CreateProviderRequest represents a request to create a provider
type CreateProviderRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address" binding:"max=500"`
	TaxID       string `json:"tax_id" binding:"max=50"`
	CreditDays  int    `json:"credit_days" binding:"min=0"`
	Notes       string `json:"notes"`
	// CreatedBy is set from the JWT context, never from the request body
	CreatedBy *uuid.UUID `json:"-"`
}

// UpdateProviderRequest represents a request to update a provider
type UpdateProviderRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address" binding:"max=500"`
	TaxID       string `json:"tax_id" binding:"max=50"`
	CreditDays  int    `json:"credit_days" binding:"min=0"`
	Notes       string `json:"notes"`
	Status      string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ProviderResponse represents a provider in API responses
type ProviderResponse struct {
	ID          uuid.UUID `json:"id"`
	OrgID       uuid.UUID `json:"org_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	TaxID       string    `json:"tax_id"`
	CreditDays  int       `json:"credit_days"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProviderListFilter carries provider list query parameters
type ProviderListFilter struct {
	Status   *string
	Search   string
	Page     int
	PageSize int
}

// CreateStoreRequest represents a request to create a store
type CreateStoreRequest struct {
	Code      string     `json:"code" binding:"required,min=1,max=50"`
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Address   string     `json:"address" binding:"max=500"`
	Phone     string     `json:"phone" binding:"max=50"`
	CreatedBy *uuid.UUID `json:"-"`
}

// UpdateStoreRequest represents a request to update a store
type UpdateStoreRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"max=500"`
	Phone   string `json:"phone" binding:"max=50"`
	Status  string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID        uuid.UUID `json:"id"`
	OrgID     uuid.UUID `json:"org_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListFilter carries store list query parameters
type StoreListFilter struct {
	Status   *string
	Search   string
	Page     int
	PageSize int
}

// ToProviderResponse converts a domain provider to a response
func ToProviderResponse(p *partner.Provider) ProviderResponse {
	return ProviderResponse{
		ID:          p.ID,
		OrgID:       p.OrgID,
		Code:        p.Code,
		Name:        p.Name,
		Status:      string(p.Status),
		ContactName: p.ContactName,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		TaxID:       p.TaxID,
		CreditDays:  p.CreditDays,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProviderResponses converts a slice of domain providers
func ToProviderResponses(providers []partner.Provider) []ProviderResponse {
	responses := make([]ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = ToProviderResponse(&providers[i])
	}
	return responses
}

// ToStoreResponse converts a domain store to a response
func ToStoreResponse(s *partner.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		OrgID:     s.OrgID,
		Code:      s.Code,
		Name:      s.Name,
		Status:    string(s.Status),
		Address:   s.Address,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToStoreResponses converts a slice of domain stores
func ToStoreResponses(stores []partner.Store) []StoreResponse {
	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = ToStoreResponse(&stores[i])
	}
	return responses
}
