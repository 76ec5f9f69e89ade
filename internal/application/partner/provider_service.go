package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/partner"
	"github.com/tiendapro/backend/internal/domain/procurement"
	"github.com/tiendapro/backend/internal/domain/shared"
	"github.com/tiendapro/backend/internal/infrastructure/logger"
)

// ProviderService handles provider management operations
type ProviderService struct {
	providers partner.ProviderRepository
	purchases procurement.PurchaseRepository
}

// NewProviderService creates a new ProviderService
func NewProviderService(providers partner.ProviderRepository, purchases procurement.PurchaseRepository) *ProviderService {
	return &ProviderService{
		providers: providers,
		purchases: purchases,
	}
}

// Create creates a new provider
func (s *ProviderService) Create(ctx context.Context, orgID uuid.UUID, req CreateProviderRequest) (*ProviderResponse, error) {
	exists, err := s.providers.ExistsByCode(ctx, orgID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.KindConflict, "ALREADY_EXISTS", "A provider with this code already exists")
	}

	provider, err := partner.NewProvider(orgID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" || req.Address != "" ||
		req.TaxID != "" || req.Notes != "" || req.CreditDays != 0 {
		if err := provider.Update(req.Name, req.ContactName, req.Phone, req.Email, req.Address, req.TaxID, req.Notes, req.CreditDays); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		provider.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.providers.Save(ctx, provider); err != nil {
		return nil, err
	}
	logger.PublishDomainEvents(ctx, provider)

	resp := ToProviderResponse(provider)
	return &resp, nil
}

// Get returns a provider by ID
func (s *ProviderService) Get(ctx context.Context, orgID, id uuid.UUID) (*ProviderResponse, error) {
	provider, err := s.providers.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProviderResponse(provider)
	return &resp, nil
}

// List returns providers matching the filter with the total match count
func (s *ProviderService) List(ctx context.Context, orgID uuid.UUID, filter ProviderListFilter) ([]ProviderResponse, int64, error) {
	domainFilter := partner.ProviderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   filter.Search,
		},
	}
	if filter.Status != nil {
		status := partner.ProviderStatus(*filter.Status)
		if status != partner.ProviderStatusActive && status != partner.ProviderStatusInactive {
			return nil, 0, shared.NewValidationError("INVALID_STATUS", "Unknown provider status filter")
		}
		domainFilter.Status = &status
	}

	providers, err := s.providers.FindAllForOrg(ctx, orgID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.providers.CountForOrg(ctx, orgID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProviderResponses(providers), total, nil
}

// Update updates a provider's details and optionally its status
func (s *ProviderService) Update(ctx context.Context, orgID, id uuid.UUID, req UpdateProviderRequest) (*ProviderResponse, error) {
	provider, err := s.providers.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if err := provider.Update(req.Name, req.ContactName, req.Phone, req.Email, req.Address, req.TaxID, req.Notes, req.CreditDays); err != nil {
		return nil, err
	}

	switch partner.ProviderStatus(req.Status) {
	case partner.ProviderStatusActive:
		if !provider.IsActive() {
			if err := provider.Activate(); err != nil {
				return nil, err
			}
		}
	case partner.ProviderStatusInactive:
		if provider.IsActive() {
			if err := provider.Deactivate(); err != nil {
				return nil, err
			}
		}
	}

	if err := s.providers.Save(ctx, provider); err != nil {
		return nil, err
	}

	resp := ToProviderResponse(provider)
	return &resp, nil
}

// Delete removes a provider. Providers referenced by purchases cannot be
// deleted, only deactivated.
func (s *ProviderService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.providers.FindByIDForOrg(ctx, orgID, id); err != nil {
		return err
	}

	count, err := s.purchases.CountByProvider(ctx, orgID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError(shared.KindInvalidState, "PROVIDER_IN_USE", "Provider has purchases and cannot be deleted; deactivate it instead")
	}

	return s.providers.Delete(ctx, orgID, id)
}
