package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/partner"
	"github.com/tiendapro/backend/internal/domain/shared"
	"github.com/tiendapro/backend/internal/infrastructure/logger"
)

// StoreService handles store management operations
type StoreService struct {
	stores partner.StoreRepository
}

// NewStoreService creates a new StoreService
func NewStoreService(stores partner.StoreRepository) *StoreService {
	return &StoreService{stores: stores}
}

// Create creates a new store
func (s *StoreService) Create(ctx context.Context, orgID uuid.UUID, req CreateStoreRequest) (*StoreResponse, error) {
	exists, err := s.stores.ExistsByCode(ctx, orgID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.KindConflict, "ALREADY_EXISTS", "A store with this code already exists")
	}

	store, err := partner.NewStore(orgID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Address != "" || req.Phone != "" {
		if err := store.Update(req.Name, req.Address, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		store.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.stores.Save(ctx, store); err != nil {
		return nil, err
	}
	logger.PublishDomainEvents(ctx, store)

	resp := ToStoreResponse(store)
	return &resp, nil
}

// Get returns a store by ID
func (s *StoreService) Get(ctx context.Context, orgID, id uuid.UUID) (*StoreResponse, error) {
	store, err := s.stores.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToStoreResponse(store)
	return &resp, nil
}

// List returns stores matching the filter with the total match count
func (s *StoreService) List(ctx context.Context, orgID uuid.UUID, filter StoreListFilter) ([]StoreResponse, int64, error) {
	domainFilter := partner.StoreFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   filter.Search,
		},
	}
	if filter.Status != nil {
		status := partner.StoreStatus(*filter.Status)
		if status != partner.StoreStatusActive && status != partner.StoreStatusInactive {
			return nil, 0, shared.NewValidationError("INVALID_STATUS", "Unknown store status filter")
		}
		domainFilter.Status = &status
	}

	stores, err := s.stores.FindAllForOrg(ctx, orgID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.stores.CountForOrg(ctx, orgID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStoreResponses(stores), total, nil
}

// Update updates a store's details and optionally its status
func (s *StoreService) Update(ctx context.Context, orgID, id uuid.UUID, req UpdateStoreRequest) (*StoreResponse, error) {
	store, err := s.stores.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if err := store.Update(req.Name, req.Address, req.Phone); err != nil {
		return nil, err
	}

	switch partner.StoreStatus(req.Status) {
	case partner.StoreStatusActive:
		if !store.IsActive() {
			if err := store.Activate(); err != nil {
				return nil, err
			}
		}
	case partner.StoreStatusInactive:
		if store.IsActive() {
			if err := store.Deactivate(); err != nil {
				return nil, err
			}
		}
	}

	if err := s.stores.Save(ctx, store); err != nil {
		return nil, err
	}

	resp := ToStoreResponse(store)
	return &resp, nil
}

// Delete removes a store
func (s *StoreService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.stores.FindByIDForOrg(ctx, orgID, id); err != nil {
		return err
	}
	return s.stores.Delete(ctx, orgID, id)
}
