package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// ProviderFilter defines filtering options for provider queries
type ProviderFilter struct {
	shared.Filter
	Status *ProviderStatus
}

// ProviderRepository defines the interface for provider persistence
type ProviderRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Provider, error)
	FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*Provider, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter ProviderFilter) ([]Provider, error)
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter ProviderFilter) (int64, error)
	ExistsByCode(ctx context.Context, orgID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, provider *Provider) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// StoreFilter defines filtering options for store queries
type StoreFilter struct {
	shared.Filter
	Status *StoreStatus
}

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Store, error)
	FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*Store, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter StoreFilter) ([]Store, error)
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter StoreFilter) (int64, error)
	ExistsByCode(ctx context.Context, orgID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, store *Store) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
