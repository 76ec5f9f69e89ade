package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// OrganizationRepository defines the interface for organization persistence
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	FindBySlug(ctx context.Context, slug string) (*Organization, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, org *Organization) error
}

// UserFilter defines filtering options for user queries
type UserFilter struct {
	shared.Filter
	Role   *UserRole
	Status *UserStatus
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, orgID uuid.UUID, email string) (*User, error)
	// FindByEmailAnyOrg resolves a login email across organizations.
	FindByEmailAnyOrg(ctx context.Context, email string) (*User, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter UserFilter) ([]User, error)
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter UserFilter) (int64, error)
	CountAdmins(ctx context.Context, orgID uuid.UUID) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
