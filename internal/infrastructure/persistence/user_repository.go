package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/identity"
	"github.com/tiendapro/backend/internal/domain/shared"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByIDForOrg finds a user by ID within an organization
func (r *GormUserRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		First(&user, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email within an organization
func (r *GormUserRepository) FindByEmail(ctx context.Context, orgID uuid.UUID, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		First(&user, "email = ? AND org_id = ?", strings.ToLower(email), orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmailAnyOrg resolves a login email across organizations
func (r *GormUserRepository) FindByEmailAnyOrg(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		First(&user, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAllForOrg finds users for an organization with filtering
func (r *GormUserRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter identity.UserFilter) ([]identity.User, error) {
	query := r.db.WithContext(ctx).Where("org_id = ?", orgID)
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ?", pattern, strings.ToLower(pattern))
	}

	var users []identity.User
	if err := query.
		Order("email ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountForOrg counts users matching the filter
func (r *GormUserRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter identity.UserFilter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&identity.User{}).Where("org_id = ?", orgID)
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountAdmins counts active admin users in an organization
func (r *GormUserRepository) CountAdmins(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("org_id = ? AND role = ? AND status = ?", orgID, identity.UserRoleAdmin, identity.UserStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes a user
func (r *GormUserRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&identity.User{}, "id = ? AND org_id = ?", id, orgID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
