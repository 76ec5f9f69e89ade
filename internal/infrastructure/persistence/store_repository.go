package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/partner"
	"github.com/tiendapro/backend/internal/domain/shared"
)

// GormStoreRepository implements partner.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByIDForOrg finds a store by ID within an organization
func (r *GormStoreRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*partner.Store, error) {
	var store partner.Store
	if err := r.db.WithContext(ctx).
		First(&store, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// FindByCode finds a store by code within an organization
func (r *GormStoreRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*partner.Store, error) {
	var store partner.Store
	if err := r.db.WithContext(ctx).
		First(&store, "code = ? AND org_id = ?", strings.ToUpper(code), orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// FindAllForOrg finds stores for an organization with filtering
func (r *GormStoreRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter partner.StoreFilter) ([]partner.Store, error) {
	query := r.db.WithContext(ctx).Where("org_id = ?", orgID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", pattern, strings.ToUpper(pattern))
	}

	var stores []partner.Store
	if err := query.
		Order("code ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// CountForOrg counts stores matching the filter
func (r *GormStoreRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter partner.StoreFilter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&partner.Store{}).Where("org_id = ?", orgID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a store code is taken within an organization
func (r *GormStoreRepository) ExistsByCode(ctx context.Context, orgID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Store{}).
		Where("org_id = ? AND code = ?", orgID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, store *partner.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Delete removes a store
func (r *GormStoreRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&partner.Store{}, "id = ? AND org_id = ?", id, orgID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ partner.StoreRepository = (*GormStoreRepository)(nil)
