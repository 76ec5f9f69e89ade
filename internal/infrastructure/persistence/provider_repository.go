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

// GormProviderRepository implements partner.ProviderRepository using GORM
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a new GormProviderRepository
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// FindByIDForOrg finds a provider by ID within an organization
func (r *GormProviderRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*partner.Provider, error) {
	var provider partner.Provider
	if err := r.db.WithContext(ctx).
		First(&provider, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &provider, nil
}

// FindByCode finds a provider by code within an organization
func (r *GormProviderRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*partner.Provider, error) {
	var provider partner.Provider
	if err := r.db.WithContext(ctx).
		First(&provider, "code = ? AND org_id = ?", strings.ToUpper(code), orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &provider, nil
}

// FindAllForOrg finds providers for an organization with filtering
func (r *GormProviderRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter partner.ProviderFilter) ([]partner.Provider, error) {
	query := r.db.WithContext(ctx).Where("org_id = ?", orgID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", pattern, strings.ToUpper(pattern))
	}

	var providers []partner.Provider
	if err := query.
		Order("code ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// CountForOrg counts providers matching the filter
func (r *GormProviderRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter partner.ProviderFilter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&partner.Provider{}).Where("org_id = ?", orgID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a provider code is taken within an organization
func (r *GormProviderRepository) ExistsByCode(ctx context.Context, orgID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Provider{}).
		Where("org_id = ? AND code = ?", orgID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a provider
func (r *GormProviderRepository) Save(ctx context.Context, provider *partner.Provider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

// Delete removes a provider
func (r *GormProviderRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&partner.Provider{}, "id = ? AND org_id = ?", id, orgID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ partner.ProviderRepository = (*GormProviderRepository)(nil)
