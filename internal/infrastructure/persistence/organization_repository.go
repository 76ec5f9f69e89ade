package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/identity"
	"github.com/tiendapro/backend/internal/domain/shared"
)

// GormOrganizationRepository implements identity.OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	var org identity.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

// FindBySlug finds an organization by its slug
func (r *GormOrganizationRepository) FindBySlug(ctx context.Context, slug string) (*identity.Organization, error) {
	var org identity.Organization
	if err := r.db.WithContext(ctx).First(&org, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

// ExistsBySlug checks if a slug is already taken
func (r *GormOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Organization{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an organization
func (r *GormOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

var _ identity.OrganizationRepository = (*GormOrganizationRepository)(nil)
