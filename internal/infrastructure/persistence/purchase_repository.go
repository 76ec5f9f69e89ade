package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/procurement"
	"github.com/tiendapro/backend/internal/domain/shared"
	"github.com/tiendapro/backend/internal/infrastructure/persistence/models"
)

// GormPurchaseRepository implements procurement.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormPurchaseRepository) WithTx(tx *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: tx}
}

// FindByIDForOrg finds a purchase by ID within an organization
func (r *GormPurchaseRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*procurement.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&model, "id = ? AND org_id = ? AND deleted_at IS NULL", id, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceNumber finds a purchase by invoice number within an organization
func (r *GormPurchaseRepository) FindByInvoiceNumber(ctx context.Context, orgID uuid.UUID, invoiceNumber string) (*procurement.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&model, "invoice_number = ? AND org_id = ? AND deleted_at IS NULL", invoiceNumber, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// applyPurchaseFilter builds the WHERE clause for list and count queries
func applyPurchaseFilter(query *gorm.DB, filter procurement.PurchaseFilter) *gorm.DB {
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.ProviderID != nil {
		query = query.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("purchase_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("purchase_date <= ?", *filter.ToDate)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}
	if filter.Search != "" {
		query = query.Where("invoice_number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// FindAllForOrg finds purchases for an organization with filtering
func (r *GormPurchaseRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter procurement.PurchaseFilter) ([]procurement.Purchase, error) {
	query := r.db.WithContext(ctx).
		Where("org_id = ? AND deleted_at IS NULL", orgID)
	query = applyPurchaseFilter(query, filter)

	var modelList []models.PurchaseModel
	if err := query.
		Order("purchase_date DESC, created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&modelList).Error; err != nil {
		return nil, err
	}

	purchases := make([]procurement.Purchase, len(modelList))
	for i := range modelList {
		purchases[i] = *modelList[i].ToDomain()
	}
	return purchases, nil
}

// CountForOrg counts purchases matching the filter
func (r *GormPurchaseRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter procurement.PurchaseFilter) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("org_id = ? AND deleted_at IS NULL", orgID)
	query = applyPurchaseFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByProvider counts live purchases referencing a provider
func (r *GormPurchaseRepository) CountByProvider(ctx context.Context, orgID, providerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("org_id = ? AND provider_id = ? AND deleted_at IS NULL", orgID, providerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkOverdue flips live pending and partial purchases past their due date
// to overdue, bumping each row's version so concurrent writers lose.
// Sweeps across all organizations; returns the number of rows updated.
func (r *GormPurchaseRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("deleted_at IS NULL AND status IN ? AND due_date < ?",
			[]string{string(procurement.PurchaseStatusPending), string(procurement.PurchaseStatusPartial)}, asOf).
		Updates(map[string]interface{}{
			"status":     string(procurement.PurchaseStatusOverdue),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Save creates or updates a purchase, replacing its line set
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *procurement.Purchase) error {
	model := models.PurchaseModelFromDomain(purchase)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.PurchaseLineModel{}, "purchase_id = ?", model.ID).Error; err != nil {
			return err
		}
		if len(model.Lines) > 0 {
			if err := tx.Create(&model.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock updates a purchase guarded by an optimistic version check.
// The aggregate's version has already been incremented in memory, so the row
// must still carry version-1 for the write to win.
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *procurement.Purchase) error {
	model := models.PurchaseModelFromDomain(purchase)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PurchaseModel{}).
			Where("id = ? AND org_id = ? AND version = ?", model.ID, model.OrgID, purchase.Version-1).
			Updates(map[string]interface{}{
				"invoice_number": model.InvoiceNumber,
				"total_amount":   model.TotalAmount,
				"paid_amount":    model.PaidAmount,
				"status":         model.Status,
				"purchase_date":  model.PurchaseDate,
				"due_date":       model.DueDate,
				"notes":          model.Notes,
				"deleted_at":     model.DeletedAt,
				"version":        model.Version,
				"updated_at":     model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Delete(&models.PurchaseLineModel{}, "purchase_id = ?", model.ID).Error; err != nil {
			return err
		}
		if len(model.Lines) > 0 {
			if err := tx.Create(&model.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ procurement.PurchaseRepository = (*GormPurchaseRepository)(nil)
