package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/procurement"
	"github.com/tiendapro/backend/internal/domain/shared"
	"github.com/tiendapro/backend/internal/infrastructure/persistence/models"
)

// GormPaymentRepository implements procurement.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: tx}
}

// FindByIDForOrg finds a payment by ID within an organization
func (r *GormPaymentRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*procurement.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPurchase lists payments recorded against a purchase, newest first
func (r *GormPaymentRepository) FindByPurchase(ctx context.Context, orgID, purchaseID uuid.UUID) ([]procurement.Payment, error) {
	var modelList []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND purchase_id = ?", orgID, purchaseID).
		Order("paid_date DESC, created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}

	payments := make([]procurement.Payment, len(modelList))
	for i := range modelList {
		payments[i] = *modelList[i].ToDomain()
	}
	return payments, nil
}

// SumByPurchase sums payment amounts for a purchase. When excludeID is
// non-nil that payment is left out of the sum, which is how edits compute
// the balance without the payment's previous amount.
func (r *GormPaymentRepository) SumByPurchase(ctx context.Context, orgID, purchaseID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("org_id = ? AND purchase_id = ?", orgID, purchaseID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var sum decimal.Decimal
	if err := query.Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Create inserts a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *procurement.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing payment
func (r *GormPaymentRepository) Update(ctx context.Context, payment *procurement.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("id = ? AND org_id = ?", model.ID, model.OrgID).
		Updates(map[string]interface{}{
			"amount":     model.Amount,
			"paid_date":  model.PaidDate,
			"method":     model.Method,
			"reference":  model.Reference,
			"notes":      model.Notes,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a payment record
func (r *GormPaymentRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.PaymentModel{}, "id = ? AND org_id = ?", id, orgID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ procurement.PaymentRepository = (*GormPaymentRepository)(nil)
