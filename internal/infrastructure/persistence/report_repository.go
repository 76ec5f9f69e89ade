package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/report"
	"github.com/tiendapro/backend/internal/infrastructure/persistence/models"
)

// GormReportRepository implements report.Repository using GORM.
// All numbers are aggregated at query time from the purchase and payment
// tables; nothing here is cached or denormalized.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// PurchasesByStatus aggregates purchase counts and amounts per status
func (r *GormReportRepository) PurchasesByStatus(ctx context.Context, q report.Query) ([]report.StatusSummary, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total_amount, COALESCE(SUM(paid_amount), 0) AS paid_amount").
		Where("org_id = ? AND deleted_at IS NULL", q.OrgID).
		Where("purchase_date >= ? AND purchase_date <= ?", q.From, q.To)
	if q.StoreID != nil {
		query = query.Where("store_id = ?", *q.StoreID)
	}

	var summaries []report.StatusSummary
	if err := query.Group("status").Order("status ASC").Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// PaymentsByMethod aggregates payment counts and amounts per method
func (r *GormReportRepository) PaymentsByMethod(ctx context.Context, q report.Query) ([]report.MethodBreakdown, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount").
		Where("org_id = ?", q.OrgID).
		Where("paid_date >= ? AND paid_date <= ?", q.From, q.To)
	if q.StoreID != nil {
		query = query.Where("store_id = ?", *q.StoreID)
	}

	var breakdowns []report.MethodBreakdown
	if err := query.Group("method").Order("method ASC").Scan(&breakdowns).Error; err != nil {
		return nil, err
	}
	return breakdowns, nil
}

// ProviderBalances joins live purchases back to providers and aggregates
// each provider's outstanding position
func (r *GormReportRepository) ProviderBalances(ctx context.Context, orgID uuid.UUID) ([]report.ProviderBalance, error) {
	var balances []report.ProviderBalance
	err := r.db.WithContext(ctx).
		Table("purchases").
		Select(`purchases.provider_id,
			providers.code,
			providers.name,
			COUNT(*) AS purchases,
			COALESCE(SUM(purchases.total_amount), 0) AS total_amount,
			COALESCE(SUM(purchases.paid_amount), 0) AS paid_amount,
			COALESCE(SUM(purchases.total_amount - purchases.paid_amount), 0) AS outstanding`).
		Joins("JOIN providers ON providers.id = purchases.provider_id").
		Where("purchases.org_id = ? AND purchases.deleted_at IS NULL", orgID).
		Group("purchases.provider_id, providers.code, providers.name").
		Order("outstanding DESC").
		Scan(&balances).Error
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// OverdueCount counts live purchases past due and not fully paid as of now
func (r *GormReportRepository) OverdueCount(ctx context.Context, q report.Query) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("org_id = ? AND deleted_at IS NULL", q.OrgID).
		Where("due_date < ? AND paid_amount < total_amount", time.Now())
	if q.StoreID != nil {
		query = query.Where("store_id = ?", *q.StoreID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
