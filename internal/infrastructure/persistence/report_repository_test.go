package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/partner"
	"github.com/tiendapro/backend/internal/domain/procurement"
	"github.com/tiendapro/backend/internal/domain/report"
)

// seedReportData stores one pending and one fully paid purchase for the same
// provider, plus the payments behind the paid one.
func seedReportData(t *testing.T, db *gorm.DB, orgID uuid.UUID) (providerID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	provider, err := partner.NewProvider(orgID, "cafe-sur", "Cafetalera del Sur")
	require.NoError(t, err)
	require.NoError(t, NewGormProviderRepository(db).Save(ctx, provider))

	purchases := NewGormPurchaseRepository(db)
	payments := NewGormPaymentRepository(db)

	line, err := procurement.NewPurchaseLine("Coffee beans 1kg", decimal.NewFromInt(10), "bag", decimal.NewFromInt(100))
	require.NoError(t, err)

	pending, err := procurement.NewPurchase(
		orgID, uuid.New(), provider.ID,
		"F-0001",
		[]procurement.PurchaseLine{line},
		time.Now().Add(-24*time.Hour),
		time.Now().Add(30*24*time.Hour),
		"",
	)
	require.NoError(t, err)
	require.NoError(t, purchases.Save(ctx, pending))

	paid, err := procurement.NewPurchase(
		orgID, uuid.New(), provider.ID,
		"F-0002",
		[]procurement.PurchaseLine{line},
		time.Now().Add(-24*time.Hour),
		time.Now().Add(30*24*time.Hour),
		"",
	)
	require.NoError(t, err)

	cash, err := procurement.NewPayment(
		orgID, paid.StoreID, paid.ID, provider.ID,
		decimal.NewFromInt(600), time.Now().Add(-time.Hour),
		procurement.PaymentMethodCash, "", "", uuid.New(),
	)
	require.NoError(t, err)
	transfer, err := procurement.NewPayment(
		orgID, paid.StoreID, paid.ID, provider.ID,
		decimal.NewFromInt(400), time.Now().Add(-time.Hour),
		procurement.PaymentMethodTransfer, "TRF-001", "", uuid.New(),
	)
	require.NoError(t, err)
	require.NoError(t, payments.Create(ctx, cash))
	require.NoError(t, payments.Create(ctx, transfer))

	require.NoError(t, paid.Reconcile(decimal.NewFromInt(1000), time.Now()))
	require.NoError(t, purchases.Save(ctx, paid))

	return provider.ID
}

func TestGormReportRepository_PurchasesByStatus(t *testing.T) {
	db := setupTestDB(t)
	orgID := uuid.New()
	seedReportData(t, db, orgID)

	repo := NewGormReportRepository(db)
	rows, err := repo.PurchasesByStatus(context.Background(), report.Query{
		OrgID: orgID,
		From:  time.Now().Add(-7 * 24 * time.Hour),
		To:    time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byStatus := make(map[string]report.StatusSummary, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row
	}
	assert.EqualValues(t, 1, byStatus["pending"].Count)
	assert.True(t, byStatus["pending"].TotalAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, byStatus["pending"].PaidAmount.IsZero())
	assert.EqualValues(t, 1, byStatus["paid"].Count)
	assert.True(t, byStatus["paid"].PaidAmount.Equal(decimal.NewFromInt(1000)))
}

func TestGormReportRepository_PaymentsByMethod(t *testing.T) {
	db := setupTestDB(t)
	orgID := uuid.New()
	seedReportData(t, db, orgID)

	repo := NewGormReportRepository(db)
	rows, err := repo.PaymentsByMethod(context.Background(), report.Query{
		OrgID: orgID,
		From:  time.Now().Add(-7 * 24 * time.Hour),
		To:    time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byMethod := make(map[string]report.MethodBreakdown, len(rows))
	for _, row := range rows {
		byMethod[row.Method] = row
	}
	assert.True(t, byMethod["cash"].TotalAmount.Equal(decimal.NewFromInt(600)))
	assert.True(t, byMethod["transfer"].TotalAmount.Equal(decimal.NewFromInt(400)))
	assert.EqualValues(t, 1, byMethod["cash"].Count)
}

func TestGormReportRepository_ProviderBalances(t *testing.T) {
	db := setupTestDB(t)
	orgID := uuid.New()
	providerID := seedReportData(t, db, orgID)

	// another org's data must never bleed into the balances
	seedReportData(t, db, uuid.New())

	repo := NewGormReportRepository(db)
	rows, err := repo.ProviderBalances(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	balance := rows[0]
	assert.Equal(t, providerID, balance.ProviderID)
	assert.Equal(t, "CAFE-SUR", balance.Code)
	assert.EqualValues(t, 2, balance.Purchases)
	assert.True(t, balance.TotalAmount.Equal(decimal.NewFromInt(2000)))
	assert.True(t, balance.PaidAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, balance.Outstanding.Equal(decimal.NewFromInt(1000)))
}

func TestGormReportRepository_OverdueCount(t *testing.T) {
	db := setupTestDB(t)
	orgID := uuid.New()
	seedReportData(t, db, orgID)

	purchases := NewGormPurchaseRepository(db)
	line, err := procurement.NewPurchaseLine("Sugar 50kg", decimal.NewFromInt(2), "sack", decimal.NewFromInt(80))
	require.NoError(t, err)
	overdue, err := procurement.NewPurchase(
		orgID, uuid.New(), uuid.New(),
		"F-0003",
		[]procurement.PurchaseLine{line},
		time.Now().Add(-60*24*time.Hour),
		time.Now().Add(-30*24*time.Hour),
		"",
	)
	require.NoError(t, err)
	require.NoError(t, purchases.Save(context.Background(), overdue))

	repo := NewGormReportRepository(db)
	count, err := repo.OverdueCount(context.Background(), report.Query{OrgID: orgID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
