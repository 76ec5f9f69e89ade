package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendapro/backend/internal/domain/procurement"
	"github.com/tiendapro/backend/internal/domain/shared"
)

func newStoredPayment(t *testing.T, orgID, purchaseID uuid.UUID, amount int64, method procurement.PaymentMethod, reference string) *procurement.Payment {
	t.Helper()
	payment, err := procurement.NewPayment(
		orgID, uuid.New(), purchaseID, uuid.New(),
		decimal.NewFromInt(amount),
		time.Now().Add(-time.Hour),
		method,
		reference,
		"",
		uuid.New(),
	)
	require.NoError(t, err)
	return payment
}

func TestGormPaymentRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()
	orgID := uuid.New()
	purchaseID := uuid.New()

	payment := newStoredPayment(t, orgID, purchaseID, 400, procurement.PaymentMethodTransfer, "TRF-123")
	require.NoError(t, repo.Create(ctx, payment))

	found, err := repo.FindByIDForOrg(ctx, orgID, payment.ID)
	require.NoError(t, err)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, procurement.PaymentMethodTransfer, found.Method)
	assert.Equal(t, "TRF-123", found.Reference)

	_, err = repo.FindByIDForOrg(ctx, uuid.New(), payment.ID)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormPaymentRepository_FindByPurchase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()
	orgID := uuid.New()
	purchaseID := uuid.New()

	first := newStoredPayment(t, orgID, purchaseID, 400, procurement.PaymentMethodCash, "")
	second := newStoredPayment(t, orgID, purchaseID, 100, procurement.PaymentMethodCard, "")
	unrelated := newStoredPayment(t, orgID, uuid.New(), 50, procurement.PaymentMethodCash, "")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, unrelated))

	payments, err := repo.FindByPurchase(ctx, orgID, purchaseID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestGormPaymentRepository_SumByPurchase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()
	orgID := uuid.New()
	purchaseID := uuid.New()

	first := newStoredPayment(t, orgID, purchaseID, 400, procurement.PaymentMethodCash, "")
	second := newStoredPayment(t, orgID, purchaseID, 250, procurement.PaymentMethodCheck, "CHK-9")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	sum, err := repo.SumByPurchase(ctx, orgID, purchaseID, nil)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(650)), "got %s", sum)

	// excludeID leaves one payment out, the edit path's view of the balance
	sum, err = repo.SumByPurchase(ctx, orgID, purchaseID, &second.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(400)), "got %s", sum)
}

func TestGormPaymentRepository_SumByPurchase_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()

	sum, err := repo.SumByPurchase(ctx, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestGormPaymentRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	payment := newStoredPayment(t, orgID, uuid.New(), 400, procurement.PaymentMethodCash, "")
	require.NoError(t, repo.Create(ctx, payment))

	require.NoError(t, payment.Update(decimal.NewFromInt(350), payment.PaidDate, procurement.PaymentMethodTransfer, "TRF-777", "corrected"))
	require.NoError(t, repo.Update(ctx, payment))

	found, err := repo.FindByIDForOrg(ctx, orgID, payment.ID)
	require.NoError(t, err)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, procurement.PaymentMethodTransfer, found.Method)
	assert.Equal(t, "TRF-777", found.Reference)
}

func TestGormPaymentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	payment := newStoredPayment(t, orgID, uuid.New(), 400, procurement.PaymentMethodCash, "")
	require.NoError(t, repo.Create(ctx, payment))

	require.NoError(t, repo.Delete(ctx, orgID, payment.ID))
	_, err := repo.FindByIDForOrg(ctx, orgID, payment.ID)
	assert.Equal(t, shared.ErrNotFound, err)

	// deleting again reports not found
	assert.Equal(t, shared.ErrNotFound, repo.Delete(ctx, orgID, payment.ID))
}
