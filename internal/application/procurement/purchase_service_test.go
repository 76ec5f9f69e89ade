package procurement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendapro/backend/internal/domain/shared"
)

func TestPurchaseService_Create(t *testing.T) {
	f := newFixture(t)

	resp := f.createPurchase(t, "F-0001")
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.PaidAmount.IsZero())
	assert.Equal(t, "pending", resp.Status)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].Subtotal.Equal(decimal.NewFromInt(1000)))
}

func TestPurchaseService_Create_PastDueStartsOverdue(t *testing.T) {
	f := newFixture(t)

	resp, err := f.purchases.Create(context.Background(), f.orgID, CreatePurchaseRequest{
		StoreID:       f.storeID,
		ProviderID:    f.providerID,
		InvoiceNumber: "F-0001",
		Lines: []PurchaseLineRequest{
			{Name: "Rice 25kg", Quantity: decimal.NewFromInt(4), Unit: "sack", UnitPrice: decimal.NewFromInt(50)},
		},
		PurchaseDate: time.Now().Add(-60 * 24 * time.Hour),
		DueDate:      time.Now().Add(-30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "overdue", resp.Status)
}

func TestPurchaseService_Create_DuplicateInvoice(t *testing.T) {
	f := newFixture(t)
	f.createPurchase(t, "F-0001")

	_, err := f.purchases.Create(context.Background(), f.orgID, CreatePurchaseRequest{
		StoreID:       f.storeID,
		ProviderID:    f.providerID,
		InvoiceNumber: "F-0001",
		Lines: []PurchaseLineRequest{
			{Name: "Rice 25kg", Quantity: decimal.NewFromInt(1), Unit: "sack", UnitPrice: decimal.NewFromInt(50)},
		},
		PurchaseDate: time.Now().Add(-24 * time.Hour),
		DueDate:      time.Now().Add(30 * 24 * time.Hour),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_INVOICE", domainErr.Code)
}

func TestPurchaseService_Create_UnknownStoreOrProvider(t *testing.T) {
	f := newFixture(t)

	req := CreatePurchaseRequest{
		StoreID:       uuid.New(),
		ProviderID:    f.providerID,
		InvoiceNumber: "F-0001",
		Lines: []PurchaseLineRequest{
			{Name: "Rice 25kg", Quantity: decimal.NewFromInt(1), Unit: "sack", UnitPrice: decimal.NewFromInt(50)},
		},
		PurchaseDate: time.Now().Add(-24 * time.Hour),
		DueDate:      time.Now().Add(30 * 24 * time.Hour),
	}
	_, err := f.purchases.Create(context.Background(), f.orgID, req)
	assert.Equal(t, shared.ErrNotFound, err)

	req.StoreID = f.storeID
	req.ProviderID = uuid.New()
	_, err = f.purchases.Create(context.Background(), f.orgID, req)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestPurchaseService_Create_DueDateDefaultsFromCreditDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// give the provider 15 credit days
	provider, err := f.purchases.providers.FindByIDForOrg(ctx, f.orgID, f.providerID)
	require.NoError(t, err)
	require.NoError(t, provider.Update(provider.Name, "", "", "", "", "", "", 15))
	require.NoError(t, f.purchases.providers.Save(ctx, provider))

	purchaseDate := time.Now().Add(-24 * time.Hour)
	resp, err := f.purchases.Create(ctx, f.orgID, CreatePurchaseRequest{
		StoreID:       f.storeID,
		ProviderID:    f.providerID,
		InvoiceNumber: "F-0001",
		Lines: []PurchaseLineRequest{
			{Name: "Rice 25kg", Quantity: decimal.NewFromInt(1), Unit: "sack", UnitPrice: decimal.NewFromInt(50)},
		},
		PurchaseDate: purchaseDate,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, purchaseDate.AddDate(0, 0, 15), resp.DueDate, time.Second)
}

func TestPurchaseService_List(t *testing.T) {
	f := newFixture(t)
	f.createPurchase(t, "F-0001")
	f.createPurchase(t, "F-0002")

	responses, total, err := f.purchases.List(context.Background(), f.orgID, PurchaseListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, responses, 2)

	status := "pending"
	responses, total, err = f.purchases.List(context.Background(), f.orgID, PurchaseListFilter{Status: &status})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, responses, 2)

	bad := "unknown"
	_, _, err = f.purchases.List(context.Background(), f.orgID, PurchaseListFilter{Status: &bad})
	require.Error(t, err)
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
}

func TestPurchaseService_Update_RecomputesTotalAndStatus(t *testing.T) {
	f := newFixture(t)
	purchase := f.createPurchase(t, "F-0001")
	f.recordPayment(t, purchase.ID, 400)

	// shrinking the total to exactly the paid amount flips the status
	// to paid without any new payment
	resp, err := f.purchases.Update(context.Background(), f.orgID, purchase.ID, UpdatePurchaseRequest{
		InvoiceNumber: "F-0001",
		Lines: []PurchaseLineRequest{
			{Name: "Coffee beans 1kg", Quantity: decimal.NewFromInt(4), Unit: "bag", UnitPrice: decimal.NewFromInt(100)},
		},
		PurchaseDate: time.Now().Add(-24 * time.Hour),
		DueDate:      time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, "paid", resp.Status)
}

func TestPurchaseService_Update_TotalBelowPaidRejected(t *testing.T) {
	f := newFixture(t)
	purchase := f.createPurchase(t, "F-0001")
	f.recordPayment(t, purchase.ID, 400)

	_, err := f.purchases.Update(context.Background(), f.orgID, purchase.ID, UpdatePurchaseRequest{
		InvoiceNumber: "F-0001",
		Lines: []PurchaseLineRequest{
			{Name: "Coffee beans 1kg", Quantity: decimal.NewFromInt(3), Unit: "bag", UnitPrice: decimal.NewFromInt(100)},
		},
		PurchaseDate: time.Now().Add(-24 * time.Hour),
		DueDate:      time.Now().Add(30 * 24 * time.Hour),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOTAL_BELOW_PAID", domainErr.Code)

	// rejected edit left the purchase untouched
	got, err := f.purchases.Get(context.Background(), f.orgID, purchase.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(1000)))
}

func TestPurchaseService_Delete(t *testing.T) {
	f := newFixture(t)
	purchase := f.createPurchase(t, "F-0001")

	require.NoError(t, f.purchases.Delete(context.Background(), f.orgID, purchase.ID))

	_, err := f.purchases.Get(context.Background(), f.orgID, purchase.ID)
	assert.Equal(t, shared.ErrNotFound, err)

	// the invoice number is reusable after the soft delete
	f.createPurchase(t, "F-0001")
}

func TestPurchaseService_Delete_BlockedByPayments(t *testing.T) {
	f := newFixture(t)
	purchase := f.createPurchase(t, "F-0001")
	f.recordPayment(t, purchase.ID, 400)

	err := f.purchases.Delete(context.Background(), f.orgID, purchase.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "HAS_PAYMENTS", domainErr.Code)
}
