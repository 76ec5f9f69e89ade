package procurement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tiendapro/backend/internal/domain/identity"
	"github.com/tiendapro/backend/internal/domain/partner"
	"github.com/tiendapro/backend/internal/infrastructure/persistence"
	"github.com/tiendapro/backend/internal/infrastructure/persistence/models"
)

// fixture wires the services against an in-memory database with one active
// store and provider.
type fixture struct {
	db         *gorm.DB
	orgID      uuid.UUID
	storeID    uuid.UUID
	providerID uuid.UUID
	purchases  *PurchaseService
	payments   *PaymentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.Organization{},
		&identity.User{},
		&partner.Provider{},
		&partner.Store{},
		&models.PurchaseModel{},
		&models.PurchaseLineModel{},
		&models.PaymentModel{},
	))

	ctx := context.Background()
	orgID := uuid.New()

	provider, err := partner.NewProvider(orgID, "cafe-sur", "Cafetalera del Sur")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProviderRepository(db).Save(ctx, provider))

	store, err := partner.NewStore(orgID, "centro", "Sucursal Centro")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormStoreRepository(db).Save(ctx, store))

	purchaseRepo := persistence.NewGormPurchaseRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	providerRepo := persistence.NewGormProviderRepository(db)
	storeRepo := persistence.NewGormStoreRepository(db)

	return &fixture{
		db:         db,
		orgID:      orgID,
		storeID:    store.ID,
		providerID: provider.ID,
		purchases:  NewPurchaseService(db, purchaseRepo, paymentRepo, providerRepo, storeRepo, nil),
		payments:   NewPaymentService(db, purchaseRepo, paymentRepo, nil),
	}
}

// createPurchase registers a 1000.00 purchase due in 30 days
func (f *fixture) createPurchase(t *testing.T, invoice string) *PurchaseResponse {
	t.Helper()
	resp, err := f.purchases.Create(context.Background(), f.orgID, CreatePurchaseRequest{
		StoreID:       f.storeID,
		ProviderID:    f.providerID,
		InvoiceNumber: invoice,
		Lines: []PurchaseLineRequest{
			{Name: "Coffee beans 1kg", Quantity: decimal.NewFromInt(10), Unit: "bag", UnitPrice: decimal.NewFromInt(100)},
		},
		PurchaseDate: time.Now().Add(-24 * time.Hour),
		DueDate:      time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) recordPayment(t *testing.T, purchaseID uuid.UUID, amount int64) *RecordPaymentResult {
	t.Helper()
	result, err := f.payments.Record(context.Background(), f.orgID, purchaseID, RecordPaymentRequest{
		Amount:     decimal.NewFromInt(amount),
		PaidDate:   time.Now().Add(-time.Hour),
		Method:     "cash",
		RecordedBy: uuid.New(),
	})
	require.NoError(t, err)
	return result
}
