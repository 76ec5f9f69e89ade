package partner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tiendapro/backend/internal/domain/partner"
	"github.com/tiendapro/backend/internal/domain/procurement"
	"github.com/tiendapro/backend/internal/domain/shared"
	"github.com/tiendapro/backend/internal/infrastructure/persistence"
	"github.com/tiendapro/backend/internal/infrastructure/persistence/models"
)

func setupServices(t *testing.T) (*ProviderService, *StoreService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&partner.Provider{},
		&partner.Store{},
		&models.PurchaseModel{},
		&models.PurchaseLineModel{},
		&models.PaymentModel{},
	))

	providerSvc := NewProviderService(
		persistence.NewGormProviderRepository(db),
		persistence.NewGormPurchaseRepository(db),
	)
	storeSvc := NewStoreService(persistence.NewGormStoreRepository(db))
	return providerSvc, storeSvc, db
}

func TestProviderService_CreateAndGet(t *testing.T) {
	svc, _, _ := setupServices(t)
	ctx := context.Background()
	orgID := uuid.New()

	created, err := svc.Create(ctx, orgID, CreateProviderRequest{
		Code:       "cafe-sur",
		Name:       "Cafetalera del Sur",
		Email:      "ventas@cafesur.example",
		CreditDays: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAFE-SUR", created.Code)
	assert.Equal(t, 30, created.CreditDays)
	assert.Equal(t, "active", created.Status)

	got, err := svc.Get(ctx, orgID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestProviderService_Create_DuplicateCode(t *testing.T) {
	svc, _, _ := setupServices(t)
	ctx := context.Background()
	orgID := uuid.New()

	_, err := svc.Create(ctx, orgID, CreateProviderRequest{Code: "CAFE-SUR", Name: "Cafetalera del Sur"})
	require.NoError(t, err)

	// codes are case-insensitive
	_, err = svc.Create(ctx, orgID, CreateProviderRequest{Code: "cafe-sur", Name: "Otra Cafetalera"})
	require.Error(t, err)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))

	// same code in another org is fine
	_, err = svc.Create(ctx, uuid.New(), CreateProviderRequest{Code: "CAFE-SUR", Name: "Cafetalera del Sur"})
	require.NoError(t, err)
}

func TestProviderService_Update_StatusToggle(t *testing.T) {
	svc, _, _ := setupServices(t)
	ctx := context.Background()
	orgID := uuid.New()

	created, err := svc.Create(ctx, orgID, CreateProviderRequest{Code: "CAFE-SUR", Name: "Cafetalera del Sur"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, orgID, created.ID, UpdateProviderRequest{
		Name:       "Cafetalera del Sur SA",
		CreditDays: 45,
		Status:     "inactive",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cafetalera del Sur SA", updated.Name)
	assert.Equal(t, 45, updated.CreditDays)
	assert.Equal(t, "inactive", updated.Status)

	updated, err = svc.Update(ctx, orgID, created.ID, UpdateProviderRequest{
		Name:   updated.Name,
		Status: "active",
	})
	require.NoError(t, err)
	assert.Equal(t, "active", updated.Status)
}

func TestProviderService_Delete_BlockedByPurchases(t *testing.T) {
	svc, _, db := setupServices(t)
	ctx := context.Background()
	orgID := uuid.New()

	created, err := svc.Create(ctx, orgID, CreateProviderRequest{Code: "CAFE-SUR", Name: "Cafetalera del Sur"})
	require.NoError(t, err)

	line, err := procurement.NewPurchaseLine("Coffee beans 1kg", decimal.NewFromInt(10), "bag", decimal.NewFromInt(100))
	require.NoError(t, err)
	purchase, err := procurement.NewPurchase(
		orgID, uuid.New(), created.ID,
		"F-0001",
		[]procurement.PurchaseLine{line},
		time.Now().Add(-24*time.Hour),
		time.Now().Add(30*24*time.Hour),
		"",
	)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormPurchaseRepository(db).Save(ctx, purchase))

	err = svc.Delete(ctx, orgID, created.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PROVIDER_IN_USE", domainErr.Code)
}

func TestProviderService_Delete(t *testing.T) {
	svc, _, _ := setupServices(t)
	ctx := context.Background()
	orgID := uuid.New()

	created, err := svc.Create(ctx, orgID, CreateProviderRequest{Code: "CAFE-SUR", Name: "Cafetalera del Sur"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, orgID, created.ID))
	_, err = svc.Get(ctx, orgID, created.ID)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestStoreService_CRUD(t *testing.T) {
	_, svc, _ := setupServices(t)
	ctx := context.Background()
	orgID := uuid.New()

	created, err := svc.Create(ctx, orgID, CreateStoreRequest{
		Code:    "centro",
		Name:    "Sucursal Centro",
		Address: "Av. Principal 123",
	})
	require.NoError(t, err)
	assert.Equal(t, "CENTRO", created.Code)
	assert.Equal(t, "active", created.Status)

	_, err = svc.Create(ctx, orgID, CreateStoreRequest{Code: "CENTRO", Name: "Duplicada"})
	require.Error(t, err)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))

	updated, err := svc.Update(ctx, orgID, created.ID, UpdateStoreRequest{
		Name:   "Sucursal Centro",
		Status: "inactive",
	})
	require.NoError(t, err)
	assert.Equal(t, "inactive", updated.Status)

	list, total, err := svc.List(ctx, orgID, StoreListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, orgID, created.ID))
	_, err = svc.Get(ctx, orgID, created.ID)
	assert.Equal(t, shared.ErrNotFound, err)
}
