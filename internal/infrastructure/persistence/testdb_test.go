package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/identity"
	"github.com/tiendapro/backend/internal/domain/partner"
	"github.com/tiendapro/backend/internal/infrastructure/persistence/models"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.Organization{},
		&identity.User{},
		&partner.Provider{},
		&partner.Store{},
		&models.PurchaseModel{},
		&models.PurchaseLineModel{},
		&models.PaymentModel{},
	)
	require.NoError(t, err)

	return db
}
