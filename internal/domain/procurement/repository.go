package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// PurchaseFilter defines filtering options for purchase queries
type PurchaseFilter struct {
	shared.Filter
	StoreID    *uuid.UUID      // Filter by store
	ProviderID *uuid.UUID      // Filter by provider
	Status     *PurchaseStatus // Filter by derived status
	FromDate   *time.Time      // Purchase date range start
	ToDate     *time.Time      // Purchase date range end
	DueFrom    *time.Time      // Due date range start
	DueTo      *time.Time      // Due date range end
}

// PurchaseRepository defines the interface for purchase persistence.
// Soft-deleted purchases are excluded from every query.
type PurchaseRepository interface {
	// FindByIDForOrg finds a purchase by ID within an organization
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Purchase, error)

	// FindByInvoiceNumber finds a purchase by invoice number within an organization
	FindByInvoiceNumber(ctx context.Context, orgID uuid.UUID, invoiceNumber string) (*Purchase, error)

	// FindAllForOrg finds purchases for an organization with filtering
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter PurchaseFilter) ([]Purchase, error)

	// CountForOrg counts purchases matching the filter
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter PurchaseFilter) (int64, error)

	// CountByProvider counts live purchases referencing a provider
	CountByProvider(ctx context.Context, orgID, providerID uuid.UUID) (int64, error)

	// MarkOverdue flips pending and partial purchases past their due date to
	// overdue across all organizations. Returns the number of rows updated.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)

	// Save creates or updates a purchase
	Save(ctx context.Context, purchase *Purchase) error

	// SaveWithLock updates a purchase with an optimistic version check.
	// Returns shared.ErrConcurrencyConflict if another writer got there first.
	SaveWithLock(ctx context.Context, purchase *Purchase) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByIDForOrg finds a payment by ID within an organization
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Payment, error)

	// FindByPurchase lists payments recorded against a purchase, newest first
	FindByPurchase(ctx context.Context, orgID, purchaseID uuid.UUID) ([]Payment, error)

	// SumByPurchase sums payment amounts for a purchase, excluding the
	// payment with excludeID when non-nil (used by edits)
	SumByPurchase(ctx context.Context, orgID, purchaseID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error)

	// Create inserts a new payment
	Create(ctx context.Context, payment *Payment) error

	// Update persists changes to an existing payment
	Update(ctx context.Context, payment *Payment) error

	// Delete removes a payment record
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
