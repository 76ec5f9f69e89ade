package procurement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/partner"
	"github.com/tiendapro/backend/internal/domain/procurement"
	"github.com/tiendapro/backend/internal/domain/shared"
	"github.com/tiendapro/backend/internal/infrastructure/logger"
	"github.com/tiendapro/backend/internal/infrastructure/persistence"
	"github.com/tiendapro/backend/internal/infrastructure/telemetry"
)

// PurchaseService handles purchase lifecycle operations. Mutations that can
// race with payment recording go through the same optimistic-lock path the
// payment service uses.
type PurchaseService struct {
	db        *gorm.DB
	purchases *persistence.GormPurchaseRepository
	payments  *persistence.GormPaymentRepository
	providers partner.ProviderRepository
	stores    partner.StoreRepository
	metrics   *telemetry.ProcurementMetrics
}

// NewPurchaseService creates a new PurchaseService. metrics may be nil.
func NewPurchaseService(
	db *gorm.DB,
	purchases *persistence.GormPurchaseRepository,
	payments *persistence.GormPaymentRepository,
	providers partner.ProviderRepository,
	stores partner.StoreRepository,
	metrics *telemetry.ProcurementMetrics,
) *PurchaseService {
	return &PurchaseService{
		db:        db,
		purchases: purchases,
		payments:  payments,
		providers: providers,
		stores:    stores,
		metrics:   metrics,
	}
}

// Create registers a new purchase. The total is computed from the lines and
// the initial status is derived at creation time, so a purchase entered with
// a past due date starts out overdue.
func (s *PurchaseService) Create(ctx context.Context, orgID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	store, err := s.stores.FindByIDForOrg(ctx, orgID, req.StoreID)
	if err != nil {
		return nil, err
	}
	if store.Status != partner.StoreStatusActive {
		return nil, shared.NewDomainError(shared.KindInvalidState, "STORE_INACTIVE", "Cannot register purchases for an inactive store")
	}

	provider, err := s.providers.FindByIDForOrg(ctx, orgID, req.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider.Status != partner.ProviderStatusActive {
		return nil, shared.NewDomainError(shared.KindInvalidState, "PROVIDER_INACTIVE", "Cannot register purchases for an inactive provider")
	}

	if _, err := s.purchases.FindByInvoiceNumber(ctx, orgID, req.InvoiceNumber); err == nil {
		return nil, shared.NewDomainError(shared.KindConflict, "DUPLICATE_INVOICE", "A purchase with this invoice number already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	lines, err := toDomainLines(req.Lines)
	if err != nil {
		return nil, err
	}

	dueDate := req.DueDate
	if dueDate.IsZero() {
		dueDate = req.PurchaseDate.AddDate(0, 0, provider.CreditDays)
	}

	purchase, err := procurement.NewPurchase(
		orgID, req.StoreID, req.ProviderID,
		req.InvoiceNumber,
		lines,
		req.PurchaseDate, dueDate,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		purchase.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPurchaseCreated(ctx, orgID.String(), req.StoreID.String())
	}
	logger.PublishDomainEvents(ctx, purchase)

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Get returns a purchase by ID
func (s *PurchaseService) Get(ctx context.Context, orgID, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// List returns purchases matching the filter with the total match count
func (s *PurchaseService) List(ctx context.Context, orgID uuid.UUID, filter PurchaseListFilter) ([]PurchaseResponse, int64, error) {
	domainFilter, err := toDomainPurchaseFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	purchases, err := s.purchases.FindAllForOrg(ctx, orgID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.purchases.CountForOrg(ctx, orgID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseResponses(purchases), total, nil
}

// Update edits a purchase's lines, dates and notes. The total is recomputed
// from the lines and the status re-derived against a fresh payment sum, all
// inside one transaction guarded by the purchase's version.
func (s *PurchaseService) Update(ctx context.Context, orgID, id uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	lines, err := toDomainLines(req.Lines)
	if err != nil {
		return nil, err
	}

	var purchase *procurement.Purchase
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchases := s.purchases.WithTx(tx)
		payments := s.payments.WithTx(tx)

		purchase, err = purchases.FindByIDForOrg(ctx, orgID, id)
		if err != nil {
			return err
		}

		if req.InvoiceNumber != purchase.InvoiceNumber {
			if _, err := purchases.FindByInvoiceNumber(ctx, orgID, req.InvoiceNumber); err == nil {
				return shared.NewDomainError(shared.KindConflict, "DUPLICATE_INVOICE", "A purchase with this invoice number already exists")
			} else if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
		}

		if err := purchase.UpdateDetails(req.InvoiceNumber, lines, req.PurchaseDate, req.DueDate, req.Notes); err != nil {
			return err
		}

		// a smaller total can flip the status to paid, so re-derive
		// against the authoritative payment sum
		totalPaid, err := payments.SumByPurchase(ctx, orgID, id, nil)
		if err != nil {
			return err
		}
		if err := purchase.Reconcile(totalPaid, time.Now()); err != nil {
			return err
		}

		return purchases.SaveWithLock(ctx, purchase)
	})
	if err != nil {
		s.noteConflict(ctx, orgID, err)
		return nil, err
	}
	logger.PublishDomainEvents(ctx, purchase)

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Delete soft-deletes a purchase. Purchases with recorded payments cannot
// be deleted; the payments must be deleted first.
func (s *PurchaseService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchases := s.purchases.WithTx(tx)
		payments := s.payments.WithTx(tx)

		purchase, err := purchases.FindByIDForOrg(ctx, orgID, id)
		if err != nil {
			return err
		}

		existing, err := payments.FindByPurchase(ctx, orgID, id)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return shared.NewDomainError(shared.KindInvalidState, "HAS_PAYMENTS", "Cannot delete a purchase with recorded payments")
		}

		if err := purchase.MarkDeleted(); err != nil {
			return err
		}
		return purchases.SaveWithLock(ctx, purchase)
	})
	if err != nil {
		s.noteConflict(ctx, orgID, err)
	}
	return err
}

func (s *PurchaseService) noteConflict(ctx context.Context, orgID uuid.UUID, err error) {
	if s.metrics != nil && errors.Is(err, shared.ErrConcurrencyConflict) {
		s.metrics.RecordVersionConflict(ctx, orgID.String())
	}
}

// toDomainPurchaseFilter maps the list filter onto the repository filter,
// validating the status value
func toDomainPurchaseFilter(filter PurchaseListFilter) (procurement.PurchaseFilter, error) {
	domainFilter := procurement.PurchaseFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   filter.Search,
		},
		StoreID:    filter.StoreID,
		ProviderID: filter.ProviderID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
		DueFrom:    filter.DueFrom,
		DueTo:      filter.DueTo,
	}
	if filter.Status != nil {
		status := procurement.PurchaseStatus(*filter.Status)
		if !status.IsValid() {
			return procurement.PurchaseFilter{}, shared.NewValidationError("INVALID_STATUS", "Unknown purchase status filter")
		}
		domainFilter.Status = &status
	}
	return domainFilter, nil
}
