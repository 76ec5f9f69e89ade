package procurement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/procurement"
	"github.com/tiendapro/backend/internal/domain/shared"
	"github.com/tiendapro/backend/internal/infrastructure/logger"
	"github.com/tiendapro/backend/internal/infrastructure/persistence"
	"github.com/tiendapro/backend/internal/infrastructure/telemetry"
)

// PaymentService records, edits and deletes payments against purchases.
//
// Every mutation runs in a single transaction that re-reads the purchase,
// re-sums the payment set, validates the balance against those fresh
// numbers, and persists the payment together with the re-derived purchase
// status through an optimistic version check. A losing writer surfaces
// shared.ErrConcurrencyConflict, which is retryable, unlike a validation
// rejection.
type PaymentService struct {
	db        *gorm.DB
	purchases *persistence.GormPurchaseRepository
	payments  *persistence.GormPaymentRepository
	metrics   *telemetry.ProcurementMetrics
}

// NewPaymentService creates a new PaymentService. metrics may be nil.
func NewPaymentService(
	db *gorm.DB,
	purchases *persistence.GormPurchaseRepository,
	payments *persistence.GormPaymentRepository,
	metrics *telemetry.ProcurementMetrics,
) *PaymentService {
	return &PaymentService{
		db:        db,
		purchases: purchases,
		payments:  payments,
		metrics:   metrics,
	}
}

// Record records a payment against a purchase and reconciles the purchase
// in the same transaction.
func (s *PaymentService) Record(ctx context.Context, orgID, purchaseID uuid.UUID, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	var (
		payment  *procurement.Payment
		purchase *procurement.Purchase
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchases := s.purchases.WithTx(tx)
		payments := s.payments.WithTx(tx)

		var err error
		purchase, err = purchases.FindByIDForOrg(ctx, orgID, purchaseID)
		if err != nil {
			return err
		}

		// authoritative paid total, summed inside the transaction
		totalPaid, err := payments.SumByPurchase(ctx, orgID, purchaseID, nil)
		if err != nil {
			return err
		}
		remaining, err := procurement.RemainingBalance(purchase.TotalAmount, totalPaid)
		if err != nil {
			return err
		}
		if err := procurement.CheckAgainstBalance(req.Amount, remaining); err != nil {
			return err
		}

		payment, err = procurement.NewPayment(
			orgID, purchase.StoreID, purchaseID, purchase.ProviderID,
			req.Amount,
			req.PaidDate,
			procurement.PaymentMethod(req.Method),
			req.Reference, req.Notes,
			req.RecordedBy,
		)
		if err != nil {
			return err
		}

		if err := payments.Create(ctx, payment); err != nil {
			return err
		}

		if err := purchase.Reconcile(totalPaid.Add(req.Amount), time.Now()); err != nil {
			return err
		}
		return purchases.SaveWithLock(ctx, purchase)
	})
	if err != nil {
		s.noteConflict(ctx, orgID, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPayment(ctx, orgID.String(), string(payment.Method), payment.Amount)
	}
	logger.PublishDomainEvents(ctx, payment, purchase)

	return &RecordPaymentResult{
		Payment:  ToPaymentResponse(payment),
		Purchase: ToPurchaseResponse(purchase),
	}, nil
}

// Edit updates a recorded payment. The balance check excludes the edited
// payment's previous amount, so raising a payment from 400 to 600 against
// a 1000 purchase with 400 paid is valid.
func (s *PaymentService) Edit(ctx context.Context, orgID, paymentID uuid.UUID, req UpdatePaymentRequest) (*RecordPaymentResult, error) {
	var (
		payment  *procurement.Payment
		purchase *procurement.Purchase
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchases := s.purchases.WithTx(tx)
		payments := s.payments.WithTx(tx)

		var err error
		payment, err = payments.FindByIDForOrg(ctx, orgID, paymentID)
		if err != nil {
			return err
		}
		purchase, err = purchases.FindByIDForOrg(ctx, orgID, payment.PurchaseID)
		if err != nil {
			return err
		}

		othersPaid, err := payments.SumByPurchase(ctx, orgID, payment.PurchaseID, &paymentID)
		if err != nil {
			return err
		}
		remaining, err := procurement.RemainingBalance(purchase.TotalAmount, othersPaid)
		if err != nil {
			return err
		}
		if err := procurement.CheckAgainstBalance(req.Amount, remaining); err != nil {
			return err
		}

		if err := payment.Update(
			req.Amount,
			req.PaidDate,
			procurement.PaymentMethod(req.Method),
			req.Reference, req.Notes,
		); err != nil {
			return err
		}
		if err := payments.Update(ctx, payment); err != nil {
			return err
		}

		if err := purchase.Reconcile(othersPaid.Add(req.Amount), time.Now()); err != nil {
			return err
		}
		return purchases.SaveWithLock(ctx, purchase)
	})
	if err != nil {
		s.noteConflict(ctx, orgID, err)
		return nil, err
	}
	logger.PublishDomainEvents(ctx, payment, purchase)

	return &RecordPaymentResult{
		Payment:  ToPaymentResponse(payment),
		Purchase: ToPurchaseResponse(purchase),
	}, nil
}

// Delete removes a payment and reconciles the purchase from the remaining
// payment set. The status may move backward, paid to partial, or to overdue
// when the due date has since passed.
func (s *PaymentService) Delete(ctx context.Context, orgID, paymentID uuid.UUID) (*PurchaseResponse, error) {
	var purchase *procurement.Purchase

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchases := s.purchases.WithTx(tx)
		payments := s.payments.WithTx(tx)

		payment, err := payments.FindByIDForOrg(ctx, orgID, paymentID)
		if err != nil {
			return err
		}
		purchase, err = purchases.FindByIDForOrg(ctx, orgID, payment.PurchaseID)
		if err != nil {
			return err
		}

		if err := payments.Delete(ctx, orgID, paymentID); err != nil {
			return err
		}

		remainingPaid, err := payments.SumByPurchase(ctx, orgID, payment.PurchaseID, nil)
		if err != nil {
			return err
		}
		if err := purchase.Reconcile(remainingPaid, time.Now()); err != nil {
			return err
		}
		purchase.AddDomainEvent(procurement.NewPaymentDeletedEvent(payment))
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

// ListByPurchase returns the payments recorded against a purchase, newest
// first
func (s *PaymentService) ListByPurchase(ctx context.Context, orgID, purchaseID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.purchases.FindByIDForOrg(ctx, orgID, purchaseID); err != nil {
		return nil, err
	}
	payments, err := s.payments.FindByPurchase(ctx, orgID, purchaseID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

func (s *PaymentService) noteConflict(ctx context.Context, orgID uuid.UUID, err error) {
	if s.metrics != nil && errors.Is(err, shared.ErrConcurrencyConflict) {
		s.metrics.RecordVersionConflict(ctx, orgID.String())
	}
}
