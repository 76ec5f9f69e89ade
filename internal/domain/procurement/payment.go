package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodCard     PaymentMethod = "card"
)

// minReferenceLength is the minimum length of the bank/check reference
// required for transfer and check payments.
const minReferenceLength = 3

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCheck, PaymentMethodCard:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// RequiresReference returns true for methods that need an external
// reference (bank transfer number, check number).
func (m PaymentMethod) RequiresReference() bool {
	return m == PaymentMethodTransfer || m == PaymentMethodCheck
}

// Payment represents one disbursement applied against exactly one purchase.
// The provider ID is denormalized from the purchase for display queries.
type Payment struct {
	shared.OrgAggregateRoot
	StoreID    uuid.UUID       `json:"store_id"`
	PurchaseID uuid.UUID       `json:"purchase_id"`
	ProviderID uuid.UUID       `json:"provider_id"`
	Amount     decimal.Decimal `json:"amount"`
	PaidDate   time.Time       `json:"paid_date"`
	Method     PaymentMethod   `json:"method"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	RecordedBy uuid.UUID       `json:"recorded_by"`
}

// NewPayment creates a payment record, validating every field-level
// precondition. The balance precondition (amount <= remaining) is checked
// separately against a fresh payment sum, inside the recording transaction.
func NewPayment(
	orgID, storeID, purchaseID, providerID uuid.UUID,
	amount decimal.Decimal,
	paidDate time.Time,
	method PaymentMethod,
	reference, notes string,
	recordedBy uuid.UUID,
) (*Payment, error) {
	if purchaseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}
	if err := ValidatePaymentFields(amount, paidDate, method, reference, time.Now()); err != nil {
		return nil, err
	}

	p := &Payment{
		OrgAggregateRoot: shared.NewOrgAggregateRootWithCreator(orgID, recordedBy),
		StoreID:          storeID,
		PurchaseID:       purchaseID,
		ProviderID:       providerID,
		Amount:           amount,
		PaidDate:         paidDate,
		Method:           method,
		Reference:        reference,
		Notes:            notes,
		RecordedBy:       recordedBy,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// ValidatePaymentFields checks the field-level preconditions shared by
// record and edit: positive amount, no future date, reference present for
// transfer/check.
func ValidatePaymentFields(amount decimal.Decimal, paidDate time.Time, method PaymentMethod, reference string, now time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if paidDate.After(now) {
		return shared.NewValidationError("FUTURE_PAYMENT_DATE", "Payment date cannot be in the future")
	}
	if !method.IsValid() {
		return shared.NewValidationError("INVALID_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}
	if method.RequiresReference() && len(reference) < minReferenceLength {
		return shared.NewValidationError("MISSING_REFERENCE",
			fmt.Sprintf("A reference of at least %d characters is required for %s payments", minReferenceLength, method))
	}
	return nil
}

// Update replaces the payment's mutable fields. The caller revalidates the
// balance (excluding this payment's previous amount) and reconciles the
// owning purchase in the same transaction.
func (p *Payment) Update(amount decimal.Decimal, paidDate time.Time, method PaymentMethod, reference, notes string) error {
	if err := ValidatePaymentFields(amount, paidDate, method, reference, time.Now()); err != nil {
		return err
	}

	p.Amount = amount
	p.PaidDate = paidDate
	p.Method = method
	p.Reference = reference
	p.Notes = notes
	p.Touch()
	p.IncrementVersion()

	return nil
}
