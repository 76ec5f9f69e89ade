package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// PurchaseStatus represents the derived payment state of a purchase.
// It is never patched incrementally: it is always the output of
// DeriveStatus applied to a freshly computed paid total.
type PurchaseStatus string

const (
	PurchaseStatusPending PurchaseStatus = "pending" // No payments, not past due
	PurchaseStatusPartial PurchaseStatus = "partial" // 0 < paid < total, not past due
	PurchaseStatusPaid    PurchaseStatus = "paid"    // paid >= total
	PurchaseStatusOverdue PurchaseStatus = "overdue" // Not fully paid and past due date
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusPartial, PurchaseStatusPaid, PurchaseStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// IsSettled returns true if the purchase is fully paid
func (s PurchaseStatus) IsSettled() bool {
	return s == PurchaseStatusPaid
}

// PurchaseLine is one line item of a purchase.
// Subtotal is always Quantity * UnitPrice.
type PurchaseLine struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewPurchaseLine creates a line item with the subtotal computed
func NewPurchaseLine(name string, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal) (PurchaseLine, error) {
	if name == "" {
		return PurchaseLine{}, shared.NewValidationError("INVALID_LINE_NAME", "Line item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return PurchaseLine{}, shared.NewValidationError("INVALID_LINE_QUANTITY", fmt.Sprintf("Line %q quantity must be positive", name))
	}
	if unitPrice.IsNegative() {
		return PurchaseLine{}, shared.NewValidationError("INVALID_LINE_PRICE", fmt.Sprintf("Line %q unit price cannot be negative", name))
	}
	return PurchaseLine{
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
		UnitPrice: unitPrice,
		Subtotal:  quantity.Mul(unitPrice),
	}, nil
}

// Purchase represents a single procurement transaction from a provider.
// It is the aggregate root of the reconciliation engine: payments reference
// it by ID and its status is recomputed from the payment set on every
// payment mutation.
type Purchase struct {
	shared.OrgAggregateRoot
	StoreID       uuid.UUID      `json:"store_id"`
	ProviderID    uuid.UUID      `json:"provider_id"`
	InvoiceNumber string         `json:"invoice_number"`
	Lines         []PurchaseLine `json:"lines"`
	// TotalAmount is the sum of line subtotals, fixed at create/edit time.
	TotalAmount decimal.Decimal `json:"total_amount"`
	// PaidAmount caches the payment sum as of the last reconciliation.
	// The authoritative value is always re-summed from the payment set.
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Status       PurchaseStatus  `json:"status"`
	PurchaseDate time.Time       `json:"purchase_date"`
	DueDate      time.Time       `json:"due_date"`
	Notes        string          `json:"notes"`
	DeletedAt    *time.Time      `json:"deleted_at,omitempty"`
}

// NewPurchase creates a purchase from its line items. The total is computed
// from the lines and the initial status is derived for the given creation
// time, so a purchase created with a past due date starts out overdue.
func NewPurchase(
	orgID, storeID, providerID uuid.UUID,
	invoiceNumber string,
	lines []PurchaseLine,
	purchaseDate, dueDate time.Time,
	notes string,
) (*Purchase, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_STORE", "Store ID cannot be empty")
	}
	if providerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PROVIDER", "Provider ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewValidationError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewValidationError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("INVALID_LINES", "Purchase must have at least one line item")
	}
	if dueDate.Before(purchaseDate) {
		return nil, shared.NewValidationError("INVALID_DUE_DATE", "Due date cannot precede the purchase date")
	}

	total := decimal.Zero
	for _, line := range lines {
		if err := validateLine(line); err != nil {
			return nil, err
		}
		total = total.Add(line.Subtotal)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Purchase total must be positive")
	}

	p := &Purchase{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		StoreID:          storeID,
		ProviderID:       providerID,
		InvoiceNumber:    invoiceNumber,
		Lines:            lines,
		TotalAmount:      total,
		PaidAmount:       decimal.Zero,
		PurchaseDate:     purchaseDate,
		DueDate:          dueDate,
		Notes:            notes,
	}
	p.Status = p.DeriveStatus(decimal.Zero, time.Now())

	p.AddDomainEvent(NewPurchaseCreatedEvent(p))

	return p, nil
}

// validateLine re-checks the line invariant (subtotal = quantity * price)
// for lines that were not built through NewPurchaseLine.
func validateLine(line PurchaseLine) error {
	if line.Name == "" {
		return shared.NewValidationError("INVALID_LINE_NAME", "Line item name cannot be empty")
	}
	if line.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_LINE_QUANTITY", fmt.Sprintf("Line %q quantity must be positive", line.Name))
	}
	if line.UnitPrice.IsNegative() {
		return shared.NewValidationError("INVALID_LINE_PRICE", fmt.Sprintf("Line %q unit price cannot be negative", line.Name))
	}
	if !line.Subtotal.Equal(line.Quantity.Mul(line.UnitPrice)) {
		return shared.NewIntegrityError("LINE_SUBTOTAL_MISMATCH",
			fmt.Sprintf("Line %q subtotal %s does not equal quantity %s * unit price %s",
				line.Name, line.Subtotal, line.Quantity, line.UnitPrice))
	}
	return nil
}

// DeriveStatus computes the purchase status for a given paid total at a
// point in time. First match wins:
//  1. paid total >= purchase total        -> paid
//  2. due date before asOf                -> overdue
//  3. paid total > 0                      -> partial
//  4. otherwise                           -> pending
//
// Overdue is time-relative, not a one-way transition: a purchase leaves
// overdue by becoming paid, and re-enters it when a payment is deleted
// after the due date has passed.
func (p *Purchase) DeriveStatus(totalPaid decimal.Decimal, asOf time.Time) PurchaseStatus {
	switch {
	case totalPaid.GreaterThanOrEqual(p.TotalAmount):
		return PurchaseStatusPaid
	case p.DueDate.Before(asOf):
		return PurchaseStatusOverdue
	case totalPaid.GreaterThan(decimal.Zero):
		return PurchaseStatusPartial
	default:
		return PurchaseStatusPending
	}
}

// RemainingBalance returns total - paid for the cached paid amount.
// A negative result is a data-integrity error, never clamped.
func (p *Purchase) RemainingBalance() (decimal.Decimal, error) {
	return RemainingBalance(p.TotalAmount, p.PaidAmount)
}

// Reconcile updates the cached paid amount and re-derives the status from
// a freshly summed payment set. This is the only way the status field is
// ever written.
func (p *Purchase) Reconcile(totalPaid decimal.Decimal, asOf time.Time) error {
	if totalPaid.IsNegative() {
		return shared.NewIntegrityError("NEGATIVE_PAID_TOTAL",
			fmt.Sprintf("Payment sum %s for purchase %s is negative", totalPaid, p.InvoiceNumber))
	}
	if totalPaid.GreaterThan(p.TotalAmount) {
		return shared.NewIntegrityError("NEGATIVE_BALANCE",
			fmt.Sprintf("Payment sum %s exceeds purchase total %s for purchase %s",
				totalPaid, p.TotalAmount, p.InvoiceNumber))
	}

	previous := p.Status
	p.PaidAmount = totalPaid
	p.Status = p.DeriveStatus(totalPaid, asOf)
	p.Touch()
	p.IncrementVersion()

	if p.Status == PurchaseStatusPaid && previous != PurchaseStatusPaid {
		p.AddDomainEvent(NewPurchasePaidEvent(p))
	}

	return nil
}

// UpdateDetails replaces the purchase's lines and dates, recomputing the
// total. Callers must reconcile afterwards against the current payment set
// since a smaller total can flip the status to paid.
func (p *Purchase) UpdateDetails(invoiceNumber string, lines []PurchaseLine, purchaseDate, dueDate time.Time, notes string) error {
	if p.DeletedAt != nil {
		return shared.NewDomainError(shared.KindInvalidState, "PURCHASE_DELETED", "Cannot edit a deleted purchase")
	}
	if invoiceNumber == "" {
		return shared.NewValidationError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(lines) == 0 {
		return shared.NewValidationError("INVALID_LINES", "Purchase must have at least one line item")
	}
	if dueDate.Before(purchaseDate) {
		return shared.NewValidationError("INVALID_DUE_DATE", "Due date cannot precede the purchase date")
	}

	total := decimal.Zero
	for _, line := range lines {
		if err := validateLine(line); err != nil {
			return err
		}
		total = total.Add(line.Subtotal)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_AMOUNT", "Purchase total must be positive")
	}
	if total.LessThan(p.PaidAmount) {
		return shared.NewValidationError("TOTAL_BELOW_PAID",
			fmt.Sprintf("New total %s is below the amount already paid %s", total, p.PaidAmount))
	}

	p.InvoiceNumber = invoiceNumber
	p.Lines = lines
	p.TotalAmount = total
	p.PurchaseDate = purchaseDate
	p.DueDate = dueDate
	p.Notes = notes
	p.Touch()
	p.IncrementVersion()

	return nil
}

// MarkDeleted soft-deletes the purchase. Purchases are never physically
// removed in the normal flow.
func (p *Purchase) MarkDeleted() error {
	if p.DeletedAt != nil {
		return shared.NewDomainError(shared.KindInvalidState, "PURCHASE_DELETED", "Purchase is already deleted")
	}
	now := time.Now()
	p.DeletedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// IsOverdue returns true if the purchase is past due and not fully paid
func (p *Purchase) IsOverdue(asOf time.Time) bool {
	return p.DeriveStatus(p.PaidAmount, asOf) == PurchaseStatusOverdue
}

// CheckLineInvariant verifies total = sum of subtotals against the stored
// lines. A mismatch is a data-integrity error (spotting which record is
// wrong cannot be inferred automatically, so it is surfaced, not corrected).
func (p *Purchase) CheckLineInvariant() error {
	sum := decimal.Zero
	for _, line := range p.Lines {
		if err := validateLine(line); err != nil {
			return err
		}
		sum = sum.Add(line.Subtotal)
	}
	if !sum.Equal(p.TotalAmount) {
		return shared.NewIntegrityError("TOTAL_MISMATCH",
			fmt.Sprintf("Purchase %s total %s does not equal line sum %s", p.InvoiceNumber, p.TotalAmount, sum))
	}
	return nil
}
