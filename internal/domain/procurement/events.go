package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// PurchaseCreatedEvent is raised when a new purchase is recorded
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseID    uuid.UUID       `json:"purchase_id"`
	StoreID       uuid.UUID       `json:"store_id"`
	ProviderID    uuid.UUID       `json:"provider_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        PurchaseStatus  `json:"status"`
}

// EventType returns the event type name
func (e *PurchaseCreatedEvent) EventType() string {
	return "PurchaseCreated"
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchaseCreated", "Purchase", p.ID, p.OrgID),
		PurchaseID:      p.ID,
		StoreID:         p.StoreID,
		ProviderID:      p.ProviderID,
		InvoiceNumber:   p.InvoiceNumber,
		TotalAmount:     p.TotalAmount,
		DueDate:         p.DueDate,
		Status:          p.Status,
	}
}

// PurchasePaidEvent is raised when a purchase becomes fully paid
type PurchasePaidEvent struct {
	shared.BaseDomainEvent
	PurchaseID    uuid.UUID       `json:"purchase_id"`
	ProviderID    uuid.UUID       `json:"provider_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// EventType returns the event type name
func (e *PurchasePaidEvent) EventType() string {
	return "PurchasePaid"
}

// NewPurchasePaidEvent creates a new PurchasePaidEvent
func NewPurchasePaidEvent(p *Purchase) *PurchasePaidEvent {
	return &PurchasePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchasePaid", "Purchase", p.ID, p.OrgID),
		PurchaseID:      p.ID,
		ProviderID:      p.ProviderID,
		InvoiceNumber:   p.InvoiceNumber,
		TotalAmount:     p.TotalAmount,
	}
}

// PaymentRecordedEvent is raised when a payment is applied to a purchase
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	PurchaseID uuid.UUID       `json:"purchase_id"`
	ProviderID uuid.UUID       `json:"provider_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
	PaidDate   time.Time       `json:"paid_date"`
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return "PaymentRecorded"
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentRecorded", "Payment", p.ID, p.OrgID),
		PaymentID:       p.ID,
		PurchaseID:      p.PurchaseID,
		ProviderID:      p.ProviderID,
		Amount:          p.Amount,
		Method:          p.Method,
		PaidDate:        p.PaidDate,
	}
}

// PaymentDeletedEvent is raised when a payment is removed and the purchase
// status rolls back accordingly
type PaymentDeletedEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	PurchaseID uuid.UUID       `json:"purchase_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *PaymentDeletedEvent) EventType() string {
	return "PaymentDeleted"
}

// NewPaymentDeletedEvent creates a new PaymentDeletedEvent
func NewPaymentDeletedEvent(p *Payment) *PaymentDeletedEvent {
	return &PaymentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentDeleted", "Payment", p.ID, p.OrgID),
		PaymentID:       p.ID,
		PurchaseID:      p.PurchaseID,
		Amount:          p.Amount,
	}
}
