package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendapro/backend/internal/domain/procurement"
)

// PurchaseLineRequest is one line item in a create or update request.
// The subtotal is always recomputed server-side from quantity * unit price.
type PurchaseLineRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit" binding:"max=20"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreatePurchaseRequest represents a request to register a purchase
type CreatePurchaseRequest struct {
	StoreID       uuid.UUID             `json:"store_id" binding:"required"`
	ProviderID    uuid.UUID             `json:"provider_id" binding:"required"`
	InvoiceNumber string                `json:"invoice_number" binding:"required,min=1,max=50"`
	Lines         []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
	PurchaseDate  time.Time             `json:"purchase_date" binding:"required"`
	// DueDate defaults to purchase date + provider credit days when zero
	DueDate   time.Time  `json:"due_date"`
	Notes     string     `json:"notes"`
	CreatedBy *uuid.UUID `json:"-"`
}

// UpdatePurchaseRequest represents a request to edit a purchase's details
type UpdatePurchaseRequest struct {
	InvoiceNumber string                `json:"invoice_number" binding:"required,min=1,max=50"`
	Lines         []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
	PurchaseDate  time.Time             `json:"purchase_date" binding:"required"`
	DueDate       time.Time             `json:"due_date" binding:"required"`
	Notes         string                `json:"notes"`
}

// PurchaseListFilter carries list query parameters
type PurchaseListFilter struct {
	StoreID    *uuid.UUID
	ProviderID *uuid.UUID
	Status     *string
	FromDate   *time.Time
	ToDate     *time.Time
	DueFrom    *time.Time
	DueTo      *time.Time
	Search     string
	Page       int
	PageSize   int
}

// PurchaseLineResponse is one line item in API responses
type PurchaseLineResponse struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse represents a purchase in API responses.
// Status is re-derived as of response time, so an aging purchase reads
// overdue even before the next mutation persists it.
type PurchaseResponse struct {
	ID               uuid.UUID              `json:"id"`
	OrgID            uuid.UUID              `json:"org_id"`
	StoreID          uuid.UUID              `json:"store_id"`
	ProviderID       uuid.UUID              `json:"provider_id"`
	InvoiceNumber    string                 `json:"invoice_number"`
	Lines            []PurchaseLineResponse `json:"lines"`
	TotalAmount      decimal.Decimal        `json:"total_amount"`
	PaidAmount       decimal.Decimal        `json:"paid_amount"`
	RemainingBalance decimal.Decimal        `json:"remaining_balance"`
	Status           string                 `json:"status"`
	PurchaseDate     time.Time              `json:"purchase_date"`
	DueDate          time.Time              `json:"due_date"`
	Notes            string                 `json:"notes"`
	Version          int                    `json:"version"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// RecordPaymentRequest represents a request to record a payment against
// a purchase
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	PaidDate  time.Time       `json:"paid_date" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=cash transfer check card"`
	Reference string          `json:"reference" binding:"max=100"`
	Notes     string          `json:"notes"`
	// RecordedBy is set from the JWT context, never from the request body
	RecordedBy uuid.UUID `json:"-"`
}

// UpdatePaymentRequest represents a request to edit a recorded payment
type UpdatePaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	PaidDate  time.Time       `json:"paid_date" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=cash transfer check card"`
	Reference string          `json:"reference" binding:"max=100"`
	Notes     string          `json:"notes"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	OrgID      uuid.UUID       `json:"org_id"`
	StoreID    uuid.UUID       `json:"store_id"`
	PurchaseID uuid.UUID       `json:"purchase_id"`
	ProviderID uuid.UUID       `json:"provider_id"`
	Amount     decimal.Decimal `json:"amount"`
	PaidDate   time.Time       `json:"paid_date"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	RecordedBy uuid.UUID       `json:"recorded_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// RecordPaymentResult bundles the created payment with the purchase state
// it produced, so callers see the reconciled balance atomically.
type RecordPaymentResult struct {
	Payment  PaymentResponse  `json:"payment"`
	Purchase PurchaseResponse `json:"purchase"`
}

// ToPurchaseResponse converts a domain purchase to a response, deriving
// the status as of now
func ToPurchaseResponse(p *procurement.Purchase) PurchaseResponse {
	return toPurchaseResponseAsOf(p, time.Now())
}

func toPurchaseResponseAsOf(p *procurement.Purchase, asOf time.Time) PurchaseResponse {
	lines := make([]PurchaseLineResponse, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = PurchaseLineResponse{
			Name:      l.Name,
			Quantity:  l.Quantity,
			Unit:      l.Unit,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		}
	}

	return PurchaseResponse{
		ID:               p.ID,
		OrgID:            p.OrgID,
		StoreID:          p.StoreID,
		ProviderID:       p.ProviderID,
		InvoiceNumber:    p.InvoiceNumber,
		Lines:            lines,
		TotalAmount:      p.TotalAmount,
		PaidAmount:       p.PaidAmount,
		RemainingBalance: p.TotalAmount.Sub(p.PaidAmount),
		Status:           p.DeriveStatus(p.PaidAmount, asOf).String(),
		PurchaseDate:     p.PurchaseDate,
		DueDate:          p.DueDate,
		Notes:            p.Notes,
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToPurchaseResponses converts a slice of domain purchases
func ToPurchaseResponses(purchases []procurement.Purchase) []PurchaseResponse {
	now := time.Now()
	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = toPurchaseResponseAsOf(&purchases[i], now)
	}
	return responses
}

// ToPaymentResponse converts a domain payment to a response
func ToPaymentResponse(p *procurement.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		OrgID:      p.OrgID,
		StoreID:    p.StoreID,
		PurchaseID: p.PurchaseID,
		ProviderID: p.ProviderID,
		Amount:     p.Amount,
		PaidDate:   p.PaidDate,
		Method:     string(p.Method),
		Reference:  p.Reference,
		Notes:      p.Notes,
		RecordedBy: p.RecordedBy,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToPaymentResponses converts a slice of domain payments
func ToPaymentResponses(payments []procurement.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// toDomainLines converts request lines, recomputing each subtotal
func toDomainLines(reqs []PurchaseLineRequest) ([]procurement.PurchaseLine, error) {
	lines := make([]procurement.PurchaseLine, len(reqs))
	for i, req := range reqs {
		line, err := procurement.NewPurchaseLine(req.Name, req.Quantity, req.Unit, req.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}
