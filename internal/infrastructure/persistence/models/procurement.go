package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendapro/backend/internal/domain/procurement"
)

// PurchaseModel is the persistence model for the Purchase aggregate root.
type PurchaseModel struct {
	OrgAggregateModel
	StoreID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Uniqueness per org is enforced by a partial index over live rows,
	// created in the migrations; a soft-deleted invoice number is reusable.
	InvoiceNumber string                     `gorm:"type:varchar(50);not null;index"`
	Lines         []PurchaseLineModel        `gorm:"foreignKey:PurchaseID;references:ID;constraint:OnDelete:CASCADE"`
	TotalAmount   decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	PaidAmount    decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Status        procurement.PurchaseStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PurchaseDate  time.Time                  `gorm:"not null;index"`
	DueDate       time.Time                  `gorm:"not null;index"`
	Notes         string                     `gorm:"type:text"`
	DeletedAt     *time.Time                 `gorm:"index"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// PurchaseLineModel is the persistence model for one purchase line item.
// Lines have no identity in the domain; position keeps their order stable.
type PurchaseLineModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit       string          `gorm:"type:varchar(20)"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseLineModel) TableName() string {
	return "purchase_lines"
}

// ToDomain converts the persistence model to a domain Purchase.
func (m *PurchaseModel) ToDomain() *procurement.Purchase {
	lines := make([]procurement.PurchaseLine, len(m.Lines))
	for i, lm := range m.Lines {
		lines[i] = procurement.PurchaseLine{
			Name:      lm.Name,
			Quantity:  lm.Quantity,
			Unit:      lm.Unit,
			UnitPrice: lm.UnitPrice,
			Subtotal:  lm.Subtotal,
		}
	}

	return &procurement.Purchase{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		StoreID:          m.StoreID,
		ProviderID:       m.ProviderID,
		InvoiceNumber:    m.InvoiceNumber,
		Lines:            lines,
		TotalAmount:      m.TotalAmount,
		PaidAmount:       m.PaidAmount,
		Status:           m.Status,
		PurchaseDate:     m.PurchaseDate,
		DueDate:          m.DueDate,
		Notes:            m.Notes,
		DeletedAt:        m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain Purchase.
func (m *PurchaseModel) FromDomain(p *procurement.Purchase) {
	m.FromDomainOrgAggregateRoot(p.OrgAggregateRoot)
	m.StoreID = p.StoreID
	m.ProviderID = p.ProviderID
	m.InvoiceNumber = p.InvoiceNumber
	m.TotalAmount = p.TotalAmount
	m.PaidAmount = p.PaidAmount
	m.Status = p.Status
	m.PurchaseDate = p.PurchaseDate
	m.DueDate = p.DueDate
	m.Notes = p.Notes
	m.DeletedAt = p.DeletedAt

	m.Lines = make([]PurchaseLineModel, len(p.Lines))
	for i, line := range p.Lines {
		m.Lines[i] = PurchaseLineModel{
			ID:         uuid.New(),
			PurchaseID: p.ID,
			Position:   i,
			Name:       line.Name,
			Quantity:   line.Quantity,
			Unit:       line.Unit,
			UnitPrice:  line.UnitPrice,
			Subtotal:   line.Subtotal,
		}
	}
}

// PurchaseModelFromDomain creates a new persistence model from a domain Purchase.
func PurchaseModelFromDomain(p *procurement.Purchase) *PurchaseModel {
	m := &PurchaseModel{}
	m.FromDomain(p)
	return m
}

// PaymentModel is the persistence model for the Payment entity.
type PaymentModel struct {
	OrgAggregateModel
	StoreID    uuid.UUID                 `gorm:"type:uuid;not null;index"`
	PurchaseID uuid.UUID                 `gorm:"type:uuid;not null;index"`
	ProviderID uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	PaidDate   time.Time                 `gorm:"not null;index"`
	Method     procurement.PaymentMethod `gorm:"type:varchar(20);not null;index"`
	Reference  string                    `gorm:"type:varchar(100)"`
	Notes      string                    `gorm:"type:text"`
	RecordedBy uuid.UUID                 `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *procurement.Payment {
	return &procurement.Payment{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		StoreID:          m.StoreID,
		PurchaseID:       m.PurchaseID,
		ProviderID:       m.ProviderID,
		Amount:           m.Amount,
		PaidDate:         m.PaidDate,
		Method:           m.Method,
		Reference:        m.Reference,
		Notes:            m.Notes,
		RecordedBy:       m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *procurement.Payment) {
	m.FromDomainOrgAggregateRoot(p.OrgAggregateRoot)
	m.StoreID = p.StoreID
	m.PurchaseID = p.PurchaseID
	m.ProviderID = p.ProviderID
	m.Amount = p.Amount
	m.PaidDate = p.PaidDate
	m.Method = p.Method
	m.Reference = p.Reference
	m.Notes = p.Notes
	m.RecordedBy = p.RecordedBy
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *procurement.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
