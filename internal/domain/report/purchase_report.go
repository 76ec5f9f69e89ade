package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusSummary is a read model for purchase counts and amounts per status
type StatusSummary struct {
	Status      string          `json:"status"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
}

// MethodBreakdown is a read model for payment totals per method
type MethodBreakdown struct {
	Method      string          `json:"method"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ProviderBalance is a read model for a provider's outstanding position.
// Built by joining payments back to purchases and providers at query time;
// the reconciliation engine never maintains these numbers itself.
type ProviderBalance struct {
	ProviderID  uuid.UUID       `json:"provider_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Purchases   int64           `json:"purchases"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// Dashboard bundles the aggregates shown on the back-office home screen
type Dashboard struct {
	PeriodStart      time.Time         `json:"period_start"`
	PeriodEnd        time.Time         `json:"period_end"`
	ByStatus         []StatusSummary   `json:"by_status"`
	ByMethod         []MethodBreakdown `json:"by_method"`
	TotalPurchased   decimal.Decimal   `json:"total_purchased"`
	TotalPaid        decimal.Decimal   `json:"total_paid"`
	TotalOutstanding decimal.Decimal   `json:"total_outstanding"`
	OverdueCount     int64             `json:"overdue_count"`
}

// Query carries the common report parameters
type Query struct {
	OrgID   uuid.UUID
	StoreID *uuid.UUID
	From    time.Time
	To      time.Time
}

// Repository defines the read-side queries backing the dashboards
type Repository interface {
	PurchasesByStatus(ctx context.Context, q Query) ([]StatusSummary, error)
	PaymentsByMethod(ctx context.Context, q Query) ([]MethodBreakdown, error)
	ProviderBalances(ctx context.Context, orgID uuid.UUID) ([]ProviderBalance, error)
	OverdueCount(ctx context.Context, q Query) (int64, error)
}
