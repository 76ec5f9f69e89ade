package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendapro/backend/internal/domain/report"
)

// DashboardFilter carries the dashboard query parameters. An empty
// period defaults to the current month to date.
type DashboardFilter struct {
	StoreID *uuid.UUID `form:"store_id"`
	From    time.Time  `form:"from" time_format:"2006-01-02"`
	To      time.Time  `form:"to" time_format:"2006-01-02"`
}

// ProviderBalanceResponse represents a provider's outstanding position
type ProviderBalanceResponse struct {
	ProviderID  uuid.UUID       `json:"provider_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Purchases   int64           `json:"purchases"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// ReportService assembles the read-side dashboards. All numbers are
// computed from purchases and payments at query time.
type ReportService struct {
	reports report.Repository
}

// NewReportService creates a new ReportService
func NewReportService(reports report.Repository) *ReportService {
	return &ReportService{reports: reports}
}

// Dashboard returns the purchase and payment aggregates for the period
func (s *ReportService) Dashboard(ctx context.Context, orgID uuid.UUID, filter DashboardFilter) (*report.Dashboard, error) {
	query := s.toQuery(orgID, filter)

	byStatus, err := s.reports.PurchasesByStatus(ctx, query)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.reports.PaymentsByMethod(ctx, query)
	if err != nil {
		return nil, err
	}
	overdue, err := s.reports.OverdueCount(ctx, query)
	if err != nil {
		return nil, err
	}

	dashboard := &report.Dashboard{
		PeriodStart:      query.From,
		PeriodEnd:        query.To,
		ByStatus:         byStatus,
		ByMethod:         byMethod,
		TotalPurchased:   decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		OverdueCount:     overdue,
	}
	for _, row := range byStatus {
		dashboard.TotalPurchased = dashboard.TotalPurchased.Add(row.TotalAmount)
		dashboard.TotalPaid = dashboard.TotalPaid.Add(row.PaidAmount)
	}
	dashboard.TotalOutstanding = dashboard.TotalPurchased.Sub(dashboard.TotalPaid)

	return dashboard, nil
}

// ProviderBalances returns every provider's outstanding position,
// largest balance first
func (s *ReportService) ProviderBalances(ctx context.Context, orgID uuid.UUID) ([]ProviderBalanceResponse, error) {
	balances, err := s.reports.ProviderBalances(ctx, orgID)
	if err != nil {
		return nil, err
	}

	responses := make([]ProviderBalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = ProviderBalanceResponse{
			ProviderID:  b.ProviderID,
			Code:        b.Code,
			Name:        b.Name,
			Purchases:   b.Purchases,
			TotalAmount: b.TotalAmount,
			PaidAmount:  b.PaidAmount,
			Outstanding: b.Outstanding,
		}
	}
	return responses, nil
}

func (s *ReportService) toQuery(orgID uuid.UUID, filter DashboardFilter) report.Query {
	from, to := filter.From, filter.To
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	}
	return report.Query{
		OrgID:   orgID,
		StoreID: filter.StoreID,
		From:    from,
		To:      to,
	}
}
