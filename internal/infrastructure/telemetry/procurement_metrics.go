package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ProcurementMetrics tracks purchase and payment activity.
type ProcurementMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	purchaseCreatedTotal *Counter
	paymentRecordedTotal *Counter
	paymentAmountTotal   *Counter
	versionConflictTotal *Counter
}

// NewProcurementMetrics creates a new ProcurementMetrics instance.
func NewProcurementMetrics(meter metric.Meter, logger *zap.Logger) (*ProcurementMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pm := &ProcurementMetrics{meter: meter, logger: logger}

	var err error
	pm.purchaseCreatedTotal, err = NewCounter(
		meter,
		"tienda_purchase_created_total",
		"Total number of purchases created",
		"{purchases}",
	)
	if err != nil {
		return nil, err
	}

	pm.paymentRecordedTotal, err = NewCounter(
		meter,
		"tienda_payment_recorded_total",
		"Total number of payments recorded",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	pm.paymentAmountTotal, err = NewCounter(
		meter,
		"tienda_payment_amount_cents_total",
		"Total payment amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	pm.versionConflictTotal, err = NewCounter(
		meter,
		"tienda_version_conflict_total",
		"Total number of optimistic lock conflicts during reconciliation",
		"{conflicts}",
	)
	if err != nil {
		return nil, err
	}

	return pm, nil
}

// RecordPurchaseCreated increments the purchase creation counter.
func (pm *ProcurementMetrics) RecordPurchaseCreated(ctx context.Context, orgID, storeID string) {
	pm.purchaseCreatedTotal.Inc(ctx,
		AttrOrgID.String(orgID),
		AttrStoreID.String(storeID),
	)
}

// RecordPayment increments payment counters. The amount is converted to cents
// so the counter stays integral.
func (pm *ProcurementMetrics) RecordPayment(ctx context.Context, orgID, method string, amount decimal.Decimal) {
	pm.paymentRecordedTotal.Inc(ctx,
		AttrOrgID.String(orgID),
		AttrPaymentMethod.String(method),
	)
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	pm.paymentAmountTotal.Add(ctx, cents,
		AttrOrgID.String(orgID),
		AttrPaymentMethod.String(method),
	)
}

// RecordVersionConflict increments the optimistic lock conflict counter.
func (pm *ProcurementMetrics) RecordVersionConflict(ctx context.Context, orgID string) {
	pm.versionConflictTotal.Inc(ctx, AttrOrgID.String(orgID))
}
