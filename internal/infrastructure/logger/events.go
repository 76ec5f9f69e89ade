package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// PublishDomainEvents drains the pending domain events of the given
// aggregates and logs each one through the request-scoped logger.
// Services call it after their transaction commits, so an aborted
// mutation never publishes anything.
func PublishDomainEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
	log := FromContext(ctx)
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		for _, e := range agg.GetDomainEvents() {
			log.Info("Domain event",
				zap.String("event_type", e.EventType()),
				zap.String("aggregate_type", e.AggregateType()),
				zap.String("aggregate_id", e.AggregateID().String()),
				zap.String("org_id", e.OrgID().String()),
				zap.Time("occurred_at", e.OccurredAt()),
			)
		}
		agg.ClearDomainEvents()
	}
}
