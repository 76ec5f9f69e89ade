package logger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tiendapro/backend/internal/domain/shared"
)

type stubAggregate struct {
	shared.OrgAggregateRoot
}

func TestPublishDomainEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))

	orgID := uuid.New()
	agg := &stubAggregate{OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID)}
	evt := shared.NewBaseDomainEvent("SomethingHappened", "Stub", agg.ID, orgID)
	agg.AddDomainEvent(&evt)

	PublishDomainEvents(ctx, agg)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Domain event", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "SomethingHappened", fields["event_type"])
	assert.Equal(t, "Stub", fields["aggregate_type"])
	assert.Equal(t, agg.ID.String(), fields["aggregate_id"])
	assert.Equal(t, orgID.String(), fields["org_id"])

	// publishing drains the aggregate
	assert.Empty(t, agg.GetDomainEvents())
}

func TestPublishDomainEvents_NoLoggerNoPanic(t *testing.T) {
	agg := &stubAggregate{OrgAggregateRoot: shared.NewOrgAggregateRoot(uuid.New())}
	evt := shared.NewBaseDomainEvent("SomethingHappened", "Stub", agg.ID, agg.OrgID)
	agg.AddDomainEvent(&evt)

	PublishDomainEvents(context.Background(), agg, nil)

	assert.Empty(t, agg.GetDomainEvents())
}
