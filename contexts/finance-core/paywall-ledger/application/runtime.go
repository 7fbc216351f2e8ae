package application

import (
	"context"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	"paywall/contexts/finance-core/paywall-ledger/ports"
	contractsv1 "paywall/contracts/gen/events/v1"
)

const (
	SourceService    = "paywall-ledger"
	PartitionKeyPath = "paywall_key"
)

func Now(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}

// Observe is a nil-safe wrapper around ports.Metrics.
func Observe(metrics ports.Metrics, operation string, err error, startedAt time.Time) {
	if metrics == nil {
		return
	}
	metrics.ObserveOperation(operation, err, time.Since(startedAt))
}

// NewPaywallEnvelope builds an outbox envelope partitioned by paywall slot, so
// consumers see one paywall's events in commit order.
func NewPaywallEnvelope(
	ctx context.Context,
	ids ports.IDGenerator,
	eventType string,
	slot entities.Slot,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	eventID, err := ids.NewID(ctx)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	data[PartitionKeyPath] = slot.String()
	return contractsv1.NewEnvelope(
		eventID,
		eventType,
		SourceService,
		PartitionKeyPath,
		slot.String(),
		occurredAt,
		data,
	)
}
