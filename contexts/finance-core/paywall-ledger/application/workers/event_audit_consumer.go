package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	"paywall/contexts/finance-core/paywall-ledger/ports"
	eventschemas "paywall/contracts/events/v1"
)

// EventAuditConsumer checks every relayed ledger event against its payload
// schema and writes one structured audit line for it.
type EventAuditConsumer struct {
	Subscriber    ports.EventSubscriber
	Topic         string
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c EventAuditConsumer) Start(ctx context.Context) error {
	topic := c.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	group := c.ConsumerGroup
	if group == "" {
		group = "paywall-ledger-audit-cg"
	}
	return c.Subscriber.Subscribe(ctx, topic, group, c.Handle)
}

func (c EventAuditConsumer) Handle(_ context.Context, envelope ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)

	if _, ok := entities.ParseSlot(envelope.PartitionKey); !ok {
		err := fmt.Errorf("event %s partition key %q is not a paywall slot", envelope.EventID, envelope.PartitionKey)
		logger.Error("audit event has malformed partition key",
			"event", "paywall_audit_partition_key_invalid",
			"module", application.ModuleName,
			"layer", "worker",
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
			"error", err.Error(),
		)
		return err
	}

	if err := eventschemas.ValidatePayload(envelope.EventType, envelope.Data); err != nil {
		logger.Error("audit event failed schema validation",
			"event", "paywall_audit_schema_invalid",
			"module", application.ModuleName,
			"layer", "worker",
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
			"error", err.Error(),
		)
		return err
	}

	var data map[string]any
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		logger.Warn("audit event payload decode failed",
			"event", "paywall_audit_decode_failed",
			"module", application.ModuleName,
			"layer", "worker",
			"event_id", envelope.EventID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("paywall ledger event observed",
		"event", "paywall_audit_event_observed",
		"module", application.ModuleName,
		"layer", "worker",
		"event_id", envelope.EventID,
		"event_type", envelope.EventType,
		"partition_key", envelope.PartitionKey,
		"paywall_id", data["paywall_id"],
		"creator_id", data["creator_id"],
		"payer_id", data["payer_id"],
	)
	return nil
}
