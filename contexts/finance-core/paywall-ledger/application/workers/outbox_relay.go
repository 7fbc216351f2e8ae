package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "paywall/contexts/finance-core/paywall-ledger/application"
	"paywall/contexts/finance-core/paywall-ledger/ports"
)

// DefaultTopic carries every paywall ledger event; consumers route on
// event_type and partition on paywall_key.
const DefaultTopic = "paywall.events"

type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Metrics   ports.Metrics
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce drains one batch in creation order. It stops at the first failure so
// a paywall's events are never published out of order.
func (r OutboxRelay) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	topic := r.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list pending failed",
			"event", "paywall_outbox_list_failed",
			"module", application.ModuleName,
			"layer", "worker",
			"error", err.Error(),
		)
		return 0, err
	}

	sent := 0
	for _, message := range pending {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("outbox payload decode failed",
				"event", "paywall_outbox_decode_failed",
				"module", application.ModuleName,
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return sent, err
		}

		if err := r.Publisher.Publish(ctx, topic, envelope); err != nil {
			logger.Error("outbox publish failed",
				"event", "paywall_outbox_publish_failed",
				"module", application.ModuleName,
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			return sent, err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, message.OutboxID, application.Now(r.Clock)); err != nil {
			logger.Error("outbox mark sent failed",
				"event", "paywall_outbox_mark_sent_failed",
				"module", application.ModuleName,
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return sent, err
		}
		if r.Metrics != nil {
			r.Metrics.ObserveEventPublished(envelope.EventType)
		}
		sent++
	}

	if sent > 0 {
		logger.Info("outbox relay cycle completed",
			"event", "paywall_outbox_relay_completed",
			"module", application.ModuleName,
			"layer", "worker",
			"sent_count", sent,
		)
	}
	return sent, nil
}
