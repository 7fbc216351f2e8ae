package messaging

import (
	"context"
	"log/slog"
	"sync"

	"paywall/contexts/finance-core/paywall-ledger/ports"
)

const subscriberBuffer = 128

// Kafka is the event bus the outbox relay publishes to. Delivery is
// in-process; brokers are recorded for the external transport.
type Kafka struct {
	mu          sync.RWMutex
	brokers     []string
	subscribers map[string][]subscriber
	logger      *slog.Logger
}

type subscriber struct {
	group string
	ch    chan ports.EventEnvelope
}

func NewKafka(brokers []string, logger *slog.Logger) (*Kafka, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &Kafka{
		brokers:     append([]string(nil), brokers...),
		subscribers: make(map[string][]subscriber),
		logger:      logger,
	}, nil
}

func (k *Kafka) Brokers() []string {
	return append([]string(nil), k.brokers...)
}

// Publish fans the event out to every subscribed group. A full subscriber
// buffer drops the event for that group only.
func (k *Kafka) Publish(ctx context.Context, topic string, event ports.EventEnvelope) error {
	k.mu.RLock()
	subs := append([]subscriber(nil), k.subscribers[topic]...)
	k.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub.ch <- event:
		default:
			k.logger.Warn("dropping event for slow subscriber",
				"event", "kafka_publish_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"consumer_group", sub.group,
				"event_id", event.EventID,
			)
		}
	}

	k.logger.Debug("event published",
		"event", "kafka_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"partition_key", event.PartitionKey,
	)
	return nil
}

func (k *Kafka) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	sub := subscriber{
		group: consumerGroup,
		ch:    make(chan ports.EventEnvelope, subscriberBuffer),
	}

	k.mu.Lock()
	k.subscribers[topic] = append(k.subscribers[topic], sub)
	k.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				k.removeSubscriber(topic, sub.ch)
				return
			case event := <-sub.ch:
				if err := handler(ctx, event); err != nil {
					k.logger.Error("consumer handler failed",
						"event", "kafka_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

func (k *Kafka) removeSubscriber(topic string, target chan ports.EventEnvelope) {
	k.mu.Lock()
	defer k.mu.Unlock()

	items := k.subscribers[topic]
	filtered := items[:0]
	for _, item := range items {
		if item.ch != target {
			filtered = append(filtered, item)
		}
	}
	k.subscribers[topic] = filtered
}
