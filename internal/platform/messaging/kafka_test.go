package messaging

import (
	"context"
	"testing"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaDeliversToEveryGroup(t *testing.T) {
	bus, err := NewKafka([]string{"localhost:9092"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:9092"}, bus.Brokers())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	audit := make(chan ports.EventEnvelope, 1)
	search := make(chan ports.EventEnvelope, 1)
	require.NoError(t, bus.Subscribe(ctx, "paywall.events", "audit", func(_ context.Context, event ports.EventEnvelope) error {
		audit <- event
		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx, "paywall.events", "search", func(_ context.Context, event ports.EventEnvelope) error {
		search <- event
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, "paywall.events", ports.EventEnvelope{EventID: "evt-1", EventType: "paywall.created"}))
	require.NoError(t, bus.Publish(ctx, "other.topic", ports.EventEnvelope{EventID: "evt-2"}))

	for _, ch := range []chan ports.EventEnvelope{audit, search} {
		select {
		case event := <-ch:
			assert.Equal(t, "evt-1", event.EventID)
		case <-time.After(time.Second):
			t.Fatal("event was not delivered")
		}
	}
}

func TestKafkaUnsubscribesOnCancel(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bus.Subscribe(ctx, "paywall.events", "audit", func(context.Context, ports.EventEnvelope) error {
		return nil
	}))
	cancel()

	assert.Eventually(t, func() bool {
		bus.mu.RLock()
		defer bus.mu.RUnlock()
		return len(bus.subscribers["paywall.events"]) == 0
	}, time.Second, 10*time.Millisecond)
}
