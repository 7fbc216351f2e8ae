package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/adapters/memory"
	"paywall/contexts/finance-core/paywall-ledger/application/commands"
	"paywall/contexts/finance-core/paywall-ledger/application/workers"
	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	"paywall/contexts/finance-core/paywall-ledger/ports"
	contractsv1 "paywall/contracts/gen/events/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []ports.EventEnvelope
	failOn int
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failOn > 0 && len(p.events)+1 == p.failOn {
		return errors.New("broker unavailable")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

type countingMetrics struct {
	mu        sync.Mutex
	published map[string]int
}

func (m *countingMetrics) ObserveOperation(string, error, time.Duration) {}

func (m *countingMetrics) ObserveSettlement(entities.Split) {}

func (m *countingMetrics) ObserveEventPublished(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.published == nil {
		m.published = make(map[string]int)
	}
	m.published[eventType]++
}

func seedLedgerEvents(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	_, err := commands.InitializeConfigUseCase{Ledger: store, Clock: store}.Execute(ctx, commands.InitializeConfigCommand{
		Caller:       "authority",
		FeeRecipient: "treasury",
		FeePercent:   10,
	})
	require.NoError(t, err)
	_, err = commands.CreatePaywallUseCase{Ledger: store, Clock: store, IDGenerator: store}.Execute(ctx, commands.CreatePaywallCommand{
		Caller:      "creator",
		PaywallID:   "article",
		PriceAmount: 100,
	})
	require.NoError(t, err)
	_, err = commands.UpdatePaywallUseCase{Ledger: store, Clock: store, IDGenerator: store}.Execute(ctx, commands.UpdatePaywallCommand{
		Caller:      "creator",
		CreatorID:   "creator",
		PaywallID:   "article",
		MaxSupply:   10,
		PriceAmount: 200,
	})
	require.NoError(t, err)
	require.NoError(t, store.Credit("payer", 200))
	_, err = commands.PurchasePaywallUseCase{Ledger: store, Clock: store, IDGenerator: store}.Execute(ctx, commands.PurchasePaywallCommand{
		Payer:     "payer",
		CreatorID: "creator",
		PaywallID: "article",
	})
	require.NoError(t, err)
}

func TestOutboxRelayPublishesInCommitOrder(t *testing.T) {
	store := memory.NewStore()
	seedLedgerEvents(t, store)
	publisher := &recordingPublisher{}
	metrics := &countingMetrics{}

	relay := workers.OutboxRelay{Outbox: store, Publisher: publisher, Clock: store, Metrics: metrics}
	sent, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sent)

	require.Len(t, publisher.events, 3)
	assert.Equal(t, contractsv1.EventTypePaywallCreated, publisher.events[0].EventType)
	assert.Equal(t, contractsv1.EventTypePaywallUpdated, publisher.events[1].EventType)
	assert.Equal(t, contractsv1.EventTypePaywallMinted, publisher.events[2].EventType)
	assert.Equal(t, workers.DefaultTopic, publisher.topics[0])
	assert.Equal(t, 1, metrics.published[contractsv1.EventTypePaywallMinted])

	var minted map[string]any
	require.NoError(t, json.Unmarshal(publisher.events[2].Data, &minted))
	assert.Equal(t, "payer", minted["payer_id"])
	assert.EqualValues(t, 20, minted["fee_amount"])
	assert.EqualValues(t, 180, minted["creator_amount"])

	sent, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestOutboxRelayStopsAtFirstFailure(t *testing.T) {
	store := memory.NewStore()
	seedLedgerEvents(t, store)
	publisher := &recordingPublisher{failOn: 2}

	relay := workers.OutboxRelay{Outbox: store, Publisher: publisher, Topic: "custom.topic", BatchSize: 10}
	sent, err := relay.RunOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, sent)

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, contractsv1.EventTypePaywallUpdated, pending[0].EventType)

	publisher.failOn = 0
	sent, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, "custom.topic", publisher.topics[len(publisher.topics)-1])
}

func TestEventAuditConsumerValidatesPayloads(t *testing.T) {
	store := memory.NewStore()
	seedLedgerEvents(t, store)
	publisher := &recordingPublisher{}
	_, err := workers.OutboxRelay{Outbox: store, Publisher: publisher}.RunOnce(context.Background())
	require.NoError(t, err)

	consumer := workers.EventAuditConsumer{}
	for _, event := range publisher.events {
		assert.NoError(t, consumer.Handle(context.Background(), event), event.EventType)
	}

	tampered := publisher.events[2]
	tampered.Data = json.RawMessage(`{"paywall_id":"article","creator_id":"creator","paywall_key":"nope"}`)
	assert.Error(t, consumer.Handle(context.Background(), tampered))

	unknown := publisher.events[0]
	unknown.EventType = "paywall.deleted"
	assert.Error(t, consumer.Handle(context.Background(), unknown))
}

func TestEventAuditConsumerRejectsForeignPartitionKey(t *testing.T) {
	store := memory.NewStore()
	seedLedgerEvents(t, store)
	publisher := &recordingPublisher{}
	_, err := workers.OutboxRelay{Outbox: store, Publisher: publisher}.RunOnce(context.Background())
	require.NoError(t, err)

	consumer := workers.EventAuditConsumer{}
	for _, key := range []string{"", "creator/article", publisher.events[0].PartitionKey[:10]} {
		event := publisher.events[0]
		event.PartitionKey = key
		err := consumer.Handle(context.Background(), event)
		require.Error(t, err, key)
		assert.Contains(t, err.Error(), "partition key")
	}
}
