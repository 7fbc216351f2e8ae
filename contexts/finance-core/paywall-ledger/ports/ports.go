package ports

import (
	"context"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	contractsv1 "paywall/contracts/gen/events/v1"
)

// Ledger owns the transaction boundary for every state transition.
type Ledger interface {
	// Atomically runs fn in one serializable unit. Writes made through tx are
	// committed only when fn returns nil; any error discards all of them,
	// including transfers.
	Atomically(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the slot-addressed record store, transfer primitive, and event
// sink visible inside one Ledger transaction.
type LedgerTx interface {
	// CreateConfig fails with ErrSlotAlreadyExists when the slot is occupied.
	CreateConfig(ctx context.Context, slot entities.Slot, config entities.Config) error
	// LoadConfig fails with ErrSlotNotFound when the slot is empty. It takes a
	// shared lock: concurrent settlements may read the config together, while
	// a writer holding LoadConfigForUpdate excludes them.
	LoadConfig(ctx context.Context, slot entities.Slot) (entities.Config, error)
	LoadConfigForUpdate(ctx context.Context, slot entities.Slot) (entities.Config, error)
	SaveConfig(ctx context.Context, slot entities.Slot, config entities.Config) error

	CreatePaywall(ctx context.Context, slot entities.Slot, paywall entities.Paywall) error
	// LoadPaywall locks the record for the rest of the transaction.
	LoadPaywall(ctx context.Context, slot entities.Slot) (entities.Paywall, error)
	SavePaywall(ctx context.Context, slot entities.Slot, paywall entities.Paywall) error

	// CreatePayment never overwrites; an occupied slot is ErrSlotAlreadyExists.
	CreatePayment(ctx context.Context, slot entities.Slot, payment entities.Payment) error
	LoadPayment(ctx context.Context, slot entities.Slot) (entities.Payment, error)

	// Transfer debits from and credits to, or fails with ErrInsufficientFunds
	// without touching either balance.
	Transfer(ctx context.Context, from string, to string, amount uint64) error
	// Credit adds funds to an account, failing with ErrNumericalOverflow when
	// the balance would not fit.
	Credit(ctx context.Context, accountID string, amount uint64) error

	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

// LedgerReader serves committed state to queries.
type LedgerReader interface {
	GetConfig(ctx context.Context, slot entities.Slot) (entities.Config, error)
	GetPaywall(ctx context.Context, slot entities.Slot) (entities.Paywall, error)
	ListPaywallsByCreator(ctx context.Context, creatorID string, limit int, offset int) ([]entities.Paywall, error)
	GetPayment(ctx context.Context, slot entities.Slot) (entities.Payment, error)
	GetBalance(ctx context.Context, accountID string) (uint64, error)
}

// Clock allows deterministic testing of record timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts event identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Metrics observes operation outcomes. Implementations must be safe for
// concurrent use.
type Metrics interface {
	ObserveOperation(operation string, err error, elapsed time.Duration)
	ObserveSettlement(split entities.Split)
	ObserveEventPublished(eventType string)
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
