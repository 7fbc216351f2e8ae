package memory

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	"paywall/contexts/finance-core/paywall-ledger/ports"

	"github.com/google/uuid"
)

// Store is the in-process ledger. Transactions are serialized on a single
// write lock and buffer their writes until the callback succeeds.
type Store struct {
	mu sync.RWMutex

	configs   map[entities.Slot]entities.Config
	paywalls  map[entities.Slot]entities.Paywall
	payments  map[entities.Slot]entities.Payment
	balances  map[string]uint64
	outbox    map[string]outboxRecord
	outboxSeq uint64
}

type outboxRecord struct {
	Message ports.OutboxMessage
	Seq     uint64
	Status  string
	SentAt  *time.Time
}

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

func NewStore() *Store {
	return &Store{
		configs:  make(map[entities.Slot]entities.Config),
		paywalls: make(map[entities.Slot]entities.Paywall),
		payments: make(map[entities.Slot]entities.Payment),
		balances: make(map[string]uint64),
		outbox:   make(map[string]outboxRecord),
	}
}

func (s *Store) Atomically(_ context.Context, fn func(tx ports.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &storeTx{
		store:    s,
		configs:  make(map[entities.Slot]entities.Config),
		paywalls: make(map[entities.Slot]entities.Paywall),
		payments: make(map[entities.Slot]entities.Payment),
		balances: make(map[string]uint64),
	}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// Credit funds an account in its own transaction.
func (s *Store) Credit(accountID string, amount uint64) error {
	return s.Atomically(context.Background(), func(tx ports.LedgerTx) error {
		return tx.Credit(context.Background(), accountID, amount)
	})
}

func (s *Store) Balance(accountID string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[strings.TrimSpace(accountID)]
}

func (s *Store) GetConfig(_ context.Context, slot entities.Slot) (entities.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	config, ok := s.configs[slot]
	if !ok {
		return entities.Config{}, domainerrors.ErrSlotNotFound
	}
	return config, nil
}

func (s *Store) GetPaywall(_ context.Context, slot entities.Slot) (entities.Paywall, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paywall, ok := s.paywalls[slot]
	if !ok {
		return entities.Paywall{}, domainerrors.ErrSlotNotFound
	}
	return paywall, nil
}

func (s *Store) ListPaywallsByCreator(_ context.Context, creatorID string, limit int, offset int) ([]entities.Paywall, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	creatorID = strings.TrimSpace(creatorID)
	items := make([]entities.Paywall, 0)
	for _, item := range s.paywalls {
		if item.CreatorID == creatorID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if offset >= len(items) {
		return []entities.Paywall{}, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return append([]entities.Paywall(nil), items[offset:end]...), nil
}

func (s *Store) GetPayment(_ context.Context, slot entities.Slot) (entities.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[slot]
	if !ok {
		return entities.Payment{}, domainerrors.ErrSlotNotFound
	}
	return payment, nil
}

func (s *Store) GetBalance(_ context.Context, accountID string) (uint64, error) {
	return s.Balance(accountID), nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	rows := make([]outboxRecord, 0)
	for _, row := range s.outbox {
		if row.Status == outboxStatusPending {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Seq < rows[j].Seq
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Message)
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(outboxID)
	row, ok := s.outbox[key]
	if !ok {
		return domainerrors.ErrSlotNotFound
	}
	ts := sentAt.UTC()
	row.Status = outboxStatusSent
	row.SentAt = &ts
	s.outbox[key] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// storeTx reads through its staged writes to the committed maps. The caller
// holds s.mu for the lifetime of the transaction.
type storeTx struct {
	store *Store

	configs  map[entities.Slot]entities.Config
	paywalls map[entities.Slot]entities.Paywall
	payments map[entities.Slot]entities.Payment
	balances map[string]uint64
	outbox   []ports.OutboxMessage
}

func (t *storeTx) CreateConfig(_ context.Context, slot entities.Slot, config entities.Config) error {
	if _, ok := t.config(slot); ok {
		return domainerrors.ErrSlotAlreadyExists
	}
	t.configs[slot] = config
	return nil
}

func (t *storeTx) LoadConfig(_ context.Context, slot entities.Slot) (entities.Config, error) {
	config, ok := t.config(slot)
	if !ok {
		return entities.Config{}, domainerrors.ErrSlotNotFound
	}
	return config, nil
}

// LoadConfigForUpdate matches LoadConfig: the store lock already excludes
// every other transaction.
func (t *storeTx) LoadConfigForUpdate(ctx context.Context, slot entities.Slot) (entities.Config, error) {
	return t.LoadConfig(ctx, slot)
}

func (t *storeTx) SaveConfig(_ context.Context, slot entities.Slot, config entities.Config) error {
	if _, ok := t.config(slot); !ok {
		return domainerrors.ErrSlotNotFound
	}
	t.configs[slot] = config
	return nil
}

func (t *storeTx) CreatePaywall(_ context.Context, slot entities.Slot, paywall entities.Paywall) error {
	if _, ok := t.paywall(slot); ok {
		return domainerrors.ErrSlotAlreadyExists
	}
	t.paywalls[slot] = paywall
	return nil
}

func (t *storeTx) LoadPaywall(_ context.Context, slot entities.Slot) (entities.Paywall, error) {
	paywall, ok := t.paywall(slot)
	if !ok {
		return entities.Paywall{}, domainerrors.ErrSlotNotFound
	}
	return paywall, nil
}

func (t *storeTx) SavePaywall(_ context.Context, slot entities.Slot, paywall entities.Paywall) error {
	if _, ok := t.paywall(slot); !ok {
		return domainerrors.ErrSlotNotFound
	}
	t.paywalls[slot] = paywall
	return nil
}

func (t *storeTx) CreatePayment(_ context.Context, slot entities.Slot, payment entities.Payment) error {
	if _, ok := t.payment(slot); ok {
		return domainerrors.ErrSlotAlreadyExists
	}
	t.payments[slot] = payment
	return nil
}

func (t *storeTx) LoadPayment(_ context.Context, slot entities.Slot) (entities.Payment, error) {
	payment, ok := t.payment(slot)
	if !ok {
		return entities.Payment{}, domainerrors.ErrSlotNotFound
	}
	return payment, nil
}

func (t *storeTx) Transfer(_ context.Context, from string, to string, amount uint64) error {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return domainerrors.ErrInvalidIdentity
	}
	if amount == 0 || from == to {
		if t.balance(from) < amount {
			return domainerrors.ErrInsufficientFunds
		}
		return nil
	}

	fromBalance := t.balance(from)
	if fromBalance < amount {
		return domainerrors.ErrInsufficientFunds
	}
	toBalance := t.balance(to)
	if amount > math.MaxUint64-toBalance {
		return domainerrors.ErrNumericalOverflow
	}
	t.balances[from] = fromBalance - amount
	t.balances[to] = toBalance + amount
	return nil
}

func (t *storeTx) Credit(_ context.Context, accountID string, amount uint64) error {
	key := strings.TrimSpace(accountID)
	if key == "" {
		return domainerrors.ErrInvalidIdentity
	}
	current := t.balance(key)
	if amount > math.MaxUint64-current {
		return domainerrors.ErrNumericalOverflow
	}
	t.balances[key] = current + amount
	return nil
}

func (t *storeTx) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		return domainerrors.ErrInvalidIdentity
	}
	if _, exists := t.store.outbox[outboxID]; exists {
		return domainerrors.ErrSlotAlreadyExists
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	t.outbox = append(t.outbox, ports.OutboxMessage{
		OutboxID:     outboxID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAt.UTC(),
	})
	return nil
}

func (t *storeTx) config(slot entities.Slot) (entities.Config, bool) {
	if item, ok := t.configs[slot]; ok {
		return item, true
	}
	item, ok := t.store.configs[slot]
	return item, ok
}

func (t *storeTx) paywall(slot entities.Slot) (entities.Paywall, bool) {
	if item, ok := t.paywalls[slot]; ok {
		return item, true
	}
	item, ok := t.store.paywalls[slot]
	return item, ok
}

func (t *storeTx) payment(slot entities.Slot) (entities.Payment, bool) {
	if item, ok := t.payments[slot]; ok {
		return item, true
	}
	item, ok := t.store.payments[slot]
	return item, ok
}

func (t *storeTx) balance(accountID string) uint64 {
	if amount, ok := t.balances[accountID]; ok {
		return amount
	}
	return t.store.balances[accountID]
}

func (t *storeTx) commit() {
	s := t.store
	for slot, item := range t.configs {
		s.configs[slot] = item
	}
	for slot, item := range t.paywalls {
		s.paywalls[slot] = item
	}
	for slot, item := range t.payments {
		s.payments[slot] = item
	}
	for account, amount := range t.balances {
		s.balances[account] = amount
	}
	for _, message := range t.outbox {
		s.outboxSeq++
		s.outbox[message.OutboxID] = outboxRecord{
			Message: message,
			Seq:     s.outboxSeq,
			Status:  outboxStatusPending,
		}
	}
}
