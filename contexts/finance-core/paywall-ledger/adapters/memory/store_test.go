package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"
	"paywall/contexts/finance-core/paywall-ledger/ports"
	contractsv1 "paywall/contracts/gen/events/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnvelope(t *testing.T, eventID string, slot entities.Slot) ports.EventEnvelope {
	t.Helper()
	envelope, err := contractsv1.NewEnvelope(
		eventID,
		contractsv1.EventTypePaywallCreated,
		"paywall-ledger",
		"paywall_key",
		slot.String(),
		time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC),
		map[string]any{"paywall_id": "x"},
	)
	require.NoError(t, err)
	return envelope
}

func TestAtomicallyDiscardsWritesOnError(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Credit("alice", 100))
	slot := services.PaywallSlot("alice", "x")
	boom := errors.New("boom")

	err := store.Atomically(context.Background(), func(tx ports.LedgerTx) error {
		require.NoError(t, tx.CreatePaywall(context.Background(), slot, entities.Paywall{ID: "x", CreatorID: "alice"}))
		require.NoError(t, tx.Transfer(context.Background(), "alice", "bob", 60))
		require.NoError(t, tx.AppendOutbox(context.Background(), testEnvelope(t, "evt-1", slot)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.GetPaywall(context.Background(), slot)
	assert.ErrorIs(t, err, domainerrors.ErrSlotNotFound)
	assert.Equal(t, uint64(100), store.Balance("alice"))
	assert.Equal(t, uint64(0), store.Balance("bob"))
	pending, err := store.ListPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestTransactionReadsItsOwnWrites(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Credit("alice", 10))
	slot := services.PaywallSlot("alice", "x")

	err := store.Atomically(context.Background(), func(tx ports.LedgerTx) error {
		require.NoError(t, tx.CreatePaywall(context.Background(), slot, entities.Paywall{ID: "x", CreatorID: "alice", MaxSupply: 2}))
		assert.ErrorIs(t, tx.CreatePaywall(context.Background(), slot, entities.Paywall{ID: "x"}), domainerrors.ErrSlotAlreadyExists)

		loaded, err := tx.LoadPaywall(context.Background(), slot)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), loaded.MaxSupply)

		require.NoError(t, tx.Transfer(context.Background(), "alice", "bob", 10))
		assert.ErrorIs(t, tx.Transfer(context.Background(), "alice", "bob", 1), domainerrors.ErrInsufficientFunds)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), store.Balance("alice"))
	assert.Equal(t, uint64(10), store.Balance("bob"))
}

func TestTransferRules(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Credit("alice", 5))
	require.NoError(t, store.Credit("whale", math.MaxUint64))

	err := store.Atomically(context.Background(), func(tx ports.LedgerTx) error {
		assert.ErrorIs(t, tx.Transfer(context.Background(), "", "bob", 1), domainerrors.ErrInvalidIdentity)
		assert.NoError(t, tx.Transfer(context.Background(), "nobody", "bob", 0))
		assert.NoError(t, tx.Transfer(context.Background(), "alice", "alice", 5))
		assert.ErrorIs(t, tx.Transfer(context.Background(), "alice", "alice", 6), domainerrors.ErrInsufficientFunds)
		assert.ErrorIs(t, tx.Transfer(context.Background(), "alice", "whale", 1), domainerrors.ErrNumericalOverflow)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), store.Balance("alice"))
	assert.ErrorIs(t, store.Credit("whale", 1), domainerrors.ErrNumericalOverflow)
	assert.ErrorIs(t, store.Credit(" ", 1), domainerrors.ErrInvalidIdentity)
}

func TestOutboxKeepsCommitOrder(t *testing.T) {
	store := NewStore()
	slot := services.PaywallSlot("alice", "x")

	for _, id := range []string{"evt-c", "evt-a", "evt-b"} {
		id := id
		require.NoError(t, store.Atomically(context.Background(), func(tx ports.LedgerTx) error {
			return tx.AppendOutbox(context.Background(), testEnvelope(t, id, slot))
		}))
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, []string{"evt-c", "evt-a", "evt-b"}, []string{pending[0].OutboxID, pending[1].OutboxID, pending[2].OutboxID})
	assert.Equal(t, slot.String(), pending[0].PartitionKey)

	limited, err := store.ListPendingOutbox(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	require.NoError(t, store.MarkOutboxSent(context.Background(), "evt-c", time.Now()))
	assert.ErrorIs(t, store.MarkOutboxSent(context.Background(), "evt-missing", time.Now()), domainerrors.ErrSlotNotFound)

	pending, err = store.ListPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "evt-a", pending[0].OutboxID)

	err = store.Atomically(context.Background(), func(tx ports.LedgerTx) error {
		return tx.AppendOutbox(context.Background(), testEnvelope(t, "evt-a", slot))
	})
	assert.ErrorIs(t, err, domainerrors.ErrSlotAlreadyExists)
}

func TestListPaywallsByCreatorPages(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Atomically(context.Background(), func(tx ports.LedgerTx) error {
		for i, id := range []string{"c", "a", "b"} {
			paywall := entities.Paywall{ID: id, CreatorID: "alice", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
			if err := tx.CreatePaywall(context.Background(), services.PaywallSlot("alice", id), paywall); err != nil {
				return err
			}
		}
		return tx.CreatePaywall(context.Background(), services.PaywallSlot("bob", "a"), entities.Paywall{ID: "a", CreatorID: "bob"})
	}))

	items, err := store.ListPaywallsByCreator(context.Background(), "alice", 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "b", items[2].ID)

	items, err = store.ListPaywallsByCreator(context.Background(), "alice", 1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)

	items, err = store.ListPaywallsByCreator(context.Background(), "alice", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}
