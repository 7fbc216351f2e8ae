package services

import (
	"testing"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSlotIsDeterministic(t *testing.T) {
	assert.Equal(t, PaywallSlot("creator-a", "article-1"), PaywallSlot("creator-a", "article-1"))
	assert.Equal(t, ConfigSlot(), ConfigSlot())
	assert.NotEqual(t, entities.Slot{}, ConfigSlot())
}

func TestDeriveSlotSeparatesNamespaces(t *testing.T) {
	slots := map[entities.Slot]string{}
	add := func(label string, slot entities.Slot) {
		if previous, ok := slots[slot]; ok {
			t.Fatalf("slot collision between %s and %s", previous, label)
		}
		slots[slot] = label
	}

	add("config", ConfigSlot())
	add("paywall a/x", PaywallSlot("creator-a", "x"))
	add("paywall b/x", PaywallSlot("creator-b", "x"))
	add("paywall a/y", PaywallSlot("creator-a", "y"))
	add("payment a/x/p1", PaymentSlot("creator-a", "x", "payer-1"))
	add("payment a/x/p2", PaymentSlot("creator-a", "x", "payer-2"))
	add("payment b/x/p1", PaymentSlot("creator-b", "x", "payer-1"))
}

func TestDeriveSlotLengthPrefixesSeeds(t *testing.T) {
	assert.NotEqual(t, PaywallSlot("ab", "c"), PaywallSlot("a", "bc"))
	assert.NotEqual(t, PaymentSlot("a", "b", "c"), DeriveSlot(entities.SlotKindPayment, "a", "bc"))
	assert.NotEqual(t,
		DeriveSlot(entities.SlotKindPaywall, "creator", "id"),
		DeriveSlot(entities.SlotKindPayment, "creator", "id"),
	)
}

func TestSlotStringRoundTrips(t *testing.T) {
	slot := PaymentSlot("creator-a", "article-1", "payer-1")
	parsed, ok := entities.ParseSlot(slot.String())
	require.True(t, ok)
	assert.Equal(t, slot, parsed)
	assert.Len(t, slot.String(), 64)

	_, ok = entities.ParseSlot("not-hex")
	assert.False(t, ok)
}
